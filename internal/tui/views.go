package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the model.
func (m Model) View() string {
	title := m.theme.Title.Render("tracker")

	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			m.theme.StatusError.Render("failed to load: "+m.err.Error()),
			m.help.View(m.keymap),
		)
	}

	if m.loading && len(m.tables) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			m.theme.Subtitle.Render("loading..."),
		)
	}

	body := m.tables[m.active].View()
	if len(m.tables[m.active].Rows()) == 0 {
		body = m.theme.Subtitle.Render("no items to print")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.renderTabs(),
		"",
		body,
		m.renderFooter(),
	)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.titles))
	for i, t := range m.titles {
		style := m.theme.InactiveTab
		if i == m.active {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(t))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderFooter() string {
	var b strings.Builder

	total := m.theme.Positive
	if m.report.Total < 0 {
		total = m.theme.Negative
	}
	fmt.Fprintf(&b, "%d transactions, total %s\n",
		len(m.report.Transactions),
		total.Render(fmt.Sprintf("%d", m.report.Total)))
	b.WriteString(m.help.View(m.keymap))

	return m.theme.Footer.Render(b.String())
}
