// Package tui implements the read-only full-screen browser over the
// transaction list and its summaries.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/tracker/internal/service"
	"github.com/Veraticus/tracker/internal/tui/components"
	"github.com/Veraticus/tracker/internal/tui/themes"
)

// chrome is the number of lines taken by title, tab bar and footer.
const chrome = 8

// Model holds the browse view state.
type Model struct {
	ctx     context.Context
	store   service.TransactionStore
	err     error
	report  *service.Report
	theme   themes.Theme
	keymap  KeyMap
	help    help.Model
	titles  []string
	tables  []table.Model
	active  int
	width   int
	height  int
	loading bool
}

// NewModel creates a browse model that reads from store.
func NewModel(ctx context.Context, store service.TransactionStore, theme themes.Theme) Model {
	return Model{
		ctx:     ctx,
		store:   store,
		theme:   theme,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		height:  24,
		width:   80,
		loading: true,
	}
}

// Init starts loading the report.
func (m Model) Init() tea.Cmd {
	return m.loadReport()
}

func (m Model) loadReport() tea.Cmd {
	return func() tea.Msg {
		report, err := service.LoadReport(m.ctx, m.store)
		return reportLoadedMsg{report: report, err: err}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.NextTab):
			m.switchTab(1)
			return m, nil
		case key.Matches(msg, m.keymap.PrevTab):
			m.switchTab(-1)
			return m, nil
		case key.Matches(msg, m.keymap.Refresh):
			m.loading = true
			return m, m.loadReport()
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		for i := range m.tables {
			m.tables[i].SetHeight(m.tableHeight())
		}
		return m, nil

	case reportLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.setReport(msg.report)
		}
		return m, nil
	}

	if len(m.tables) == 0 {
		return m, nil
	}

	var cmd tea.Cmd
	m.tables[m.active], cmd = m.tables[m.active].Update(msg)
	return m, cmd
}

func (m *Model) setReport(report *service.Report) {
	m.report = report

	tables := report.Tables()
	m.titles = make([]string, 0, len(tables))
	m.tables = make([]table.Model, 0, len(tables))
	for _, t := range tables {
		m.titles = append(m.titles, t.Title)
		m.tables = append(m.tables, components.NewReportTable(t, m.theme, m.tableHeight()))
	}

	if m.active >= len(m.tables) {
		m.active = 0
	}
}

func (m *Model) switchTab(delta int) {
	if len(m.tables) == 0 {
		return
	}
	m.active = (m.active + delta + len(m.tables)) % len(m.tables)
}

func (m Model) tableHeight() int {
	return max(m.height-chrome, 3)
}
