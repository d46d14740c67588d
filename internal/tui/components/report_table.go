// Package components contains the bubbles widgets used by the browse view.
package components

import (
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/tracker/internal/service"
	"github.com/Veraticus/tracker/internal/tui/themes"
)

const (
	minColumnWidth = 6
	maxColumnWidth = 40
)

// NewReportTable builds a focused table for one report view.
// Column widths fit the widest cell within fixed bounds.
func NewReportTable(t service.Table, theme themes.Theme, height int) table.Model {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = utf8.RuneCountInString(h)
	}

	rows := make([]table.Row, 0, len(t.Rows))
	for _, values := range t.Rows {
		row := make(table.Row, len(t.Header))
		for i := range row {
			if i < len(values) {
				row[i] = fmt.Sprint(values[i])
			}
			widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
		}
		rows = append(rows, row)
	}

	columns := make([]table.Column, len(t.Header))
	for i, h := range t.Header {
		columns[i] = table.Column{
			Title: h,
			Width: min(max(widths[i], minColumnWidth), maxColumnWidth),
		}
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	tbl.SetStyles(s)

	return tbl
}
