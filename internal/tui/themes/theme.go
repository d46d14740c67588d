// Package themes holds the color schemes used by the browse view.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Selected    lipgloss.Style
	Footer      lipgloss.Style
	StatusError lipgloss.Style
	Positive    lipgloss.Style
	Negative    lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary: lipgloss.Color("#7c3aed"),
	Muted:   lipgloss.Color("#737373"),
	Border:  lipgloss.Color("#404040"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	ActiveTab: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		Background(lipgloss.Color("#7c3aed")).
		Padding(0, 1),
	InactiveTab: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		Padding(0, 1),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#7c3aed")).
		Foreground(lipgloss.Color("#fafafa")).
		Bold(true),
	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")).
		MarginTop(1),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
	Positive: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	Negative: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
}

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = Theme{
	Primary: lipgloss.Color("#cba6f7"),
	Muted:   lipgloss.Color("#6c7086"),
	Border:  lipgloss.Color("#45475a"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#cdd6f4")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a6adc8")),
	ActiveTab: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1e1e2e")).
		Background(lipgloss.Color("#cba6f7")).
		Padding(0, 1),
	InactiveTab: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a6adc8")).
		Padding(0, 1),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#cba6f7")).
		Foreground(lipgloss.Color("#1e1e2e")).
		Bold(true),
	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6c7086")).
		MarginTop(1),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f38ba8")).
		Bold(true),
	Positive: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a6e3a1")),
	Negative: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f38ba8")),
}

// ByName returns the theme registered under name, falling back to Default.
func ByName(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
