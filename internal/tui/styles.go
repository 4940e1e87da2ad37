package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/wethinkt/go-palettepro/internal/theme"
)

// Styles holds all the computed lipgloss styles for the TUI.
type Styles struct {
	// Category tabs
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	Title  lipgloss.Style
	Muted  lipgloss.Style
	Cursor lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Help   lipgloss.Style

	// Frame draws pane borders.
	Frame       lipgloss.Style
	ActiveFrame lipgloss.Style
}

// buildStyles derives the TUI styles from a theme.
func buildStyles(t theme.Theme) Styles {
	return Styles{
		Tab: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.Surface)),
		ActiveTab: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Primary)),
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Primary)),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)),
		Cursor: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent)),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b")),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)).Faint(true),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Surface)),
		ActiveFrame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Accent)),
	}
}
