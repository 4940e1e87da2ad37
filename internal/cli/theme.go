package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/wethinkt/go-palettepro/internal/theme"
)

// ThemeDisplay handles theme visualization in the terminal.
type ThemeDisplay struct {
	w     io.Writer
	theme theme.Theme

	// Plain strips ANSI styling.
	Plain bool
}

// NewThemeDisplay creates a new theme display formatter.
func NewThemeDisplay(w io.Writer, t theme.Theme) *ThemeDisplay {
	return &ThemeDisplay{w: w, theme: t}
}

// themeEntry represents a single theme color entry for display.
type themeEntry struct {
	Name       string
	Color      string
	SampleText string
	IsBg       bool // true if this is a background color (needs contrasting fg)
}

// Show displays the theme with styled samples.
func (d *ThemeDisplay) Show() error {
	t := d.theme

	entries := []themeEntry{
		{Name: "Primary", Color: t.Primary, SampleText: "Palette titles"},
		{Name: "Secondary", Color: t.Secondary, SampleText: "Help and hints"},
		{Name: "Accent", Color: t.Accent, SampleText: "▌Selection"},
		{Name: "Background", Color: t.Background, SampleText: " Window ", IsBg: true},
		{Name: "Surface", Color: t.Surface, SampleText: " Card ", IsBg: true},
		{Name: "Text", Color: t.Text, SampleText: "Body text"},
	}

	var b strings.Builder
	themesDir, _ := theme.ThemesDir()
	fmt.Fprintf(&b, "Theme:        %s\n", t.Name)
	if t.Description != "" {
		fmt.Fprintf(&b, "Description:  %s\n", t.Description)
	}
	fmt.Fprintf(&b, "Themes Dir:   %s\n\n", themesDir)

	nameStyle := lipgloss.NewStyle().Width(14)
	colorStyle := lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color(t.Secondary))
	for _, entry := range entries {
		var sample string
		if entry.IsBg {
			sample = lipgloss.NewStyle().
				Background(lipgloss.Color(entry.Color)).
				Foreground(lipgloss.Color(t.Text)).
				Render(entry.SampleText)
		} else {
			sample = lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Color)).Render(entry.SampleText)
		}
		fmt.Fprintf(&b, "  %s %s %s\n", nameStyle.Render(entry.Name), colorStyle.Render(entry.Color), sample)
	}
	b.WriteByte('\n')

	out := b.String()
	if d.Plain {
		out = ansi.Strip(out)
	}
	_, err := io.WriteString(d.w, out)
	return err
}

// ShowJSON displays the theme as JSON.
func (d *ThemeDisplay) ShowJSON() error {
	enc := json.NewEncoder(d.w)
	enc.SetIndent("", "  ")
	return enc.Encode(d.theme)
}

// ShowCSS writes the theme's custom properties.
func (d *ThemeDisplay) ShowCSS() error {
	_, err := io.WriteString(d.w, theme.CSS(d.theme))
	return err
}

// List prints available themes, marking the active one, with a swatch strip
// of each theme's colors.
func (d *ThemeDisplay) List(metas []theme.ThemeMeta, active string) error {
	var b strings.Builder
	nameStyle := lipgloss.NewStyle().Width(12)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(d.theme.Secondary))
	for _, m := range metas {
		marker := "  "
		if m.Name == active {
			marker = lipgloss.NewStyle().Foreground(lipgloss.Color(d.theme.Accent)).Render("* ")
		}
		strip := ""
		if t, err := theme.LoadByName(m.Name); err == nil {
			for _, c := range t.Colors() {
				strip += lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("  ")
			}
		}
		source := "embedded"
		if !m.Embedded {
			source = m.Path
		}
		fmt.Fprintf(&b, "%s%s %s  %s %s\n", marker, nameStyle.Render(m.Name), strip, m.Description, mutedStyle.Render("("+source+")"))
	}

	out := b.String()
	if d.Plain {
		out = ansi.Strip(out)
	}
	_, err := io.WriteString(d.w, out)
	return err
}
