package tui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wethinkt/go-palettepro/internal/cli"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/theme"
)

// samplePalettes are fixed so previews compare themes, not random batches.
var samplePalettes = []palette.Palette{
	{Name: "Sunset Gradient 1", Category: string(palette.Sunset), Colors: []string{"#FF5E62", "#FF9966", "#FFC371", "#FFE29F"}},
	{Name: "Ocean Gradient 2", Category: string(palette.Ocean), Colors: []string{"#0B486B", "#3B8686", "#79BD9A", "#A8DBA8"}},
	{Name: "blue Related 1", Category: string(palette.SearchResults), Colors: []string{"#0000FF", "#3A3AF5", "#1E5BE0", "#5C4DFF"}},
}

// renderThemePreview draws a miniature browser in t's colors.
func renderThemePreview(t theme.Theme, width int) string {
	s := buildStyles(t)
	var b strings.Builder

	var chips []string
	for _, c := range []struct{ label, hex string }{
		{"primary", t.Primary}, {"secondary", t.Secondary}, {"accent", t.Accent},
		{"background", t.Background}, {"surface", t.Surface}, {"text", t.Text},
	} {
		chips = append(chips, s.Muted.Render(c.label+" ")+lipgloss.NewStyle().Background(lipgloss.Color(c.hex)).Render("  "))
	}
	b.WriteString(strings.Join(chips[:3], "  ") + "\n" + strings.Join(chips[3:], "  ") + "\n\n")

	tabs := []string{
		s.ActiveTab.Render(string(palette.All)),
		s.Tab.Render(string(palette.Warm)),
		s.Tab.Render(string(palette.Cool)),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")
	b.WriteString(s.Title.Render("All Gradients") + "\n\n")

	swatch := max(min((width-4)/len(samplePalettes[0].Colors), cli.SwatchWidth), 4)
	for i, p := range samplePalettes {
		prefix, name := "  ", p.Name
		if i == 0 {
			prefix, name = s.Cursor.Render("▸ "), s.Cursor.Render(name)
		}
		b.WriteString(prefix + name + "\n  " + cli.SwatchRow(p.Colors, swatch) + "\n\n")
	}
	b.WriteString(s.Status.Render("Copied #FF5E62") + "\n")
	b.WriteString(s.Help.Render("→: next category • /: search • q: quit"))

	return lipgloss.NewStyle().
		Background(lipgloss.Color(t.Background)).
		Foreground(lipgloss.Color(t.Text)).
		Render(b.String())
}
