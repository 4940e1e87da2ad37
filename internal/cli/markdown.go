package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/wethinkt/go-palettepro/internal/harmony"
	"github.com/wethinkt/go-palettepro/internal/i18n"
	"github.com/wethinkt/go-palettepro/internal/search"
)

// DetailMarkdown describes colors as a markdown document: a table of
// shades per color and the related palettes.
func DetailMarkdown(colors []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", i18n.T("cli.detail.title", "Palette Detail"))
	fmt.Fprintf(&b, "`%s`\n\n", strings.Join(colors, "` `"))

	fmt.Fprintf(&b, "## %s\n\n", i18n.T("cli.detail.shades", "Color Shades"))
	b.WriteString("| Color | Name | Shades |\n|---|---|---|\n")
	for _, r := range harmony.Ramps(colors) {
		name, _ := search.Nearest(r.Base)
		fmt.Fprintf(&b, "| `%s` | %s | %s |\n", r.Base, name.Name, strings.Join(r.Shades, " "))
	}

	fmt.Fprintf(&b, "\n## %s\n\n", i18n.T("cli.detail.related", "Related Palettes"))
	for _, p := range harmony.Detail(colors) {
		fmt.Fprintf(&b, "- **%s**: `%s`\n", p.Name, strings.Join(p.Colors, "` `"))
	}
	return b.String()
}

// RenderMarkdown renders md for the terminal. Plain output uses glamour's
// notty style so no escape sequences are emitted.
func RenderMarkdown(md string, width int, plain bool) (string, error) {
	if width <= 0 {
		width = 80
	}
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
