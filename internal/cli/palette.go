// Package cli provides CLI output formatting utilities.
package cli

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/wethinkt/go-palettepro/internal/colorspace"
	"github.com/wethinkt/go-palettepro/internal/harmony"
	"github.com/wethinkt/go-palettepro/internal/i18n"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/theme"
)

// SwatchWidth is the cell width of one rendered color.
const SwatchWidth = 11

// PaletteDisplay renders palettes as colored swatches.
type PaletteDisplay struct {
	w     io.Writer
	theme theme.Theme

	// Plain strips ANSI styling, for pipes and files.
	Plain bool
}

// NewPaletteDisplay creates a palette display writing to w.
func NewPaletteDisplay(w io.Writer, t theme.Theme) *PaletteDisplay {
	return &PaletteDisplay{w: w, theme: t}
}

func (d *PaletteDisplay) print(s string) {
	if d.Plain {
		s = ansi.Strip(s)
	}
	fmt.Fprint(d.w, s)
}

func (d *PaletteDisplay) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(d.theme.Primary))
}

func (d *PaletteDisplay) mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(d.theme.Secondary))
}

// Swatch renders hex as a block of its color labelled in a contrasting color.
func Swatch(hex string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(colorspace.ContrastColor(hex))).
		Render(hex)
}

// SwatchRow renders colors side by side.
func SwatchRow(colors []string, width int) string {
	cells := make([]string, 0, len(colors))
	for _, c := range colors {
		cells = append(cells, Swatch(c, width))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// Palette prints one palette: its name and category, then its swatches.
func (d *PaletteDisplay) Palette(p palette.Palette) {
	var b strings.Builder
	if p.Name != "" {
		b.WriteString(d.titleStyle().Render(p.Name))
		if p.Category != "" && !strings.HasPrefix(p.Name, p.Category) {
			b.WriteString(" " + d.mutedStyle().Render("["+p.Category+"]"))
		}
		b.WriteByte('\n')
	}
	if d.Plain {
		b.WriteString(p.String())
	} else {
		b.WriteString(SwatchRow(p.Colors, SwatchWidth))
	}
	b.WriteByte('\n')
	d.print(b.String())
}

// Gallery prints a titled batch of palettes, or the empty notice when
// there are none.
func (d *PaletteDisplay) Gallery(title string, ps []palette.Palette, emptyMsg, emptyHint string) {
	d.print(d.titleStyle().Underline(true).Render(title) + "\n\n")
	if len(ps) == 0 {
		d.print(emptyMsg + "\n" + d.mutedStyle().Render(emptyHint) + "\n")
		return
	}
	for _, p := range ps {
		d.Palette(p)
	}
	d.print("\n" + d.mutedStyle().Render(i18n.Tn("cmd.gallery.count", "{{.Count}} palette", "{{.Count}} palettes", len(ps))) + "\n")
}

// Colors prints a labelled row of colors.
func (d *PaletteDisplay) Colors(label string, colors []string) {
	var b strings.Builder
	if label != "" {
		b.WriteString(d.titleStyle().Render(label) + "\n")
	}
	if d.Plain {
		b.WriteString(strings.Join(colors, "\n"))
	} else {
		b.WriteString(SwatchRow(colors, SwatchWidth))
	}
	b.WriteByte('\n')
	d.print(b.String())
}

// Detail prints the shade ramp of every color followed by the harmonic
// palettes derived from them.
func (d *PaletteDisplay) Detail(colors []string) {
	d.print(d.titleStyle().Underline(true).Render(i18n.T("cli.detail.shades", "Color Shades")) + "\n\n")
	for _, r := range harmony.Ramps(colors) {
		if d.Plain {
			d.print(r.Base + ": " + strings.Join(r.Shades, ", ") + "\n")
			continue
		}
		d.print(Swatch(r.Base, SwatchWidth) + "  " + SwatchRow(r.Shades, 9) + "\n")
	}

	d.print("\n" + d.titleStyle().Underline(true).Render(i18n.T("cli.detail.related", "Related Palettes")) + "\n\n")
	for _, p := range harmony.Detail(colors) {
		d.Palette(p)
	}
}

// Nearest prints the closest table name to a color.
func (d *PaletteDisplay) Nearest(hex, name, representative string, dist float64) {
	line := fmt.Sprintf("%s  %s %s (%s, ΔE %.1f)\n",
		Swatch(hex, SwatchWidth),
		i18n.T("cli.nearest.label", "nearest:"),
		d.titleStyle().Render(name),
		representative,
		dist*100,
	)
	d.print(line)
}
