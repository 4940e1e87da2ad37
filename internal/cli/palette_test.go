package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/wethinkt/go-palettepro/internal/analytics"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/theme"
)

func TestSwatch(t *testing.T) {
	s := Swatch("#FF0000", SwatchWidth)
	if !strings.Contains(s, "#FF0000") {
		t.Errorf("Swatch() = %q, missing hex label", s)
	}
	if w := ansi.StringWidth(s); w != SwatchWidth {
		t.Errorf("Swatch() width = %d, want %d", w, SwatchWidth)
	}
}

func TestSwatchRowWidth(t *testing.T) {
	row := SwatchRow([]string{"#FF0000", "#00FF00", "#0000FF"}, 9)
	if w := ansi.StringWidth(row); w != 27 {
		t.Errorf("SwatchRow() width = %d, want 27", w)
	}
}

func TestPaletteDisplay_PlainPalette(t *testing.T) {
	var buf bytes.Buffer
	d := NewPaletteDisplay(&buf, theme.DefaultTheme())
	d.Plain = true

	d.Palette(palette.Palette{Name: "Warm Palette 1", Category: "Warm", Colors: []string{"#FF0000", "#FFA500"}})

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain output contains escape sequences: %q", out)
	}
	want := "Warm Palette 1\n#FF0000, #FFA500\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestPaletteDisplay_CategoryTagForDerivedNames(t *testing.T) {
	var buf bytes.Buffer
	d := NewPaletteDisplay(&buf, theme.DefaultTheme())
	d.Plain = true

	d.Palette(palette.Palette{Name: "blue Related 1", Category: "Search Results", Colors: []string{"#0000FF"}})
	if !strings.Contains(buf.String(), "[Search Results]") {
		t.Errorf("output = %q, want category tag", buf.String())
	}
}

func TestPaletteDisplay_GalleryEmpty(t *testing.T) {
	var buf bytes.Buffer
	d := NewPaletteDisplay(&buf, theme.DefaultTheme())
	d.Plain = true

	d.Gallery("Pastel palettes with \"zzz\"", nil, `No pastel palettes found for "zzz"`, "Try a different color name")
	out := buf.String()
	if !strings.Contains(out, `No pastel palettes found for "zzz"`) || !strings.Contains(out, "Try a different color name") {
		t.Errorf("output = %q", out)
	}
}

func TestPaletteDisplay_GalleryCount(t *testing.T) {
	var buf bytes.Buffer
	d := NewPaletteDisplay(&buf, theme.DefaultTheme())
	d.Plain = true

	ps := []palette.Palette{
		{Name: "a", Colors: []string{"#000000"}},
		{Name: "b", Colors: []string{"#FFFFFF"}},
	}
	d.Gallery("All Gradients", ps, "", "")
	if !strings.Contains(buf.String(), "2 palettes") {
		t.Errorf("output = %q, want count line", buf.String())
	}
}

func TestPaletteDisplay_DetailPlain(t *testing.T) {
	var buf bytes.Buffer
	d := NewPaletteDisplay(&buf, theme.DefaultTheme())
	d.Plain = true

	d.Detail([]string{"#3366CC"})
	out := buf.String()
	for _, want := range []string{"Color Shades", "#3366CC: ", "Related Palettes", "Complementary 1", "Analogous 1", "Monochromatic 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail output missing %q:\n%s", want, out)
		}
	}
}

func TestPaletteDisplay_Stats(t *testing.T) {
	var buf bytes.Buffer
	d := NewPaletteDisplay(&buf, theme.DefaultTheme())
	d.Plain = true

	d.Stats([]analytics.Report{{Category: "Neon", Colors: 40, Distinct: 38, Spread: 12.5}})
	out := buf.String()
	if !strings.Contains(out, "Neon") || !strings.Contains(out, "38/40") || !strings.Contains(out, "12.5") {
		t.Errorf("stats output = %q", out)
	}
}
