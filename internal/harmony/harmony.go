// Package harmony derives related colors, shade ramps and harmonic palettes
// from a base color.
package harmony

import (
	"fmt"
	"math"
	"slices"

	"github.com/wethinkt/go-palettepro/internal/colorspace"
	"github.com/wethinkt/go-palettepro/internal/palette"
)

// MaxRelatedPalettes caps the harmonic palettes Detail returns.
const MaxRelatedPalettes = 6

// Jitter bounds the random offsets Related applies.
type Jitter struct {
	ComplementSat   int `json:"complement_sat"`
	ComplementLight int `json:"complement_light"`
	AnalogSat       int `json:"analog_sat"`
	AnalogLight     int `json:"analog_light"`
	AnalogMinShift  int `json:"analog_min_shift"`
	AnalogMaxShift  int `json:"analog_max_shift"`
	MinSat          int `json:"min_sat"`
	MinLight        int `json:"min_light"`
	MaxLight        int `json:"max_light"`
}

// DefaultJitter is the jitter used by Related.
var DefaultJitter = Jitter{
	ComplementSat:   20,
	ComplementLight: 15,
	AnalogSat:       15,
	AnalogLight:     10,
	AnalogMinShift:  30,
	AnalogMaxShift:  60,
	MinSat:          30,
	MinLight:        20,
	MaxLight:        80,
}

// Related returns count colors derived from base using the process-wide
// random source and DefaultJitter.
func Related(base string, count int) []string {
	return RelatedWith(palette.DefaultSource(), DefaultJitter, base, count)
}

// RelatedWith returns count colors derived from base. Element 0 is base
// itself, element 1 its jittered complement, and later elements alternate
// between hues shifted forward and backward by an analogous offset.
func RelatedWith(src palette.Source, j Jitter, base string, count int) []string {
	if count <= 0 {
		return nil
	}
	hsl := colorspace.HexToHSL(base)
	colors := make([]string, 0, count)
	colors = append(colors, base)

	for i := 1; i < count; i++ {
		var h, s, l float64
		switch {
		case i == 1:
			h = hsl.H + 180
			s = hsl.S + float64(palette.Between(src, -j.ComplementSat, j.ComplementSat))
			l = hsl.L + float64(palette.Between(src, -j.ComplementLight, j.ComplementLight))
		case i%2 == 0:
			h = hsl.H + float64(palette.Between(src, j.AnalogMinShift, j.AnalogMaxShift))
			s = hsl.S + float64(palette.Between(src, -j.AnalogSat, j.AnalogSat))
			l = hsl.L + float64(palette.Between(src, -j.AnalogLight, j.AnalogLight))
		default:
			h = hsl.H - float64(palette.Between(src, j.AnalogMinShift, j.AnalogMaxShift)) + 360
			s = hsl.S + float64(palette.Between(src, -j.AnalogSat, j.AnalogSat))
			l = hsl.L + float64(palette.Between(src, -j.AnalogLight, j.AnalogLight))
		}
		s = colorspace.ClampFloat(s, float64(j.MinSat), 100)
		l = colorspace.ClampFloat(l, float64(j.MinLight), float64(j.MaxLight))
		colors = append(colors, colorspace.HSLToHex(h, s, l))
	}
	return colors
}

// ShadeSteps are the lightness levels Shades draws from.
var ShadeSteps = []int{10, 20, 30, 40, 50, 60, 70, 80, 90}

// ExcludedStep returns the shade step nearest base's own lightness.
func ExcludedStep(base string) int {
	l := colorspace.HexToHSL(base).L
	step := int(math.Floor(l/10+0.5)) * 10
	return colorspace.Clamp(step, ShadeSteps[0], ShadeSteps[len(ShadeSteps)-1])
}

// Shades returns base's hue and saturation at every step in ShadeSteps
// except the one nearest its own lightness, ordered from dark to light.
func Shades(base string) []string {
	hsl := colorspace.HexToHSL(base)
	skip := ExcludedStep(base)

	shades := make([]string, 0, len(ShadeSteps)-1)
	for _, step := range ShadeSteps {
		if step == skip {
			continue
		}
		shades = append(shades, colorspace.HSLToHex(hsl.H, hsl.S, float64(step)))
	}
	slices.SortStableFunc(shades, func(a, b string) int {
		la, lb := colorspace.HexToHSL(a).L, colorspace.HexToHSL(b).L
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		return 0
	})
	return shades
}

// Ramp pairs a color with its shades.
type Ramp struct {
	Base   string   `json:"base"`
	Shades []string `json:"shades"`
}

// Ramps returns the shade ramp of every color.
func Ramps(colors []string) []Ramp {
	out := make([]Ramp, 0, len(colors))
	for _, c := range colors {
		out = append(out, Ramp{Base: c, Shades: Shades(c)})
	}
	return out
}

// HarmonicSet returns the complementary, analogous and monochromatic
// palettes of base. index numbers the palette names.
func HarmonicSet(base string, index int) [3]palette.Palette {
	hsl := colorspace.HexToHSL(base)
	h, s, l := hsl.H, hsl.S, hsl.L
	side := func(offset float64) string {
		return colorspace.HSLToHex(h+offset, math.Max(30, s-20), math.Min(80, l+10))
	}
	tone := func(light float64) string {
		return colorspace.HSLToHex(h, s, light)
	}
	hue := func(offset float64) string {
		return colorspace.HSLToHex(h+offset, s, l)
	}

	return [3]palette.Palette{
		{
			Name:   fmt.Sprintf("Complementary %d", index),
			Colors: []string{base, hue(180), side(90), side(270)},
		},
		{
			Name:   fmt.Sprintf("Analogous %d", index),
			Colors: []string{base, hue(30), hue(60), hue(330)},
		},
		{
			Name:   fmt.Sprintf("Monochromatic %d", index),
			Colors: []string{tone(math.Max(20, l-30)), tone(math.Max(10, l-15)), base, tone(math.Min(90, l+15))},
		},
	}
}

// Detail returns the harmonic sets of colors in order, numbered from 1,
// truncated to MaxRelatedPalettes.
func Detail(colors []string) []palette.Palette {
	out := make([]palette.Palette, 0, MaxRelatedPalettes)
	for i, c := range colors {
		set := HarmonicSet(c, i+1)
		out = append(out, set[:]...)
		if len(out) >= MaxRelatedPalettes {
			return out[:MaxRelatedPalettes]
		}
	}
	return out
}
