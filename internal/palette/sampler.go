package palette

import "github.com/wethinkt/go-palettepro/internal/colorspace"

// Sample draws one palette from p. Every Kind is interpreted here.
func Sample(p Policy, src Source) []string {
	colors := make([]string, 0, Size)
	switch p.Kind {
	case KindCurated:
		if len(p.Combos) == 0 {
			return nil
		}
		combo := p.Combos[Pick(src, len(p.Combos))]
		colors = append(colors, combo[:]...)

	case KindAnchored:
		if len(p.Anchors) == 0 {
			return nil
		}
		tuple := p.Anchors[Pick(src, len(p.Anchors))]
		j := p.AnchorJitter
		for _, a := range tuple {
			h := a.H + float64(Between(src, -int(j.H), int(j.H)))
			s := colorspace.ClampFloat(a.S+float64(Between(src, -int(j.S), int(j.S))), 0, 100)
			l := colorspace.ClampFloat(a.L+float64(Between(src, -int(j.L), int(j.L))), 0, 100)
			colors = append(colors, colorspace.HSLToHex(h, s, l))
		}

	case KindTonal:
		hue := sampleHue(p, src)
		for i := range Size {
			sat := p.Saturation
			if i == 0 && p.LeadSaturation != (Range{}) {
				sat = p.LeadSaturation
			}
			l := Between(src, p.Lightness.Min, p.Lightness.Max)
			if i < len(p.LightnessSteps) {
				l = p.LightnessSteps[i]
			}
			s := Between(src, sat.Min, sat.Max)
			colors = append(colors, colorspace.HSLToHex(float64(hue), float64(s), float64(l)))
		}

	default:
		for range Size {
			h := sampleHue(p, src)
			s := Between(src, p.Saturation.Min, p.Saturation.Max)
			l := Between(src, p.Lightness.Min, p.Lightness.Max)
			colors = append(colors, colorspace.HSLToHex(float64(h), float64(s), float64(l)))
		}
	}
	return colors
}

func sampleHue(p Policy, src Source) int {
	if len(p.Hues) == 0 {
		return Between(src, FullHue.Min, FullHue.Max)
	}
	h := p.Hues[Pick(src, len(p.Hues))]
	if p.HueJitter > 0 {
		h += Between(src, -p.HueJitter, p.HueJitter)
	}
	return int(colorspace.NormalizeHue(float64(h)))
}
