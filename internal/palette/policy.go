package palette

import "github.com/wethinkt/go-palettepro/internal/colorspace"

// Kind selects how a Policy is sampled.
type Kind int

const (
	// KindSampled draws hue, saturation and lightness independently per color.
	KindSampled Kind = iota
	// KindTonal shares one hue across the palette and steps lightness.
	KindTonal
	// KindAnchored picks one literal HSL tuple and jitters each channel.
	KindAnchored
	// KindCurated picks one literal hex tuple verbatim.
	KindCurated
)

func (k Kind) String() string {
	switch k {
	case KindSampled:
		return "sampled"
	case KindTonal:
		return "tonal"
	case KindAnchored:
		return "anchored"
	case KindCurated:
		return "curated"
	}
	return "unknown"
}

// Range is an inclusive integer interval.
type Range struct {
	Min int `json:"min" toml:"min"`
	Max int `json:"max" toml:"max"`
}

// Contains reports whether v lies in the range widened by tol on each side.
func (r Range) Contains(v, tol float64) bool {
	return v >= float64(r.Min)-tol && v <= float64(r.Max)+tol
}

// FullHue is the hue interval used when a policy has no hue anchors.
var FullHue = Range{Min: 0, Max: 359}

// Policy describes how to sample one category.
type Policy struct {
	Category Category
	Kind     Kind

	// Hues are anchor hues; a color picks one and adds up to ±HueJitter.
	// When empty the hue is uniform over FullHue.
	Hues      []int
	HueJitter int

	Saturation Range
	Lightness  Range

	// KindTonal: the first swatch draws from LeadSaturation, and
	// swatch i uses LightnessSteps[i].
	LeadSaturation Range
	LightnessSteps []int

	// KindAnchored: one tuple is chosen, then each channel is jittered
	// by up to ±AnchorJitter.H/S/L.
	Anchors      [][Size]colorspace.HSL
	AnchorJitter colorspace.HSL

	// KindCurated: one tuple is returned as is.
	Combos [][Size]string
}

// builtinPolicies holds one record per built-in category except All.
var builtinPolicies = []Policy{
	{
		Category: Popular,
		Kind:     KindCurated,
		Combos: [][Size]string{
			{"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4"},
			{"#FFEAA7", "#DDA0DD", "#98D8C8", "#FDCB6F"},
			{"#FF7675", "#74B9FF", "#00B894", "#FDCB6E"},
			{"#A29BFE", "#FD79A8", "#FDCB6E", "#6C5CE7"},
			{"#E17055", "#00B894", "#0984E3", "#6C5CE7"},
			{"#FD79A8", "#FDCB6E", "#00CEC9", "#74B9FF"},
			{"#E84393", "#00B894", "#0984E3", "#FDCB6E"},
			{"#FF7675", "#A29BFE", "#55A3FF", "#26DE81"},
		},
	},
	{
		Category:   Bright,
		Kind:       KindSampled,
		Saturation: Range{85, 100},
		Lightness:  Range{55, 75},
	},
	{
		Category:   Dark,
		Kind:       KindSampled,
		Saturation: Range{40, 90},
		Lightness:  Range{15, 35},
	},
	{
		Category:   Neon,
		Kind:       KindSampled,
		Hues:       []int{300, 120, 180, 60, 0, 240, 330, 270, 90, 210},
		Saturation: Range{95, 100},
		Lightness:  Range{65, 85},
	},
	{
		Category:   Pastel,
		Kind:       KindSampled,
		Saturation: Range{35, 65},
		Lightness:  Range{70, 85},
	},
	{
		Category:   Warm,
		Kind:       KindSampled,
		Hues:       []int{0, 15, 30, 45, 60, 350, 25, 40},
		HueJitter:  8,
		Saturation: Range{65, 95},
		Lightness:  Range{45, 70},
	},
	{
		Category:   Cool,
		Kind:       KindSampled,
		Hues:       []int{180, 200, 220, 240, 260, 280, 190, 210, 230, 250},
		HueJitter:  12,
		Saturation: Range{55, 85},
		Lightness:  Range{45, 70},
	},
	{
		Category:       Monochrome,
		Kind:           KindTonal,
		LeadSaturation: Range{0, 15},
		Saturation:     Range{15, 40},
		Lightness:      Range{25, 79},
		LightnessSteps: []int{25, 43, 61, 79},
	},
	{
		Category: Sunset,
		Kind:     KindAnchored,
		Anchors: [][Size]colorspace.HSL{
			{{H: 15, S: 85, L: 65}, {H: 0, S: 80, L: 60}, {H: 330, S: 75, L: 70}, {H: 280, S: 65, L: 55}},
			{{H: 25, S: 90, L: 70}, {H: 10, S: 85, L: 65}, {H: 340, S: 80, L: 75}, {H: 290, S: 70, L: 60}},
			{{H: 35, S: 88, L: 68}, {H: 20, S: 83, L: 63}, {H: 350, S: 78, L: 73}, {H: 300, S: 68, L: 58}},
		},
		AnchorJitter: colorspace.HSL{H: 8, S: 5, L: 5},
	},
	{
		Category:   Ocean,
		Kind:       KindSampled,
		Hues:       []int{180, 190, 200, 210, 220, 170, 185, 195, 205, 215},
		HueJitter:  8,
		Saturation: Range{70, 95},
		Lightness:  Range{40, 70},
	},
}

// BuiltinPolicy returns the policy for a built-in category.
func BuiltinPolicy(c Category) (Policy, bool) {
	for _, p := range builtinPolicies {
		if p.Category == c {
			return p, true
		}
	}
	return Policy{}, false
}

// BuiltinPolicies returns a copy of the built-in policy table.
func BuiltinPolicies() []Policy {
	out := make([]Policy, len(builtinPolicies))
	copy(out, builtinPolicies)
	return out
}
