// Package colorspace converts between #RRGGBB hex strings and HSL triples.
//
// Hex inputs are expected to be validated with IsValidHex before conversion.
// Malformed input never panics: unparsable channels read as zero.
package colorspace

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned by callers that validate hex input.
var ErrInvalidColor = errors.New("invalid color")

// Parse validates and normalizes a hex color. The leading '#' is optional.
func Parse(s string) (string, error) {
	s = Normalize(s)
	if len(s) == 6 {
		s = "#" + s
	}
	if !IsValidHex(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return s, nil
}

// HSL is a color in hue/saturation/lightness form.
// H is in degrees [0,360), S and L are percentages [0,100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// IsValidHex returns true if s is '#' followed by exactly six hex digits.
func IsValidHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < 7; i++ {
		if !isHexChar(s[i]) {
			return false
		}
	}
	return true
}

// Normalize returns the canonical uppercase form of a hex color.
func Normalize(hex string) string {
	return strings.ToUpper(strings.TrimSpace(hex))
}

// HexToRGB converts a hex color string to RGB channel values.
func HexToRGB(hex string) (int, int, int) {
	return channel(hex, 1), channel(hex, 3), channel(hex, 5)
}

// RGBToHex converts RGB values to an uppercase hex color string.
// Channels are clamped to [0,255].
func RGBToHex(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", Clamp(r, 0, 255), Clamp(g, 0, 255), Clamp(b, 0, 255))
}

// HexToHSL converts a hex color to HSL.
func HexToHSL(hex string) HSL {
	ri, gi, bi := HexToRGB(hex)
	r := float64(ri) / 255
	g := float64(gi) / 255
	b := float64(bi) / 255

	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))
	l := (hi + lo) / 2

	var h, s float64
	if hi != lo {
		d := hi - lo
		if l > 0.5 {
			s = d / (2 - hi - lo)
		} else {
			s = d / (hi + lo)
		}

		switch hi {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return HSL{H: h * 360, S: s * 100, L: l * 100}
}

// HSLToHex converts HSL components to an uppercase hex color.
// Hue wraps into [0,360); each output channel is clamped to [0,255].
func HSLToHex(h, s, l float64) string {
	h = NormalizeHue(h)
	l /= 100
	a := s * math.Min(l, 1-l) / 100

	f := func(n float64) int {
		k := math.Mod(n+h/30, 12)
		c := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return Clamp(int(math.Floor(255*c+0.5)), 0, 255)
	}

	return RGBToHex(f(0), f(8), f(4))
}

// ToHex converts an HSL value to an uppercase hex color.
func (c HSL) ToHex() string {
	return HSLToHex(c.H, c.S, c.L)
}

// NormalizeHue wraps a hue in degrees into [0,360).
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// ContrastColor returns black or white depending on the luminance of the given hex color.
func ContrastColor(hex string) string {
	r, g, b := HexToRGB(hex)
	luminance := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
	if luminance > 0.5 {
		return "#000000"
	}
	return "#FFFFFF"
}

// Colorful converts a hex color to a go-colorful Color.
func Colorful(hex string) colorful.Color {
	r, g, b := HexToRGB(hex)
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// FromColorful converts a go-colorful Color back to an uppercase hex string.
func FromColorful(c colorful.Color) string {
	r, g, b := c.Clamped().RGB255()
	return RGBToHex(int(r), int(g), int(b))
}

// Clamp limits val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampFloat limits val to [lo, hi].
func ClampFloat(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

func channel(hex string, at int) int {
	if len(hex) < at+2 {
		return 0
	}
	v, err := strconv.ParseUint(hex[at:at+2], 16, 8)
	if err != nil {
		return 0
	}
	return int(v)
}

func isHexChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
