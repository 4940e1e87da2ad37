package theme

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wethinkt/go-palettepro/internal/colorspace"
)

// plistNode is a generic element of an Apple property list.
type plistNode struct {
	XMLName  xml.Name
	Text     string      `xml:",chardata"`
	Children []plistNode `xml:",any"`
}

// ParseItermColors parses an iTerm2 .itermcolors plist and returns the
// named colors as hex strings.
func ParseItermColors(r io.Reader) (map[string]string, error) {
	var root plistNode
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("plist: %w", err)
	}
	top := root.child("dict")
	if top == nil {
		return nil, errors.New("plist: missing top-level dict")
	}

	colors := make(map[string]string)
	for name, value := range top.pairs() {
		if value.XMLName.Local != "dict" {
			continue
		}
		var rgb [3]float64
		for key, comp := range value.pairs() {
			if comp.XMLName.Local != "real" {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(comp.Text), 64)
			if err != nil {
				return nil, fmt.Errorf("plist: color %q: %w", name, err)
			}
			switch key {
			case "Red Component":
				rgb[0] = v
			case "Green Component":
				rgb[1] = v
			case "Blue Component":
				rgb[2] = v
			}
		}
		colors[name] = floatToHex(rgb)
	}

	if len(colors) == 0 {
		return nil, errors.New("plist: no colors found")
	}
	return colors, nil
}

func (n *plistNode) child(name string) *plistNode {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name {
			return &n.Children[i]
		}
	}
	return nil
}

// pairs yields the <key>/value pairs of a plist dict.
func (n *plistNode) pairs() func(yield func(string, plistNode) bool) {
	return func(yield func(string, plistNode) bool) {
		for i := 0; i+1 < len(n.Children); i++ {
			if n.Children[i].XMLName.Local != "key" {
				continue
			}
			key := strings.TrimSpace(n.Children[i].Text)
			i++
			if !yield(key, n.Children[i]) {
				return
			}
		}
	}
}

// floatToHex converts 0.0–1.0 RGB floats to a hex color string.
func floatToHex(rgb [3]float64) string {
	c := func(v float64) int {
		return int(math.Round(colorspace.ClampFloat(v, 0, 1) * 255))
	}
	return colorspace.RGBToHex(c(rgb[0]), c(rgb[1]), c(rgb[2]))
}

func blend(a, b string, t float64) string {
	return colorspace.FromColorful(colorspace.Colorful(a).BlendRgb(colorspace.Colorful(b), t))
}

// ImportIterm converts an iTerm2 color scheme into a theme:
// blue and bright blue become primary and secondary, magenta the accent,
// and the surface is the background lifted slightly towards the foreground.
func ImportIterm(r io.Reader, name string) (Theme, error) {
	colors, err := ParseItermColors(r)
	if err != nil {
		return Theme{}, err
	}

	get := func(key, fallback string) string {
		if c, ok := colors[key]; ok {
			return c
		}
		return fallback
	}
	ansi := func(n int, fallback string) string {
		return get(fmt.Sprintf("Ansi %d Color", n), fallback)
	}

	bg := get("Background Color", "#000000")
	fg := get("Foreground Color", "#FFFFFF")
	if colorspace.Colorful(bg).AlmostEqualRgb(colorspace.Colorful(fg)) {
		fg = colorspace.ContrastColor(bg)
	}

	return Theme{
		Name:        name,
		Description: fmt.Sprintf("Imported from %s iTerm2 color scheme", name),
		Primary:     ansi(4, "#3B82F6"),
		Secondary:   ansi(12, "#60A5FA"),
		Accent:      ansi(5, "#EC4899"),
		Background:  bg,
		Surface:     blend(bg, fg, 0.1),
		Text:        fg,
	}, nil
}
