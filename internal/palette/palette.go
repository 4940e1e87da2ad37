// Package palette generates four-color palettes from category policies.
//
// Each category is described by a Policy record; a single sampler interprets
// every policy, so adding a category is a data change. Randomness comes from a
// pluggable Source so tests can seed it.
package palette

import (
	"errors"
	"strings"
)

// Size is the number of colors in a generated palette.
const Size = 4

// ErrUnknownCategory is returned for category names with no policy.
var ErrUnknownCategory = errors.New("unknown category")

// Category names a palette generation policy.
type Category string

// Built-in categories.
const (
	All        Category = "All"
	Popular    Category = "Popular"
	Bright     Category = "Bright"
	Dark       Category = "Dark"
	Neon       Category = "Neon"
	Pastel     Category = "Pastel"
	Warm       Category = "Warm"
	Cool       Category = "Cool"
	Monochrome Category = "Monochrome"
	Sunset     Category = "Sunset"
	Ocean      Category = "Ocean"
)

// SearchResults is the category tag given to palettes derived from a search color.
const SearchResults Category = "Search Results"

// Categories lists the built-in categories in display order.
var Categories = []Category{All, Popular, Bright, Dark, Neon, Pastel, Warm, Cool, Monochrome, Sunset, Ocean}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// ParseCategory matches a built-in category name case-insensitively.
func ParseCategory(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}

// Palette is an ordered set of hex colors with optional display metadata.
type Palette struct {
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
	Colors   []string `json:"colors" yaml:"colors"`
}

// String returns the colors joined by ", ", the format used for copying.
func (p Palette) String() string {
	return strings.Join(p.Colors, ", ")
}

// Contains reports whether hex is one of the palette colors (case-insensitive).
func (p Palette) Contains(hex string) bool {
	for _, c := range p.Colors {
		if strings.EqualFold(c, hex) {
			return true
		}
	}
	return false
}
