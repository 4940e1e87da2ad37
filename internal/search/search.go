// Package search resolves free-text color searches and decides whether a
// palette matches a search term.
package search

import (
	"math"
	"strings"

	"github.com/wethinkt/go-palettepro/internal/colorspace"
)

// Thresholds are the distance cut-offs for a match. Hex searches use a
// tighter threshold than name searches.
type Thresholds struct {
	Hex  float64 `json:"hex_threshold"`
	Name float64 `json:"name_threshold"`
}

// DefaultThresholds are the stock cut-offs.
var DefaultThresholds = Thresholds{Hex: 60, Name: 80}

// Matcher tests palettes against search terms.
type Matcher struct {
	Thresholds Thresholds
}

// NewMatcher returns a Matcher with t, or DefaultThresholds when t is zero.
func NewMatcher(t Thresholds) *Matcher {
	if t == (Thresholds{}) {
		t = DefaultThresholds
	}
	return &Matcher{Thresholds: t}
}

// DefaultMatcher uses DefaultThresholds.
var DefaultMatcher = NewMatcher(DefaultThresholds)

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// ContainsSearch reports whether any of colors matches term.
//
// A hex term matches colors within Thresholds.Hex of it. A table name
// matches when any of its reference colors is within Thresholds.Name of a
// palette color. Any other term is compared against every name that
// contains it, is contained by it, or shares its first three letters.
func (m *Matcher) ContainsSearch(colors []string, term string) bool {
	term = normalizeTerm(term)
	if term == "" || len(colors) == 0 {
		return false
	}

	if colorspace.IsValidHex(term) {
		return anyWithin(colors, []string{term}, m.Thresholds.Hex)
	}

	if e, ok := Lookup(term); ok {
		return anyWithin(colors, e.References, m.Thresholds.Name)
	}

	for _, e := range PartialMatches(term) {
		if anyWithin(colors, e.References, m.Thresholds.Name) {
			return true
		}
	}
	return false
}

// ContainsSearch is DefaultMatcher.ContainsSearch.
func ContainsSearch(colors []string, term string) bool {
	return DefaultMatcher.ContainsSearch(colors, term)
}

// PartialMatches returns the table entries loosely related to term, in
// table order.
func PartialMatches(term string) []NameEntry {
	term = normalizeTerm(term)
	if term == "" {
		return nil
	}
	var out []NameEntry
	for _, e := range nameTable {
		if strings.Contains(e.Name, term) || strings.Contains(term, e.Name) ||
			(len(term) > 2 && strings.HasPrefix(e.Name, term[:3])) {
			out = append(out, e)
		}
	}
	return out
}

func anyWithin(colors, refs []string, threshold float64) bool {
	for _, ref := range refs {
		for _, c := range colors {
			if colorspace.HexDistance(ref, c) < threshold {
				return true
			}
		}
	}
	return false
}

// GetSearchColor returns the color a term asks for: the term itself when it
// is a hex color, or the representative of an exact table name.
func GetSearchColor(term string) (string, bool) {
	term = normalizeTerm(term)
	if colorspace.IsValidHex(term) {
		return colorspace.Normalize(term), true
	}
	if e, ok := Lookup(term); ok {
		return e.Representative, true
	}
	return "", false
}

// Suggest is GetSearchColor with a fallback to the first table name that
// contains term or is contained by it.
func Suggest(term string) (string, bool) {
	if c, ok := GetSearchColor(term); ok {
		return c, true
	}
	term = normalizeTerm(term)
	if term == "" {
		return "", false
	}
	for _, e := range nameTable {
		if strings.Contains(e.Name, term) || strings.Contains(term, e.Name) {
			return e.Representative, true
		}
	}
	return "", false
}

// Resolution is a resolved search term.
type Resolution struct {
	Term           string `json:"term"`
	Representative string `json:"representative,omitempty"`
	Found          bool   `json:"found"`

	matcher *Matcher
}

// Resolve interprets term once for repeated matching.
func Resolve(term string) Resolution {
	return DefaultMatcher.Resolve(term)
}

// Resolve interprets term once for repeated matching against m's thresholds.
func (m *Matcher) Resolve(term string) Resolution {
	rep, ok := GetSearchColor(term)
	return Resolution{Term: normalizeTerm(term), Representative: rep, Found: ok, matcher: m}
}

// Matches reports whether colors match the resolved term.
func (r Resolution) Matches(colors []string) bool {
	m := r.matcher
	if m == nil {
		m = DefaultMatcher
	}
	return m.ContainsSearch(colors, r.Term)
}

// Nearest returns the table name perceptually closest to hex, measured in
// CIE Lab. Names sharing a representative resolve to the first in table order.
func Nearest(hex string) (NameEntry, float64) {
	target := colorspace.Colorful(hex)
	best, bestDist := nameTable[0], math.Inf(1)
	for _, e := range nameTable {
		if d := target.DistanceLab(colorspace.Colorful(e.Representative)); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, bestDist
}
