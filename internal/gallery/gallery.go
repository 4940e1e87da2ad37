// Package gallery builds and filters the batch of palettes shown for a
// category and search term.
package gallery

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wethinkt/go-palettepro/internal/harmony"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/search"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

// Batch sizes for each gallery mode.
const (
	DefaultCategorySize = 24
	PerCategory         = 3
	PerPopular          = 4
	SearchRelatedAll    = 12
	SearchPerCategory   = 2
	SearchWithCategory  = 16
	SearchRelatedExtra  = 8
)

// searchCategories are sampled alongside related palettes for a search in All.
var searchCategories = []palette.Category{
	palette.Bright, palette.Dark, palette.Neon, palette.Pastel,
	palette.Warm, palette.Cool, palette.Popular,
}

// Request selects what a gallery shows.
type Request struct {
	Category palette.Category `json:"category"`
	Search   string           `json:"search,omitempty"`
}

// Builder generates galleries.
type Builder struct {
	gen     *palette.Generator
	matcher *search.Matcher

	// Jitter is applied to search-related colors.
	Jitter harmony.Jitter
	// CategorySize is the batch size for a single category with no search.
	CategorySize int
	// NewID returns palette IDs.
	NewID func() string
}

// NewBuilder returns a Builder drawing from gen. A nil matcher uses the
// default search thresholds.
func NewBuilder(gen *palette.Generator, m *search.Matcher) *Builder {
	if gen == nil {
		gen = palette.NewGenerator(nil)
	}
	if m == nil {
		m = search.DefaultMatcher
	}
	return &Builder{
		gen:          gen,
		matcher:      m,
		Jitter:       harmony.DefaultJitter,
		CategorySize: DefaultCategorySize,
		NewID:        uuid.NewString,
	}
}

// Generator returns the palette generator b draws from.
func (b *Builder) Generator() *palette.Generator { return b.gen }

// Matcher returns the search matcher b filters with.
func (b *Builder) Matcher() *search.Matcher { return b.matcher }

// Build generates a fresh, unfiltered batch for req.
//
// A search that names a color, even partially ("gre" for green), seeds
// related palettes. A search with no color hint, or the All category, samples every built-in category. Otherwise the
// batch holds CategorySize palettes of the requested category.
func (b *Builder) Build(req Request) ([]palette.Palette, error) {
	defer tuilog.Log.Timed("build gallery")()

	if req.Category == "" {
		req.Category = palette.All
	}
	term := strings.TrimSpace(req.Search)
	if req.Category != palette.All {
		if _, ok := b.gen.Registry().Lookup(req.Category); !ok {
			return nil, fmt.Errorf("%w: %q", palette.ErrUnknownCategory, req.Category)
		}
	}

	var (
		out []palette.Palette
		err error
	)
	color, hasColor := search.Suggest(term)
	switch {
	case term != "" && hasColor && req.Category == palette.All:
		out, err = b.searchAll(term, color)
	case term != "" && hasColor:
		out, err = b.searchCategory(req.Category, term, color)
	case req.Category == palette.All || term != "":
		out, err = b.everyCategory()
	default:
		out, err = b.category(req.Category)
	}
	if err != nil {
		return nil, err
	}

	tuilog.Log.Debug("Built gallery", "category", req.Category, "search", term, "count", len(out))
	return out, nil
}

// Gallery is Build followed by Filter.
func (b *Builder) Gallery(req Request) ([]palette.Palette, error) {
	ps, err := b.Build(req)
	if err != nil {
		return nil, err
	}
	return b.Filter(ps, req.Search, req.Category), nil
}

func (b *Builder) category(c palette.Category) ([]palette.Palette, error) {
	n := b.CategorySize
	if n <= 0 {
		n = DefaultCategorySize
	}
	out := make([]palette.Palette, 0, n)
	for i := range n {
		p, err := b.gen.Generate(c)
		if err != nil {
			return nil, err
		}
		out = append(out, b.named(p, fmt.Sprintf("%s Palette %d", c, i+1), c))
	}
	return out, nil
}

func (b *Builder) everyCategory() ([]palette.Palette, error) {
	var out []palette.Palette
	for _, pol := range palette.BuiltinPolicies() {
		n := PerCategory
		if pol.Category == palette.Popular {
			n = PerPopular
		}
		for i := range n {
			p, err := b.gen.Generate(pol.Category)
			if err != nil {
				return nil, err
			}
			out = append(out, b.named(p, fmt.Sprintf("%s Palette %d", pol.Category, i+1), pol.Category))
		}
	}
	b.shuffle(out)
	return out, nil
}

func (b *Builder) searchAll(term, color string) ([]palette.Palette, error) {
	out := make([]palette.Palette, 0, SearchRelatedAll+SearchPerCategory*len(searchCategories))
	out = append(out, b.related(term, color, SearchRelatedAll)...)
	for _, c := range searchCategories {
		for range SearchPerCategory {
			p, err := b.gen.Generate(c)
			if err != nil {
				return nil, err
			}
			out = append(out, b.named(p, fmt.Sprintf("%s Palette", c), c))
		}
	}
	b.shuffle(out)
	return out, nil
}

func (b *Builder) searchCategory(c palette.Category, term, color string) ([]palette.Palette, error) {
	src := b.gen.Source()
	out := make([]palette.Palette, 0, SearchWithCategory+SearchRelatedExtra)
	for i := range SearchWithCategory {
		p, err := b.gen.Generate(c)
		if err != nil {
			return nil, err
		}
		swap := color
		if src.IntN(2) == 0 {
			swap = harmony.RelatedWith(src, b.Jitter, color, 1)[0]
		}
		p.Colors[palette.Pick(src, len(p.Colors))] = swap
		out = append(out, b.named(p, fmt.Sprintf("%s with %s %d", c, term, i+1), c))
	}
	out = append(out, b.related(term, color, SearchRelatedExtra)...)
	b.shuffle(out)
	return out, nil
}

func (b *Builder) related(term, color string, n int) []palette.Palette {
	out := make([]palette.Palette, 0, n)
	for i := range n {
		p := palette.Palette{Colors: harmony.RelatedWith(b.gen.Source(), b.Jitter, color, palette.Size)}
		out = append(out, b.named(p, fmt.Sprintf("%s Related %d", term, i+1), palette.SearchResults))
	}
	return out
}

func (b *Builder) named(p palette.Palette, name string, c palette.Category) palette.Palette {
	p.ID = b.NewID()
	p.Name = name
	p.Category = string(c)
	return p
}

func (b *Builder) shuffle(ps []palette.Palette) {
	palette.Shuffle(b.gen.Source(), len(ps), func(i, j int) { ps[i], ps[j] = ps[j], ps[i] })
}

// Filter keeps the palettes that match search by color, name or category.
// For a category other than All it further keeps only palettes of that
// category, search results, or palettes whose name mentions the category.
// An empty search returns ps unchanged.
func (b *Builder) Filter(ps []palette.Palette, term string, c palette.Category) []palette.Palette {
	term = strings.TrimSpace(term)
	if term == "" {
		return ps
	}
	lower := strings.ToLower(term)
	catLower := strings.ToLower(string(c))

	var out []palette.Palette
	for _, p := range ps {
		if !b.matcher.ContainsSearch(p.Colors, term) &&
			!strings.Contains(strings.ToLower(p.Name), lower) &&
			!strings.Contains(strings.ToLower(p.Category), lower) {
			continue
		}
		if c != "" && c != palette.All &&
			p.Category != string(c) &&
			p.Category != string(palette.SearchResults) &&
			!strings.Contains(strings.ToLower(p.Name), catLower) {
			continue
		}
		out = append(out, p)
	}
	return out
}
