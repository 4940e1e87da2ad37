package palette

import "fmt"

// Generator produces palettes for categories held in a Registry.
// It is safe for concurrent use when its Source is.
type Generator struct {
	src Source
	reg *Registry
}

// NewGenerator returns a Generator over the built-in categories.
// A nil src uses the process-wide random source.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = DefaultSource()
	}
	return &Generator{src: src, reg: NewRegistry()}
}

// WithRegistry makes g sample from reg, which may carry user categories.
func (g *Generator) WithRegistry(reg *Registry) *Generator {
	if reg != nil {
		g.reg = reg
	}
	return g
}

// Registry returns the category registry g samples from.
func (g *Generator) Registry() *Registry { return g.reg }

// Source returns g's random source.
func (g *Generator) Source() Source { return g.src }

// Generate returns a four-color palette for category c. For All it samples
// one of the other built-in categories uniformly and reports that category
// on the returned palette.
func (g *Generator) Generate(c Category) (Palette, error) {
	if c == All {
		c = builtinPolicies[Pick(g.src, len(builtinPolicies))].Category
	}
	p, ok := g.reg.Lookup(c)
	if !ok {
		return Palette{}, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return Palette{Category: string(c), Colors: Sample(p, g.src)}, nil
}
