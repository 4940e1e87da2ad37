package palette

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/wethinkt/go-palettepro/internal/colorspace"
)

// Registry maps category names to policies: the built-ins plus any user
// categories loaded from a TOML file. User categories can be replaced at
// runtime, so access is guarded.
type Registry struct {
	mu   sync.RWMutex
	user []Policy
}

// NewRegistry returns a registry holding only the built-in categories.
func NewRegistry() *Registry {
	return &Registry{}
}

// Lookup returns the policy for c. Built-ins take precedence.
func (r *Registry) Lookup(c Category) (Policy, bool) {
	if p, ok := BuiltinPolicy(c); ok {
		return p, true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.user {
		if p.Category == c {
			return p, true
		}
	}
	return Policy{}, false
}

// Resolve matches name against every registered category, ignoring case.
func (r *Registry) Resolve(name string) (Category, bool) {
	if c, ok := ParseCategory(name); ok {
		return c, true
	}
	name = strings.TrimSpace(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.user {
		if strings.EqualFold(string(p.Category), name) {
			return p.Category, true
		}
	}
	return "", false
}

// Categories returns the built-in categories in display order followed by
// user categories in file order.
func (r *Registry) Categories() []Category {
	out := append([]Category(nil), Categories...)
	return append(out, r.UserCategories()...)
}

// UserCategories returns only the user-defined categories.
func (r *Registry) UserCategories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, 0, len(r.user))
	for _, p := range r.user {
		out = append(out, p.Category)
	}
	return out
}

// SetUser replaces the user categories. Names that collide with a built-in
// or with each other are rejected and leave the registry unchanged.
func (r *Registry) SetUser(policies []Policy) error {
	seen := make(map[string]bool, len(policies))
	for _, p := range policies {
		key := strings.ToLower(string(p.Category))
		if _, ok := ParseCategory(key); ok || strings.EqualFold(key, string(SearchResults)) {
			return fmt.Errorf("category %q is reserved", p.Category)
		}
		if seen[key] {
			return fmt.Errorf("duplicate category %q", p.Category)
		}
		seen[key] = true
	}
	r.mu.Lock()
	r.user = append([]Policy(nil), policies...)
	r.mu.Unlock()
	return nil
}

// LoadFile reads user categories from a TOML file into r. A missing file
// clears the user categories and is not an error.
func (r *Registry) LoadFile(path string) (int, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, r.SetUser(nil)
	}
	if err != nil {
		return 0, err
	}
	defer f.Close()

	policies, err := LoadPolicies(f)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	if err := r.SetUser(policies); err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	return len(policies), nil
}

type policyFile struct {
	Categories []policyEntry `toml:"category"`
}

type policyEntry struct {
	Name       string     `toml:"name"`
	Hues       []int      `toml:"hues"`
	HueJitter  int        `toml:"hue_jitter"`
	Saturation []int      `toml:"saturation"`
	Lightness  []int      `toml:"lightness"`
	Combos     [][]string `toml:"combos"`
}

// LoadPolicies parses user categories from TOML:
//
//	[[category]]
//	name = "Forest"
//	hues = [90, 120, 150]
//	hue_jitter = 10
//	saturation = [30, 70]
//	lightness = [20, 50]
//
// A table with combos = [["#..", "#..", "#..", "#.."], ...] becomes a curated
// category instead.
func LoadPolicies(rd io.Reader) ([]Policy, error) {
	var file policyFile
	if _, err := toml.NewDecoder(rd).Decode(&file); err != nil {
		return nil, err
	}

	policies := make([]Policy, 0, len(file.Categories))
	for i, e := range file.Categories {
		p, err := e.policy()
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", i+1, err)
		}
		policies = append(policies, p)
	}
	return policies, nil
}

func (e policyEntry) policy() (Policy, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return Policy{}, errors.New("name is required")
	}
	p := Policy{Category: Category(name)}

	if len(e.Combos) > 0 {
		p.Kind = KindCurated
		for _, combo := range e.Combos {
			if len(combo) != Size {
				return Policy{}, fmt.Errorf("%s: combo needs %d colors, got %d", name, Size, len(combo))
			}
			var tuple [Size]string
			for i, c := range combo {
				if !colorspace.IsValidHex(c) {
					return Policy{}, fmt.Errorf("%s: %w: %q", name, colorspace.ErrInvalidColor, c)
				}
				tuple[i] = colorspace.Normalize(c)
			}
			p.Combos = append(p.Combos, tuple)
		}
		return p, nil
	}

	p.Kind = KindSampled
	for _, h := range e.Hues {
		if h < 0 || h >= 360 {
			return Policy{}, fmt.Errorf("%s: hue %d out of range [0,360)", name, h)
		}
	}
	if e.HueJitter < 0 || e.HueJitter > 180 {
		return Policy{}, fmt.Errorf("%s: hue_jitter %d out of range [0,180]", name, e.HueJitter)
	}
	p.Hues = append([]int(nil), e.Hues...)
	p.HueJitter = e.HueJitter

	var err error
	if p.Saturation, err = percentRange(name, "saturation", e.Saturation); err != nil {
		return Policy{}, err
	}
	if p.Lightness, err = percentRange(name, "lightness", e.Lightness); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func percentRange(name, field string, v []int) (Range, error) {
	if len(v) != 2 {
		return Range{}, fmt.Errorf("%s: %s must be [min, max]", name, field)
	}
	r := Range{Min: v[0], Max: v[1]}
	if r.Min < 0 || r.Max > 100 || r.Min > r.Max {
		return Range{}, fmt.Errorf("%s: %s [%d, %d] must lie within [0, 100]", name, field, r.Min, r.Max)
	}
	return r, nil
}
