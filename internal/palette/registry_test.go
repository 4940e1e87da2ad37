package palette

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wethinkt/go-palettepro/internal/colorspace"
)

const forestTOML = `
[[category]]
name = "Forest"
hues = [90, 120, 150]
hue_jitter = 10
saturation = [30, 70]
lightness = [20, 50]

[[category]]
name = "Brand"
combos = [["#112233", "#445566", "#778899", "#aabbcc"]]
`

func TestLoadPolicies(t *testing.T) {
	policies, err := LoadPolicies(strings.NewReader(forestTOML))
	if err != nil {
		t.Fatalf("LoadPolicies() error = %v", err)
	}
	if len(policies) != 2 {
		t.Fatalf("LoadPolicies() returned %d policies, want 2", len(policies))
	}

	forest := policies[0]
	if forest.Category != "Forest" || forest.Kind != KindSampled {
		t.Errorf("policies[0] = %q kind %v, want Forest sampled", forest.Category, forest.Kind)
	}
	if forest.Saturation != (Range{30, 70}) || forest.Lightness != (Range{20, 50}) {
		t.Errorf("Forest ranges = %v %v", forest.Saturation, forest.Lightness)
	}

	brand := policies[1]
	if brand.Kind != KindCurated || brand.Combos[0][3] != "#AABBCC" {
		t.Errorf("Brand = %+v, want curated with normalized colors", brand)
	}
}

func TestLoadPolicies_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing name":    "[[category]]\nsaturation = [1, 2]\nlightness = [1, 2]\n",
		"bad range":       "[[category]]\nname = \"X\"\nsaturation = [80, 20]\nlightness = [1, 2]\n",
		"short range":     "[[category]]\nname = \"X\"\nsaturation = [80]\nlightness = [1, 2]\n",
		"hue too large":   "[[category]]\nname = \"X\"\nhues = [400]\nsaturation = [1, 2]\nlightness = [1, 2]\n",
		"short combo":     "[[category]]\nname = \"X\"\ncombos = [[\"#112233\"]]\n",
		"bad combo color": "[[category]]\nname = \"X\"\ncombos = [[\"#112233\", \"red\", \"#112233\", \"#112233\"]]\n",
		"not toml":        "[[category",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadPolicies(strings.NewReader(in)); err == nil {
				t.Error("LoadPolicies() error = nil, want error")
			}
		})
	}
}

func TestRegistry_UserCategories(t *testing.T) {
	policies, err := LoadPolicies(strings.NewReader(forestTOML))
	if err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry()
	if err := reg.SetUser(policies); err != nil {
		t.Fatalf("SetUser() error = %v", err)
	}

	cats := reg.Categories()
	if len(cats) != len(Categories)+2 || cats[len(cats)-2] != "Forest" {
		t.Errorf("Categories() = %v", cats)
	}
	if c, ok := reg.Resolve("forest"); !ok || c != "Forest" {
		t.Errorf("Resolve(forest) = %q, %v", c, ok)
	}

	gen := NewGenerator(seeded(11)).WithRegistry(reg)
	for range 50 {
		pal, err := gen.Generate("Forest")
		if err != nil {
			t.Fatalf("Generate(Forest) error = %v", err)
		}
		for _, hex := range pal.Colors {
			hsl := colorspace.HexToHSL(hex)
			if !hueNear(hsl.H, []int{90, 120, 150}, 10, hueTol) {
				t.Errorf("Forest hue %.1f out of range (%s)", hsl.H, hex)
			}
		}
	}
	for range 50 {
		if mustGenerate(t, gen, All).Category == "Forest" {
			t.Fatal("Generate(All) picked a user category")
		}
	}
}

func TestRegistry_RejectsReservedNames(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []Category{"neon", SearchResults} {
		if err := reg.SetUser([]Policy{{Category: name}}); err == nil {
			t.Errorf("SetUser(%q) error = nil, want error", name)
		}
	}
	dup := []Policy{{Category: "Moss"}, {Category: "moss"}}
	if err := reg.SetUser(dup); err == nil {
		t.Error("SetUser(duplicates) error = nil, want error")
	}
}

func TestRegistry_LoadFileMissing(t *testing.T) {
	reg := NewRegistry()
	n, err := reg.LoadFile(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil || n != 0 {
		t.Errorf("LoadFile(missing) = %d, %v, want 0, nil", n, err)
	}
}

func TestWatchPolicies_Reloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.toml")
	reg := NewRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan error, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchPolicies(ctx, path, reg, func(_ int, err error) { reloaded <- err })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(forestTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-reloaded:
		if err != nil {
			t.Fatalf("reload error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	if _, ok := reg.Lookup("Forest"); !ok {
		t.Error("Lookup(Forest) after reload = false")
	}

	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("WatchPolicies() error = %v", err)
	}
}
