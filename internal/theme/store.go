package theme

import (
	"cmp"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/wethinkt/go-palettepro/internal/config"
)

//go:embed themes/*.json
var embedded embed.FS

// DefaultName is the theme used when no preference has been saved.
const DefaultName = "purple"

// ErrThemeNotFound is returned when no built-in or user theme has the
// requested name.
var ErrThemeNotFound = errors.New("theme not found")

// ThemeMeta describes an available theme without its colors.
type ThemeMeta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Path        string `json:"path,omitempty"` // empty for built-in themes
	Embedded    bool   `json:"embedded"`
}

// themeNames lists the *.json files directly under dir in fsys.
func themeNames(fsys fs.FS, dir string) []string {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	return names
}

// decode reads name.json from dir in fsys over base.
func decode(fsys fs.FS, dir, name string, base Theme) (Theme, error) {
	data, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(dir, name+".json")))
	if err != nil {
		return Theme{}, err
	}
	t := base
	if err := json.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", name, err)
	}
	t.Name = name
	return t, nil
}

// ListEmbedded returns the built-in theme names, the default first.
func ListEmbedded() []string {
	names := themeNames(embedded, "themes")
	if i := slices.Index(names, DefaultName); i > 0 {
		names = slices.Insert(slices.Delete(names, i, i+1), 0, DefaultName)
	}
	return names
}

// LoadEmbedded loads a built-in theme.
func LoadEmbedded(name string) (Theme, error) {
	t, err := decode(embedded, "themes", name, Theme{})
	if errors.Is(err, fs.ErrNotExist) {
		return Theme{}, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	return t, err
}

// DefaultTheme returns the built-in purple theme.
func DefaultTheme() Theme {
	t, _ := LoadEmbedded(DefaultName)
	return t
}

// ThemesDir returns ~/.palettepro/themes.
func ThemesDir() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

// ListAvailable returns the built-in themes followed by user themes in
// name order. A user theme named like a built-in one takes its place.
func ListAvailable() ([]ThemeMeta, error) {
	var metas []ThemeMeta
	for _, name := range ListEmbedded() {
		if t, err := LoadEmbedded(name); err == nil {
			metas = append(metas, ThemeMeta{Name: name, Description: t.Description, Embedded: true})
		}
	}

	dir, err := ThemesDir()
	if err != nil {
		return metas, err
	}
	user := os.DirFS(dir)
	names := themeNames(user, ".")
	slices.Sort(names)
	for _, name := range names {
		meta := ThemeMeta{Name: name, Description: "User theme", Path: filepath.Join(dir, name+".json")}
		if t, err := decode(user, ".", name, Theme{}); err == nil && t.Description != "" {
			meta.Description = t.Description
		}
		if i := slices.IndexFunc(metas, func(m ThemeMeta) bool { return m.Embedded && m.Name == name }); i >= 0 {
			metas[i] = meta
			continue
		}
		metas = append(metas, meta)
	}
	return metas, nil
}

// LoadByName finds a theme by case-insensitive name, preferring user
// themes. Colors a user theme leaves out come from the default theme.
func LoadByName(name string) (Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || strings.ContainsAny(name, `/\`) {
		return Theme{}, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	if dir, err := ThemesDir(); err == nil {
		t, err := decode(os.DirFS(dir), ".", name, DefaultTheme())
		switch {
		case err == nil:
			return t, t.Validate()
		case !errors.Is(err, fs.ErrNotExist):
			return Theme{}, err
		}
	}
	return LoadEmbedded(name)
}

// Save writes t as a user theme called name.
func Save(name string, t Theme) error {
	t.Name = name
	if err := t.Validate(); err != nil {
		return err
	}
	dir, err := ThemesDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name+".json"), data, 0644)
}

// current caches the active theme for the process.
var current atomic.Pointer[Theme]

// Load reads the configured theme, returning the default alongside any error.
func Load() (Theme, error) {
	cfg, err := config.Load()
	if err != nil {
		return DefaultTheme(), err
	}
	t, err := LoadByName(cfg.Theme)
	if err != nil {
		return DefaultTheme(), err
	}
	return t, nil
}

// Current returns the active theme, loading it on first use.
func Current() Theme {
	if t := current.Load(); t != nil {
		return *t
	}
	t, _ := Load()
	current.CompareAndSwap(nil, &t)
	return *current.Load()
}

// Reload rereads the configured theme and makes it current.
func Reload() (Theme, error) {
	t, err := Load()
	current.Store(&t)
	return t, err
}

// ActiveName returns the configured theme name.
func ActiveName() string {
	cfg, _ := config.Load()
	return cmp.Or(cfg.Theme, DefaultName)
}

// SetActive saves name as the configured theme and makes it current.
// Unknown names leave the configuration untouched.
func SetActive(name string) error {
	t, err := LoadByName(name)
	if err != nil {
		return err
	}
	cfg, _ := config.Load()
	cfg.Theme = t.Name
	if err := config.Save(cfg); err != nil {
		return err
	}
	current.Store(&t)
	return nil
}

// Delete removes the user theme called name. Built-in themes cannot be
// deleted, though a user theme shadowing one can. If name was the active
// theme, the configuration falls back to the default.
func Delete(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	dir, err := ThemesDir()
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, name+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		if _, embErr := LoadEmbedded(name); embErr == nil {
			return fmt.Errorf("theme %s is built in", name)
		}
		return fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	if err != nil {
		return err
	}
	if ActiveName() == name {
		if _, err := LoadByName(name); err != nil {
			return SetActive(DefaultName)
		}
	}
	return nil
}
