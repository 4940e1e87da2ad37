package theme

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wethinkt/go-palettepro/internal/config"
)

func TestEmbeddedThemes(t *testing.T) {
	names := ListEmbedded()
	if len(names) != 8 {
		t.Fatalf("ListEmbedded() = %v, want 8 themes", names)
	}
	if names[0] != DefaultName {
		t.Errorf("ListEmbedded()[0] = %q, want %q", names[0], DefaultName)
	}
	for _, name := range names {
		th, err := LoadEmbedded(name)
		if err != nil {
			t.Fatalf("LoadEmbedded(%q) error = %v", name, err)
		}
		if err := th.Validate(); err != nil {
			t.Errorf("LoadEmbedded(%q): %v", name, err)
		}
	}

	purple := DefaultTheme()
	if purple.Primary != "#8B5CF6" || purple.Text != "#F9FAFB" {
		t.Errorf("DefaultTheme() = %+v", purple)
	}
}

func TestLoadByName_NotFound(t *testing.T) {
	t.Setenv("PALETTEPRO_HOME", t.TempDir())
	for _, name := range []string{"plaid", "", "../config"} {
		if _, err := LoadByName(name); !errors.Is(err, ErrThemeNotFound) {
			t.Errorf("LoadByName(%q) error = %v, want ErrThemeNotFound", name, err)
		}
	}
}

func TestSetActive_Persists(t *testing.T) {
	t.Setenv("PALETTEPRO_HOME", t.TempDir())

	if got := ActiveName(); got != DefaultName {
		t.Errorf("ActiveName() = %q, want %q", got, DefaultName)
	}
	if err := SetActive("Teal"); err != nil {
		t.Fatalf("SetActive(Teal) error = %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "teal" {
		t.Errorf("config theme = %q, want teal", cfg.Theme)
	}
	if Current().Primary != "#14B8A6" {
		t.Errorf("Current() = %+v, want teal", Current())
	}

	th, err := Reload()
	if err != nil || th.Name != "teal" {
		t.Errorf("Reload() = %q, %v", th.Name, err)
	}

	if err := SetActive("plaid"); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("SetActive(plaid) error = %v", err)
	}
	if got := ActiveName(); got != "teal" {
		t.Errorf("ActiveName() after failed SetActive = %q, want teal", got)
	}
}

func TestUserThemes(t *testing.T) {
	t.Setenv("PALETTEPRO_HOME", t.TempDir())

	custom := Theme{Description: "Mine", Primary: "#112233", Secondary: "#223344",
		Accent: "#334455", Background: "#000000", Surface: "#111111", Text: "#FFFFFF"}
	if err := Save("mine", custom); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := LoadByName("mine")
	if err != nil {
		t.Fatalf("LoadByName(mine) error = %v", err)
	}
	if got.Primary != "#112233" || got.Name != "mine" {
		t.Errorf("LoadByName(mine) = %+v", got)
	}

	metas, err := ListAvailable()
	if err != nil {
		t.Fatal(err)
	}
	last := metas[len(metas)-1]
	if len(metas) != 9 || last.Name != "mine" || last.Embedded || last.Description != "Mine" {
		t.Errorf("ListAvailable() = %+v", metas)
	}

	if err := Save("broken", Theme{Primary: "red"}); err == nil {
		t.Error("Save(invalid) error = nil, want error")
	}
}

func TestUserThemeFillsMissingFields(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PALETTEPRO_HOME", home)
	dir := filepath.Join(home, "themes")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "half.json"), []byte(`{"primary":"#ABCDEF"}`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadByName("half")
	if err != nil {
		t.Fatalf("LoadByName(half) error = %v", err)
	}
	if got.Primary != "#ABCDEF" || got.Background != DefaultTheme().Background {
		t.Errorf("LoadByName(half) = %+v", got)
	}
}

func TestCSS(t *testing.T) {
	css := CSS(DefaultTheme())
	for _, want := range []string{
		"/* purple */",
		"--theme-primary: #8B5CF6;",
		"--theme-surface: #1F2937;",
		"--theme-text: #F9FAFB;",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("CSS() missing %q:\n%s", want, css)
		}
	}
}

const itermSample = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Ansi 4 Color</key>
	<dict>
		<key>Blue Component</key>
		<real>1</real>
		<key>Color Space</key>
		<string>sRGB</string>
		<key>Green Component</key>
		<real>0.5</real>
		<key>Red Component</key>
		<real>0</real>
	</dict>
	<key>Background Color</key>
	<dict>
		<key>Blue Component</key>
		<real>0</real>
		<key>Green Component</key>
		<real>0</real>
		<key>Red Component</key>
		<real>0</real>
	</dict>
	<key>Foreground Color</key>
	<dict>
		<key>Blue Component</key>
		<real>1</real>
		<key>Green Component</key>
		<real>1</real>
		<key>Red Component</key>
		<real>1</real>
	</dict>
</dict>
</plist>`

func TestImportIterm(t *testing.T) {
	colors, err := ParseItermColors(strings.NewReader(itermSample))
	if err != nil {
		t.Fatalf("ParseItermColors() error = %v", err)
	}
	if colors["Ansi 4 Color"] != "#0080FF" {
		t.Errorf("Ansi 4 = %q, want #0080FF", colors["Ansi 4 Color"])
	}

	th, err := ImportIterm(strings.NewReader(itermSample), "sample")
	if err != nil {
		t.Fatalf("ImportIterm() error = %v", err)
	}
	if th.Primary != "#0080FF" || th.Background != "#000000" || th.Text != "#FFFFFF" {
		t.Errorf("ImportIterm() = %+v", th)
	}
	if th.Secondary != "#60A5FA" {
		t.Errorf("missing Ansi 12 should fall back, got %q", th.Secondary)
	}
	if err := th.Validate(); err != nil {
		t.Error(err)
	}

	if _, err := ParseItermColors(strings.NewReader("<plist></plist>")); err == nil {
		t.Error("ParseItermColors(empty) error = nil, want error")
	}
}

func TestDelete(t *testing.T) {
	t.Setenv("PALETTEPRO_HOME", t.TempDir())

	mine := DefaultTheme()
	if err := Save("mine", mine); err != nil {
		t.Fatal(err)
	}
	if err := SetActive("mine"); err != nil {
		t.Fatal(err)
	}
	if err := Delete("mine"); err != nil {
		t.Fatalf("Delete(mine) error = %v", err)
	}
	if _, err := LoadByName("mine"); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("LoadByName after delete error = %v", err)
	}
	if got := ActiveName(); got != DefaultName {
		t.Errorf("ActiveName() = %q, want fallback to %q", got, DefaultName)
	}

	if err := Delete("teal"); err == nil || errors.Is(err, ErrThemeNotFound) {
		t.Errorf("Delete(built-in) error = %v", err)
	}
	if err := Delete("plaid"); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("Delete(plaid) error = %v", err)
	}
}

func TestColorsOrder(t *testing.T) {
	th := Theme{Primary: "#000001", Secondary: "#000002", Accent: "#000003",
		Background: "#000004", Surface: "#000005", Text: "#000006"}
	got := strings.Join(th.Colors(), ",")
	if got != "#000001,#000002,#000003,#000004,#000005,#000006" {
		t.Errorf("Colors() = %s", got)
	}
}
