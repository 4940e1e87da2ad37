package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wethinkt/go-palettepro/internal/config"
	"github.com/wethinkt/go-palettepro/internal/i18n"
	"github.com/wethinkt/go-palettepro/internal/palette"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PALETTEPRO_HOME", t.TempDir())
	t.Setenv("PALETTEPRO_LANG", "en")
	return runInHome(t, args...)
}

// runInHome is run without resetting PALETTEPRO_HOME.
func runInHome(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags() {
	outputJSON, plainOutput = false, false
	logPath, logLevel, verbose = "", "info", false
	gallerySearch, galleryLimit = "", 0
	generateCount, relatedCount, detailMD = 1, 6, false
	exportCategory, exportSearch, exportColors = "", "", ""
	exportFormat, exportOutput = "", ""
	exportPreview, exportLabels, exportGradient = false, false, false
	exportWidth, exportHeight = 800, 200
	exportSteps = 0
	statsSamples, statsCategories = 500, nil
	logsLines, logsFollow, logsLevel = 50, false, ""
	themeShowCSS, themeImportName = false, ""
}

func TestParseColors(t *testing.T) {
	got, err := parseColors([]string{"#ff5e62, ff9966", "#FFC371"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"#FF5E62", "#FF9966", "#FFC371"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("parseColors = %v, want %v", got, want)
	}

	if _, err := parseColors([]string{"#GG0000"}); err == nil {
		t.Error("expected error for invalid hex")
	}
	if _, err := parseColors([]string{" , "}); err == nil {
		t.Error("expected error for no colors")
	}
}

func TestResolveCategory(t *testing.T) {
	t.Setenv("PALETTEPRO_HOME", t.TempDir())
	b := newBuilder(config.Default())

	tests := []struct {
		name string
		want palette.Category
	}{
		{"", palette.All},
		{"neon", palette.Neon},
		{"  Ocean ", palette.Ocean},
	}
	for _, tt := range tests {
		got, err := resolveCategory(b, tt.name)
		if err != nil || got != tt.want {
			t.Errorf("resolveCategory(%q) = %q, %v; want %q", tt.name, got, err, tt.want)
		}
	}

	if _, err := resolveCategory(b, "plaid"); !errors.Is(err, palette.ErrUnknownCategory) {
		t.Errorf("unknown category error = %v", err)
	}
}

func TestGalleryJSON(t *testing.T) {
	out, err := run(t, "gallery", "neon", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got galleryOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if got.Title != "Neon Gradients" {
		t.Errorf("title = %q", got.Title)
	}
	if len(got.Palettes) != 24 {
		t.Errorf("got %d palettes, want 24", len(got.Palettes))
	}
	for _, p := range got.Palettes {
		if p.Category != string(palette.Neon) || len(p.Colors) != palette.Size {
			t.Fatalf("bad palette %+v", p)
		}
	}
}

func TestGalleryEmptySearch(t *testing.T) {
	out, err := run(t, "gallery", "pastel", "-s", "zzzz", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got galleryOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Palettes) != 0 {
		t.Errorf("got %d palettes for zzzz", len(got.Palettes))
	}
	if got.Empty != `No pastel palettes found for "zzzz"` {
		t.Errorf("empty = %q", got.Empty)
	}
}

func TestGalleryLimitPlain(t *testing.T) {
	out, err := run(t, "gallery", "warm", "-n", "3", "--plain")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Warm Gradients") {
		t.Errorf("missing title:\n%s", out)
	}
	if n := strings.Count(out, "#"); n < 12 {
		t.Errorf("expected at least 12 hex codes, got %d:\n%s", n, out)
	}
}

func TestGenerateUnknownCategory(t *testing.T) {
	if _, err := run(t, "generate", "plaid"); !errors.Is(err, palette.ErrUnknownCategory) {
		t.Errorf("err = %v", err)
	}
}

func TestShadesJSON(t *testing.T) {
	out, err := run(t, "shades", "#3366cc", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got colorsResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got.Base != "#3366CC" {
		t.Errorf("base = %q", got.Base)
	}
	if len(got.Colors) != 8 {
		t.Errorf("got %d shades, want 8", len(got.Colors))
	}
}

func TestRelatedCount(t *testing.T) {
	out, err := run(t, "related", "ff0000", "-n", "4", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got colorsResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Colors) != 4 || got.Colors[0] != "#FF0000" {
		t.Errorf("related = %v", got.Colors)
	}
}

func TestMatch(t *testing.T) {
	if _, err := run(t, "match", "red", "#FF0000", "#FFFFFF"); err != nil {
		t.Errorf("red should match #FF0000: %v", err)
	}
	if _, err := run(t, "match", "red", "#0000FF"); err == nil {
		t.Error("red should not match #0000FF")
	}
}

func TestResolve(t *testing.T) {
	out, err := run(t, "resolve", "navy", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got resolveResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Found || got.Representative == "" {
		t.Errorf("navy = %+v", got)
	}
}

func TestExportCSS(t *testing.T) {
	out, err := run(t, "export", "--colors", "#FF5E62,#FF9966,#FFC371,#FFE29F", "-f", "css")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{":root {", "--color-1: #FF5E62;", "--color-4: #FFE29F;"} {
		if !strings.Contains(out, want) {
			t.Errorf("css missing %q:\n%s", want, out)
		}
	}
}

func TestExportSteps(t *testing.T) {
	out, err := run(t, "export", "--colors", "#FF0000,#0000FF", "--steps", "5")
	if err != nil {
		t.Fatal(err)
	}
	colors := strings.Split(strings.TrimSpace(out), ", ")
	if len(colors) != 5 || colors[0] != "#FF0000" || colors[4] != "#0000FF" {
		t.Errorf("export --steps 5 = %q", out)
	}

	if _, err := run(t, "export", "--colors", "#FF0000", "--steps", "1"); err == nil {
		t.Error("--steps 1 should fail")
	}
}

func TestExportToDirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, "export", "--category", "sunset", "-f", "png", "-o", dir); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d files", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "color-palette-") || filepath.Ext(name) != ".png" {
		t.Errorf("file name = %q", name)
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestExportFormatFromExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.gpl")
	if _, err := run(t, "export", "--colors", "#000000,#FFFFFF", "-o", path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "GIMP Palette") {
		t.Errorf("not a GIMP palette:\n%s", data)
	}
}

func TestCategoriesIncludesUser(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PALETTEPRO_HOME", home)
	t.Setenv("PALETTEPRO_LANG", "en")
	toml := `[[category]]
name = "Forest"
hues = [90, 120, 150]
hue_jitter = 10
saturation = [30, 70]
lightness = [20, 50]
`
	if err := os.WriteFile(filepath.Join(home, "categories.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runInHome(t, "categories")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Forest") || !strings.Contains(out, "(user)") {
		t.Errorf("user category missing:\n%s", out)
	}

	out, err = runInHome(t, "generate", "forest", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var ps []palette.Palette
	if err := json.Unmarshal([]byte(out), &ps); err != nil {
		t.Fatal(err)
	}
	if len(ps) != 1 || ps[0].Category != "Forest" {
		t.Errorf("generate forest = %+v", ps)
	}
}

func TestStatsJSON(t *testing.T) {
	out, err := run(t, "stats", "-c", "neon", "--samples", "50", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var reports []struct {
		Category string `json:"category"`
		Palettes int    `json:"palettes"`
	}
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 || reports[0].Category != "Neon" || reports[0].Palettes != 50 {
		t.Errorf("reports = %+v", reports)
	}
}

func TestServeStatusEmpty(t *testing.T) {
	out, err := run(t, "serve", "status")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No palettepro servers running") {
		t.Errorf("status = %q", out)
	}
}

func TestLogsTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "logs", path, "-n", "2")
	if err != nil {
		t.Fatal(err)
	}
	if out != "two\nthree\n" {
		t.Errorf("logs = %q", out)
	}

	if _, err := run(t, "logs", filepath.Join(t.TempDir(), "missing.log")); err == nil {
		t.Error("expected error for missing log")
	}
}

func TestLogsLevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serve.log")
	log := `time=t level=INFO msg="HTTP request" status=200
time=t level=WARN msg="Reloading categories failed"
time=t level=DEBUG msg="Gallery command"
time=t level=ERROR msg="HTTP handler panic"
`
	if err := os.WriteFile(path, []byte(log), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "logs", path, "--level", "warn")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "INFO") || strings.Contains(out, "DEBUG") {
		t.Errorf("filter kept low levels:\n%s", out)
	}
	if !strings.Contains(out, "Reloading categories failed") || !strings.Contains(out, "panic") {
		t.Errorf("filter dropped warnings or errors:\n%s", out)
	}
}

// lockedBuffer is a bytes.Buffer safe for a writer and a polling reader.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTailLogFollow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serve.log")
	if err := os.WriteFile(path, []byte("first\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var out lockedBuffer
	done := make(chan error, 1)
	go func() {
		done <- tailLog(ctx, &out, path, 10, true, func(string) bool { return true })
	}()

	deadline := time.Now().Add(5 * time.Second)
	waitFor := func(want string) {
		t.Helper()
		for !strings.Contains(out.String(), want) {
			if time.Now().After(deadline) {
				t.Fatalf("timed out waiting for %q, got %q", want, out.String())
			}
			time.Sleep(20 * time.Millisecond)
		}
	}
	waitFor("first\n")

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	// Give the watcher time to register before appending.
	time.Sleep(100 * time.Millisecond)
	f.WriteString("sec")
	f.WriteString("ond\n")
	f.Close()
	waitFor("first\nsecond\n")

	cancel()
	if err := <-done; err != nil {
		t.Errorf("tailLog() error = %v", err)
	}
}

func TestThemeCSS(t *testing.T) {
	out, err := run(t, "theme", "css", "teal")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"/* teal */", "--theme-primary: #14B8A6;", "--theme-text: #F0FDFA;"} {
		if !strings.Contains(out, want) {
			t.Errorf("css missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "theme", "show", "no-such-theme"); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestThemeSetPersists(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PALETTEPRO_HOME", home)
	t.Setenv("PALETTEPRO_LANG", "en")
	if _, err := runInHome(t, "theme", "set", "green"); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "green" {
		t.Errorf("config theme = %q, want green", cfg.Theme)
	}
}

func TestLanguageSet(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PALETTEPRO_HOME", home)
	t.Setenv("PALETTEPRO_LANG", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "")
	if _, err := runInHome(t, "language", "es"); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Language != "es" {
		t.Errorf("language = %q", cfg.Language)
	}
	if _, err := runInHome(t, "language", "xx"); err == nil {
		t.Error("expected error for unsupported language")
	}
	i18nReset(t)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "palettepro") {
		t.Errorf("version = %q", out)
	}
}

func TestHelpLlms(t *testing.T) {
	out, err := run(t, "help", "llms")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "generate_palette") {
		t.Error("guide should list MCP tools")
	}
}

// i18nReset restores English messages for later tests.
func i18nReset(t *testing.T) {
	t.Helper()
	i18n.Init("en")
}
