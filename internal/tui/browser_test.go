package tui

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/wethinkt/go-palettepro/internal/colorspace"
	"github.com/wethinkt/go-palettepro/internal/gallery"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/search"
	"github.com/wethinkt/go-palettepro/internal/theme"
)

func press(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	}
	return tea.KeyPressMsg{Code: []rune(k)[0], Text: k}
}

// collect runs cmd and any batched commands, returning their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// galleryFrom returns the batch delivered by cmd.
func galleryFrom(t *testing.T, cmd tea.Cmd) galleryMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if g, ok := msg.(galleryMsg); ok {
			return g
		}
	}
	t.Fatal("command produced no gallery")
	return galleryMsg{}
}

func newTestBrowser(t *testing.T, opts Options) BrowserModel {
	t.Helper()
	t.Setenv("PALETTEPRO_HOME", t.TempDir())
	gen := palette.NewGenerator(palette.NewSeededSource(1, 2))
	opts.Theme = theme.DefaultTheme()
	m := NewBrowserModel(gallery.NewBuilder(gen, nil), opts)
	return update(t, m, galleryFrom(t, m.Init()))
}

func update(t *testing.T, m BrowserModel, msg tea.Msg) BrowserModel {
	t.Helper()
	next, _ := m.Update(msg)
	bm, ok := next.(BrowserModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return bm
}

// send delivers a key and then any gallery the key requested.
func send(t *testing.T, m BrowserModel, k string) BrowserModel {
	t.Helper()
	next, cmd := m.Update(press(k))
	m = next.(BrowserModel)
	if m.loading {
		m = update(t, m, galleryFrom(t, cmd))
	}
	return m
}

func TestBrowser_InitialBatch(t *testing.T) {
	m := newTestBrowser(t, Options{})
	if m.Loading() {
		t.Fatal("still loading after first batch")
	}
	if m.Category() != palette.All {
		t.Errorf("category = %q, want All", m.Category())
	}
	if got := len(m.Palettes()); got != 31 {
		t.Errorf("got %d palettes, want 31", got)
	}
}

func TestBrowser_StartCategory(t *testing.T) {
	m := newTestBrowser(t, Options{Category: "neon"})
	if m.Category() != palette.Neon {
		t.Fatalf("category = %q, want Neon", m.Category())
	}
	if got := len(m.Palettes()); got != gallery.DefaultCategorySize {
		t.Errorf("got %d palettes", got)
	}
}

func TestBrowser_CategoryNavigation(t *testing.T) {
	m := newTestBrowser(t, Options{})

	m = send(t, m, "right")
	if m.Category() != palette.Popular {
		t.Errorf("right: category = %q, want Popular", m.Category())
	}
	m = send(t, m, "left")
	m = send(t, m, "left")
	if m.Category() != palette.Ocean {
		t.Errorf("left from All: category = %q, want Ocean", m.Category())
	}
	for _, p := range m.Palettes() {
		if p.Category != string(palette.Ocean) {
			t.Fatalf("palette %q has category %q", p.Name, p.Category)
		}
	}
}

func TestBrowser_NewerRequestSupersedes(t *testing.T) {
	m := newTestBrowser(t, Options{})

	next, first := m.Update(press("right"))
	m = next.(BrowserModel)
	next, second := m.Update(press("right"))
	m = next.(BrowserModel)

	stale := galleryFrom(t, first)
	m = update(t, m, stale)
	if !m.Loading() {
		t.Fatal("stale batch was applied")
	}

	m = update(t, m, galleryFrom(t, second))
	if m.Loading() || m.Category() != palette.Bright {
		t.Fatalf("loading=%v category=%q", m.Loading(), m.Category())
	}
	for _, p := range m.Palettes() {
		if p.Category != string(palette.Bright) {
			t.Fatalf("palette %q from superseded request", p.Name)
		}
	}
}

func TestBrowser_Search(t *testing.T) {
	m := newTestBrowser(t, Options{})

	m = send(t, m, "/")
	if m.mode != modeSearch {
		t.Fatal("slash should open search")
	}
	for _, r := range "blue" {
		m = send(t, m, string(r))
	}
	m = send(t, m, "enter")

	if m.Search() != "blue" {
		t.Fatalf("search = %q", m.Search())
	}
	if len(m.Palettes()) == 0 {
		t.Fatal("no palettes for blue")
	}
	for _, p := range m.Palettes() {
		if !search.ContainsSearch(p.Colors, "blue") {
			t.Errorf("palette %q does not match blue", p.Name)
		}
	}
	if !strings.Contains(ansi.Strip(m.viewGallery()), `Search Results for "blue"`) {
		t.Error("gallery title missing search term")
	}

	m = send(t, m, "esc")
	if m.Search() != "" {
		t.Errorf("esc should clear search, got %q", m.Search())
	}
}

func TestBrowser_EmptyNotice(t *testing.T) {
	m := newTestBrowser(t, Options{Category: palette.Pastel, Search: "zzzz"})
	if len(m.Palettes()) != 0 {
		t.Fatalf("got %d palettes for zzzz", len(m.Palettes()))
	}
	view := ansi.Strip(m.viewGallery())
	if !strings.Contains(view, `No pastel palettes found for "zzzz"`) {
		t.Errorf("view missing empty notice:\n%s", view)
	}
}

func TestBrowser_PickerSetsSearchColor(t *testing.T) {
	m := newTestBrowser(t, Options{})

	m = send(t, m, "p")
	if m.mode != modePicker {
		t.Fatal("p should open the picker")
	}
	m = send(t, m, "enter")
	if m.mode != modeBrowse {
		t.Fatal("enter should close the picker")
	}
	if !colorspace.IsValidHex(m.Search()) {
		t.Errorf("search = %q, want a hex color", m.Search())
	}
}

func TestBrowser_PickerCancel(t *testing.T) {
	m := newTestBrowser(t, Options{})
	m = send(t, m, "p")
	m = send(t, m, "esc")
	if m.mode != modeBrowse || m.Search() != "" {
		t.Errorf("mode=%v search=%q after cancel", m.mode, m.Search())
	}
}

func TestBrowser_Copy(t *testing.T) {
	m := newTestBrowser(t, Options{})
	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	m = send(t, m, "down")
	p := m.Palettes()[1]

	m = send(t, m, "y")
	if copied != p.String() {
		t.Errorf("copied %q, want %q", copied, p.String())
	}

	m = send(t, m, "]")
	m = send(t, m, "c")
	if copied != p.Colors[1] {
		t.Errorf("copied %q, want %q", copied, p.Colors[1])
	}
	if !strings.Contains(m.status, p.Colors[1]) {
		t.Errorf("status = %q", m.status)
	}

	m.copyText = func(string) error { return errors.New("no clipboard") }
	m = send(t, m, "c")
	if m.status != "Clipboard unavailable" {
		t.Errorf("status = %q after failure", m.status)
	}
}

func TestBrowser_Detail(t *testing.T) {
	m := newTestBrowser(t, Options{})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 60})

	m = send(t, m, "enter")
	if m.mode != modeDetail {
		t.Fatal("enter should open detail")
	}
	view := ansi.Strip(m.viewDetail())
	for _, want := range []string{"Palette Detail", "Color Shades"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q", want)
		}
	}

	m = send(t, m, "esc")
	if m.mode != modeBrowse {
		t.Error("esc should close detail")
	}
}

func TestBrowser_Quit(t *testing.T) {
	m := newTestBrowser(t, Options{})
	_, cmd := m.Update(press("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
