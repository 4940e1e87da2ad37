package tui

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/wethinkt/go-palettepro/internal/gallery"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

// termSizeOpts sizes the program up front when stdout is a terminal, so
// the first frame renders at full size.
func termSizeOpts() []tea.ProgramOption {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return nil
	}
	return []tea.ProgramOption{tea.WithWindowSize(w, h)}
}

// RunBrowser runs the palette browser until the user quits.
func RunBrowser(b *gallery.Builder, opts Options) error {
	tuilog.Log.Info("Starting browser", "category", opts.Category, "search", opts.Search)
	model := NewBrowserModel(b, opts)
	p := tea.NewProgram(model, termSizeOpts()...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}
