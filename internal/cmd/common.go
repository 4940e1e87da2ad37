package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wethinkt/go-palettepro/internal/cli"
	"github.com/wethinkt/go-palettepro/internal/colorspace"
	"github.com/wethinkt/go-palettepro/internal/config"
	"github.com/wethinkt/go-palettepro/internal/gallery"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/search"
	"github.com/wethinkt/go-palettepro/internal/theme"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

// isTTY reports whether stdout is an interactive terminal.
func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalWidth returns the stdout width, or fallback when unknown.
func terminalWidth(fallback int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallback
}

// newRegistry returns a category registry with the user categories file
// loaded, if there is one.
func newRegistry(cfg config.Config) *palette.Registry {
	reg := palette.NewRegistry()
	path, err := cfg.CategoriesPath()
	if err != nil {
		return reg
	}
	n, err := reg.LoadFile(path)
	if err != nil {
		tuilog.Log.Warn("Ignoring user categories", "path", path, "error", err)
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return reg
	}
	tuilog.Log.Info("Loaded user categories", "path", path, "count", n)
	return reg
}

// newBuilder creates a gallery builder configured from cfg.
func newBuilder(cfg config.Config) *gallery.Builder {
	gen := palette.NewGenerator(palette.DefaultSource()).WithRegistry(newRegistry(cfg))
	b := gallery.NewBuilder(gen, search.NewMatcher(cfg.Search))
	b.Jitter = cfg.Related
	if cfg.GallerySize > 0 {
		b.CategorySize = cfg.GallerySize
	}
	return b
}

// loadBuilder loads the config and returns it with a builder.
func loadBuilder() (config.Config, *gallery.Builder) {
	cfg, err := config.Load()
	if err != nil {
		tuilog.Log.Warn("Using default config", "error", err)
		cfg = config.Default()
	}
	return cfg, newBuilder(cfg)
}

// resolveCategory maps a user-supplied name onto a registered category.
// Empty means All.
func resolveCategory(b *gallery.Builder, name string) (palette.Category, error) {
	if strings.TrimSpace(name) == "" {
		return palette.All, nil
	}
	if c, ok := b.Generator().Registry().Resolve(name); ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", palette.ErrUnknownCategory, name)
}

// parseColors validates hex color arguments, accepting comma-separated lists.
func parseColors(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			hex, err := colorspace.Parse(part)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", err, part)
			}
			out = append(out, hex)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no colors given")
	}
	return out, nil
}

// newDisplay returns a palette display for cmd's output, plain unless
// writing to a terminal.
func newDisplay(cmd *cobra.Command) *cli.PaletteDisplay {
	d := cli.NewPaletteDisplay(cmd.OutOrStdout(), theme.Current())
	d.Plain = plainOutput || !isTTY()
	return d
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
