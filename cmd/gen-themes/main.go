// Command gen-themes imports curated iTerm2 color schemes as palettepro
// themes.
//
// Usage:
//
//	go run ./cmd/gen-themes [-out internal/theme/themes] [name...]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/wethinkt/go-palettepro/internal/theme"
)

// scheme maps an iTerm2 color scheme onto a theme name.
type scheme struct {
	itermName string // file name in the iTerm2-Color-Schemes repo, without .itermcolors
	name      string
}

var curated = []scheme{
	{"Dracula", "dracula"},
	{"Nord", "nord"},
	{"Gruvbox Dark", "gruvbox-dark"},
	{"Catppuccin Mocha", "catppuccin-mocha"},
	{"Catppuccin Latte", "catppuccin-latte"},
	{"Solarized Dark Patched", "solarized-dark"},
	{"Rose Pine", "rose-pine"},
	{"TokyoNight", "tokyo-night"},
}

const baseURL = "https://raw.githubusercontent.com/mbadolato/iTerm2-Color-Schemes/master/schemes/"

func main() {
	outDir := flag.String("out", filepath.Join("internal", "theme", "themes"), "directory to write theme JSON to")
	flag.Parse()

	client := &http.Client{Timeout: 20 * time.Second}
	failed := 0
	for _, s := range curated {
		if flag.NArg() > 0 && !slices.Contains(flag.Args(), s.name) {
			continue
		}
		fmt.Printf("%-20s ", s.name)
		if err := importScheme(context.Background(), client, s, *outDir); err != nil {
			fmt.Println(err)
			failed++
			continue
		}
		fmt.Println("OK")
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func importScheme(ctx context.Context, client *http.Client, s scheme, outDir string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+url.PathEscape(s.itermName)+".itermcolors", nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch: HTTP %d", resp.StatusCode)
	}

	t, err := theme.ImportIterm(resp.Body, s.name)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	t.Description = fmt.Sprintf("%s (iTerm2 scheme)", s.itermName)
	if err := t.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, s.name+".json"), append(data, '\n'), 0644)
}
