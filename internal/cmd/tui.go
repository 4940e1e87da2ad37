package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-palettepro/internal/theme"
	"github.com/wethinkt/go-palettepro/internal/tui"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

var (
	tuiCategory string
	tuiSearch   string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive palette browser",
	Long: `Browse generated palettes in the terminal. Switch categories with
←/→, search with /, pick a search color with p, and open a palette's
shades and harmonies with enter.

This is also what runs when palettepro is started without a command.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().StringVarP(&tuiCategory, "category", "c", "", "category to open")
		c.Flags().StringVarP(&tuiSearch, "search", "s", "", "initial search term")
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isTTY() {
		return fmt.Errorf("interactive browser requires a terminal; try 'palettepro gallery'")
	}
	cfg, b := loadBuilder()

	category := tuiCategory
	if category == "" {
		category = cfg.DefaultCategory
	}
	cat, err := resolveCategory(b, category)
	if err != nil {
		return err
	}

	tuilog.Log.Info("Starting TUI", "category", category)
	err = tui.RunBrowser(b, tui.Options{
		Category: cat,
		Search:   tuiSearch,
		Delay:    cfg.GenerationDelayDuration(),
		Theme:    theme.Current(),
	})
	tuilog.Log.Info("TUI exited", "error", err)
	return err
}
