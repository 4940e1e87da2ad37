// Package cmd provides the CLI commands for palettepro.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-palettepro/internal/config"
	"github.com/wethinkt/go-palettepro/internal/i18n"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

// global flags
var (
	profileFile *os.File // held open for profiling
	logPath     string
	logLevel    string
	verbose     bool
	outputJSON  bool
	plainOutput bool
)

// rootCmd is the root command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "palettepro",
	Short: "Generate, search and export color palettes",
	Long: `palettepro generates four-color gradient palettes from category
policies, finds palettes containing a color, and exports them.

Running without a subcommand launches the interactive browser.

Commands:
  gallery     Show a batch of palettes for a category or search
  generate    Generate a single palette
  detail      Shades and harmonies for a set of colors
  export      Write a palette as text, JSON, YAML, CSS, GPL or PNG
  serve       Start the HTTP/WebSocket/MCP server
  theme       Browse and manage UI themes

Examples:
  palettepro                          # Launch the browser
  palettepro gallery warm             # 24 warm palettes
  palettepro gallery --search navy    # Palettes containing navy
  palettepro export -f png -o p.png   # Export a random palette as PNG`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.Load()
		i18n.Init(i18n.ResolveLocale(cfg.Language))

		if logPath != "" {
			level := tuilog.ParseLevel(logLevel)
			if verbose {
				level = slog.LevelDebug
			}
			if err := tuilog.InitLevel(logPath, level); err != nil {
				return fmt.Errorf("open log: %w", err)
			}
		}

		// Start pprof profiling if PALETTEPRO_PROFILE is set
		if profilePath := os.Getenv("PALETTEPRO_PROFILE"); profilePath != "" {
			f, err := os.Create(profilePath)
			if err != nil {
				return fmt.Errorf("create profile file: %w", err)
			}
			profileFile = f

			if err := pprof.StartCPUProfile(f); err != nil {
				f.Close()
				profileFile = nil
				return fmt.Errorf("start CPU profile: %w", err)
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if profileFile != nil {
			pprof.StopCPUProfile()
			profileFile.Close()
			profileFile = nil
		}
		return tuilog.Log.Close()
	},
	RunE: runTUI,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug-level log)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write debug log to file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "plain output without colors (default when not a terminal)")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(galleryCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(relatedCmd)
	rootCmd.AddCommand(shadesCmd)
	rootCmd.AddCommand(detailCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(nearestCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(languageCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(versionCmd)

	helpCmd.AddCommand(helpLlmsCmd)
	rootCmd.SetHelpCommand(helpCmd)
}
