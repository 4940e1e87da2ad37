package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-palettepro/internal/cli"
	"github.com/wethinkt/go-palettepro/internal/i18n"
	"github.com/wethinkt/go-palettepro/internal/theme"
	"github.com/wethinkt/go-palettepro/internal/tui"
)

var (
	themeShowCSS    bool
	themeImportName string
)

// Theme command
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Browse and manage UI themes",
	Long: `Browse and manage UI themes.

Running without a subcommand launches the interactive theme browser.

A theme sets the six interface colors: primary, secondary, accent,
background, surface and text. User themes live in ~/.palettepro/themes/.

Examples:
  palettepro theme               # Browse themes interactively
  palettepro theme show          # Show the active theme
  palettepro theme show --css    # Output the theme as CSS variables
  palettepro theme list          # List all available themes
  palettepro theme set midnight  # Switch to a theme
  palettepro theme builder       # Interactive theme builder
  palettepro theme import f.itermcolors
  palettepro theme delete mine   # Remove a user theme`,
	Args: cobra.NoArgs,
	RunE: runThemeBrowse,
}

var themeShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Display a theme with styled samples",
	Long: `Display a theme with styled samples.

If no name is provided, shows the active theme.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runThemeShow,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available themes",
	Long:  `List all built-in and user themes. The active theme is marked with *.`,
	Args:  cobra.NoArgs,
	RunE:  runThemeList,
}

var themeSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Set the active theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeSet,
}

var themeBuilderCmd = &cobra.Command{
	Use:   "builder [name]",
	Short: "Launch interactive theme builder",
	Long: `Launch an interactive editor for the six theme colors with a live
preview.

If no name is provided, edits the active theme. If the theme doesn't
exist, a new one is created from the default.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runThemeBuilder,
}

var themeCSSCmd = &cobra.Command{
	Use:   "css [name]",
	Short: "Print a theme as CSS custom properties",
	Long: `Print a theme as --theme-* CSS custom properties on :root.

If no name is provided, prints the active theme.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		themeShowCSS = true
		return runThemeShow(cmd, args)
	},
}

var themeImportCmd = &cobra.Command{
	Use:   "import <file.itermcolors|->",
	Short: "Import an iTerm2 color scheme as a theme",
	Long: `Import an iTerm2 .itermcolors file and save it as a palettepro theme.
Use "-" to read the scheme from stdin; --name is then required.

Examples:
  palettepro theme import ~/Downloads/Dracula.itermcolors
  curl -s https://example.com/x.itermcolors | palettepro theme import - --name x`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeImport,
}

var themeDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a user theme",
	Long: `Delete a theme from ~/.palettepro/themes. Built-in themes cannot be
deleted. Deleting the active theme switches back to the default.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theme.Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), i18n.Tf("cmd.theme.deleted", "Theme %q deleted.", args[0]))
		return nil
	},
}

func init() {
	themeShowCmd.Flags().BoolVar(&themeShowCSS, "css", false, "output as CSS custom properties")
	themeImportCmd.Flags().StringVar(&themeImportName, "name", "", "theme name (default: derived from the file name)")
	themeCmd.AddCommand(themeShowCmd, themeCSSCmd, themeListCmd, themeSetCmd, themeBuilderCmd, themeImportCmd, themeDeleteCmd)
}

func runThemeShow(cmd *cobra.Command, args []string) error {
	t := theme.Current()
	if len(args) > 0 {
		var err error
		t, err = theme.LoadByName(args[0])
		if err != nil {
			return fmt.Errorf("theme %q not found", args[0])
		}
	}

	display := cli.NewThemeDisplay(cmd.OutOrStdout(), t)
	display.Plain = plainOutput || !isTTY()
	switch {
	case outputJSON:
		return display.ShowJSON()
	case themeShowCSS:
		return display.ShowCSS()
	}
	return display.Show()
}

func runThemeList(cmd *cobra.Command, args []string) error {
	metas, err := theme.ListAvailable()
	if err != nil {
		return err
	}
	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), metas)
	}
	display := cli.NewThemeDisplay(cmd.OutOrStdout(), theme.Current())
	display.Plain = plainOutput || !isTTY()
	return display.List(metas, theme.ActiveName())
}

func runThemeSet(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := theme.SetActive(name); err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), i18n.Tf("cmd.theme.set", "Theme set to: %s", name))
	return nil
}

func runThemeBrowse(cmd *cobra.Command, args []string) error {
	if !isTTY() {
		return fmt.Errorf("interactive theme browser requires a terminal; use 'palettepro theme list' or 'palettepro theme show'")
	}
	return tui.RunThemeBrowser()
}

// importName derives a theme name from an .itermcolors path.
func importName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.ToLower(strings.Join(strings.Fields(base), "-"))
}

func runThemeImport(cmd *cobra.Command, args []string) error {
	path, name := args[0], themeImportName

	var src io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}
		defer f.Close()
		src = f
		if name == "" {
			name = importName(path)
		}
	}
	if name == "" {
		return fmt.Errorf("--name is required when importing from stdin")
	}

	t, err := theme.ImportIterm(src, name)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if err := theme.Save(name, t); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, i18n.Tf("cmd.theme.imported", "Theme %q imported.", name))
	fmt.Fprintln(w, i18n.Tf("cmd.theme.activateHint", "Activate it with: palettepro theme set %s", name))
	return nil
}

func runThemeBuilder(cmd *cobra.Command, args []string) error {
	if !isTTY() {
		return fmt.Errorf("interactive theme builder requires a terminal")
	}
	name := theme.ActiveName()
	if len(args) > 0 {
		name = args[0]
	}
	return tui.RunThemeBuilder(name)
}
