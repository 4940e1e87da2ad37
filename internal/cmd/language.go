package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-palettepro/internal/config"
	"github.com/wethinkt/go-palettepro/internal/i18n"
	"github.com/wethinkt/go-palettepro/internal/tui"
)

var languageCmd = &cobra.Command{
	Use:   "language [lang]",
	Short: "Get or set the display language",
	Long: `Get or set the display language. Use a BCP 47 tag (e.g., en, es).

Without an argument in a terminal, opens the language picker.

Examples:
  palettepro language          # pick interactively, or show current
  palettepro language es       # set to Spanish
  palettepro language list     # list available languages`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLanguage,
}

var languageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available languages",
	Args:  cobra.NoArgs,
	RunE:  runLanguageList,
}

func init() {
	languageCmd.AddCommand(languageListCmd)
}

func runLanguage(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	current := i18n.ResolveLocale(cfg.Language)
	w := cmd.OutOrStdout()

	lang := ""
	switch {
	case len(args) > 0:
		lang = args[0]
	case isTTY() && !outputJSON:
		lang, err = tui.RunLanguagePicker(current)
		if err != nil {
			return err
		}
		if lang == "" {
			return nil
		}
	default:
		if outputJSON {
			return writeJSON(w, map[string]string{"language": current})
		}
		fmt.Fprintln(w, i18n.Tf("cmd.language.current", "Current language: %s", current))
		return nil
	}

	if !isAvailableLanguage(lang) {
		return fmt.Errorf("unsupported language %q; see 'palettepro language list'", lang)
	}
	cfg.Language = lang
	if err := config.Save(cfg); err != nil {
		return err
	}
	i18n.Init(lang)
	fmt.Fprintln(w, i18n.Tf("cmd.language.set", "Language set to: %s", lang))
	return nil
}

func isAvailableLanguage(tag string) bool {
	for _, l := range i18n.AvailableLanguages("") {
		if l.Tag == tag {
			return true
		}
	}
	return false
}

func runLanguageList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	langs := i18n.AvailableLanguages(i18n.ResolveLocale(cfg.Language))
	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), langs)
	}
	for _, l := range langs {
		marker := " "
		if l.Active {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %-6s %s (%s)\n", marker, l.Tag, l.Name, l.EnglishName)
	}
	return nil
}
