package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-palettepro/internal/cli"
	"github.com/wethinkt/go-palettepro/internal/gallery"
	"github.com/wethinkt/go-palettepro/internal/harmony"
	"github.com/wethinkt/go-palettepro/internal/i18n"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/search"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

var (
	gallerySearch string
	galleryLimit  int
	generateCount int
	relatedCount  int
	detailMD      bool
)

var galleryCmd = &cobra.Command{
	Use:   "gallery [category]",
	Short: "Show a batch of palettes",
	Long: `Show the gallery for a category, optionally filtered by a search term.

A search that names a color (a table name like "navy" or a hex code)
adds palettes related to that color. Other terms keep only palettes
whose colors match.

Examples:
  palettepro gallery                   # A few palettes from every category
  palettepro gallery neon              # 24 neon palettes
  palettepro gallery -s "#3366cc"      # Palettes near a hex color
  palettepro gallery pastel -s pink    # Pastel palettes containing pink`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGallery,
}

var generateCmd = &cobra.Command{
	Use:   "generate [category]",
	Short: "Generate palettes from a category",
	Long: `Generate palettes by sampling a category policy. With no category,
each palette comes from a random built-in category.

Examples:
  palettepro generate
  palettepro generate sunset -n 5
  palettepro generate warm --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List palette categories",
	Long: `List the built-in categories followed by user categories from
~/.palettepro/categories.toml.`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

var relatedCmd = &cobra.Command{
	Use:   "related <color>",
	Short: "Colors related to a base color",
	Long: `Print colors derived from a base color: the base itself, its complement,
then analogous hues alternating around it.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelated,
}

var shadesCmd = &cobra.Command{
	Use:   "shades <color>",
	Short: "Lightness ramp of a color",
	Long: `Print the color at lightness steps 10 to 90, skipping the step nearest
the color's own lightness.`,
	Args: cobra.ExactArgs(1),
	RunE: runShades,
}

var detailCmd = &cobra.Command{
	Use:   "detail <color>...",
	Short: "Shades and harmonic palettes for a set of colors",
	Long: `Print the shade ramp of every color, then complementary, analogous and
monochromatic palettes built from them.

Colors may be separate arguments or one comma-separated list.

Examples:
  palettepro detail "#FF5E62, #FF9966, #FFC371, #FFE29F"
  palettepro detail 3366cc ff9900 --markdown`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetail,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <term>",
	Short: "Show which color a search term asks for",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

var matchCmd = &cobra.Command{
	Use:   "match <term> <color>...",
	Short: "Check whether colors match a search term",
	Long: `Check whether any of the colors matches a search term. Exits with an
error when nothing matches.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMatch,
}

var nearestCmd = &cobra.Command{
	Use:   "nearest <color>",
	Short: "Name the closest table color",
	Args:  cobra.ExactArgs(1),
	RunE:  runNearest,
}

func init() {
	galleryCmd.Flags().StringVarP(&gallerySearch, "search", "s", "", "color name, hex code or text to search for")
	galleryCmd.Flags().IntVarP(&galleryLimit, "limit", "n", 0, "show at most n palettes")
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 1, "number of palettes")
	relatedCmd.Flags().IntVarP(&relatedCount, "count", "n", 6, "number of colors, including the base")
	detailCmd.Flags().BoolVar(&detailMD, "markdown", false, "render as a markdown report")
}

type galleryOutput struct {
	Title    string            `json:"title"`
	Category palette.Category  `json:"category"`
	Search   string            `json:"search,omitempty"`
	Palettes []palette.Palette `json:"palettes"`
	Empty    string            `json:"empty,omitempty"`
}

func runGallery(cmd *cobra.Command, args []string) error {
	cfg, b := loadBuilder()

	name := cfg.DefaultCategory
	if len(args) > 0 {
		name = args[0]
	}
	cat, err := resolveCategory(b, name)
	if err != nil {
		return err
	}

	ps, err := b.Gallery(gallery.Request{Category: cat, Search: gallerySearch})
	if err != nil {
		return err
	}
	if galleryLimit > 0 && len(ps) > galleryLimit {
		ps = ps[:galleryLimit]
	}
	tuilog.Log.Debug("Gallery command", "category", cat, "search", gallerySearch, "count", len(ps))

	title := gallery.Title(cat, gallerySearch)
	emptyMsg, emptyHint := gallery.EmptyMessage(cat, gallerySearch)

	if outputJSON {
		out := galleryOutput{Title: title, Category: cat, Search: gallerySearch, Palettes: ps}
		if out.Palettes == nil {
			out.Palettes = []palette.Palette{}
		}
		if len(ps) == 0 {
			out.Empty = emptyMsg
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	newDisplay(cmd).Gallery(title, ps, emptyMsg, emptyHint)
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	_, b := loadBuilder()

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	cat, err := resolveCategory(b, name)
	if err != nil {
		return err
	}
	if generateCount < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	ps := make([]palette.Palette, 0, generateCount)
	for range generateCount {
		p, err := b.Generator().Generate(cat)
		if err != nil {
			return err
		}
		p.ID = b.NewID()
		ps = append(ps, p)
	}

	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), ps)
	}
	d := newDisplay(cmd)
	for _, p := range ps {
		d.Palette(p)
	}
	return nil
}

type categoryInfo struct {
	Name    palette.Category `json:"name"`
	Kind    string           `json:"kind,omitempty"`
	BuiltIn bool             `json:"built_in"`
}

func runCategories(cmd *cobra.Command, args []string) error {
	_, b := loadBuilder()
	reg := b.Generator().Registry()

	user := make(map[palette.Category]bool)
	for _, c := range reg.UserCategories() {
		user[c] = true
	}

	var infos []categoryInfo
	for _, c := range reg.Categories() {
		info := categoryInfo{Name: c, BuiltIn: !user[c]}
		if p, ok := reg.Lookup(c); ok {
			info.Kind = p.Kind.String()
		}
		infos = append(infos, info)
	}

	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), infos)
	}
	w := cmd.OutOrStdout()
	for _, info := range infos {
		marker := ""
		if !info.BuiltIn {
			marker = " (user)"
		}
		if info.Kind == "" {
			fmt.Fprintf(w, "%s%s\n", info.Name, marker)
			continue
		}
		fmt.Fprintf(w, "%-12s %s%s\n", info.Name, info.Kind, marker)
	}
	return nil
}

type colorsResult struct {
	Base   string   `json:"base"`
	Colors []string `json:"colors"`
}

func runRelated(cmd *cobra.Command, args []string) error {
	cfg, b := loadBuilder()
	colors, err := parseColors(args)
	if err != nil {
		return err
	}
	if relatedCount < 1 || relatedCount > 64 {
		return fmt.Errorf("--count must be between 1 and 64")
	}
	base := colors[0]
	out := harmony.RelatedWith(b.Generator().Source(), cfg.Related, base, relatedCount)

	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), colorsResult{Base: base, Colors: out})
	}
	newDisplay(cmd).Colors(i18n.Tf("cmd.related.title", "Related to %s", base), out)
	return nil
}

func runShades(cmd *cobra.Command, args []string) error {
	colors, err := parseColors(args)
	if err != nil {
		return err
	}
	base := colors[0]
	out := harmony.Shades(base)

	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), colorsResult{Base: base, Colors: out})
	}
	newDisplay(cmd).Colors(i18n.Tf("cmd.shades.title", "Shades of %s", base), out)
	return nil
}

type detailResult struct {
	Ramps    []harmony.Ramp    `json:"ramps"`
	Palettes []palette.Palette `json:"palettes"`
}

func runDetail(cmd *cobra.Command, args []string) error {
	colors, err := parseColors(args)
	if err != nil {
		return err
	}

	switch {
	case outputJSON:
		return writeJSON(cmd.OutOrStdout(), detailResult{
			Ramps:    harmony.Ramps(colors),
			Palettes: harmony.Detail(colors),
		})
	case detailMD:
		out, err := cli.RenderMarkdown(cli.DetailMarkdown(colors), terminalWidth(100), plainOutput || !isTTY())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}
	newDisplay(cmd).Detail(colors)
	return nil
}

type resolveResult struct {
	Term           string `json:"term"`
	Representative string `json:"representative,omitempty"`
	Found          bool   `json:"found"`
	Suggestion     string `json:"suggestion,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	res := search.Resolve(args[0])
	out := resolveResult{Term: res.Term, Representative: res.Representative, Found: res.Found}
	if !res.Found {
		if s, ok := search.Suggest(args[0]); ok {
			out.Suggestion = s
		}
	}

	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	w := cmd.OutOrStdout()
	switch {
	case out.Found:
		fmt.Fprintf(w, "%s → %s\n", out.Term, out.Representative)
	case out.Suggestion != "":
		fmt.Fprintln(w, i18n.Tf("cmd.resolve.suggest", "%q is not a color; closest match %s", out.Term, out.Suggestion))
	default:
		fmt.Fprintln(w, i18n.Tf("cmd.resolve.none", "%q is not a color name or hex code", out.Term))
	}
	return nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	_, b := loadBuilder()
	colors, err := parseColors(args[1:])
	if err != nil {
		return err
	}
	term := args[0]
	ok := b.Matcher().ContainsSearch(colors, term)

	if outputJSON {
		if err := writeJSON(cmd.OutOrStdout(), map[string]bool{"match": ok}); err != nil {
			return err
		}
	} else if ok {
		fmt.Fprintln(cmd.OutOrStdout(), i18n.Tf("cmd.match.yes", "%s matches %q", strings.Join(colors, ", "), term))
	}
	if !ok {
		return fmt.Errorf("no color matches %q", term)
	}
	return nil
}

type nearestResult struct {
	Color          string  `json:"color"`
	Name           string  `json:"name"`
	Representative string  `json:"representative"`
	Distance       float64 `json:"distance"`
}

func runNearest(cmd *cobra.Command, args []string) error {
	colors, err := parseColors(args)
	if err != nil {
		return err
	}
	e, dist := search.Nearest(colors[0])

	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), nearestResult{
			Color: colors[0], Name: e.Name, Representative: e.Representative, Distance: dist,
		})
	}
	newDisplay(cmd).Nearest(colors[0], e.Name, e.Representative, dist)
	return nil
}
