package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wethinkt/go-palettepro/internal/analytics"
	"github.com/wethinkt/go-palettepro/internal/palette"
)

var (
	statsSamples    int
	statsCategories []string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the colors each category produces",
	Long: `Sample palettes from each category and report hue, saturation and
lightness statistics, distinct colors and the mean spread within a palette.

Useful for checking a user category in ~/.palettepro/categories.toml.

Examples:
  palettepro stats
  palettepro stats -c neon -c pastel --samples 2000
  palettepro stats --json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsSamples, "samples", analytics.DefaultSamples, "palettes to sample per category")
	statsCmd.Flags().StringSliceVarP(&statsCategories, "category", "c", nil, "categories to sample (default: all)")
}

func runStats(cmd *cobra.Command, args []string) error {
	_, b := loadBuilder()
	reg := b.Generator().Registry()

	var cats []palette.Category
	if len(statsCategories) == 0 {
		for _, c := range reg.Categories() {
			if c != palette.All {
				cats = append(cats, c)
			}
		}
	} else {
		for _, name := range statsCategories {
			c, err := resolveCategory(b, name)
			if err != nil {
				return err
			}
			cats = append(cats, c)
		}
	}

	reports, err := analytics.NewEngine(b.Generator()).SampleAll(cmd.Context(), cats, statsSamples)
	if err != nil {
		return err
	}
	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), reports)
	}
	newDisplay(cmd).Stats(reports)
	return nil
}
