package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-palettepro/internal/cli"
	"github.com/wethinkt/go-palettepro/internal/export"
	"github.com/wethinkt/go-palettepro/internal/gallery"
	"github.com/wethinkt/go-palettepro/internal/i18n"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

// Export command flags
var (
	exportCategory string
	exportSearch   string
	exportColors   string
	exportFormat   string
	exportOutput   string
	exportPreview  bool
	exportLabels   bool
	exportGradient bool
	exportWidth    int
	exportHeight   int
	exportSteps    int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a palette to a file or stdout",
	Long: `Export a palette as text, JSON, YAML, CSS custom properties, a GIMP
palette or a PNG swatch strip.

The palette comes from --colors when given. Otherwise the first palette
of the gallery for --category and --search is exported.

The format defaults to the extension of --output, or text.

Examples:
  palettepro export --colors "#FF5E62,#FF9966,#FFC371,#FFE29F" -f css
  palettepro export --category sunset -o sunset.png --labels
  palettepro export --search navy -f json
  palettepro export --colors "#FF0000,#0000FF" --steps 7   # 7-color blend
  palettepro export --category neon --preview     # Inline image in kitty/sixel terminals`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var copyCmd = &cobra.Command{
	Use:   "copy <color>...",
	Short: "Copy colors to the clipboard",
	Long: `Copy colors to the system clipboard as a comma-separated list.

Examples:
  palettepro copy "#FF5E62, #FF9966"
  palettepro copy 3366cc`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCopy,
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportCategory, "category", "c", "", "category to generate from")
	f.StringVarP(&exportSearch, "search", "s", "", "search term to filter the gallery")
	f.StringVar(&exportColors, "colors", "", "comma-separated colors to export instead of generating")
	f.StringVarP(&exportFormat, "format", "f", "", "text, json, yaml, css, gpl or png")
	f.StringVarP(&exportOutput, "output", "o", "", "output file, or a directory for a generated file name")
	f.BoolVar(&exportPreview, "preview", false, "draw the palette inline in the terminal")
	f.BoolVar(&exportLabels, "labels", false, "draw hex codes on PNG swatches")
	f.BoolVar(&exportGradient, "gradient", false, "blend PNG swatches into a gradient")
	f.IntVar(&exportWidth, "width", export.DefaultWidth, "PNG width in pixels")
	f.IntVar(&exportHeight, "height", export.DefaultHeight, "PNG height in pixels")
	f.IntVar(&exportSteps, "steps", 0, "resample the palette into an n-color gradient")
}

// exportPalette picks the palette named by the export flags.
func exportPalette() (palette.Palette, error) {
	cfg, b := loadBuilder()

	if exportColors != "" {
		colors, err := parseColors([]string{exportColors})
		if err != nil {
			return palette.Palette{}, err
		}
		return palette.Palette{ID: b.NewID(), Name: "Custom Palette", Colors: colors}, nil
	}

	name := exportCategory
	if name == "" {
		name = cfg.DefaultCategory
	}
	cat, err := resolveCategory(b, name)
	if err != nil {
		return palette.Palette{}, err
	}
	ps, err := b.Gallery(gallery.Request{Category: cat, Search: exportSearch})
	if err != nil {
		return palette.Palette{}, err
	}
	if len(ps) == 0 {
		msg, _ := gallery.EmptyMessage(cat, exportSearch)
		return palette.Palette{}, errors.New(msg)
	}
	return ps[0], nil
}

func runExport(cmd *cobra.Command, args []string) error {
	p, err := exportPalette()
	if err != nil {
		return err
	}
	if exportSteps != 0 {
		if exportSteps < 2 || exportSteps > 64 {
			return fmt.Errorf("--steps must be between 2 and 64")
		}
		p.Colors = export.Gradient(p.Colors, exportSteps)
	}
	opts := export.Options{
		Width:    exportWidth,
		Height:   exportHeight,
		Labels:   exportLabels,
		Gradient: exportGradient,
	}

	if exportPreview {
		err := cli.Preview(cmd.OutOrStdout(), export.Image(p.Colors, opts), terminalWidth(80))
		if !errors.Is(err, cli.ErrNoGraphics) {
			return err
		}
		tuilog.Log.Debug("No graphics protocol, falling back to swatches")
		newDisplay(cmd).Palette(p)
		return nil
	}

	name := exportFormat
	if name == "" && exportOutput != "" {
		name = filepath.Ext(exportOutput)
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		if format.Binary() && isTTY() {
			return fmt.Errorf("refusing to write %s to a terminal; use --output", format)
		}
		return export.Write(cmd.OutOrStdout(), format, p, opts)
	}

	path := exportOutput
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, export.Filename(p.ID, format))
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, p, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tuilog.Log.Info("Exported palette", "path", path, "format", format)
	fmt.Fprintln(cmd.ErrOrStderr(), i18n.Tf("cmd.export.wrote", "Wrote %s", path))
	return nil
}

func runCopy(cmd *cobra.Command, args []string) error {
	colors, err := parseColors(args)
	if err != nil {
		return err
	}
	text := export.Text(colors)
	if err := cli.CopyText(text); err != nil {
		return fmt.Errorf("%s: %w", i18n.T("tui.status.copyFailed", "Clipboard unavailable"), err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), i18n.Tf("tui.status.copied", "Copied %s", text))
	return nil
}
