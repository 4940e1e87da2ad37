package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/wethinkt/go-palettepro/internal/colorspace"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
	"gopkg.in/yaml.v3"
)

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

// Write encodes p to w in format f.
func Write(w io.Writer, f Format, p palette.Palette, opts Options) error {
	cw := &countingWriter{w: w}
	err := write(cw, f, p, opts)
	if err != nil {
		exportErrorsTotal.WithLabelValues(string(f)).Inc()
		tuilog.Log.Warn("Export failed", "format", f, "error", err)
		return err
	}
	exportsTotal.WithLabelValues(string(f)).Inc()
	exportBytes.WithLabelValues(string(f)).Observe(float64(cw.n))
	tuilog.Log.Debug("Exported palette", "format", f, "bytes", cw.n, "colors", len(p.Colors))
	return nil
}

func write(w io.Writer, f Format, p palette.Palette, opts Options) error {
	switch f {
	case FormatText:
		_, err := fmt.Fprintln(w, Text(p.Colors))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSS:
		_, err := io.WriteString(w, CSS(p))
		return err
	case FormatGPL:
		_, err := io.WriteString(w, GPL(p))
		return err
	case FormatPNG:
		return PNG(w, p.Colors, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Text joins colors with ", ", the format used when copying a whole palette.
func Text(colors []string) string {
	return strings.Join(colors, ", ")
}

// CSS renders colors as custom properties on :root.
func CSS(p palette.Palette) string {
	var sb strings.Builder
	if p.Name != "" {
		fmt.Fprintf(&sb, "/* %s */\n", p.Name)
	}
	sb.WriteString(":root {\n")
	for i, c := range p.Colors {
		fmt.Fprintf(&sb, "  --color-%d: %s;\n", i+1, colorspace.Normalize(c))
	}
	sb.WriteString("}\n")
	return sb.String()
}

// GPL renders a GIMP palette.
func GPL(p palette.Palette) string {
	name := p.Name
	if name == "" {
		name = "palettepro"
	}
	var sb strings.Builder
	sb.WriteString("GIMP Palette\n")
	fmt.Fprintf(&sb, "Name: %s\n", name)
	fmt.Fprintf(&sb, "Columns: %d\n", len(p.Colors))
	sb.WriteString("#\n")
	for _, c := range p.Colors {
		r, g, b := colorspace.HexToRGB(c)
		fmt.Fprintf(&sb, "%3d %3d %3d\t%s\n", r, g, b, colorspace.Normalize(c))
	}
	return sb.String()
}
