// Package theme provides the UI color themes shared by the TUI, the CLI
// and the HTTP API.
package theme

import (
	"fmt"
	"strings"

	"github.com/wethinkt/go-palettepro/internal/colorspace"
)

// Theme is a named set of six UI colors.
type Theme struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Text       string `json:"text"`
}

// field is one named color of a theme.
type field struct {
	name  string
	value *string
}

// fields lists t's colors in declaration order.
func (t *Theme) fields() []field {
	return []field{
		{"primary", &t.Primary},
		{"secondary", &t.Secondary},
		{"accent", &t.Accent},
		{"background", &t.Background},
		{"surface", &t.Surface},
		{"text", &t.Text},
	}
}

// Validate reports the first color that is not a #RRGGBB value.
func (t Theme) Validate() error {
	for _, f := range t.fields() {
		if !colorspace.IsValidHex(*f.value) {
			return fmt.Errorf("theme %s: %s: %w: %q", t.Name, f.name, colorspace.ErrInvalidColor, *f.value)
		}
	}
	return nil
}

// Colors returns the six theme colors in declaration order.
func (t Theme) Colors() []string {
	var out []string
	for _, f := range t.fields() {
		out = append(out, *f.value)
	}
	return out
}

// CSS renders the theme as --theme-* custom properties on :root.
func CSS(t Theme) string {
	var b strings.Builder
	if t.Name != "" {
		fmt.Fprintf(&b, "/* %s */\n", t.Name)
	}
	b.WriteString(":root {\n")
	for _, f := range t.fields() {
		fmt.Fprintf(&b, "  --theme-%s: %s;\n", f.name, *f.value)
	}
	b.WriteString("}\n")
	return b.String()
}
