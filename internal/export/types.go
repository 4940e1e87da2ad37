// Package export renders palettes as text, structured data, stylesheets,
// GIMP palettes and PNG swatch strips.
package export

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned for format names Write does not support.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names an export encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSS  Format = "css"
	FormatGPL  Format = "gpl"
	FormatPNG  Format = "png"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatCSS, FormatGPL, FormatPNG}

// ParseFormat resolves a format name or file extension, ignoring case.
func ParseFormat(name string) (Format, error) {
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	switch name {
	case "", "txt", "text":
		return FormatText, nil
	case "yml", "yaml":
		return FormatYAML, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatCSS:
		return "text/css; charset=utf-8"
	case FormatPNG:
		return "image/png"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	if f == FormatText {
		return ".txt"
	}
	return "." + string(f)
}

// Binary reports whether f produces non-text output.
func (f Format) Binary() bool { return f == FormatPNG }

// Options tune Write.
type Options struct {
	// Width and Height size PNG output. Zero uses 800x200.
	Width  int
	Height int
	// Labels draws each swatch's hex code onto PNG output.
	Labels bool
	// Gradient blends adjacent swatches in PNG output instead of hard edges.
	Gradient bool
}

// Filename returns the download name for a palette id in format f.
func Filename(id string, f Format) string {
	if id == "" {
		id = "palette"
	}
	return "color-palette-" + id + f.Ext()
}
