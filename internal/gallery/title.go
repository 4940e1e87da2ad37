package gallery

import (
	"strings"

	"github.com/wethinkt/go-palettepro/internal/i18n"
	"github.com/wethinkt/go-palettepro/internal/palette"
)

// Title returns the heading shown above a gallery.
func Title(c palette.Category, term string) string {
	term = strings.TrimSpace(term)
	switch {
	case term != "" && c == palette.All:
		return i18n.Tf("gallery.title.searchAll", "Search Results for %q", term)
	case term != "":
		return i18n.Tf("gallery.title.searchCategory", "%s palettes with %q", c, term)
	case c == palette.All:
		return i18n.T("gallery.title.all", "All Gradients")
	default:
		return i18n.Tf("gallery.title.category", "%s Gradients", c)
	}
}

// EmptyMessage returns the notice shown when a search filters out every
// palette, and a hint line.
func EmptyMessage(c palette.Category, term string) (string, string) {
	term = strings.TrimSpace(term)
	if c == palette.All || c == "" {
		return i18n.Tf("gallery.empty.all", "No palettes found for %q", term),
			i18n.T("gallery.empty.hintAll", "Try a different color name or hex code")
	}
	return i18n.Tf("gallery.empty.category", "No %s palettes found for %q", strings.ToLower(string(c)), term),
		i18n.Tf("gallery.empty.hintCategory", "Try a different color name or hex code in %s category", c)
}
