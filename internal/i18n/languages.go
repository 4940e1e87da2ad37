package i18n

import (
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LangInfo describes one bundled locale.
type LangInfo struct {
	Tag         string `json:"tag"`
	Name        string `json:"name"`         // name in the language itself
	EnglishName string `json:"english_name"` // name in English
	Active      bool   `json:"active"`
}

// AvailableLanguages lists the bundled locales, marking the one matching
// activeTag.
func AvailableLanguages(activeTag string) []LangInfo {
	active := normalizeLocale(activeTag)
	var out []LangInfo
	for _, tag := range Languages() {
		t := language.Make(tag)
		info := LangInfo{
			Tag:         tag,
			Name:        display.Self.Name(t),
			EnglishName: display.English.Tags().Name(t),
			Active:      strings.EqualFold(tag, active) || strings.HasPrefix(strings.ToLower(active), tag+"-"),
		}
		if info.Name == "" {
			info.Name = tag
		}
		out = append(out, info)
	}
	return out
}

// previewKeys are the messages shown when comparing locales.
var previewKeys = [][2]string{
	{"gallery.title.all", "All Gradients"},
	{"common.loading", "Loading..."},
	{"gallery.empty.hintAll", "Try a different color name or hex code"},
	{"tui.help.search", "search"},
	{"tui.help.regenerate", "regenerate"},
	{"tui.help.quit", "quit"},
	{"common.time.justNow", "just now"},
}

// PreviewKeys returns the message IDs and English defaults used for
// language previews.
func PreviewKeys() [][2]string {
	return previewKeys
}

// PreviewStrings localizes the preview messages for tag without changing
// the active language.
func PreviewStrings(tag string) map[string]string {
	l := i18n.NewLocalizer(newBundle(), tag, "en")

	out := make(map[string]string, len(previewKeys))
	for _, kv := range previewKeys {
		msg, ok := localize(l, &i18n.LocalizeConfig{
			DefaultMessage: &i18n.Message{ID: kv[0], Other: kv[1]},
		})
		if !ok {
			msg = kv[1]
		}
		out[kv[0]] = msg
	}
	return out
}
