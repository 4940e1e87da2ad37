// Package i18n localizes palettepro's user-facing strings.
//
// Every call carries its English text, so a missing translation or an
// uninitialized package still produces readable output:
//
//	i18n.T("common.loading", "Loading...")
//	i18n.Tf("gallery.title.category", "%s Gradients", name)
//	i18n.Tn("cmd.gallery.count", "{{.Count}} palette", "{{.Count}} palettes", n)
package i18n

import (
	"embed"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// active is nil until Init runs.
var active atomic.Pointer[i18n.Localizer]

// newBundle loads every embedded locale file.
func newBundle() *i18n.Bundle {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, tag := range Languages() {
		_, _ = b.LoadMessageFileFS(localeFS, "locales/"+tag+".toml")
	}
	return b
}

// Init selects lang as the active language, falling back to English for
// messages the locale lacks. It may be called again to switch languages.
func Init(lang string) {
	active.Store(i18n.NewLocalizer(newBundle(), lang, "en"))
}

func localize(l *i18n.Localizer, cfg *i18n.LocalizeConfig) (string, bool) {
	if l == nil {
		return "", false
	}
	s, err := l.Localize(cfg)
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

// T returns the message id in the active language, or defaultMsg.
func T(id, defaultMsg string) string {
	s, ok := localize(active.Load(), &i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: id, Other: defaultMsg},
	})
	if !ok {
		return defaultMsg
	}
	return s
}

// Tf is T followed by fmt.Sprintf.
func Tf(id, defaultMsg string, args ...any) string {
	return fmt.Sprintf(T(id, defaultMsg), args...)
}

// Tn picks the plural form for count. Both forms may use {{.Count}}.
func Tn(id, one, other string, count int) string {
	s, ok := localize(active.Load(), &i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: id, One: one, Other: other},
		PluralCount:    count,
		TemplateData:   map[string]int{"Count": count},
	})
	if ok {
		return s
	}
	msg := other
	if count == 1 {
		msg = one
	}
	return strings.ReplaceAll(msg, "{{.Count}}", strconv.Itoa(count))
}

// Languages returns the tags of the bundled locales, sorted.
func Languages() []string {
	entries, _ := localeFS.ReadDir("locales")
	var tags []string
	for _, e := range entries {
		if tag, ok := strings.CutSuffix(e.Name(), ".toml"); ok {
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags
}

// ResolveLocale picks the language to use. PALETTEPRO_LANG wins over the
// configured language, which wins over LC_ALL and LANG.
func ResolveLocale(configLang string) string {
	if v := os.Getenv("PALETTEPRO_LANG"); v != "" {
		return v
	}
	if configLang != "" {
		return configLang
	}
	for _, env := range []string{"LC_ALL", "LANG"} {
		if v := os.Getenv(env); v != "" {
			return normalizeLocale(v)
		}
	}
	return "en"
}

// normalizeLocale turns a POSIX locale such as "es_MX.UTF-8" into a BCP 47
// tag. "C" and "POSIX" mean English.
func normalizeLocale(posix string) string {
	posix, _, _ = strings.Cut(posix, ".")
	posix, _, _ = strings.Cut(posix, "@")
	switch posix {
	case "", "C", "POSIX":
		return "en"
	}
	return strings.ReplaceAll(posix, "_", "-")
}
