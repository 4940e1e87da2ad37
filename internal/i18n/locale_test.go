package i18n

import (
	"slices"
	"testing"
)

func TestSpanishLocale(t *testing.T) {
	Init("es")
	defer Init("en")

	tests := []struct {
		id     string
		def    string
		wantEs string
	}{
		{"common.loading", "Loading...", "Cargando..."},
		{"gallery.title.all", "All Gradients", "Todos los degradados"},
		{"gallery.empty.hintAll", "Try a different color name or hex code", "Prueba con otro nombre de color o código hex"},
		{"tui.help.quit", "quit", "salir"},
		{"tui.help.regenerate", "regenerate", "regenerar"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := T(tt.id, tt.def)
			if got != tt.wantEs {
				t.Errorf("T(%q) = %q, want %q", tt.id, got, tt.wantEs)
			}
		})
	}
}

func TestSpanishFormatted(t *testing.T) {
	Init("es-MX")
	defer Init("en")

	if got := Tf("gallery.title.category", "%s Gradients", "Neon"); got != "Degradados Neon" {
		t.Errorf("Tf(gallery.title.category) = %q", got)
	}
	if got := Tn("common.time.minsAgo", "{{.Count}} min ago", "{{.Count}} mins ago", 1); got != "hace 1 min" {
		t.Errorf("Tn(1) = %q", got)
	}
	if got := Tn("common.time.minsAgo", "{{.Count}} min ago", "{{.Count}} mins ago", 7); got != "hace 7 mins" {
		t.Errorf("Tn(7) = %q", got)
	}
}

func TestEnglishDoesNotReturnSpanish(t *testing.T) {
	Init("en")

	got := T("common.loading", "Loading...")
	if got != "Loading..." {
		t.Errorf("English T(common.loading) = %q, want %q", got, "Loading...")
	}
}

func TestLocaleSwitch(t *testing.T) {
	Init("en")
	if en := T("tui.help.quit", "quit"); en != "quit" {
		t.Errorf("English tui.help.quit = %q, want %q", en, "quit")
	}

	Init("es")
	if es := T("tui.help.quit", "quit"); es != "salir" {
		t.Errorf("Spanish tui.help.quit = %q, want %q", es, "salir")
	}

	Init("en")
	if en := T("tui.help.quit", "quit"); en != "quit" {
		t.Errorf("after switching back, tui.help.quit = %q, want %q", en, "quit")
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	for _, want := range []string{"en", "es"} {
		if !slices.Contains(langs, want) {
			t.Errorf("Languages() = %v, missing %q", langs, want)
		}
	}
	if !slices.IsSorted(langs) {
		t.Errorf("Languages() = %v, want sorted", langs)
	}
}

func TestResolveLocale(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		configLang string
		want       string
	}{
		{"env wins", map[string]string{"PALETTEPRO_LANG": "es", "LANG": "fr_FR.UTF-8"}, "en", "es"},
		{"config", map[string]string{"PALETTEPRO_LANG": "", "LC_ALL": "", "LANG": "fr_FR.UTF-8"}, "es", "es"},
		{"lc_all", map[string]string{"PALETTEPRO_LANG": "", "LC_ALL": "es_MX.UTF-8", "LANG": "fr_FR"}, "", "es-MX"},
		{"lang posix", map[string]string{"PALETTEPRO_LANG": "", "LC_ALL": "", "LANG": "C"}, "", "en"},
		{"nothing", map[string]string{"PALETTEPRO_LANG": "", "LC_ALL": "", "LANG": ""}, "", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := ResolveLocale(tt.configLang); got != tt.want {
				t.Errorf("ResolveLocale(%q) = %q, want %q", tt.configLang, got, tt.want)
			}
		})
	}
}
