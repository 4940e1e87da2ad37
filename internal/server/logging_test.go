package server

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/wethinkt/go-palettepro/internal/gallery"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

func TestRedactedURI(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"/api/v1/palettes?category=Neon", "/api/v1/palettes?category=Neon"},
		{"/api/v1/ws?token=abc123&category=Neon", "/api/v1/ws?category=Neon&token=%5BREDACTED%5D"},
		{"/mcp?API_KEY=k", "/mcp?API_KEY=%5BREDACTED%5D"},
		{"/healthz", "/healthz"},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.raw)
		if err != nil {
			t.Fatal(err)
		}
		if got := redactedURI(u); got != tt.want {
			t.Errorf("redactedURI(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestAccessLog(t *testing.T) {
	t.Setenv("PALETTEPRO_HOME", t.TempDir())
	t.Setenv(TokenEnvVar, "")

	var buf bytes.Buffer
	saved := tuilog.Log
	tuilog.Log = tuilog.New(&buf, slog.LevelInfo)
	t.Cleanup(func() { tuilog.Log = saved })

	gen := palette.NewGenerator(rand.New(rand.NewPCG(1, 2)))
	s := New(gallery.NewBuilder(gen, nil), DefaultConfig())

	req := httptest.NewRequest("GET", "/healthz?token=secret", nil)
	s.Router().ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, `msg="HTTP request"`) || !strings.Contains(out, "status=200") {
		t.Errorf("access log missing request line:\n%s", out)
	}
	if strings.Contains(out, "secret") {
		t.Errorf("access log leaks token:\n%s", out)
	}
}
