package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wethinkt/go-palettepro/internal/colorspace"
	"github.com/wethinkt/go-palettepro/internal/export"
	"github.com/wethinkt/go-palettepro/internal/gallery"
	"github.com/wethinkt/go-palettepro/internal/harmony"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/theme"
	"github.com/wethinkt/go-palettepro/internal/version"
)

// Limits on caller-supplied sizes.
const (
	defaultRelatedCount = 6
	maxRelatedCount     = 64
	maxExportColors     = 32
	maxMatchBody        = 64 << 10
)

// API response types

// CategoryInfo describes one category.
type CategoryInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind,omitempty"`
	Builtin bool   `json:"builtin"`
}

// CategoriesResponse lists categories in display order.
type CategoriesResponse struct {
	Categories []CategoryInfo `json:"categories"`
}

// EmptyNotice is the message shown when a search filters out everything.
type EmptyNotice struct {
	Message string `json:"message"`
	Hint    string `json:"hint"`
}

// PalettesResponse is one gallery batch.
type PalettesResponse struct {
	Title    string            `json:"title"`
	Category string            `json:"category"`
	Search   string            `json:"search,omitempty"`
	Palettes []palette.Palette `json:"palettes"`
	Empty    *EmptyNotice      `json:"empty,omitempty"`
}

// ColorsResponse carries colors derived from a base color.
type ColorsResponse struct {
	Base   string   `json:"base"`
	Colors []string `json:"colors"`
}

// ShadesResponse carries the shade ramp of a base color.
type ShadesResponse struct {
	Base     string   `json:"base"`
	Excluded int      `json:"excluded_step"`
	Shades   []string `json:"shades"`
}

// HarmonicsResponse carries the harmonic palettes of a base color.
type HarmonicsResponse struct {
	Base     string            `json:"base"`
	Palettes []palette.Palette `json:"palettes"`
}

// MatchRequest asks whether colors match a search term.
type MatchRequest struct {
	Colors []string `json:"colors"`
	Term   string   `json:"term"`
}

// MatchResponse answers a MatchRequest.
type MatchResponse struct {
	Term  string `json:"term"`
	Match bool   `json:"match"`
}

// ThemeInfo is a theme with its colors.
type ThemeInfo struct {
	theme.Theme
	Embedded bool `json:"embedded"`
	Active   bool `json:"active"`
}

// ThemesResponse lists available UI themes.
type ThemesResponse struct {
	Active string      `json:"active"`
	Themes []ThemeInfo `json:"themes"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, err string, msg string) {
	writeJSON(w, status, ErrorResponse{Error: err, Message: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: version.Get(),
		Uptime:  time.Since(s.startedAt).Round(time.Second).String(),
	})
}

func (s *Server) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	reg := s.gallery.Generator().Registry()
	out := make([]CategoryInfo, 0, len(palette.Categories))
	for _, c := range reg.Categories() {
		info := CategoryInfo{Name: string(c)}
		if p, ok := reg.Lookup(c); ok {
			info.Kind = p.Kind.String()
		}
		_, builtin := palette.ParseCategory(string(c))
		info.Builtin = builtin
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: out})
}

// resolveCategory reads ?category=, defaulting to All.
func (s *Server) resolveCategory(w http.ResponseWriter, r *http.Request) (palette.Category, bool) {
	name := r.URL.Query().Get("category")
	if strings.TrimSpace(name) == "" {
		return palette.All, true
	}
	c, ok := s.gallery.Generator().Registry().Resolve(name)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_category", "Unknown category: "+name)
		return "", false
	}
	return c, true
}

func (s *Server) handleGetPalettes(w http.ResponseWriter, r *http.Request) {
	c, ok := s.resolveCategory(w, r)
	if !ok {
		return
	}
	term := strings.TrimSpace(r.URL.Query().Get("search"))

	resp, err := s.buildBatch(c, term)
	if err != nil {
		writeGalleryError(w, err)
		return
	}
	palettesGeneratedTotal.WithLabelValues("api").Add(float64(len(resp.Palettes)))
	writeJSON(w, http.StatusOK, resp)
}

// buildBatch generates and filters one gallery, shared by the REST and
// WebSocket surfaces.
func (s *Server) buildBatch(c palette.Category, term string) (PalettesResponse, error) {
	ps, err := s.gallery.Gallery(gallery.Request{Category: c, Search: term})
	if err != nil {
		return PalettesResponse{}, err
	}
	resp := PalettesResponse{
		Title:    gallery.Title(c, term),
		Category: string(c),
		Search:   term,
		Palettes: ps,
	}
	if len(ps) == 0 {
		resp.Palettes = []palette.Palette{}
		msg, hint := gallery.EmptyMessage(c, term)
		resp.Empty = &EmptyNotice{Message: msg, Hint: hint}
	}
	return resp, nil
}

func writeGalleryError(w http.ResponseWriter, err error) {
	if errors.Is(err, palette.ErrUnknownCategory) {
		writeError(w, http.StatusBadRequest, "unknown_category", err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "generate_failed", err.Error())
}

func (s *Server) handleGetRandomPalette(w http.ResponseWriter, r *http.Request) {
	c, ok := s.resolveCategory(w, r)
	if !ok {
		return
	}
	p, err := s.gallery.Generator().Generate(c)
	if err != nil {
		writeGalleryError(w, err)
		return
	}
	p.ID = s.gallery.NewID()
	p.Name = p.Category + " Palette"
	palettesGeneratedTotal.WithLabelValues("api").Inc()
	writeJSON(w, http.StatusOK, p)
}

// pathColor reads the {hex} URL parameter; the leading '#' is optional.
func pathColor(w http.ResponseWriter, r *http.Request) (string, bool) {
	hex, err := colorspace.Parse(chi.URLParam(r, "hex"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_color", err.Error())
		return "", false
	}
	return hex, true
}

func (s *Server) handleGetRelated(w http.ResponseWriter, r *http.Request) {
	hex, ok := pathColor(w, r)
	if !ok {
		return
	}
	count := defaultRelatedCount
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRelatedCount {
			writeError(w, http.StatusBadRequest, "invalid_count", "count must be between 1 and "+strconv.Itoa(maxRelatedCount))
			return
		}
		count = n
	}
	colors := harmony.RelatedWith(s.gallery.Generator().Source(), s.config.Jitter, hex, count)
	writeJSON(w, http.StatusOK, ColorsResponse{Base: hex, Colors: colors})
}

func (s *Server) handleGetShades(w http.ResponseWriter, r *http.Request) {
	hex, ok := pathColor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ShadesResponse{
		Base:     hex,
		Excluded: harmony.ExcludedStep(hex),
		Shades:   harmony.Shades(hex),
	})
}

func (s *Server) handleGetHarmonics(w http.ResponseWriter, r *http.Request) {
	hex, ok := pathColor(w, r)
	if !ok {
		return
	}
	set := harmony.HarmonicSet(hex, 1)
	writeJSON(w, http.StatusOK, HarmonicsResponse{Base: hex, Palettes: set[:]})
}

func (s *Server) handleResolveSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if strings.TrimSpace(term) == "" {
		writeError(w, http.StatusBadRequest, "missing_term", "term is required")
		return
	}
	writeJSON(w, http.StatusOK, s.gallery.Matcher().Resolve(term))
}

func (s *Server) handleMatchSearch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMatchBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Failed to parse request body")
		return
	}
	colors, err := parseColors(req.Colors)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_color", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, MatchResponse{
		Term:  req.Term,
		Match: s.gallery.Matcher().ContainsSearch(colors, req.Term),
	})
}

func parseColors(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, c := range in {
		hex, err := colorspace.Parse(c)
		if err != nil {
			return nil, err
		}
		out = append(out, hex)
	}
	return out, nil
}

// handleExport renders ?colors=RRGGBB,... in ?format= as a download. With
// ?steps=n the colors are first resampled into an n-color HCL gradient.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw := strings.FieldsFunc(q.Get("colors"), func(r rune) bool { return r == ',' || r == ' ' })
	if len(raw) == 0 || len(raw) > maxExportColors {
		writeError(w, http.StatusBadRequest, "invalid_colors", "colors must list 1 to "+strconv.Itoa(maxExportColors)+" hex colors")
		return
	}
	colors, err := parseColors(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_color", err.Error())
		return
	}
	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_format", err.Error())
		return
	}
	if v := q.Get("steps"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2 || n > maxExportColors {
			writeError(w, http.StatusBadRequest, "invalid_steps", "steps must be between 2 and "+strconv.Itoa(maxExportColors))
			return
		}
		colors = export.Gradient(colors, n)
	}

	p := palette.Palette{ID: q.Get("id"), Name: q.Get("name"), Colors: colors}
	if p.ID != "" && !validPaletteID(p.ID) {
		writeError(w, http.StatusBadRequest, "invalid_id", "id may only contain letters, digits, '-' and '_'")
		return
	}
	if p.ID == "" {
		p.ID = s.gallery.NewID()
	}
	if p.Name == "" {
		p.Name = "Palette"
	}
	opts := export.Options{
		Labels:   q.Get("labels") == "true",
		Gradient: q.Get("gradient") == "true",
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": export.Filename(p.ID, format),
	}))
	// Headers are already sent; export.Write logs its own failures.
	_ = export.Write(w, format, p, opts)
}

// validPaletteID reports whether id is safe to embed in a file name.
func validPaletteID(id string) bool {
	if len(id) > 64 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func (s *Server) handleGetThemes(w http.ResponseWriter, r *http.Request) {
	metas, err := theme.ListAvailable()
	if err != nil && len(metas) == 0 {
		writeError(w, http.StatusInternalServerError, "list_themes_failed", err.Error())
		return
	}
	active := theme.ActiveName()
	out := make([]ThemeInfo, 0, len(metas))
	for _, m := range metas {
		th, err := theme.LoadByName(m.Name)
		if err != nil {
			continue
		}
		out = append(out, ThemeInfo{Theme: th, Embedded: m.Embedded, Active: m.Name == active})
	}
	writeJSON(w, http.StatusOK, ThemesResponse{Active: active, Themes: out})
}
