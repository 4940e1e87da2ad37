package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wethinkt/go-palettepro/internal/colorspace"
	"github.com/wethinkt/go-palettepro/internal/gallery"
	"github.com/wethinkt/go-palettepro/internal/harmony"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/search"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
	"github.com/wethinkt/go-palettepro/internal/version"
)

// Tool names.
const (
	ToolGeneratePalette = "generate_palette"
	ToolRelatedColors   = "related_colors"
	ToolColorShades     = "color_shades"
	ToolPaletteDetail   = "palette_detail"
	ToolResolveSearch   = "resolve_search"
	ToolMatchPalette    = "match_palette"
)

// ToolNames lists every tool in registration order.
var ToolNames = []string{
	ToolGeneratePalette, ToolRelatedColors, ToolColorShades,
	ToolPaletteDetail, ToolResolveSearch, ToolMatchPalette,
}

const maxToolPalettes = 48

// MCPServer wraps an MCP server exposing the palette engine as tools.
type MCPServer struct {
	server     *mcp.Server
	gallery    *gallery.Builder
	jitter     harmony.Jitter
	allowTools map[string]bool
	denyTools  map[string]bool
}

// NewMCPServer creates an MCP server with every tool registered.
func NewMCPServer(b *gallery.Builder, j harmony.Jitter) *MCPServer {
	return NewMCPServerWithFilters(b, j, nil, nil)
}

// NewMCPServerWithFilters creates an MCP server registering only the tools
// in allow (all when empty) minus those in deny.
func NewMCPServerWithFilters(b *gallery.Builder, j harmony.Jitter, allow, deny []string) *MCPServer {
	if b == nil {
		b = gallery.NewBuilder(nil, nil)
	}
	if j == (harmony.Jitter{}) {
		j = harmony.DefaultJitter
	}
	ms := &MCPServer{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "palettepro",
			Version: version.Get(),
		}, nil),
		gallery: b,
		jitter:  j,
	}
	if len(allow) > 0 {
		ms.allowTools = make(map[string]bool)
		for _, t := range allow {
			ms.allowTools[strings.TrimSpace(t)] = true
		}
	}
	if len(deny) > 0 {
		ms.denyTools = make(map[string]bool)
		for _, t := range deny {
			ms.denyTools[strings.TrimSpace(t)] = true
		}
	}
	ms.registerTools()
	return ms
}

// isToolAllowed checks if a tool should be registered.
func (ms *MCPServer) isToolAllowed(name string) bool {
	if ms.denyTools != nil && ms.denyTools[name] {
		return false
	}
	if ms.allowTools != nil && !ms.allowTools[name] {
		return false
	}
	return true
}

func (ms *MCPServer) registerTools() {
	if ms.isToolAllowed(ToolGeneratePalette) {
		mcp.AddTool(ms.server, &mcp.Tool{
			Name:        ToolGeneratePalette,
			Description: "Generate four-color palettes for a category (All, Popular, Bright, Dark, Neon, Pastel, Warm, Cool, Monochrome, Sunset, Ocean or a user category), optionally seeded by a color search such as \"ocean\" or \"#3366CC\".",
		}, ms.handleGeneratePalette)
	}
	if ms.isToolAllowed(ToolRelatedColors) {
		mcp.AddTool(ms.server, &mcp.Tool{
			Name:        ToolRelatedColors,
			Description: "Derive related colors from a base hex color: the base, its complement, then analogous hues.",
		}, ms.handleRelatedColors)
	}
	if ms.isToolAllowed(ToolColorShades) {
		mcp.AddTool(ms.server, &mcp.Tool{
			Name:        ToolColorShades,
			Description: "List eight lightness shades of a hex color, darkest first.",
		}, ms.handleColorShades)
	}
	if ms.isToolAllowed(ToolPaletteDetail) {
		mcp.AddTool(ms.server, &mcp.Tool{
			Name:        ToolPaletteDetail,
			Description: "Expand a palette into per-color shade ramps and up to six complementary, analogous and monochromatic palettes.",
		}, ms.handlePaletteDetail)
	}
	if ms.isToolAllowed(ToolResolveSearch) {
		mcp.AddTool(ms.server, &mcp.Tool{
			Name:        ToolResolveSearch,
			Description: "Interpret a color search term: a hex code or color name resolves to a representative color.",
		}, ms.handleResolveSearch)
	}
	if ms.isToolAllowed(ToolMatchPalette) {
		mcp.AddTool(ms.server, &mcp.Tool{
			Name:        ToolMatchPalette,
			Description: "Check whether a set of hex colors matches a color search term.",
		}, ms.handleMatchPalette)
	}
}

// Tool input/output types

type generatePaletteInput struct {
	Category string `json:"category,omitempty" jsonschema:"category name, default All"`
	Search   string `json:"search,omitempty" jsonschema:"color name or hex code to search for"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum palettes to return, default all"`
}

type generatePaletteOutput struct {
	Title    string            `json:"title"`
	Palettes []palette.Palette `json:"palettes"`
	Total    int               `json:"total"`
	Empty    string            `json:"empty,omitempty"`
}

type relatedColorsInput struct {
	Color string `json:"color" jsonschema:"base hex color, e.g. #3366CC"`
	Count int    `json:"count,omitempty" jsonschema:"number of colors including the base, default 6"`
}

type colorsOutput struct {
	Base   string   `json:"base"`
	Colors []string `json:"colors"`
}

type colorShadesInput struct {
	Color string `json:"color" jsonschema:"base hex color"`
}

type paletteDetailInput struct {
	Colors []string `json:"colors" jsonschema:"palette colors as hex codes"`
}

type paletteDetailOutput struct {
	Ramps    []harmony.Ramp    `json:"ramps"`
	Palettes []palette.Palette `json:"palettes"`
}

type resolveSearchInput struct {
	Term string `json:"term" jsonschema:"search term"`
}

type resolveSearchOutput struct {
	Term           string `json:"term"`
	Representative string `json:"representative,omitempty"`
	Found          bool   `json:"found"`
	Nearest        string `json:"nearest,omitempty"`
}

type matchPaletteInput struct {
	Colors []string `json:"colors" jsonschema:"palette colors as hex codes"`
	Term   string   `json:"term" jsonschema:"search term"`
}

type matchPaletteOutput struct {
	Match bool `json:"match"`
}

// Tool handlers

func textResult(v any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: formatJSON(v)}},
	}
}

func toolDone(tool string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		tuilog.Log.Debug("MCP tool failed", "tool", tool, "error", err)
	}
	mcpToolCallsTotal.WithLabelValues(tool, outcome).Inc()
}

func (ms *MCPServer) handleGeneratePalette(ctx context.Context, req *mcp.CallToolRequest, input generatePaletteInput) (_ *mcp.CallToolResult, _ generatePaletteOutput, err error) {
	defer func() { toolDone(ToolGeneratePalette, err) }()

	c := palette.All
	if name := strings.TrimSpace(input.Category); name != "" {
		resolved, ok := ms.gallery.Generator().Registry().Resolve(name)
		if !ok {
			return nil, generatePaletteOutput{}, fmt.Errorf("%w: %q", palette.ErrUnknownCategory, name)
		}
		c = resolved
	}
	if input.Limit < 0 || input.Limit > maxToolPalettes {
		return nil, generatePaletteOutput{}, fmt.Errorf("limit must be between 0 and %d", maxToolPalettes)
	}

	ps, err := ms.gallery.Gallery(gallery.Request{Category: c, Search: input.Search})
	if err != nil {
		return nil, generatePaletteOutput{}, err
	}
	out := generatePaletteOutput{Title: gallery.Title(c, input.Search), Total: len(ps), Palettes: ps}
	if input.Limit > 0 && len(ps) > input.Limit {
		out.Palettes = ps[:input.Limit]
	}
	if len(ps) == 0 {
		out.Palettes = []palette.Palette{}
		out.Empty, _ = gallery.EmptyMessage(c, input.Search)
	}
	palettesGeneratedTotal.WithLabelValues("mcp").Add(float64(len(out.Palettes)))
	return textResult(out), out, nil
}

func (ms *MCPServer) handleRelatedColors(ctx context.Context, req *mcp.CallToolRequest, input relatedColorsInput) (_ *mcp.CallToolResult, _ colorsOutput, err error) {
	defer func() { toolDone(ToolRelatedColors, err) }()

	base, err := colorspace.Parse(input.Color)
	if err != nil {
		return nil, colorsOutput{}, err
	}
	count := input.Count
	if count == 0 {
		count = defaultRelatedCount
	}
	if count < 1 || count > maxRelatedCount {
		return nil, colorsOutput{}, fmt.Errorf("count must be between 1 and %d", maxRelatedCount)
	}
	out := colorsOutput{Base: base, Colors: harmony.RelatedWith(ms.gallery.Generator().Source(), ms.jitter, base, count)}
	return textResult(out), out, nil
}

func (ms *MCPServer) handleColorShades(ctx context.Context, req *mcp.CallToolRequest, input colorShadesInput) (_ *mcp.CallToolResult, _ colorsOutput, err error) {
	defer func() { toolDone(ToolColorShades, err) }()

	base, err := colorspace.Parse(input.Color)
	if err != nil {
		return nil, colorsOutput{}, err
	}
	out := colorsOutput{Base: base, Colors: harmony.Shades(base)}
	return textResult(out), out, nil
}

func (ms *MCPServer) handlePaletteDetail(ctx context.Context, req *mcp.CallToolRequest, input paletteDetailInput) (_ *mcp.CallToolResult, _ paletteDetailOutput, err error) {
	defer func() { toolDone(ToolPaletteDetail, err) }()

	if len(input.Colors) == 0 || len(input.Colors) > maxExportColors {
		return nil, paletteDetailOutput{}, fmt.Errorf("colors must list 1 to %d hex colors", maxExportColors)
	}
	colors, err := parseColors(input.Colors)
	if err != nil {
		return nil, paletteDetailOutput{}, err
	}
	out := paletteDetailOutput{Ramps: harmony.Ramps(colors), Palettes: harmony.Detail(colors)}
	return textResult(out), out, nil
}

func (ms *MCPServer) handleResolveSearch(ctx context.Context, req *mcp.CallToolRequest, input resolveSearchInput) (_ *mcp.CallToolResult, _ resolveSearchOutput, err error) {
	defer func() { toolDone(ToolResolveSearch, err) }()

	if strings.TrimSpace(input.Term) == "" {
		return nil, resolveSearchOutput{}, fmt.Errorf("term is required")
	}
	res := ms.gallery.Matcher().Resolve(input.Term)
	out := resolveSearchOutput{Term: res.Term, Representative: res.Representative, Found: res.Found}
	if out.Found {
		entry, _ := search.Nearest(out.Representative)
		out.Nearest = entry.Name
	}
	return textResult(out), out, nil
}

func (ms *MCPServer) handleMatchPalette(ctx context.Context, req *mcp.CallToolRequest, input matchPaletteInput) (_ *mcp.CallToolResult, _ matchPaletteOutput, err error) {
	defer func() { toolDone(ToolMatchPalette, err) }()

	colors, err := parseColors(input.Colors)
	if err != nil {
		return nil, matchPaletteOutput{}, err
	}
	out := matchPaletteOutput{Match: ms.gallery.Matcher().ContainsSearch(colors, input.Term)}
	return textResult(out), out, nil
}

// RunStdio serves MCP over stdin/stdout until ctx is cancelled.
func (ms *MCPServer) RunStdio(ctx context.Context) error {
	return ms.server.Run(ctx, &mcp.LoggingTransport{Transport: &mcp.StdioTransport{}, Writer: os.Stderr})
}

// SSEHandler returns the HTTP handler for the SSE transport.
func (ms *MCPServer) SSEHandler() http.Handler {
	return mcp.NewSSEHandler(func(*http.Request) *mcp.Server { return ms.server }, nil)
}

// Server returns the underlying MCP server.
func (ms *MCPServer) Server() *mcp.Server { return ms.server }

func formatJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
