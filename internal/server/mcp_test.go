package server

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wethinkt/go-palettepro/internal/gallery"
	"github.com/wethinkt/go-palettepro/internal/harmony"
	"github.com/wethinkt/go-palettepro/internal/palette"
)

func newTestMCPServer(allow, deny []string) *MCPServer {
	gen := palette.NewGenerator(rand.New(rand.NewPCG(3, 4)))
	return NewMCPServerWithFilters(gallery.NewBuilder(gen, nil), harmony.Jitter{}, allow, deny)
}

func connect(t *testing.T, ms *MCPServer) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	ct, st := mcp.NewInMemoryTransports()
	if _, err := ms.server.Connect(ctx, st, nil); err != nil {
		t.Fatalf("server.Connect: %v", err)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	if err != nil {
		t.Fatalf("client.Connect: %v", err)
	}
	t.Cleanup(func() { cs.Close() })
	return cs
}

// callTool invokes an MCP tool by name through an in-memory session.
func callTool(t *testing.T, ms *MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	result, err := connect(t, ms).CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s) error: %v", name, err)
	}
	return result
}

// parseToolResult extracts the JSON text from a CallToolResult and unmarshals it into v.
func parseToolResult(t *testing.T, result *mcp.CallToolResult, v any) {
	t.Helper()
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	if len(result.Content) == 0 {
		t.Fatal("empty result content")
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	if err := json.Unmarshal([]byte(tc.Text), v); err != nil {
		t.Fatalf("unmarshal result: %v\nraw: %s", err, tc.Text)
	}
}

func toolErrorText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if !result.IsError {
		t.Fatal("expected IsError=true")
	}
	if len(result.Content) == 0 {
		t.Fatal("expected error content")
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func TestMCP_ListTools(t *testing.T) {
	cs := connect(t, newTestMCPServer(nil, nil))
	res, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, tool := range res.Tools {
		got = append(got, tool.Name)
	}
	slices.Sort(got)
	want := slices.Clone(ToolNames)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("tools = %v, want %v", got, want)
	}
}

func TestMCP_ToolFilters(t *testing.T) {
	cs := connect(t, newTestMCPServer([]string{ToolColorShades, ToolMatchPalette}, []string{ToolMatchPalette}))
	res, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tools) != 1 || res.Tools[0].Name != ToolColorShades {
		t.Errorf("filtered tools = %v", res.Tools)
	}
}

func TestMCP_GeneratePalette(t *testing.T) {
	ms := newTestMCPServer(nil, nil)

	var out generatePaletteOutput
	parseToolResult(t, callTool(t, ms, ToolGeneratePalette, map[string]any{"category": "warm"}), &out)
	if out.Total != 24 || len(out.Palettes) != 24 || out.Title != "Warm Gradients" {
		t.Errorf("warm: total=%d len=%d title=%q", out.Total, len(out.Palettes), out.Title)
	}

	parseToolResult(t, callTool(t, ms, ToolGeneratePalette, map[string]any{"limit": 5}), &out)
	if out.Total != 31 || len(out.Palettes) != 5 {
		t.Errorf("limited: total=%d len=%d", out.Total, len(out.Palettes))
	}
}

func TestMCP_GeneratePalette_UnknownCategory(t *testing.T) {
	text := toolErrorText(t, callTool(t, newTestMCPServer(nil, nil), ToolGeneratePalette, map[string]any{"category": "plaid"}))
	if !strings.Contains(text, "unknown category") {
		t.Errorf("error text = %q", text)
	}
}

func TestMCP_RelatedColors(t *testing.T) {
	var out colorsOutput
	parseToolResult(t, callTool(t, newTestMCPServer(nil, nil), ToolRelatedColors, map[string]any{"color": "#3366cc", "count": 3}), &out)
	if out.Base != "#3366CC" || len(out.Colors) != 3 || out.Colors[0] != "#3366CC" {
		t.Errorf("related = %+v", out)
	}

	toolErrorText(t, callTool(t, newTestMCPServer(nil, nil), ToolRelatedColors, map[string]any{"color": "#3366cc", "count": 1000}))
}

func TestMCP_ColorShades(t *testing.T) {
	ms := newTestMCPServer(nil, nil)

	var out colorsOutput
	parseToolResult(t, callTool(t, ms, ToolColorShades, map[string]any{"color": "3366CC"}), &out)
	if len(out.Colors) != len(harmony.ShadeSteps)-1 {
		t.Errorf("got %d shades", len(out.Colors))
	}

	text := toolErrorText(t, callTool(t, ms, ToolColorShades, map[string]any{"color": "zzz"}))
	if !strings.Contains(text, "invalid color") {
		t.Errorf("error text = %q", text)
	}
}

func TestMCP_PaletteDetail(t *testing.T) {
	var out paletteDetailOutput
	parseToolResult(t, callTool(t, newTestMCPServer(nil, nil), ToolPaletteDetail, map[string]any{
		"colors": []string{"#FF0000", "#00FF00"},
	}), &out)
	if len(out.Ramps) != 2 || len(out.Palettes) != 6 {
		t.Errorf("detail: %d ramps, %d palettes", len(out.Ramps), len(out.Palettes))
	}
}

func TestMCP_ResolveSearch(t *testing.T) {
	ms := newTestMCPServer(nil, nil)

	var out resolveSearchOutput
	parseToolResult(t, callTool(t, ms, ToolResolveSearch, map[string]any{"term": "Grey"}), &out)
	if !out.Found || out.Representative != "#808080" || out.Nearest != "gray" {
		t.Errorf("resolve = %+v", out)
	}

	parseToolResult(t, callTool(t, ms, ToolResolveSearch, map[string]any{"term": "sky"}), &out)
	if out.Found || out.Nearest != "" {
		t.Errorf("resolve sky = %+v, want not found", out)
	}
}

func TestMCP_MatchPalette(t *testing.T) {
	ms := newTestMCPServer(nil, nil)

	var out matchPaletteOutput
	parseToolResult(t, callTool(t, ms, ToolMatchPalette, map[string]any{
		"colors": []string{"#FF0000", "#FFFFFF"},
		"term":   "red",
	}), &out)
	if !out.Match {
		t.Error("red palette should match red")
	}

	parseToolResult(t, callTool(t, ms, ToolMatchPalette, map[string]any{
		"colors": []string{"#0000FF"},
		"term":   "",
	}), &out)
	if out.Match {
		t.Error("empty term should never match")
	}
}
