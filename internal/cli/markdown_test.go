package cli

import (
	"strings"
	"testing"
)

func TestDetailMarkdown(t *testing.T) {
	md := DetailMarkdown([]string{"#FF0000", "#0000FF"})

	for _, want := range []string{
		"# Palette Detail",
		"| `#FF0000` | red |",
		"| `#0000FF` | blue |",
		"- **Complementary 1**",
		"- **Monochromatic 2**",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRenderMarkdownPlain(t *testing.T) {
	out, err := RenderMarkdown("# Title\n\nSome **bold** text.", 60, true)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "bold") {
		t.Errorf("rendered = %q", out)
	}
}
