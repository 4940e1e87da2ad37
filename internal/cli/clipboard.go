package cli

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/wethinkt/go-palettepro/internal/palette"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// ClipboardAvailable reports whether a system clipboard can be written.
func ClipboardAvailable() bool {
	return !clipboard.Unsupported
}

// CopyText places text on the system clipboard.
func CopyText(text string) error {
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// CopyPalette places the palette's colors on the clipboard joined by ", "
// and returns the copied text.
func CopyPalette(p palette.Palette) (string, error) {
	text := p.String()
	return text, CopyText(text)
}
