package cli

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/ansi/kitty"
	"github.com/charmbracelet/x/ansi/sixel"
	"golang.org/x/image/draw"
)

// ErrNoGraphics is returned by Preview when the terminal supports no image
// protocol.
var ErrNoGraphics = errors.New("no graphics protocol available")

// GraphicsProtocol is a terminal image protocol.
type GraphicsProtocol int

const (
	ProtocolNone GraphicsProtocol = iota
	ProtocolSixel
	ProtocolKitty
)

// DetectGraphicsProtocol checks the terminal for image protocol support.
func DetectGraphicsProtocol() GraphicsProtocol {
	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	// Kitty graphics protocol
	if strings.Contains(term, "kitty") || termProgram == "kitty" {
		return ProtocolKitty
	}
	// Ghostty and WezTerm speak kitty graphics too.
	if termProgram == "ghostty" || termProgram == "WezTerm" {
		return ProtocolKitty
	}

	switch termProgram {
	case "iTerm.app", "foot", "mlterm", "contour":
		return ProtocolSixel
	}
	if strings.Contains(term, "xterm") {
		return ProtocolSixel
	}
	return ProtocolNone
}

// Preview draws img inline using the terminal's image protocol, scaled to
// at most maxWidthCells columns.
func Preview(w io.Writer, img image.Image, maxWidthCells int) error {
	return PreviewWith(w, DetectGraphicsProtocol(), img, maxWidthCells)
}

// PreviewWith is Preview with an explicit protocol.
func PreviewWith(w io.Writer, proto GraphicsProtocol, img image.Image, maxWidthCells int) error {
	img = fitWidth(img, maxWidthCells, 8)

	var seq string
	var err error
	switch proto {
	case ProtocolKitty:
		seq, err = encodeKitty(img)
	case ProtocolSixel:
		seq, err = encodeSixel(img)
	default:
		return ErrNoGraphics
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, seq+"\n")
	return err
}

func encodeKitty(img image.Image) (string, error) {
	var buf bytes.Buffer
	err := kitty.EncodeGraphics(&buf, img, &kitty.Options{
		Action:       kitty.TransmitAndPut,
		Format:       kitty.PNG,
		Transmission: kitty.Direct,
		Chunk:        true,
		Quite:        1,
	})
	if err != nil {
		return "", fmt.Errorf("kitty encode: %w", err)
	}
	return buf.String(), nil
}

func encodeSixel(img image.Image) (string, error) {
	var buf bytes.Buffer
	enc := sixel.Encoder{}
	if err := enc.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("sixel encode: %w", err)
	}
	return ansi.SixelGraphics(0, 1, 0, buf.Bytes()), nil
}

// fitWidth scales img down to fit maxWidthCells terminal cells.
func fitWidth(img image.Image, maxWidthCells, cellWidthPx int) image.Image {
	if maxWidthCells <= 0 {
		return img
	}
	maxWidthPx := maxWidthCells * cellWidthPx
	bounds := img.Bounds()
	if bounds.Dx() <= maxWidthPx {
		return img
	}
	ratio := float64(maxWidthPx) / float64(bounds.Dx())
	newH := max(int(float64(bounds.Dy())*ratio), 1)
	resized := image.NewRGBA(image.Rect(0, 0, maxWidthPx, newH))
	draw.BiLinear.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
	return resized
}
