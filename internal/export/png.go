package export

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wethinkt/go-palettepro/internal/colorspace"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Default PNG dimensions.
const (
	DefaultWidth  = 800
	DefaultHeight = 200
)

// PNG encodes the swatch strip of colors to w.
func PNG(w io.Writer, colors []string, opts Options) error {
	return png.Encode(w, Image(colors, opts))
}

// Image draws colors as equal-width vertical swatches.
func Image(colors []string, opts Options) *image.RGBA {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if len(colors) == 0 {
		return img
	}

	if opts.Gradient && len(colors) > 1 {
		drawGradient(img, colors)
	} else {
		n := len(colors)
		for i, c := range colors {
			x0, x1 := i*width/n, (i+1)*width/n
			fill := image.NewUniform(rgba(c))
			draw.Draw(img, image.Rect(x0, 0, x1, height), fill, image.Point{}, draw.Src)
		}
	}

	if opts.Labels {
		drawLabels(img, colors)
	}
	return img
}

// drawGradient blends between swatch centers in HCL space.
func drawGradient(img *image.RGBA, colors []string) {
	b := img.Bounds()
	n := len(colors)
	stops := make([]colorful.Color, n)
	for i, c := range colors {
		stops[i] = colorspace.Colorful(c)
	}
	seg := float64(b.Dx()) / float64(n)
	for x := b.Min.X; x < b.Max.X; x++ {
		pos := (float64(x)+0.5)/seg - 0.5
		var c colorful.Color
		switch {
		case pos <= 0:
			c = stops[0]
		case pos >= float64(n-1):
			c = stops[n-1]
		default:
			i := int(pos)
			c = stops[i].BlendHcl(stops[i+1], pos-float64(i)).Clamped()
		}
		r, g, bl := c.RGB255()
		col := color.RGBA{R: r, G: g, B: bl, A: 0xFF}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			img.SetRGBA(x, y, col)
		}
	}
}

// Gradient returns steps colors blended evenly through colors in HCL space.
func Gradient(colors []string, steps int) []string {
	if len(colors) == 0 || steps <= 0 {
		return nil
	}
	if len(colors) == 1 || steps == 1 {
		out := make([]string, steps)
		for i := range out {
			out[i] = colorspace.Normalize(colors[0])
		}
		return out
	}
	out := make([]string, 0, steps)
	last := float64(len(colors) - 1)
	for s := range steps {
		pos := float64(s) / float64(steps-1) * last
		i := int(pos)
		if i >= len(colors)-1 {
			out = append(out, colorspace.Normalize(colors[len(colors)-1]))
			continue
		}
		a, b := colorspace.Colorful(colors[i]), colorspace.Colorful(colors[i+1])
		out = append(out, colorspace.FromColorful(a.BlendHcl(b, pos-float64(i))))
	}
	return out
}

func drawLabels(img *image.RGBA, colors []string) {
	face := basicfont.Face7x13
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	n := len(colors)
	for i, c := range colors {
		label := colorspace.Normalize(c)
		x0, x1 := i*width/n, (i+1)*width/n
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(rgba(colorspace.ContrastColor(c))),
			Face: face,
		}
		adv := d.MeasureString(label).Ceil()
		x := x0 + (x1-x0-adv)/2
		d.Dot = fixed.P(x, height-face.Descent-8)
		d.DrawString(label)
	}
}

func rgba(hex string) color.RGBA {
	r, g, b := colorspace.HexToRGB(hex)
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xFF}
}
