// Package analytics samples category policies and summarizes the colors
// they produce.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/wethinkt/go-palettepro/internal/colorspace"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultSamples is the palette count Sample draws when n is not positive.
const DefaultSamples = 500

// Engine draws palettes from a generator for analysis.
type Engine struct {
	gen *palette.Generator
}

// NewEngine creates an engine over gen. A nil gen uses the default generator.
func NewEngine(gen *palette.Generator) *Engine {
	if gen == nil {
		gen = palette.NewGenerator(nil)
	}
	return &Engine{gen: gen}
}

// ChannelStats summarizes one HSL channel.
type ChannelStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P05    float64 `json:"p05"`
	P95    float64 `json:"p95"`
}

// Report summarizes the colors sampled from one category.
type Report struct {
	Category   string       `json:"category"`
	Palettes   int          `json:"palettes"`
	Colors     int          `json:"colors"`
	Distinct   int          `json:"distinct"`
	Hue        ChannelStats `json:"hue"`
	Saturation ChannelStats `json:"saturation"`
	Lightness  ChannelStats `json:"lightness"`

	// Spread is the mean pairwise distance between colors of one palette.
	Spread float64 `json:"spread"`
}

// Sample draws n palettes of category c and summarizes them.
func (e *Engine) Sample(ctx context.Context, c palette.Category, n int) (Report, error) {
	if n <= 0 {
		n = DefaultSamples
	}

	var hues, sats, lights, spreads []float64
	distinct := make(map[string]struct{})
	for i := range n {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return Report{}, err
			}
		}
		p, err := e.gen.Generate(c)
		if err != nil {
			return Report{}, fmt.Errorf("sample %s: %w", c, err)
		}
		hsls := make([]colorspace.HSL, len(p.Colors))
		for j, hex := range p.Colors {
			hsl := colorspace.HexToHSL(hex)
			hsls[j] = hsl
			hues = append(hues, hsl.H)
			sats = append(sats, hsl.S)
			lights = append(lights, hsl.L)
			distinct[hex] = struct{}{}
		}
		spreads = append(spreads, spread(hsls))
	}

	return Report{
		Category:   string(c),
		Palettes:   n,
		Colors:     len(hues),
		Distinct:   len(distinct),
		Hue:        hueStats(hues),
		Saturation: channelStats(sats),
		Lightness:  channelStats(lights),
		Spread:     stat.Mean(spreads, nil),
	}, nil
}

// SampleAll samples every category in cats.
func (e *Engine) SampleAll(ctx context.Context, cats []palette.Category, n int) ([]Report, error) {
	reports := make([]Report, 0, len(cats))
	for _, c := range cats {
		r, err := e.Sample(ctx, c, n)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func channelStats(xs []float64) ChannelStats {
	if len(xs) == 0 {
		return ChannelStats{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return ChannelStats{
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		P05:    stat.Quantile(0.05, stat.Empirical, sorted, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
}

// hueStats uses the circular mean and deviation; min, max and quantiles
// stay linear over [0,360).
func hueStats(hues []float64) ChannelStats {
	s := channelStats(hues)
	if len(hues) == 0 {
		return s
	}
	sins := make([]float64, len(hues))
	coss := make([]float64, len(hues))
	for i, h := range hues {
		rad := h * math.Pi / 180
		sins[i], coss[i] = math.Sin(rad), math.Cos(rad)
	}
	ms, mc := stat.Mean(sins, nil), stat.Mean(coss, nil)
	s.Mean = colorspace.NormalizeHue(math.Atan2(ms, mc) * 180 / math.Pi)

	r := math.Hypot(ms, mc)
	switch {
	case r >= 1:
		s.StdDev = 0
	case r <= 1e-9:
		s.StdDev = 180
	default:
		s.StdDev = math.Sqrt(-2*math.Log(r)) * 180 / math.Pi
	}
	return s
}

func spread(hsls []colorspace.HSL) float64 {
	var ds []float64
	for i := range hsls {
		for j := i + 1; j < len(hsls); j++ {
			ds = append(ds, colorspace.Distance(hsls[i], hsls[j]))
		}
	}
	if len(ds) == 0 {
		return 0
	}
	return floats.Sum(ds) / float64(len(ds))
}
