package colorspace

import "math"

// Weights applied by Distance to the hue, saturation and lightness deltas.
const (
	HueWeight        = 0.5
	SaturationWeight = 0.3
	LightnessWeight  = 0.2
)

// HueDelta returns the circular distance between two hues in degrees, in [0,180].
func HueDelta(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 360-d)
}

// Distance returns the weighted HSL distance between two colors.
// It is symmetric and zero for identical inputs; it is used as a
// thresholded similarity test, not as a true metric.
func Distance(a, b HSL) float64 {
	return HueDelta(a.H, b.H)*HueWeight +
		math.Abs(a.S-b.S)*SaturationWeight +
		math.Abs(a.L-b.L)*LightnessWeight
}

// HexDistance is Distance over two hex colors.
func HexDistance(a, b string) float64 {
	return Distance(HexToHSL(a), HexToHSL(b))
}
