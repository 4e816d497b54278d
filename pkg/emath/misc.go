package emath

import "math"

// Some functions that only operate on basic types, that are useful

// RoundTo rounds f to the given number of decimal places, halves away from zero.
func RoundTo(f float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(f * scale) / scale
}

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// `f` is assumed to be in the range [0,1]
func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}
