package life

import "math"

// CornerColors holds the four gradient colors in cell space, in the order
// top-left, top-right, bottom-left, bottom-right.
type CornerColors [4]RGBA

// gradientPhases are the fixed hue phase offsets of the four corners.
var gradientPhases = [4]float64{0.2, 0.4, 0.6, 0.8}

const (
	gradientSaturation = 0.5
	gradientLightness  = 0.5
)

// Gradient derives the animated corner colors from elapsed time by rotating
// a base hue at DiscoSpeed cycles per second. It is a pure value; the same
// time always yields the same colors.
type Gradient struct {
	// DiscoSpeed is the hue rotation rate in cycles per second. Must be > 0.
	DiscoSpeed float64
}

// Colors returns the four corner colors at the given time in seconds.
// The result is periodic with period 1/DiscoSpeed; every channel stays in
// [0, 1] and alpha is always 1.
func (g Gradient) Colors(time float64) CornerColors {
	period := 1 / g.DiscoSpeed
	offset := math.Mod(time, period) * g.DiscoSpeed

	var colors CornerColors
	for i, phase := range gradientPhases {
		// HSL wraps hue, so offset+phase needs no explicit mod 1.
		colors[i] = HSL((offset+phase)*360, gradientSaturation, gradientLightness)
	}
	return colors
}
