// Package color converts between 8-bit sRGB and linear-light intensities.
//
// Decoding uses a 256-entry lookup table built at init; encoding evaluates
// the sRGB transfer function exactly and rounds, so Encode(Decode(v)) == v
// for every byte. Alpha is never gamma-encoded and does not pass through
// this package.
//
// References:
//   - sRGB specification: https://www.w3.org/Graphics/Color/sRGB
//   - GPU Gems 3, Chapter 24: "The Importance of Being Linear"
package color

import "math"

// decodeLUT maps an sRGB byte to linear light in [0, 1].
var decodeLUT [256]float64

func init() {
	for i := range decodeLUT {
		decodeLUT[i] = ToLinear(float64(i) / 255)
	}
}

// ToLinear applies the sRGB EOTF to s in [0, 1].
func ToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// ToSRGB applies the sRGB OETF to l in [0, 1].
func ToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

// Decode converts an sRGB byte to linear light.
func Decode(s uint8) float64 {
	return decodeLUT[s]
}

// Encode converts linear light to an sRGB byte, clamping l to [0, 1] and
// rounding to nearest.
func Encode(l float64) uint8 {
	if !(l > 0) { // also catches NaN
		return 0
	}
	if l >= 1 {
		return 255
	}
	return uint8(ToSRGB(l)*255 + 0.5)
}

// Unit converts a byte to [0, 1].
func Unit(v uint8) float64 {
	return float64(v) / 255
}

// Byte converts v in [0, 1] to a byte with clamping and rounding.
func Byte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
