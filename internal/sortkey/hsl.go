package sortkey

import "math"

// HSL converts an 8-bit RGB triplet to hue, saturation and lightness.
//
// Hue is in degrees [0, 360) rounded to two decimals; saturation and
// lightness are in [0, 1]. Greys (max == min) return hue 0 and saturation 0.
//
// Saturation follows the standard piecewise definition:
//
//	L < 0.5:  S = (max-min) / (max+min)
//	L >= 0.5: S = (max-min) / (2 - max - min)
//
// Hue uses the six-way channel-dominance formula.
func HSL(r8, g8, b8 uint8) (h, s, l float32) {
	maxB := max(r8, g8, b8)
	minB := min(r8, g8, b8)

	r := float32(r8) / 255
	g := float32(g8) / 255
	b := float32(b8) / 255
	hi := float32(maxB) / 255
	lo := float32(minB) / 255

	l = (hi + lo) / 2
	delta := hi - lo
	if delta == 0 {
		return 0, 0, l
	}

	if l < 0.5 {
		s = delta / (hi + lo)
	} else {
		s = delta / (2 - hi - lo)
	}

	r2 := ((hi-r)/6 + delta/2) / delta
	g2 := ((hi-g)/6 + delta/2) / delta
	b2 := ((hi-b)/6 + delta/2) / delta

	switch maxB {
	case r8:
		h = b2 - g2
	case g8:
		h = 1.0/3 + r2 - b2
	default:
		h = 2.0/3 + g2 - r2
	}
	if h < 0 {
		h++
	} else if h > 1 {
		h--
	}

	h = float32(math.Round(float64(h*360*100))) / 100
	if h >= 360 {
		h = 0
	}
	return h, s, l
}
