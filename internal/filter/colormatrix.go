package filter

import (
	"image"
	"math"

	"github.com/gogpu/collage/internal/parallel"
)

// ColorMatrix is a 4x5 colour transformation in row-major order:
//
//	[R']   [m0  m1  m2  m3  m4 ]   [R]
//	[G'] = [m5  m6  m7  m8  m9 ] * [G]
//	[B']   [m10 m11 m12 m13 m14]   [B]
//	[A']   [m15 m16 m17 m18 m19]   [A]
//	                               [1]
//
// Channels are straight-alpha bytes in [0, 255]; the fifth column is a
// bias in the same units. Results are clamped and rounded.
type ColorMatrix [20]float32

// Identity returns the matrix that leaves every pixel unchanged.
func Identity() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Luminance weights of the SVG feColorMatrix hueRotate definition.
const (
	lumR = 0.213
	lumG = 0.715
	lumB = 0.072
)

// HueRotate rotates hue by degrees around the luminance axis. Greys are
// preserved because every row sums to one.
func HueRotate(degrees float64) ColorMatrix {
	rad := math.Mod(degrees, 360) * math.Pi / 180
	c := float32(math.Cos(rad))
	s := float32(math.Sin(rad))

	return ColorMatrix{
		lumR + c*(1-lumR) - s*lumR, lumG - c*lumG - s*lumG, lumB - c*lumB + s*(1-lumB), 0, 0,
		lumR - c*lumR + s*0.143, lumG + c*(1-lumG) + s*0.140, lumB - c*lumB - s*0.283, 0, 0,
		lumR - c*lumR - s*(1-lumR), lumG - c*lumG + s*lumG, lumB + c*(1-lumB) + s*lumB, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Opacity scales alpha by factor.
func Opacity(factor float64) ColorMatrix {
	m := Identity()
	m[18] = float32(factor)
	return m
}

// Then returns the matrix that applies m followed by n.
func (m ColorMatrix) Then(n ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for r := range 4 {
		for c := range 5 {
			var v float32
			for k := range 4 {
				v += n[r*5+k] * m[k*5+c]
			}
			if c == 4 {
				v += n[r*5+4]
			}
			out[r*5+c] = v
		}
	}
	return out
}

// Transform applies m to one pixel.
func (m ColorMatrix) Transform(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
	fr, fg, fb, fa := float32(r), float32(g), float32(b), float32(a)
	return clampUint8(m[0]*fr + m[1]*fg + m[2]*fb + m[3]*fa + m[4]),
		clampUint8(m[5]*fr + m[6]*fg + m[7]*fb + m[8]*fa + m[9]),
		clampUint8(m[10]*fr + m[11]*fg + m[12]*fb + m[13]*fa + m[14]),
		clampUint8(m[15]*fr + m[16]*fg + m[17]*fb + m[18]*fa + m[19])
}

// Apply transforms every pixel of src into dst, which must have the same
// bounds. dst may alias src.
func (m ColorMatrix) Apply(dst, src *image.NRGBA, pool *parallel.Pool) {
	w := src.Rect.Dx()
	pool.Rows(src.Rect.Dy(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			in := src.Pix[y*src.Stride : y*src.Stride+w*4]
			out := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
			for i := 0; i < len(in); i += 4 {
				out[i], out[i+1], out[i+2], out[i+3] = m.Transform(in[i], in[i+1], in[i+2], in[i+3])
			}
		}
	})
}
