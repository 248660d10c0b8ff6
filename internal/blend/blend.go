// Package blend combines two straight-alpha pixels with photographic blend
// modes evaluated in linear light.
//
// Both inputs are decoded from sRGB to linear intensities, the per-channel
// blend function B(Cb, Cs) is applied, and the result is composited with
// the general W3C formula
//
//	co = (1 - ab)·as·Cs + as·ab·B(Cb, Cs) + (1 - as)·ab·Cb
//	ao = as + ab·(1 - as)
//
// before dividing by ao and re-encoding to sRGB. Alpha is never
// gamma-encoded.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
//   - GPU Gems 3: "The Importance of Being Linear"
package blend

import (
	"fmt"
	stdcolor "image/color"

	"github.com/gogpu/collage/internal/color"
	"github.com/gogpu/collage/internal/enumtext"
)

// Mode is a separable blend mode.
type Mode uint8

const (
	Normal     Mode = iota // Cs
	Multiply               // Cb * Cs
	Screen                 // Cb + Cs - Cb*Cs
	Overlay                // HardLight with swapped layers
	Darken                 // min(Cb, Cs)
	Lighten                // max(Cb, Cs)
	Dodge                  // Cb / (1 - Cs)
	Burn                   // 1 - (1 - Cb) / Cs
	HardLight              // Multiply or Screen depending on source
	SoftLight              // Soft version of HardLight
	Difference             // |Cb - Cs|
	Exclusion              // Cb + Cs - 2*Cb*Cs

	modeCount
)

var modeNames = [modeCount]string{
	Normal:     "Normal",
	Multiply:   "Multiply",
	Screen:     "Screen",
	Overlay:    "Overlay",
	Darken:     "Darken",
	Lighten:    "Lighten",
	Dodge:      "Dodge",
	Burn:       "Burn",
	HardLight:  "HardLight",
	SoftLight:  "SoftLight",
	Difference: "Difference",
	Exclusion:  "Exclusion",
}

// Modes returns every mode in declaration order.
func Modes() []Mode {
	out := make([]Mode, modeCount)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m < modeCount }

// String returns the persisted name of m.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// Commutative reports whether B(Cb, Cs) == B(Cs, Cb) for all inputs, so that
// swapping source and backdrop of two opaque pixels cannot change the result.
func (m Mode) Commutative() bool {
	switch m {
	case Multiply, Screen, Darken, Lighten, Difference, Exclusion:
		return true
	}
	return false
}

// Func is a per-channel blend function on linear intensities in [0, 1].
type Func func(cb, cs float64) float64

// FuncFor returns the channel function for m. It panics for an invalid
// mode: callers validate modes at configuration time.
func FuncFor(m Mode) Func {
	switch m {
	case Normal:
		return normal
	case Multiply:
		return multiply
	case Screen:
		return screen
	case Overlay:
		return overlay
	case Darken:
		return darken
	case Lighten:
		return lighten
	case Dodge:
		return dodge
	case Burn:
		return burn
	case HardLight:
		return hardLight
	case SoftLight:
		return softLight
	case Difference:
		return difference
	case Exclusion:
		return exclusion
	}
	panic(fmt.Sprintf("blend: invalid mode %d", uint8(m)))
}

// Blend composites src onto dst (the backdrop) with mode m.
func Blend(src, dst stdcolor.NRGBA, m Mode) stdcolor.NRGBA {
	return composite(src, dst, FuncFor(m))
}

// composite applies the general compositing formula for fn.
func composite(src, dst stdcolor.NRGBA, fn Func) stdcolor.NRGBA {
	as := color.Unit(src.A)
	ab := color.Unit(dst.A)
	ao := as + ab*(1-as)
	if ao == 0 {
		return stdcolor.NRGBA{}
	}

	both := as * ab
	onlySrc := as * (1 - ab)
	onlyDst := ab * (1 - as)

	channel := func(s, d uint8) uint8 {
		cs := color.Decode(s)
		cb := color.Decode(d)
		co := (onlySrc*cs + both*fn(cb, cs) + onlyDst*cb) / ao
		return color.Encode(co)
	}

	return stdcolor.NRGBA{
		R: channel(src.R, dst.R),
		G: channel(src.G, dst.G),
		B: channel(src.B, dst.B),
		A: color.Byte(ao),
	}
}

// Span blends len(dst)/4 NRGBA pixels of src onto bg and stores the result
// in dst. All three slices must have the same length; dst may alias bg.
func Span(dst, src, bg []uint8, m Mode) {
	fn := FuncFor(m)
	for i := 0; i+3 < len(dst); i += 4 {
		s := stdcolor.NRGBA{R: src[i], G: src[i+1], B: src[i+2], A: src[i+3]}
		b := stdcolor.NRGBA{R: bg[i], G: bg[i+1], B: bg[i+2], A: bg[i+3]}
		o := composite(s, b, fn)
		dst[i+0] = o.R
		dst[i+1] = o.G
		dst[i+2] = o.B
		dst[i+3] = o.A
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return enumtext.Marshal("blend mode", m, Modes())
}

// UnmarshalText implements encoding.TextUnmarshaler. Names match
// case-insensitively.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := enumtext.Parse("blend mode", string(b), Modes())
	if err != nil {
		return err
	}
	*m = v
	return nil
}
