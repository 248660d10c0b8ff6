// Package sortkey projects RGBA pixels onto signed integer ranking keys.
//
// Every key is a total, pure function over the 8-bit RGBA domain. Alpha is
// ignored. Ranges:
//
//	Lightness, Hue, Saturation, MaxRGB, MinRGB, WrappedHue,
//	HueSat, LumaSat, Chroma               [0, 255]
//	RG, GB, BR                            [-255, 255]
package sortkey

import (
	"fmt"
	"image/color"

	"github.com/gogpu/collage/internal/enumtext"
)

// Func maps a pixel to its ranking key.
type Func func(c color.NRGBA) int16

// Key selects a ranking function.
type Key uint8

const (
	Lightness Key = iota
	Hue
	Saturation
	MaxRGB
	MinRGB
	RG
	GB
	BR
	WrappedHue
	HueSat
	LumaSat
	Chroma

	keyCount
)

var keyNames = [keyCount]string{
	Lightness:  "Lightness",
	Hue:        "Hue",
	Saturation: "Saturation",
	MaxRGB:     "MaxRgb",
	MinRGB:     "MinRgb",
	RG:         "Rg",
	GB:         "Gb",
	BR:         "Br",
	WrappedHue: "WrappedHue",
	HueSat:     "HueSat",
	LumaSat:    "LumaSat",
	Chroma:     "Chroma",
}

var keyFuncs = [keyCount]Func{
	Lightness:  Luma,
	Hue:        HueKey,
	Saturation: SatKey,
	MaxRGB:     MaxChannel,
	MinRGB:     MinChannel,
	RG:         RedMinusGreen,
	GB:         GreenMinusBlue,
	BR:         BlueMinusRed,
	WrappedHue: WrappedHueKey,
	HueSat:     HueSatKey,
	LumaSat:    LumaSatKey,
	Chroma:     ChromaKey,
}

// Keys returns every key in declaration order.
func Keys() []Key {
	out := make([]Key, keyCount)
	for i := range out {
		out[i] = Key(i)
	}
	return out
}

// Valid reports whether k names a ranking function.
func (k Key) Valid() bool { return k < keyCount }

// String returns the persisted name of k.
func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", uint8(k))
	}
	return keyNames[k]
}

// Func returns the ranking function for k. It panics for an invalid key.
func (k Key) Func() Func {
	if !k.Valid() {
		panic(fmt.Sprintf("sortkey: invalid key %d", uint8(k)))
	}
	return keyFuncs[k]
}

// Rec. 709 luma weights scaled to integers, as used for 8-bit luma
// conversion by common image libraries.
const (
	lumaR   = 2126
	lumaG   = 7152
	lumaB   = 722
	lumaDiv = 10000
)

// Luma returns perceptual brightness.
func Luma(c color.NRGBA) int16 {
	l := (lumaR*uint32(c.R) + lumaG*uint32(c.G) + lumaB*uint32(c.B)) / lumaDiv
	return int16(l)
}

// HueKey returns HSL hue rescaled from [0, 360) to [0, 255).
func HueKey(c color.NRGBA) int16 {
	h, _, _ := HSL(c.R, c.G, c.B)
	return int16(h / 360 * 255)
}

// SatKey returns HSL saturation scaled to [0, 255].
func SatKey(c color.NRGBA) int16 {
	_, s, _ := HSL(c.R, c.G, c.B)
	return int16(s * 255)
}

// MaxChannel returns the largest of R, G and B.
func MaxChannel(c color.NRGBA) int16 {
	return int16(max(c.R, c.G, c.B))
}

// MinChannel returns the smallest of R, G and B.
func MinChannel(c color.NRGBA) int16 {
	return int16(min(c.R, c.G, c.B))
}

// RedMinusGreen returns R - G.
func RedMinusGreen(c color.NRGBA) int16 { return int16(c.R) - int16(c.G) }

// GreenMinusBlue returns G - B.
func GreenMinusBlue(c color.NRGBA) int16 { return int16(c.G) - int16(c.B) }

// BlueMinusRed returns B - R.
func BlueMinusRed(c color.NRGBA) int16 { return int16(c.B) - int16(c.R) }

// WrappedHueKey returns the shortest angular distance from hue 0 (red),
// rescaled from [0, 180] to [0, 255]. Hues either side of red rank together.
func WrappedHueKey(c color.NRGBA) int16 {
	h, _, _ := HSL(c.R, c.G, c.B)
	d := min(h, 360-h)
	return int16(d / 180 * 255)
}

// HueSatKey returns hue weighted by saturation, so greys rank lowest.
func HueSatKey(c color.NRGBA) int16 {
	return int16(int32(HueKey(c)) * int32(SatKey(c)) / 255)
}

// LumaSatKey returns luma weighted by saturation.
func LumaSatKey(c color.NRGBA) int16 {
	return int16(int32(Luma(c)) * int32(SatKey(c)) / 255)
}

// ChromaKey returns max(R,G,B) - min(R,G,B).
func ChromaKey(c color.NRGBA) int16 {
	return MaxChannel(c) - MinChannel(c)
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return enumtext.Marshal("sort key", k, Keys())
}

// UnmarshalText implements encoding.TextUnmarshaler. Names match
// case-insensitively.
func (k *Key) UnmarshalText(b []byte) error {
	v, err := enumtext.Parse("sort key", string(b), Keys())
	if err != nil {
		return err
	}
	*k = v
	return nil
}
