package collage

import (
	"fmt"

	"github.com/gogpu/collage/internal/blend"
	"github.com/gogpu/collage/internal/enumtext"
	"github.com/gogpu/collage/internal/pixelsort"
	"github.com/gogpu/collage/internal/sortkey"
	"github.com/gogpu/collage/internal/warp"
)

// Combine selects how the two images are merged.
type Combine uint8

const (
	// Blend mixes every pixel pair with a blend mode.
	Blend Combine = iota
	// Divide picks each pixel from one image or the other by thresholding
	// a noise field.
	Divide
	// Mix blends in both stacking orders and picks between them with a
	// noise field.
	Mix
	// Warp displaces the second image by noise driven by the first.
	Warp
	// Unsort rearranges the second image by the order found when sorting
	// the first.
	Unsort
	// Sort pixel-sorts the first image.
	Sort

	combineCount
)

var combineNames = [combineCount]string{
	Blend:  "Blend",
	Divide: "Divide",
	Mix:    "Mix",
	Warp:   "Warp",
	Unsort: "Unsort",
	Sort:   "Sort",
}

// Combines returns every combine mode in declaration order.
func Combines() []Combine {
	out := make([]Combine, combineCount)
	for i := range out {
		out[i] = Combine(i)
	}
	return out
}

func (c Combine) String() string {
	if c >= combineCount {
		return fmt.Sprintf("Combine(%d)", uint8(c))
	}
	return combineNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c Combine) MarshalText() ([]byte, error) {
	return enumtext.Marshal("combine", c, Combines())
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Combine) UnmarshalText(b []byte) error {
	v, err := enumtext.Parse("combine", string(b), Combines())
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// LineColor is the colour of overlay lines.
type LineColor uint8

const (
	Black LineColor = iota
	White
)

// LineColors returns both line colours.
func LineColors() []LineColor { return []LineColor{Black, White} }

func (c LineColor) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return fmt.Sprintf("LineColor(%d)", uint8(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c LineColor) MarshalText() ([]byte, error) {
	return enumtext.Marshal("line color", c, LineColors())
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *LineColor) UnmarshalText(b []byte) error {
	v, err := enumtext.Parse("line color", string(b), LineColors())
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// BlendMode is a separable blend mode evaluated in linear light.
type BlendMode = blend.Mode

const (
	Normal     = blend.Normal
	Multiply   = blend.Multiply
	Screen     = blend.Screen
	Overlay    = blend.Overlay
	Darken     = blend.Darken
	Lighten    = blend.Lighten
	Dodge      = blend.Dodge
	Burn       = blend.Burn
	HardLight  = blend.HardLight
	SoftLight  = blend.SoftLight
	Difference = blend.Difference
	Exclusion  = blend.Exclusion
)

// SortKey selects the pixel ranking used by Sort and Unsort.
type SortKey = sortkey.Key

const (
	SortLightness  = sortkey.Lightness
	SortHue        = sortkey.Hue
	SortSaturation = sortkey.Saturation
	SortMaxRGB     = sortkey.MaxRGB
	SortMinRGB     = sortkey.MinRGB
	SortRG         = sortkey.RG
	SortGB         = sortkey.GB
	SortBR         = sortkey.BR
	SortWrappedHue = sortkey.WrappedHue
	SortHueSat     = sortkey.HueSat
	SortLumaSat    = sortkey.LumaSat
	SortChroma     = sortkey.Chroma
)

// SortAxis selects the sort passes.
type SortAxis = pixelsort.Axis

const (
	SortRow           = pixelsort.Row
	SortColumn        = pixelsort.Column
	SortRowThenColumn = pixelsort.RowThenColumn
	SortColumnThenRow = pixelsort.ColumnThenRow
)

// SortOrder is a sort direction.
type SortOrder = pixelsort.Order

const (
	Ascending  = pixelsort.Ascending
	Descending = pixelsort.Descending
)

// WarpChannel selects the reference scalar that drives Warp.
type WarpChannel = warp.Channel

const (
	WarpLightness = warp.Lightness
	WarpOpponentA = warp.OpponentA
	WarpOpponentB = warp.OpponentB
)
