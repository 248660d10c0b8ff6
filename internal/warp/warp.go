// Package warp displaces pixels along noise-driven polar offsets.
//
// For every destination pixel the engine reads a scalar from a reference
// image, uses it to shift the lookup into two fractal noise fields (one for
// the angle, one for the radius), and samples the source image at the
// resulting offset. Coordinates that leave the frame are mirrored back in.
package warp

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/collage/internal/enumtext"
	"github.com/gogpu/collage/internal/noise"
	"github.com/gogpu/collage/internal/parallel"
)

// Channel selects the scalar read from the reference image.
type Channel uint8

const (
	// Lightness is CIE L*.
	Lightness Channel = iota
	// OpponentA is the green-red axis a*.
	OpponentA
	// OpponentB is the blue-yellow axis b*.
	OpponentB

	channelCount
)

var channelNames = [channelCount]string{
	Lightness: "Lightness",
	OpponentA: "OpponentA",
	OpponentB: "OpponentB",
}

// Channels returns every channel in declaration order.
func Channels() []Channel {
	out := make([]Channel, channelCount)
	for i := range out {
		out[i] = Channel(i)
	}
	return out
}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool { return c < channelCount }

func (c Channel) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Channel(%d)", uint8(c))
	}
	return channelNames[c]
}

// Project maps col to [0, 1] through CIE L*a*b* (D65). L* is used as is;
// a* and b* are shifted from [-1, 1] and clamped.
func (c Channel) Project(col color.NRGBA) float64 {
	l, a, b := colorful.Color{
		R: float64(col.R) / 255,
		G: float64(col.G) / 255,
		B: float64(col.B) / 255,
	}.Lab()

	switch c {
	case Lightness:
		return clamp01(l)
	case OpponentA:
		return clamp01((a + 1) / 2)
	case OpponentB:
		return clamp01((b + 1) / 2)
	}
	panic(fmt.Sprintf("warp: invalid channel %d", uint8(c)))
}

// Options configures an Engine.
type Options struct {
	AngleScale   float64
	AngleFactor  float64
	RadiusScale  float64
	RadiusFactor float64
	Channel      Channel
	Octaves      int
}

// Engine maps destination pixels to source positions.
// It is immutable and safe for concurrent use.
type Engine struct {
	opts   Options
	angle  noise.Sampler
	radius noise.Sampler
	width  int
	height int
}

// New builds an engine for a width×height frame. The angle field is seeded
// with seed and the radius field with seed+1.
func New(opts Options, seed uint64, width, height int) *Engine {
	return &Engine{
		opts:   opts,
		angle:  noise.NewFbm(seed, opts.Octaves),
		radius: noise.NewFbm(seed+1, opts.Octaves),
		width:  width,
		height: height,
	}
}

// Source returns the source pixel sampled for destination (x, y) when the
// reference scalar there is p.
func (e *Engine) Source(x, y int, p float64) (int, int) {
	u := float64(x) / float64(e.width)
	v := float64(y) / float64(e.height)

	o := e.opts
	theta := o.AngleFactor * e.angle.Sample(o.AngleScale*u+p, o.AngleScale*v+p)
	r := o.RadiusFactor * e.radius.Sample(o.RadiusScale*u+p, o.RadiusScale*v+p)

	sx := float64(x) + r*math.Cos(theta)
	sy := float64(y) + r*math.Sin(theta)
	return Reflect(sx, e.width), Reflect(sy, e.height)
}

// Render warps src using ref as the reference image. Both must match the
// engine's frame size.
func (e *Engine) Render(ref, src *image.NRGBA, pool *parallel.Pool) *image.NRGBA {
	for _, img := range []*image.NRGBA{ref, src} {
		if img.Rect.Dx() != e.width || img.Rect.Dy() != e.height {
			panic(fmt.Sprintf("warp: image %dx%d does not match frame %dx%d",
				img.Rect.Dx(), img.Rect.Dy(), e.width, e.height))
		}
	}

	out := image.NewNRGBA(image.Rect(0, 0, e.width, e.height))
	ch := e.opts.Channel
	pool.Rows(e.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := range e.width {
				i := y*ref.Stride + x*4
				p := ch.Project(color.NRGBA{R: ref.Pix[i], G: ref.Pix[i+1], B: ref.Pix[i+2], A: ref.Pix[i+3]})
				sx, sy := e.Source(x, y, p)
				j := sy*src.Stride + sx*4
				copy(out.Pix[y*out.Stride+x*4:y*out.Stride+x*4+4], src.Pix[j:j+4])
			}
		}
	})
	return out
}

// Reflect rounds v to the nearest integer and mirrors it into [0, n-1]
// with period 2(n-1): -1 maps to 1, n maps to n-2. Non-finite input maps
// to 0, as does every input when n <= 1.
func Reflect(v float64, n int) int {
	if n <= 1 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	period := float64(2 * (n - 1))
	m := math.Mod(math.Round(v), period)
	if m < 0 {
		m += period
	}
	i := int(m)
	if i > n-1 {
		i = 2*(n-1) - i
	}
	return i
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

// MarshalText implements encoding.TextMarshaler.
func (c Channel) MarshalText() ([]byte, error) {
	return enumtext.Marshal("warp channel", c, Channels())
}

// UnmarshalText implements encoding.TextUnmarshaler. Names match
// case-insensitively.
func (c *Channel) UnmarshalText(b []byte) error {
	v, err := enumtext.Parse("warp channel", string(b), Channels())
	if err != nil {
		return err
	}
	*c = v
	return nil
}
