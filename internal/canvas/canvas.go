// Package canvas is a premultiplied-alpha RGBA surface used for the last
// stages of a render: overlay lines, film grain and conversion back to
// straight alpha.
package canvas

import (
	"image"
	"image/color"

	"github.com/gogpu/collage/internal/parallel"
)

// Canvas is a premultiplied RGBA8 pixel buffer.
type Canvas struct {
	width  int
	height int
	data   []uint8 // premultiplied RGBA, 4 bytes per pixel
}

// New returns a transparent w×h canvas.
func New(w, h int) *Canvas {
	return &Canvas{
		width:  w,
		height: h,
		data:   make([]uint8, w*h*4),
	}
}

// FromNRGBA premultiplies img into a new canvas.
func FromNRGBA(img *image.NRGBA, pool *parallel.Pool) *Canvas {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	c := New(w, h)
	pool.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			in := img.Pix[y*img.Stride : y*img.Stride+w*4]
			out := c.data[y*w*4 : (y+1)*w*4]
			for i := 0; i < len(in); i += 4 {
				a := uint32(in[i+3])
				out[i+0] = premul(in[i+0], a)
				out[i+1] = premul(in[i+1], a)
				out[i+2] = premul(in[i+2], a)
				out[i+3] = uint8(a)
			}
		}
	})
	return c
}

func premul(v uint8, a uint32) uint8 {
	return uint8((uint32(v)*a + 127) / 255)
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int { return c.width }

// Height returns the height of the canvas.
func (c *Canvas) Height() int { return c.height }

// Data returns the raw premultiplied pixel data.
func (c *Canvas) Data() []uint8 { return c.data }

// At returns the premultiplied pixel at (x, y), or transparent outside the
// canvas.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return color.RGBA{}
	}
	i := (y*c.width + x) * 4
	return color.RGBA{R: c.data[i], G: c.data[i+1], B: c.data[i+2], A: c.data[i+3]}
}

// blendPixel composites the straight colour col at coverage cov (in
// [0, 1]) over the pixel at (x, y) with source-over.
func (c *Canvas) blendPixel(x, y int, col color.NRGBA, cov float64) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height || cov <= 0 {
		return
	}
	a := cov * float64(col.A) / 255
	if a <= 0 {
		return
	}
	inv := 1 - a
	i := (y*c.width + x) * 4
	c.data[i+0] = round8(float64(col.R)*a + float64(c.data[i+0])*inv)
	c.data[i+1] = round8(float64(col.G)*a + float64(c.data[i+1])*inv)
	c.data[i+2] = round8(float64(col.B)*a + float64(c.data[i+2])*inv)
	c.data[i+3] = round8(255*a + float64(c.data[i+3])*inv)
}

// NRGBA converts the canvas to straight alpha. Colour channels are divided
// by alpha with truncation; fully transparent pixels become (0, 0, 0, 0).
func (c *Canvas) NRGBA(pool *parallel.Pool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	w := c.width
	pool.Rows(c.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			in := c.data[y*w*4 : (y+1)*w*4]
			out := img.Pix[y*img.Stride : y*img.Stride+w*4]
			for i := 0; i < len(in); i += 4 {
				a := uint32(in[i+3])
				out[i+3] = uint8(a)
				if a == 0 {
					out[i+0], out[i+1], out[i+2] = 0, 0, 0
					continue
				}
				out[i+0] = unpremul(in[i+0], a)
				out[i+1] = unpremul(in[i+1], a)
				out[i+2] = unpremul(in[i+2], a)
			}
		}
	})
	return img
}

func unpremul(v uint8, a uint32) uint8 {
	return uint8(min(uint32(v)*255/a, 255))
}

func round8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
