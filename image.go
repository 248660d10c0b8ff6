package collage

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Image is a straight-alpha RGBA8 pixel buffer.
//
// Images handed to Render are read but never modified, and Render always
// returns a new Image.
type Image struct {
	width  int
	height int
	data   []uint8 // non-premultiplied RGBA, 4 bytes per pixel
}

// NewImage returns a transparent w×h image.
func NewImage(w, h int) *Image {
	return &Image{
		width:  w,
		height: h,
		data:   make([]uint8, w*h*4),
	}
}

// ImageFromPixels wraps pix, which holds w×h non-premultiplied RGBA
// pixels, without copying. It returns ErrInvalidSize when the buffer length
// does not match.
func ImageFromPixels(w, h int, pix []uint8) (*Image, error) {
	if w < 0 || h < 0 || len(pix) != w*h*4 {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidSize, w, h, len(pix))
	}
	return &Image{width: w, height: h, data: pix}, nil
}

// FromImage copies any image.Image into a new Image, converting colours to
// non-premultiplied RGBA8.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	m := NewImage(b.Dx(), b.Dy())

	if n, ok := src.(*image.NRGBA); ok {
		for y := range m.height {
			i := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(m.data[y*m.width*4:(y+1)*m.width*4], n.Pix[i:i+m.width*4])
		}
		return m
	}

	dst := m.NRGBA()
	draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	return m
}

// fromNRGBA wraps img without copying when its buffer is tightly packed.
func fromNRGBA(img *image.NRGBA) *Image {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Rect.Min == (image.Point{}) && img.Stride == w*4 && len(img.Pix) == w*h*4 {
		return &Image{width: w, height: h, data: img.Pix}
	}
	return FromImage(img)
}

// Width returns the width of the image.
func (m *Image) Width() int { return m.width }

// Height returns the height of the image.
func (m *Image) Height() int { return m.height }

// Data returns the raw pixel data in RGBA order.
func (m *Image) Data() []uint8 { return m.data }

// Empty reports whether the image has no pixels.
func (m *Image) Empty() bool { return m.width <= 0 || m.height <= 0 }

// NRGBAAt returns the pixel at (x, y), or transparent outside the image.
func (m *Image) NRGBAAt(x, y int) color.NRGBA {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return color.NRGBA{}
	}
	i := (y*m.width + x) * 4
	return color.NRGBA{R: m.data[i], G: m.data[i+1], B: m.data[i+2], A: m.data[i+3]}
}

// SetNRGBA sets the pixel at (x, y). Coordinates outside the image are
// ignored.
func (m *Image) SetNRGBA(x, y int, c color.NRGBA) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	i := (y*m.width + x) * 4
	m.data[i+0] = c.R
	m.data[i+1] = c.G
	m.data[i+2] = c.B
	m.data[i+3] = c.A
}

// NRGBA returns an *image.NRGBA sharing the image's pixel buffer.
func (m *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    m.data,
		Stride: m.width * 4,
		Rect:   image.Rect(0, 0, m.width, m.height),
	}
}

// Clone returns a deep copy of m.
func (m *Image) Clone() *Image {
	c := NewImage(m.width, m.height)
	copy(c.data, m.data)
	return c
}

// At implements the image.Image interface.
func (m *Image) At(x, y int) color.Color {
	return m.NRGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// ColorModel implements the image.Image interface.
func (m *Image) ColorModel() color.Model {
	return color.NRGBAModel
}
