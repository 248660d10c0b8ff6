package collage

import (
	"image/color"
	"testing"
)

// solidImage returns a w×h image filled with c.
func solidImage(w, h int, c color.NRGBA) *Image {
	img := NewImage(w, h)
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// gradientImage returns a w×h opaque image whose colour varies per pixel.
func gradientImage(w, h int) *Image {
	img := NewImage(w, h)
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: uint8((x*7 + y*13) % 256),
				A: 255,
			})
		}
	}
	return img
}

// plainConfig returns a config with no blur, no adjustments, no overlay
// and no grain, so the output is the bare composite.
func plainConfig(w, h int, comp Composite) Config {
	return Config{
		Width:     w,
		Height:    h,
		Image1:    ImageOptions{Opacity: 255},
		Image2:    ImageOptions{Opacity: 255},
		Composite: comp,
		Seed:      13,
	}
}

func assertSameImage(t *testing.T, got, want *Image) {
	t.Helper()
	if got.Width() != want.Width() || got.Height() != want.Height() {
		t.Fatalf("size = %dx%d, want %dx%d", got.Width(), got.Height(), want.Width(), want.Height())
	}
	for y := range want.Height() {
		for x := range want.Width() {
			if g, w := got.NRGBAAt(x, y), want.NRGBAAt(x, y); g != w {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, g, w)
			}
		}
	}
}
