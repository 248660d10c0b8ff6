package filter

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/collage/internal/parallel"
)

// Test helper functions shared across filter tests.

func newTestPool(t *testing.T) *parallel.Pool {
	t.Helper()
	p := parallel.NewPool(3)
	t.Cleanup(p.Close)
	return p
}

// solid returns a w×h image filled with c.
func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func nearlyEqual(a, b color.NRGBA, tol int) bool {
	return absDiff(a.R, b.R) <= tol &&
		absDiff(a.G, b.G) <= tol &&
		absDiff(a.B, b.B) <= tol &&
		absDiff(a.A, b.A) <= tol
}
