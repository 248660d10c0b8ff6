package canvas

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// FadeLine is a straight stroke split into equal segments, each drawn with
// its own opacity drawn uniformly from [MinOpacity, MaxOpacity]. The
// opacities come from a PCG stream seeded with Seed, so the same line is
// always drawn the same way.
type FadeLine struct {
	X0, Y0, X1, Y1 float64

	Seed         uint64
	Subdivisions int
	Thickness    float64
	MinOpacity   float64
	MaxOpacity   float64
	Color        color.NRGBA
}

// Draw strokes l onto c with butt caps. Coverage is the overlap of a unit
// pixel footprint with the stroke, measured separately along and across
// the line axis. A pixel straddling two segments takes the
// overlap-weighted opacity of both, so segments tile without seams.
func (l FadeLine) Draw(c *Canvas) {
	dx, dy := l.X1-l.X0, l.Y1-l.Y0
	length := math.Hypot(dx, dy)
	if length == 0 || l.Thickness <= 0 {
		return
	}
	n := max(l.Subdivisions, 1)
	rng := rand.New(rand.NewPCG(l.Seed, 0))
	opacity := make([]float64, n)
	for i := range opacity {
		opacity[i] = l.MinOpacity + rng.Float64()*(l.MaxOpacity-l.MinOpacity)
	}

	ux, uy := dx/length, dy/length
	half := l.Thickness / 2
	seg := length / float64(n)

	pad := half + 1
	minX := max(int(math.Floor(min(l.X0, l.X1)-pad)), 0)
	maxX := min(int(math.Ceil(max(l.X0, l.X1)+pad)), c.width)
	minY := max(int(math.Floor(min(l.Y0, l.Y1)-pad)), 0)
	maxY := min(int(math.Ceil(max(l.Y0, l.Y1)+pad)), c.height)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			px, py := float64(x)+0.5-l.X0, float64(y)+0.5-l.Y0
			across := overlap(math.Abs(px*uy-py*ux), -half, half)
			if across == 0 {
				continue
			}
			along := px*ux + py*uy
			first := max(int(math.Floor((along-0.5)/seg)), 0)
			last := min(int(math.Floor((along+0.5)/seg)), n-1)

			var op float64
			for i := first; i <= last; i++ {
				s0 := float64(i) * seg
				op += overlap(along, s0, s0+seg) * opacity[i]
			}
			if op > 0 {
				c.blendPixel(x, y, l.Color, across*op)
			}
		}
	}
}

// overlap returns the length of [p-0.5, p+0.5] ∩ [lo, hi].
func overlap(p, lo, hi float64) float64 {
	return max(0, min(p+0.5, hi)-max(p-0.5, lo))
}
