package canvas

import "image/color"

// lineSeed is the base seed of overlay lines; each line adds its offset
// along the perpendicular axis.
const lineSeed = 98731

// Lines describes a lattice of horizontal and vertical fade lines.
type Lines struct {
	Spacing      float64
	Thickness    float64
	Subdivisions int
	MinOpacity   float64
	MaxOpacity   float64
	Color        color.NRGBA
}

// DrawLines strokes horizontal lines at y = Spacing, 2·Spacing, … below the
// canvas height, then vertical lines at the same offsets below the width.
// Each line spans the full canvas and is seeded with 98731 plus its offset
// truncated to an integer.
func (c *Canvas) DrawLines(l Lines) {
	if l.Spacing <= 0 {
		return
	}
	w, h := float64(c.width), float64(c.height)

	line := func(x0, y0, x1, y1, at float64) {
		FadeLine{
			X0: x0, Y0: y0, X1: x1, Y1: y1,
			Seed:         lineSeed + uint64(at),
			Subdivisions: l.Subdivisions,
			Thickness:    l.Thickness,
			MinOpacity:   l.MinOpacity,
			MaxOpacity:   l.MaxOpacity,
			Color:        l.Color,
		}.Draw(c)
	}

	for y := l.Spacing; y < h; y += l.Spacing {
		line(0, y, w, y, y)
	}
	for x := l.Spacing; x < w; x += l.Spacing {
		line(x, 0, x, h, x)
	}
}
