package canvas

import (
	"math/rand/v2"

	"github.com/gogpu/collage/internal/noise"
	"github.com/gogpu/collage/internal/parallel"
)

// grainStream separates the grain random stream from other per-row streams
// derived from the same seed.
const grainStream = 0x6772_6169_6e00_0000

// Grain adds film grain to every pixel:
//
//	g = factor · (n(scale·x, scale·y)·0.5 + (r - 0.5)·0.5)
//
// where n is the smooth noise and r is uniform in [0, 1) from a PCG stream
// keyed by (seed, row). The offset is scaled by alpha before it is added to
// the premultiplied colour channels, which stay within [0, alpha].
func (c *Canvas) Grain(n noise.Sampler, scale, factor float64, seed uint64, pool *parallel.Pool) {
	if factor == 0 {
		return
	}
	w := c.width
	pool.Rows(c.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			rng := rand.New(rand.NewPCG(seed^grainStream, uint64(y)))
			row := c.data[y*w*4 : (y+1)*w*4]
			for x := range w {
				g := factor * (n.Sample(scale*float64(x), scale*float64(y))*0.5 + (rng.Float64()-0.5)*0.5)
				i := x * 4
				a := row[i+3]
				if a == 0 {
					continue
				}
				d := g * float64(a) / 255
				row[i+0] = addClamp(row[i+0], d, a)
				row[i+1] = addClamp(row[i+1], d, a)
				row[i+2] = addClamp(row[i+2], d, a)
			}
		}
	})
}

func addClamp(v uint8, d float64, limit uint8) uint8 {
	r := float64(v) + d
	if r <= 0 {
		return 0
	}
	if r >= float64(limit) {
		return limit
	}
	return uint8(r + 0.5)
}
