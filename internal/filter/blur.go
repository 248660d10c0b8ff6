package filter

import (
	"image"
	"sync"

	"github.com/gogpu/collage/internal/parallel"
)

// BoxThreshold is the sigma above which Blur approximates the Gaussian with
// three box passes instead of sampling it.
const BoxThreshold = 8.0

// boxPasses is the number of box filters in the approximation.
const boxPasses = 3

// Blur applies a Gaussian blur with standard deviation sigma to src and
// writes the result to dst, which must have the same bounds. Edges are
// extended by clamping. Channels are filtered independently in straight
// alpha.
//
// A sigma <= 0 copies src to dst. dst may alias src.
func Blur(dst, src *image.NRGBA, sigma float64, pool *parallel.Pool) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	if sigma <= 0 {
		if dst != src {
			copyNRGBA(dst, src)
		}
		return
	}

	var line lineFilter
	if sigma > BoxThreshold {
		line = boxLine(BoxRadii(sigma, boxPasses))
	} else {
		line = gaussLine(CachedGaussianKernel(sigma))
	}

	buf := make([]float32, w*h*4)
	pool.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w*4]
			out := buf[y*w*4 : (y+1)*w*4]
			for i, v := range row {
				out[i] = float32(v)
			}
		}
	})

	// Horizontal: each row is a contiguous line of w pixels.
	pool.Rows(h, func(y0, y1 int) {
		s := getScratch(w)
		defer putScratch(s)
		for y := y0; y < y1; y++ {
			filterLine(buf, y*w*4, 4, w, s, line)
		}
	})

	// Vertical: each column is a line of h pixels, w*4 floats apart.
	pool.Rows(w, func(x0, x1 int) {
		s := getScratch(h)
		defer putScratch(s)
		for x := x0; x < x1; x++ {
			filterLine(buf, x*4, w*4, h, s, line)
		}
	})

	pool.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
			in := buf[y*w*4 : (y+1)*w*4]
			for i, v := range in {
				row[i] = clampUint8(v)
			}
		}
	})
}

// lineFilter convolves n RGBA pixels from src into dst. Both are
// contiguous; tmp is scratch space of the same length.
type lineFilter func(dst, src, tmp []float32, n int)

// filterLine gathers the line starting at base with the given stride,
// filters it, and scatters the result back.
func filterLine(buf []float32, base, stride, n int, s *scratch, f lineFilter) {
	in, out, tmp := s.a[:n*4], s.b[:n*4], s.c[:n*4]
	for i := range n {
		j := base + i*stride
		copy(in[i*4:i*4+4], buf[j:j+4])
	}
	f(out, in, tmp, n)
	for i := range n {
		j := base + i*stride
		copy(buf[j:j+4], out[i*4:i*4+4])
	}
}

func gaussLine(kernel []float32) lineFilter {
	half := len(kernel) / 2
	return func(dst, src, _ []float32, n int) {
		for i := range n {
			var r, g, b, a float32
			for k, wt := range kernel {
				j := min(max(i+k-half, 0), n-1) * 4
				r += src[j+0] * wt
				g += src[j+1] * wt
				b += src[j+2] * wt
				a += src[j+3] * wt
			}
			o := i * 4
			dst[o+0], dst[o+1], dst[o+2], dst[o+3] = r, g, b, a
		}
	}
}

func boxLine(radii []int) lineFilter {
	return func(dst, src, tmp []float32, n int) {
		// Ping-pong between dst and tmp so the last pass lands in dst.
		bufs := [2][]float32{dst, tmp}
		i := 1 - len(radii)%2
		from := src
		for _, r := range radii {
			boxPass(bufs[i], from, n, r)
			from = bufs[i]
			i ^= 1
		}
	}
}

// boxPass computes a running mean over a window of 2r+1 pixels, extending
// the line by repeating its edge pixels. The cost is O(n) for any r, so a
// window wider than the line is fine.
func boxPass(dst, src []float32, n, r int) {
	if r <= 0 {
		copy(dst[:n*4], src[:n*4])
		return
	}
	inv := 1 / float64(2*r+1)
	inner := min(r, n-1)
	for c := range 4 {
		first, last := float64(src[c]), float64(src[(n-1)*4+c])
		sum := float64(r)*first + float64(r-inner)*last
		for k := 0; k <= inner; k++ {
			sum += float64(src[k*4+c])
		}
		for i := range n {
			dst[i*4+c] = float32(sum * inv)
			add := min(i+r+1, n-1)
			sub := max(i-r, 0)
			sum += float64(src[add*4+c]) - float64(src[sub*4+c])
		}
	}
}

// scratch holds three line buffers reused across lines of one band.
type scratch struct {
	a, b, c []float32
}

var scratchPool = sync.Pool{
	New: func() any { return new(scratch) },
}

func getScratch(n int) *scratch {
	s := scratchPool.Get().(*scratch)
	if cap(s.a) < n*4 {
		s.a = make([]float32, n*4)
		s.b = make([]float32, n*4)
		s.c = make([]float32, n*4)
	}
	return s
}

func putScratch(s *scratch) { scratchPool.Put(s) }

func copyNRGBA(dst, src *image.NRGBA) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := range h {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w*4], src.Pix[y*src.Stride:y*src.Stride+w*4])
	}
}

// clampUint8 clamps v to [0, 255] and rounds to nearest.
func clampUint8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
