package filter

import (
	"math"
	"sync"
)

// GaussianKernel returns a normalised 1D Gaussian kernel with standard
// deviation sigma. The kernel has 2*ceil(3*sigma)+1 taps, covering three
// standard deviations either side of the centre.
//
// For sigma <= 0 it returns the identity kernel [1].
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1}
	}

	half := int(math.Ceil(sigma * 3))
	kernel := make([]float32, half*2+1)

	// exp(-x²/2σ²); the 1/(σ√2π) factor cancels during normalisation.
	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}

	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// MaxBoxSigma bounds the sigma accepted by BoxRadii. Its box radii run to
// about two million pixels, longer than any image line, so larger sigmas
// would not change the result.
const MaxBoxSigma = 1 << 20

// BoxRadii returns the radii of n successive box filters whose combined
// variance approximates a Gaussian with standard deviation sigma.
//
// Widths are the odd integers either side of the ideal width
// sqrt(12σ²/n + 1); the first m boxes use the smaller width, where m
// minimises the variance error.
//
// Sigmas above MaxBoxSigma are treated as MaxBoxSigma.
//
// Reference: W. Jarosz, "Fast Image Convolutions" (SIGGRAPH 2001 course).
func BoxRadii(sigma float64, n int) []int {
	radii := make([]int, n)
	if !(sigma > 0) || n <= 0 {
		return radii
	}
	sigma = min(sigma, MaxBoxSigma)

	ideal := math.Sqrt(12*sigma*sigma/float64(n) + 1)
	wl := int(math.Floor(ideal))
	if wl%2 == 0 {
		wl--
	}
	wu := wl + 2

	fl := float64(wl)
	fn := float64(n)
	m := int(max(0, min(fn, math.Round((12*sigma*sigma-fn*fl*fl-4*fn*fl-3*fn)/(-4*fl-4)))))

	for i := range radii {
		w := wu
		if i < m {
			w = wl
		}
		radii[i] = (w - 1) / 2
	}
	return radii
}

// kernelCache memoises Gaussian kernels keyed by sigma quantised to 0.01.
type kernelCache struct {
	mu      sync.RWMutex
	kernels map[int][]float32
	limit   int
}

var defaultKernelCache = newKernelCache(64)

func newKernelCache(limit int) *kernelCache {
	return &kernelCache{
		kernels: make(map[int][]float32),
		limit:   limit,
	}
}

func (c *kernelCache) get(sigma float64) []float32 {
	key := int(sigma * 100)

	c.mu.RLock()
	k, ok := c.kernels[key]
	c.mu.RUnlock()
	if ok {
		return k
	}

	k = GaussianKernel(float64(key) / 100)

	c.mu.Lock()
	if len(c.kernels) >= c.limit {
		clear(c.kernels)
	}
	c.kernels[key] = k
	c.mu.Unlock()
	return k
}

// CachedGaussianKernel is GaussianKernel with sigma quantised to 0.01 and
// the result shared between callers. The returned slice must not be
// modified.
func CachedGaussianKernel(sigma float64) []float32 {
	return defaultKernelCache.get(sigma)
}
