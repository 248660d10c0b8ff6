package filter

import (
	"math"
	"testing"
)

func TestGaussianKernel(t *testing.T) {
	tests := []struct {
		sigma float64
		size  int
	}{
		{0, 1},
		{-1, 1},
		{0.5, 5},
		{1, 7},
		{2.5, 17},
		{8, 49},
	}
	for _, tt := range tests {
		k := GaussianKernel(tt.sigma)
		if len(k) != tt.size {
			t.Errorf("GaussianKernel(%v) has %d taps, want %d", tt.sigma, len(k), tt.size)
			continue
		}

		var sum float64
		for _, v := range k {
			sum += float64(v)
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Errorf("GaussianKernel(%v) sums to %v, want 1", tt.sigma, sum)
		}

		for i := range len(k) / 2 {
			if k[i] != k[len(k)-1-i] {
				t.Errorf("GaussianKernel(%v) not symmetric at %d", tt.sigma, i)
			}
			if k[i] > k[i+1] {
				t.Errorf("GaussianKernel(%v) not increasing towards centre at %d", tt.sigma, i)
			}
		}
	}
}

func TestBoxRadiiVariance(t *testing.T) {
	for _, sigma := range []float64{9, 20, 75, 100, 500} {
		radii := BoxRadii(sigma, 3)
		if len(radii) != 3 {
			t.Fatalf("BoxRadii(%v, 3) returned %d radii", sigma, len(radii))
		}
		// A box of width w has variance (w²-1)/12.
		var variance float64
		for i, r := range radii {
			if i > 0 && r < radii[i-1] {
				t.Errorf("BoxRadii(%v) = %v, not ascending", sigma, radii)
			}
			w := float64(2*r + 1)
			variance += (w*w - 1) / 12
		}
		got := math.Sqrt(variance)
		if math.Abs(got-sigma)/sigma > 0.05 {
			t.Errorf("BoxRadii(%v) = %v gives sigma %v", sigma, radii, got)
		}
	}
}

func TestBoxRadiiHugeSigma(t *testing.T) {
	want := BoxRadii(MaxBoxSigma, 3)
	for _, sigma := range []float64{1e19, math.MaxFloat64, math.Inf(1)} {
		got := BoxRadii(sigma, 3)
		for i, r := range got {
			if r != want[i] {
				t.Errorf("BoxRadii(%v, 3) = %v, want %v", sigma, got, want)
				break
			}
		}
	}
	for _, r := range want {
		if r <= 0 {
			t.Errorf("BoxRadii(MaxBoxSigma, 3) = %v, want positive radii", want)
			break
		}
	}
	if got := BoxRadii(math.NaN(), 3); got[0] != 0 || got[2] != 0 {
		t.Errorf("BoxRadii(NaN, 3) = %v, want zeros", got)
	}
}

func TestBoxRadiiZero(t *testing.T) {
	for _, r := range BoxRadii(0, 3) {
		if r != 0 {
			t.Errorf("BoxRadii(0, 3) = %v, want zeros", BoxRadii(0, 3))
			break
		}
	}
}

func TestCachedGaussianKernel(t *testing.T) {
	a := CachedGaussianKernel(3)
	b := CachedGaussianKernel(3)
	if &a[0] != &b[0] {
		t.Error("CachedGaussianKernel(3) returned distinct slices")
	}
	want := GaussianKernel(3)
	if len(a) != len(want) {
		t.Fatalf("cached kernel has %d taps, want %d", len(a), len(want))
	}
	for i := range a {
		if a[i] != want[i] {
			t.Errorf("cached[%d] = %v, want %v", i, a[i], want[i])
		}
	}
}

func TestKernelCacheEviction(t *testing.T) {
	c := newKernelCache(4)
	for i := range 10 {
		c.get(float64(i) + 0.5)
	}
	if n := len(c.kernels); n > 4 {
		t.Errorf("cache holds %d kernels, limit 4", n)
	}
}
