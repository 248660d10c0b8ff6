// Package noise implements seeded gradient noise and fractal Brownian motion.
//
// All generators are immutable after construction: the permutation tables
// are built once from the seed and only read afterwards, so a single value
// can be sampled from any number of goroutines.
//
// Determinism: for a fixed seed the permutation is derived from a PCG stream
// consumed directly (no rand.Shuffle), so results do not depend on the Go
// release's shuffling algorithm.
package noise

import (
	"math"
	"math/rand/v2"
)

// pcgIncrement is the second PCG word. It is fixed so the seed alone
// selects the stream.
const pcgIncrement = 0xda3e39cb94b95bdb

// Sampler is a scalar 2D field.
type Sampler interface {
	Sample(x, y float64) float64
}

// Perlin is improved Perlin gradient noise in two dimensions.
// Output lies in [-1, 1]; integer lattice points evaluate to 0.
type Perlin struct {
	perm [512]uint8
}

// NewPerlin builds a Perlin generator from seed.
func NewPerlin(seed uint64) *Perlin {
	p := &Perlin{}
	src := rand.NewPCG(seed, pcgIncrement)

	var base [256]uint8
	for i := range base {
		base[i] = uint8(i)
	}
	// Fisher-Yates over the raw PCG stream.
	for i := 255; i > 0; i-- {
		j := int(src.Uint64() % uint64(i+1))
		base[i], base[j] = base[j], base[i]
	}
	for i := range p.perm {
		p.perm[i] = base[i&255]
	}
	return p
}

// Sample evaluates the noise at (x, y).
func (p *Perlin) Sample(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	xi := int(fx) & 255
	yi := int(fy) & 255
	x -= fx
	y -= fy

	u := fade(x)
	v := fade(y)

	aa := p.perm[int(p.perm[xi])+yi]
	ab := p.perm[int(p.perm[xi])+yi+1]
	ba := p.perm[int(p.perm[xi+1])+yi]
	bb := p.perm[int(p.perm[xi+1])+yi+1]

	n := lerp(v,
		lerp(u, grad(aa, x, y), grad(ba, x-1, y)),
		lerp(u, grad(ab, x, y-1), grad(bb, x-1, y-1)),
	)
	return clamp1(n)
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad picks one of the four diagonal gradients (±1, ±1).
func grad(hash uint8, x, y float64) float64 {
	switch hash & 3 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	default:
		return -x - y
	}
}

func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
