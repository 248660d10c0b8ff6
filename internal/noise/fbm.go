package noise

// MaxOctaves bounds the octave count accepted by NewFbm.
const MaxOctaves = 32

// Fbm defaults.
const (
	DefaultLacunarity  = 2.0
	DefaultPersistence = 0.5
)

// Fbm sums several octaves of Perlin noise, each at double the frequency
// and half the amplitude of the previous one. Every octave has its own
// permutation (seed+i). The sum is normalised by the total amplitude so the
// output stays in [-1, 1].
type Fbm struct {
	octaves     []*Perlin
	lacunarity  float64
	persistence float64
	norm        float64
}

// NewFbm builds an fBm generator. Octave counts below 1 are raised to 1 and
// counts above MaxOctaves are lowered to MaxOctaves.
func NewFbm(seed uint64, octaves int) *Fbm {
	octaves = max(1, min(octaves, MaxOctaves))

	f := &Fbm{
		octaves:     make([]*Perlin, octaves),
		lacunarity:  DefaultLacunarity,
		persistence: DefaultPersistence,
	}
	amp := 1.0
	for i := range f.octaves {
		f.octaves[i] = NewPerlin(seed + uint64(i))
		f.norm += amp
		amp *= f.persistence
	}
	return f
}

// Octaves returns the effective octave count.
func (f *Fbm) Octaves() int { return len(f.octaves) }

// Sample evaluates the fractal sum at (x, y).
func (f *Fbm) Sample(x, y float64) float64 {
	var sum float64
	amp := 1.0
	freq := 1.0
	for _, o := range f.octaves {
		sum += amp * o.Sample(x*freq, y*freq)
		amp *= f.persistence
		freq *= f.lacunarity
	}
	return clamp1(sum / f.norm)
}

// Field scales the input coordinates and the output of a Sampler.
//
// When Width and Height are positive, coordinates are first normalised to
// the unit square, so Scale counts noise features across the whole frame
// regardless of resolution.
type Field struct {
	Noise  Sampler
	Scale  float64
	Factor float64
	Width  float64
	Height float64
}

// Sample returns Factor * Noise(Scale*x', Scale*y').
func (f Field) Sample(x, y float64) float64 {
	if f.Width > 0 && f.Height > 0 {
		x /= f.Width
		y /= f.Height
	}
	return f.Factor * f.Noise.Sample(f.Scale*x, f.Scale*y)
}
