package collage

import (
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/gogpu/collage/internal/blend"
	"github.com/gogpu/collage/internal/noise"
	"github.com/gogpu/collage/internal/parallel"
	"github.com/gogpu/collage/internal/pixelsort"
	"github.com/gogpu/collage/internal/warp"
)

// Noise field layout shared by Divide and Mix.
const (
	noiseScale      = 5
	secondarySeedUp = 7919
)

// composite runs the configured composite on the prepared inputs. b is nil
// for composites that only read the first image.
func composite(cfg Config, a, b *image.NRGBA, pool *parallel.Pool) *image.NRGBA {
	switch c := cfg.Composite.(type) {
	case BlendComposite:
		return blendImages(a, b, c.Mode, pool)
	case DivideComposite:
		return divide(cfg, c.Noise, a, b, pool)
	case MixComposite:
		return mix(cfg, c.Noise, c.Mode, a, b, pool)
	case WarpComposite:
		return warp.New(c.Options, cfg.Seed, cfg.Width, cfg.Height).Render(a, b, pool)
	case UnsortComposite:
		return pixelsort.Apply(pixelsort.Build(a, c.Sort, pool), b)
	case SortComposite:
		return pixelsort.Apply(pixelsort.Build(a, c.Sort, pool), a)
	}
	panic(fmt.Sprintf("collage: unknown composite %T", cfg.Composite))
}

// blendImages blends every pixel of a over the matching pixel of b.
func blendImages(a, b *image.NRGBA, mode BlendMode, pool *parallel.Pool) *image.NRGBA {
	w, h := a.Rect.Dx(), a.Rect.Dy()
	out := image.NewNRGBA(a.Rect)
	pool.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			blend.Span(row(out, y, w), row(a, y, w), row(b, y, w), mode)
		}
	})
	return out
}

// noiseFields builds the primary and secondary fields over the frame.
func noiseFields(cfg Config, n NoiseOptions) (primary, secondary noise.Field) {
	w, h := float64(cfg.Width), float64(cfg.Height)
	primary = noise.Field{
		Noise: noise.NewFbm(cfg.Seed, n.Octaves),
		Scale: noiseScale, Factor: 1, Width: w, Height: h,
	}
	secondary = noise.Field{
		Noise: noise.NewFbm(cfg.Seed+secondarySeedUp, n.Octaves),
		Scale: noiseScale, Factor: 1, Width: w, Height: h,
	}
	return primary, secondary
}

// rowRand returns the dither stream of row y. Every row has its own PCG
// stream keyed by the render seed, so the result does not depend on which
// worker handles the row.
func rowRand(seed uint64, y int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(y)))
}

// divide selects a or b per pixel with
//
//	n = clamp(primary + secondary·c·(0.5 - r), -1, 1)
//
// taking a where n > cutoff.
func divide(cfg Config, n NoiseOptions, a, b *image.NRGBA, pool *parallel.Pool) *image.NRGBA {
	w, h := a.Rect.Dx(), a.Rect.Dy()
	primary, secondary := noiseFields(cfg, n)
	out := image.NewNRGBA(a.Rect)

	pool.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			rng := rowRand(cfg.Seed, y)
			ra, rb, ro := row(a, y, w), row(b, y, w), row(out, y, w)
			fy := float64(y)
			for x := range w {
				fx := float64(x)
				v := divideLevel(primary.Sample(fx, fy), secondary.Sample(fx, fy), n.Contamination, rng.Float64())
				src := rb
				if v > n.Cutoff {
					src = ra
				}
				copy(ro[x*4:x*4+4], src[x*4:x*4+4])
			}
		}
	})
	return out
}

// mix blends in both stacking orders and selects per pixel with
//
//	n = (primary + secondary·c·(0.5 - r)) / (1 + 0.5·c)
//
// taking a-over-b where n > cutoff and b-over-a elsewhere.
func mix(cfg Config, n NoiseOptions, mode BlendMode, a, b *image.NRGBA, pool *parallel.Pool) *image.NRGBA {
	w, h := a.Rect.Dx(), a.Rect.Dy()
	primary, secondary := noiseFields(cfg, n)
	out := image.NewNRGBA(a.Rect)

	pool.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			rng := rowRand(cfg.Seed, y)
			ra, rb, ro := row(a, y, w), row(b, y, w), row(out, y, w)
			fy := float64(y)
			for x := range w {
				fx := float64(x)
				v := mixLevel(primary.Sample(fx, fy), secondary.Sample(fx, fy), n.Contamination, rng.Float64())
				i := x * 4
				if v > n.Cutoff {
					blend.Span(ro[i:i+4], ra[i:i+4], rb[i:i+4], mode)
				} else {
					blend.Span(ro[i:i+4], rb[i:i+4], ra[i:i+4], mode)
				}
			}
		}
	})
	return out
}

// divideLevel is the Divide threshold signal for primary noise p,
// secondary noise s, contamination c and dither r, clamped to [-1, 1].
func divideLevel(p, s, c, r float64) float64 {
	return max(-1, min(1, p+s*c*(0.5-r)))
}

// mixLevel is the Mix threshold signal. Unlike divideLevel it is
// normalised by the largest contamination swing instead of clamped.
func mixLevel(p, s, c, r float64) float64 {
	return (p + s*c*(0.5-r)) / (1 + 0.5*c)
}

func row(img *image.NRGBA, y, w int) []uint8 {
	i := y * img.Stride
	return img.Pix[i : i+w*4]
}
