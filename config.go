package collage

import (
	"fmt"
	"math"

	"github.com/gogpu/collage/internal/pixelsort"
	"github.com/gogpu/collage/internal/warp"
)

// Config is the validated parameter set of one render. Build it with
// Settings.Config; Render re-validates configs assembled by hand.
type Config struct {
	Width  int
	Height int

	Image1 ImageOptions
	Image2 ImageOptions

	Composite Composite

	// Overlay draws fade lines when non-nil.
	Overlay *OverlayOptions
	// Grain adds film grain when non-nil and Factor > 0.
	Grain *GrainOptions

	Seed uint64
}

// ImageOptions are the adjustments applied to one input after resizing.
type ImageOptions struct {
	// Blur is the Gaussian sigma in pixels; 0 disables blurring.
	Blur float64
	// HueRotation is in degrees and wraps at ±360.
	HueRotation float64
	// Opacity scales alpha; 255 leaves it unchanged.
	Opacity uint8
}

// MaxOctaves is the largest octave count accepted for Divide, Mix and Warp
// noise. An octave count of 0 renders like 1.
const MaxOctaves = 8

// NoiseOptions parameterise the noise threshold of Divide and Mix. Every
// value must be finite and Octaves must lie in [0, MaxOctaves].
type NoiseOptions struct {
	Octaves       int
	Contamination float64
	Cutoff        float64
}

// WarpOptions configure the Warp composite.
type WarpOptions = warp.Options

// SortOptions configure the Sort and Unsort composites.
type SortOptions = pixelsort.Options

// OverlayOptions describe the line lattice drawn over the result.
type OverlayOptions struct {
	Spacing      float64
	Thickness    float64
	Subdivisions int
	MinOpacity   float64
	MaxOpacity   float64
	Color        LineColor
}

// GrainOptions describe the film grain pass.
type GrainOptions struct {
	Scale  float64
	Factor float64
}

// Composite is one of BlendComposite, DivideComposite, MixComposite,
// WarpComposite, UnsortComposite or SortComposite. The set is closed.
type Composite interface {
	composite()
}

// BlendComposite blends image 1 over image 2 with Mode.
type BlendComposite struct {
	Mode BlendMode
}

// DivideComposite takes each pixel from image 1 where the noise exceeds
// the cutoff and from image 2 elsewhere.
type DivideComposite struct {
	Noise NoiseOptions
}

// MixComposite blends image 1 over image 2 where the noise exceeds the
// cutoff and image 2 over image 1 elsewhere. Mode must not be commutative.
type MixComposite struct {
	Noise NoiseOptions
	Mode  BlendMode
}

// WarpComposite displaces image 2 using image 1 as the reference.
type WarpComposite struct {
	Options WarpOptions
}

// UnsortComposite sorts image 1 and rearranges image 2 the same way.
type UnsortComposite struct {
	Sort SortOptions
}

// SortComposite pixel-sorts image 1. Image 2 is not used.
type SortComposite struct {
	Sort SortOptions
}

func (BlendComposite) composite()  {}
func (DivideComposite) composite() {}
func (MixComposite) composite()    {}
func (WarpComposite) composite()   {}
func (UnsortComposite) composite() {}
func (SortComposite) composite()   {}

// needsImage2 reports whether c reads the second image.
func needsImage2(c Composite) bool {
	_, ok := c.(SortComposite)
	return !ok
}

// Config validates s and converts it to a render configuration. Opacities
// outside [0, 255] are clamped with a warning; everything else that is out
// of range is an error.
func (s Settings) Config() (Config, error) {
	cfg := Config{
		Width:  s.Width,
		Height: s.Height,
		Image1: ImageOptions{
			Blur:        s.ImgBlur1,
			HueRotation: wrapDegrees(s.HueRotation1),
			Opacity:     clampOpacity("opacity_1", s.Opacity1),
		},
		Image2: ImageOptions{
			Blur:        s.ImgBlur2,
			HueRotation: wrapDegrees(s.HueRotation2),
			Opacity:     clampOpacity("opacity_2", s.Opacity2),
		},
		Seed: s.Seed,
	}

	noise := NoiseOptions{
		Octaves:       s.Octaves,
		Contamination: s.Contamination,
		Cutoff:        s.Cutoff,
	}
	sortOpts := SortOptions{
		Key:         s.SortKey,
		Axis:        s.SortBy,
		RowOrder:    s.RowSortOrder,
		ColumnOrder: s.ColSortOrder,
	}

	switch s.Combine {
	case Blend:
		cfg.Composite = BlendComposite{Mode: s.Mode}
	case Divide:
		cfg.Composite = DivideComposite{Noise: noise}
	case Mix:
		cfg.Composite = MixComposite{Noise: noise, Mode: s.Mode}
	case Warp:
		cfg.Composite = WarpComposite{Options: WarpOptions{
			AngleScale:   s.AngleScale,
			AngleFactor:  s.AngleFactor,
			RadiusScale:  s.RadiusScale,
			RadiusFactor: s.RadiusFactor,
			Channel:      s.WarpChannel,
			Octaves:      s.Octaves,
		}}
	case Unsort:
		cfg.Composite = UnsortComposite{Sort: sortOpts}
	case Sort:
		cfg.Composite = SortComposite{Sort: sortOpts}
	default:
		return Config{}, fmt.Errorf("%w: combine %d", ErrUnknownEnum, uint8(s.Combine))
	}

	if s.Screen {
		cfg.Overlay = &OverlayOptions{
			Spacing:      s.Spacing,
			Thickness:    s.Thickness,
			Subdivisions: max(s.Subdivisions, 1),
			MinOpacity:   s.MinOpacity,
			MaxOpacity:   s.MaxOpacity,
			Color:        s.LineColor,
		}
	}
	if s.GrainFactor > 0 {
		cfg.Grain = &GrainOptions{Scale: s.GrainScale, Factor: s.GrainFactor}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every invariant Render relies on.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	for i, img := range []ImageOptions{c.Image1, c.Image2} {
		if img.Blur < 0 || math.IsNaN(img.Blur) || math.IsInf(img.Blur, 0) {
			return fmt.Errorf("%w: image %d sigma %v", ErrInvalidBlur, i+1, img.Blur)
		}
	}

	switch comp := c.Composite.(type) {
	case BlendComposite:
		if !comp.Mode.Valid() {
			return fmt.Errorf("%w: blend mode %d", ErrUnknownEnum, uint8(comp.Mode))
		}
	case DivideComposite:
		if err := validateNoise(comp.Noise); err != nil {
			return err
		}
	case MixComposite:
		if err := validateNoise(comp.Noise); err != nil {
			return err
		}
		if !comp.Mode.Valid() {
			return fmt.Errorf("%w: blend mode %d", ErrUnknownEnum, uint8(comp.Mode))
		}
		if comp.Mode.Commutative() {
			return fmt.Errorf("%w: %v gives the same result in both stacking orders", ErrModeNotAllowed, comp.Mode)
		}
	case WarpComposite:
		if !comp.Options.Channel.Valid() {
			return fmt.Errorf("%w: warp channel %d", ErrUnknownEnum, uint8(comp.Options.Channel))
		}
		if err := validateWarp(comp.Options); err != nil {
			return err
		}
	case UnsortComposite:
		if err := validateSort(comp.Sort); err != nil {
			return err
		}
	case SortComposite:
		if err := validateSort(comp.Sort); err != nil {
			return err
		}
	case nil:
		return fmt.Errorf("%w: no composite", ErrUnknownEnum)
	default:
		panic(fmt.Sprintf("collage: unknown composite %T", comp))
	}

	if g := c.Grain; g != nil && !finite(g.Scale, g.Factor) {
		return fmt.Errorf("%w: grain scale %v factor %v", ErrInvalidNoise, g.Scale, g.Factor)
	}

	if o := c.Overlay; o != nil {
		if !(o.Spacing > 0) || !(o.Thickness > 0) {
			return fmt.Errorf("%w: spacing %v thickness %v", ErrInvalidOverlay, o.Spacing, o.Thickness)
		}
		if !(o.MinOpacity >= 0 && o.MinOpacity <= o.MaxOpacity && o.MaxOpacity <= 1) {
			return fmt.Errorf("%w: line opacity [%v, %v]", ErrInvalidOpacity, o.MinOpacity, o.MaxOpacity)
		}
		if o.Color != Black && o.Color != White {
			return fmt.Errorf("%w: line color %d", ErrUnknownEnum, uint8(o.Color))
		}
	}
	return nil
}

func validateNoise(n NoiseOptions) error {
	if n.Octaves < 0 || n.Octaves > MaxOctaves {
		return fmt.Errorf("%w: octaves %d outside [0, %d]", ErrInvalidNoise, n.Octaves, MaxOctaves)
	}
	if !finite(n.Contamination, n.Cutoff) {
		return fmt.Errorf("%w: contamination %v cutoff %v", ErrInvalidNoise, n.Contamination, n.Cutoff)
	}
	return nil
}

func validateWarp(o WarpOptions) error {
	if o.Octaves < 0 || o.Octaves > MaxOctaves {
		return fmt.Errorf("%w: octaves %d outside [0, %d]", ErrInvalidNoise, o.Octaves, MaxOctaves)
	}
	if !finite(o.AngleScale, o.AngleFactor, o.RadiusScale, o.RadiusFactor) {
		return fmt.Errorf("%w: warp angle %v×%v radius %v×%v", ErrInvalidNoise,
			o.AngleScale, o.AngleFactor, o.RadiusScale, o.RadiusFactor)
	}
	return nil
}

// finite reports whether every value is neither NaN nor infinite.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func validateSort(o SortOptions) error {
	switch {
	case !o.Key.Valid():
		return fmt.Errorf("%w: sort key %d", ErrUnknownEnum, uint8(o.Key))
	case !o.Axis.Valid():
		return fmt.Errorf("%w: sort axis %d", ErrUnknownEnum, uint8(o.Axis))
	case !o.RowOrder.Valid(), !o.ColumnOrder.Valid():
		return fmt.Errorf("%w: sort order", ErrUnknownEnum)
	}
	return nil
}

// wrapDegrees maps d into (-360, 360), keeping its sign.
func wrapDegrees(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return math.Mod(d, 360)
}

func clampOpacity(field string, v int) uint8 {
	if v < 0 || v > 255 {
		c := min(max(v, 0), 255)
		Logger().Warn("opacity clamped", "field", field, "value", v, "clamped", c)
		return uint8(c)
	}
	return uint8(v)
}
