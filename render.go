package collage

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/disintegration/gift"

	"github.com/gogpu/collage/internal/canvas"
	"github.com/gogpu/collage/internal/filter"
	"github.com/gogpu/collage/internal/noise"
	"github.com/gogpu/collage/internal/parallel"
)

// Render composites img1 and img2 according to cfg and returns a new
// cfg.Width×cfg.Height image. The inputs are not modified.
//
// The pipeline runs, in order: resize both inputs (Lanczos), hue rotation
// and opacity, Gaussian blur, the composite, overlay lines, film grain and
// conversion back to straight alpha. Identical inputs and configuration
// give bit-identical output regardless of the worker count.
//
// Render either returns a complete image or an error; it never returns a
// partially rendered buffer.
func Render(img1, img2 *Image, cfg Config, opts ...RenderOption) (*Image, error) {
	o := defaultRenderOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkInput(1, img1); err != nil {
		return nil, err
	}
	both := needsImage2(cfg.Composite)
	if both {
		if err := checkInput(2, img2); err != nil {
			return nil, err
		}
	}

	log := Logger()
	log.Info("render started",
		"width", cfg.Width, "height", cfg.Height,
		"composite", fmt.Sprintf("%T", cfg.Composite))
	start := time.Now()

	pool := parallel.NewPool(o.workers)
	defer pool.Close()

	st := stageTimer{log: log, progress: o.progress}

	st.begin(StageResize)
	a := resize(img1, cfg.Width, cfg.Height)
	var b *image.NRGBA
	if both {
		b = resize(img2, cfg.Width, cfg.Height)
	}

	st.begin(StageAdjust)
	adjust(a, cfg.Image1, pool)
	if both {
		adjust(b, cfg.Image2, pool)
	}

	st.begin(StageBlur)
	filter.Blur(a, a, cfg.Image1.Blur, pool)
	if both {
		filter.Blur(b, b, cfg.Image2.Blur, pool)
	}

	st.begin(StageComposite)
	out := composite(cfg, a, b, pool)

	st.begin(StageOverlay)
	cv := canvas.FromNRGBA(out, pool)
	if ov := cfg.Overlay; ov != nil {
		cv.DrawLines(canvas.Lines{
			Spacing:      ov.Spacing,
			Thickness:    ov.Thickness,
			Subdivisions: ov.Subdivisions,
			MinOpacity:   ov.MinOpacity,
			MaxOpacity:   ov.MaxOpacity,
			Color:        ov.Color.nrgba(),
		})
	}

	st.begin(StageGrain)
	if g := cfg.Grain; g != nil && g.Factor > 0 {
		cv.Grain(noise.NewPerlin(cfg.Seed), g.Scale, g.Factor, cfg.Seed, pool)
	}

	st.begin(StageRasterize)
	res := fromNRGBA(cv.NRGBA(pool))

	st.begin(StageDone)
	log.Info("render finished", "elapsed", time.Since(start))
	return res, nil
}

func checkInput(n int, img *Image) error {
	if img == nil {
		return fmt.Errorf("%w: image %d", ErrNilImage, n)
	}
	if img.Empty() {
		return fmt.Errorf("%w: image %d is %dx%d", ErrEmptyImage, n, img.width, img.height)
	}
	return nil
}

// stageTimer reports stage transitions and logs how long each one took.
type stageTimer struct {
	log      *slog.Logger
	progress func(Stage)
	current  Stage
	started  time.Time
	running  bool
}

func (t *stageTimer) begin(s Stage) {
	now := time.Now()
	if t.running {
		t.log.Debug("stage finished", "stage", t.current.String(), "elapsed", now.Sub(t.started))
	}
	t.current, t.started, t.running = s, now, true
	t.progress(s)
}

// resize returns a width×height copy of img using Lanczos resampling. An
// image that already has the target size is copied unchanged.
func resize(img *Image, width, height int) *image.NRGBA {
	if img.width == width && img.height == height {
		return img.Clone().NRGBA()
	}
	g := gift.New(gift.Resize(width, height, gift.LanczosResampling))
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img.NRGBA())
	return dst
}

// adjust applies hue rotation then opacity in place, skipping identities.
func adjust(img *image.NRGBA, opts ImageOptions, pool *parallel.Pool) {
	hue := opts.HueRotation != 0
	fade := opts.Opacity != 255
	if !hue && !fade {
		return
	}
	m := filter.Identity()
	if hue {
		m = m.Then(filter.HueRotate(opts.HueRotation))
	}
	if fade {
		m = m.Then(filter.Opacity(float64(opts.Opacity) / 255))
	}
	m.Apply(img, img, pool)
}

func (c LineColor) nrgba() color.NRGBA {
	if c == White {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.NRGBA{A: 255}
}
