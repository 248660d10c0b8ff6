package collage

import "fmt"

// RenderOption configures a single Render call.
//
// Example:
//
//	out, err := collage.Render(img1, img2, cfg,
//	    collage.WithWorkers(4),
//	    collage.WithProgress(func(s collage.Stage) { log.Println(s) }),
//	)
type RenderOption func(*renderOptions)

type renderOptions struct {
	workers  int
	progress func(Stage)
}

func defaultRenderOptions() renderOptions {
	return renderOptions{
		workers:  0, // GOMAXPROCS
		progress: func(Stage) {},
	}
}

// WithWorkers sets the number of worker goroutines. Values <= 0 use
// GOMAXPROCS. The output does not depend on the worker count.
func WithWorkers(n int) RenderOption {
	return func(o *renderOptions) {
		o.workers = n
	}
}

// WithProgress registers fn to be called on the rendering goroutine as each
// stage begins, and once more with StageDone. A nil fn is ignored.
func WithProgress(fn func(Stage)) RenderOption {
	return func(o *renderOptions) {
		if fn != nil {
			o.progress = fn
		}
	}
}

// Stage is a step of the render pipeline.
type Stage uint8

const (
	StageResize Stage = iota
	StageAdjust
	StageBlur
	StageComposite
	StageOverlay
	StageGrain
	StageRasterize
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageResize:
		return "resize"
	case StageAdjust:
		return "adjust"
	case StageBlur:
		return "blur"
	case StageComposite:
		return "composite"
	case StageOverlay:
		return "overlay"
	case StageGrain:
		return "grain"
	case StageRasterize:
		return "rasterize"
	case StageDone:
		return "done"
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}
