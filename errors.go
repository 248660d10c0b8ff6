package collage

import (
	"errors"

	"github.com/gogpu/collage/internal/enumtext"
)

var (
	// ErrInvalidSize is returned for a non-positive output width or height.
	ErrInvalidSize = errors.New("collage: invalid output size")

	// ErrNilImage is returned when a render is missing an input image.
	ErrNilImage = errors.New("collage: nil image")

	// ErrEmptyImage is returned for an input image with zero area.
	ErrEmptyImage = errors.New("collage: empty image")

	// ErrInvalidBlur is returned for a negative or non-finite blur sigma.
	ErrInvalidBlur = errors.New("collage: invalid blur")

	// ErrInvalidOpacity is returned for an opacity outside [0, 255] or an
	// overlay opacity outside [0, 1].
	ErrInvalidOpacity = errors.New("collage: invalid opacity")

	// ErrInvalidOverlay is returned for a non-positive line spacing or
	// thickness while the overlay is enabled.
	ErrInvalidOverlay = errors.New("collage: invalid overlay")

	// ErrInvalidNoise is returned for an octave count outside
	// [0, MaxOctaves] or a non-finite noise, warp or grain parameter.
	ErrInvalidNoise = errors.New("collage: invalid noise parameter")

	// ErrModeNotAllowed is returned when Mix is combined with a blend mode
	// that gives the same result whichever image is on top.
	ErrModeNotAllowed = errors.New("collage: blend mode not allowed")

	// ErrUnknownEnum is returned when a settings file names an unknown enum
	// value, or when a Settings field holds an out-of-range value.
	ErrUnknownEnum = enumtext.ErrUnknown
)
