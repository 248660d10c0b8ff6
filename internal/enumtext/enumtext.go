// Package enumtext parses and formats the names of small enums.
//
// Names match case-insensitively under Unicode case folding, and '-', '_'
// and spaces are ignored, so "hard-light", "HARD_LIGHT" and "HardLight"
// all select the same value.
package enumtext

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknown is returned when a name matches no value.
var ErrUnknown = errors.New("unknown enum value")

// Enum is a small named enum type.
type Enum interface {
	~uint8
	String() string
}

// normalize folds case and drops separators.
func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	return cases.Fold().String(s)
}

// Parse returns the value among values whose String() matches name, or an
// error wrapping ErrUnknown.
func Parse[T Enum](kind, name string, values []T) (T, error) {
	want := normalize(name)
	for _, v := range values {
		if normalize(v.String()) == want {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q", ErrUnknown, kind, name)
}

// Marshal returns the text form of v, or an error wrapping ErrUnknown if
// v has no name.
func Marshal[T Enum](kind string, v T, values []T) ([]byte, error) {
	if int(v) >= len(values) {
		return nil, fmt.Errorf("%w: %s %d", ErrUnknown, kind, uint8(v))
	}
	return []byte(v.String()), nil
}
