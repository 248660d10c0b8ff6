package blend

import "math"

// Channel functions. cb is the backdrop, cs the source; both are linear
// intensities in [0, 1] and every result stays in [0, 1].

func normal(_, cs float64) float64 { return cs }

func multiply(cb, cs float64) float64 { return cb * cs }

func screen(cb, cs float64) float64 { return cb + cs - cb*cs }

// overlay is HardLight with the layers swapped.
func overlay(cb, cs float64) float64 { return hardLight(cs, cb) }

func darken(cb, cs float64) float64 { return math.Min(cb, cs) }

func lighten(cb, cs float64) float64 { return math.Max(cb, cs) }

// dodge brightens the backdrop to reflect the source.
// B = 0 if Cb == 0; 1 if Cs == 1; min(1, Cb / (1 - Cs)) otherwise.
func dodge(cb, cs float64) float64 {
	if cb == 0 {
		return 0
	}
	if cs >= 1 {
		return 1
	}
	return math.Min(1, cb/(1-cs))
}

// burn darkens the backdrop to reflect the source.
// B = 1 if Cb == 1; 0 if Cs == 0; 1 - min(1, (1 - Cb) / Cs) otherwise.
func burn(cb, cs float64) float64 {
	if cb >= 1 {
		return 1
	}
	if cs == 0 {
		return 0
	}
	return 1 - math.Min(1, (1-cb)/cs)
}

// hardLight multiplies or screens depending on the source.
func hardLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return multiply(cb, 2*cs)
	}
	return screen(cb, 2*cs-1)
}

// softLight darkens or lightens depending on the source.
func softLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float64
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = math.Sqrt(cb)
	}
	return cb + (2*cs-1)*(d-cb)
}

func difference(cb, cs float64) float64 { return math.Abs(cb - cs) }

func exclusion(cb, cs float64) float64 { return cb + cs - 2*cb*cs }
