package utils

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Clamp forces v into the closed interval [lo, hi]. Reversed bounds are
// swapped rather than producing a surprising result.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampSpeed bounds a motor command to [-1, 1]. NaN becomes 0 (stopped).
func ClampSpeed(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(v, -1.0, 1.0)
}

// ClampUnit bounds a scale factor to [0, 1]. NaN becomes 0.
func ClampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(v, 0.0, 1.0)
}
