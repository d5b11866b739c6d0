// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/boiler-optimizer/pkg/constants"
)

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// AllFinite reports whether every value is finite.
func AllFinite(vals ...float64) bool {
	for _, v := range vals {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Linspace returns n evenly spaced samples over [start, stop], endpoints included.
// n == 1 yields only start; n <= 0 yields an empty slice.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{start}
	}
	step := (stop - start) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// FromPercent converts a percentage to a fraction.
func FromPercent(percentage float64) float64 {
	return percentage / constants.PercentageMultiplier
}
