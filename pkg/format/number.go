// Package format renders result values as display text.
package format

import (
	"strconv"

	"github.com/iwvelando/boiler-optimizer/pkg/constants"
)

// Fixed returns value with exactly decimals digits after the point (e.g. "88.20").
// Negative zero is printed without a sign.
func Fixed(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	if value == 0 {
		value = 0
	}
	return strconv.FormatFloat(value, 'f', decimals, 64)
}

// Result formats a result field with the display precision.
func Result(value float64) string {
	return Fixed(value, constants.ResultPrecision)
}

// Energy returns a result value suffixed with the energy unit (e.g. "100.00 MJ/s").
func Energy(value float64) string {
	return Result(value) + " " + constants.EnergyUnit
}
