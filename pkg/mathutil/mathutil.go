// Package mathutil holds the small numeric helpers shared by the loan,
// viability and rental calculations. Percentages are on a 0-100 scale.
package mathutil

import (
	"math"

	"github.com/iwvelando/deal-viability/pkg/constants"
)

// WithinTolerance reports whether two values differ by at most tolerance.
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// NonNegative floors a value at zero.
func NonNegative(val float64) float64 {
	return math.Max(0, val)
}

// ClampInt restricts n to the closed interval [low, high]. When high < low the
// lower bound wins.
func ClampInt(n, low, high int) int {
	if n > high {
		n = high
	}
	if n < low {
		n = low
	}
	return n
}

// ApplyPercentage returns percentage percent of value.
func ApplyPercentage(value, percentage float64) float64 {
	return value * Fraction(percentage)
}

// Fraction converts a 0-100 percentage into a 0-1 fraction.
func Fraction(percentage float64) float64 {
	return percentage / constants.PercentageMultiplier
}

// SafeDivide returns numerator/denominator, or 0 when the denominator is zero.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
