// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/oceanworks/fleet-roi/pkg/constants"
)

// IsZero checks if a monetary value is effectively zero (within currency
// tolerance). Used to exclude negligible savings from chart breakdowns.
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}
