// Package format provides display-string helpers for ratio metrics.
package format

import "fmt"

// NotApplicable is rendered in place of an undefined ratio metric.
const NotApplicable = "N/A"

// Percent formats a percentage value to one decimal place (e.g., "7462.5%").
func Percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// Months formats a payback period in months to one decimal place.
func Months(value float64) string {
	return fmt.Sprintf("%.1f Months", value)
}
