package market

import "time"

// Act365Fixed returns the year fraction between two dates under the
// Actual/365 Fixed day-count convention: calendar days divided by 365.
// This is the standard time axis for flat discount and volatility curves
// (the same convention QuantLib and Bloomberg use for curve interpolation).
// The result is negative when to precedes from.
func Act365Fixed(from, to time.Time) float64 {
	days := to.Sub(from).Hours() / 24.0
	return days / 365.0
}
