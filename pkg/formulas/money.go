// Package formulas provides shared numeric helpers for monetary math and
// time-series analysis. All monetary values inside the engines are integer
// minor-currency units (cents); conversion to and from major units happens
// only at the HTTP boundary, via the helpers in this package.
package formulas

import "math"

// CentsFromMajor converts a major-unit decimal amount (e.g. dollars) to
// integer cents, rounding half away from zero. The conversion must be exact
// at the boundary to avoid cumulative drift.
func CentsFromMajor(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// MajorFromCents converts integer cents back to a major-unit decimal amount.
func MajorFromCents(cents int64) float64 {
	return float64(cents) / 100
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to 1 decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// RoundCents rounds a fractional cent amount to the nearest integer cent.
func RoundCents(v float64) int64 {
	return int64(math.Round(v))
}

// ClampFloat bounds v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
