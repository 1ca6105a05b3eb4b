package common

import "cmp"

// PositiveOr returns v when it is greater than zero and fallback otherwise.
// Used to guard aspect ratios and viewport sizes before they reach a divisor.
//
// Parameters:
//   - v: the candidate value
//   - fallback: the value used when v is zero or negative
//
// Returns:
//   - T: v or fallback
func PositiveOr[T cmp.Ordered](v, fallback T) T {
	var zero T
	if cmp.Compare(v, zero) > 0 {
		return v
	}
	return fallback
}
