// Package mathutil provides common mathematical utility functions.
package mathutil

import "math"

// Clamp restricts val to the inclusive range [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// WithinRelativeTolerance checks if two values agree to within a relative
// tolerance scaled by the magnitude of the expected value.
func WithinRelativeTolerance(actual, expected, tolerance float64) bool {
	if expected == 0 {
		return math.Abs(actual) <= tolerance
	}
	return math.Abs(actual-expected) <= tolerance*math.Abs(expected)
}

// Mean returns the arithmetic mean of vals, or 0 for an empty slice.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return Sum(vals) / float64(len(vals))
}

// Sum returns the sum of vals.
func Sum(vals []float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total
}

// MaxAbsFirstDifference returns the largest absolute difference between
// consecutive elements of vals, or 0 when vals has fewer than two elements.
func MaxAbsFirstDifference(vals []float64) float64 {
	maxDiff := 0.0
	for i := 1; i < len(vals); i++ {
		if d := math.Abs(vals[i] - vals[i-1]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * 100
}
