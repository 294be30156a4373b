package breakdown

import (
	"math"

	"github.com/targetplan/daily-breakdown/pkg/mathutil"
)

// FixedGrowthCurve produces one growth factor per day from a configured
// daily rate: a gentle ramp over the first 30% of the month, steeper
// acceleration through the middle 40%, and a taper over the last 30%.
// The three segments are continuous at the breakpoints. The curve is
// smoothed with the given factor before being returned.
func FixedGrowthCurve(daysInMonth int, rate, smoothing float64) []float64 {
	curve := make([]float64, daysInMonth)
	for day := 0; day < daysInMonth; day++ {
		position := float64(day) / float64(daysInMonth)
		switch {
		case position < 0.3:
			curve[day] = 1 + (rate*0.3)*position*10
		case position < 0.7:
			mid := (position - 0.3) / 0.4
			curve[day] = 1 + (rate*0.8)*(0.3+mid*0.7)
		default:
			end := (position - 0.7) / 0.3
			curve[day] = 1 + (rate*0.6)*(0.8+end*0.2)
		}
	}
	return Smooth(curve, smoothing)
}

// RegressionGrowthCurve produces one growth factor per day from an
// estimated rate. The shape is deliberately gentler than FixedGrowthCurve,
// reflecting lower confidence in a rate derived from history: moderate
// start, mild mid-month acceleration, stabilization, and a very gentle
// finish over the last 10%. The two curves are separate named variants on
// purpose; their breakpoints and damping constants differ.
func RegressionGrowthCurve(daysInMonth int, rate, smoothing float64) []float64 {
	curve := make([]float64, daysInMonth)
	for day := 0; day < daysInMonth; day++ {
		position := float64(day) / float64(daysInMonth)
		switch {
		case position < 0.2:
			curve[day] = 1 + (rate*0.5)*position*5
		case position < 0.6:
			mid := (position - 0.2) / 0.4
			curve[day] = 1 + (rate*0.8)*(0.5+mid*0.5)
		case position < 0.9:
			end := (position - 0.6) / 0.3
			curve[day] = 1 + (rate*0.6)*(0.8+end*0.2)
		default:
			final := (position - 0.9) / 0.1
			curve[day] = 1 + (rate*0.3)*(0.9+final*0.1)
		}
	}
	return Smooth(curve, smoothing)
}

// RegressionEstimator derives a daily growth rate from historical monthly
// totals via log-linear regression over trailing windows. It is stateless
// across calls.
type RegressionEstimator struct {
	// Windows are the trailing window sizes in months, largest first.
	Windows []int
	// DefaultRate is returned when no window has sufficient history.
	DefaultRate float64
	// MinRate and MaxRate clamp each per-window estimate.
	MinRate float64
	MaxRate float64
}

// EstimateRate fits an OLS line to (index, ln total) over each window that
// has enough history ending at currentIndex, converts each slope to a
// daily rate via exp(slope)-1, clamps it, and returns the window-size
// weighted average. estimated is false when no window fit, in which case
// the default rate is returned unchanged.
//
// Totals must be strictly positive; that is a caller precondition, the
// estimator takes logs without re-checking.
func (e *RegressionEstimator) EstimateRate(totals []float64, currentIndex int) (rate float64, estimated bool) {
	if len(totals) < 2 {
		return e.DefaultRate, false
	}

	var weightedSum, totalWeight float64
	for _, window := range e.Windows {
		if currentIndex < window-1 {
			continue
		}
		start := currentIndex - window + 1
		windowTotals := totals[start : currentIndex+1]
		if len(windowTotals) < 2 {
			continue
		}

		xs := make([]float64, len(windowTotals))
		ys := make([]float64, len(windowTotals))
		for i, total := range windowTotals {
			xs[i] = float64(i)
			ys[i] = math.Log(total)
		}
		slope, _, ok := mathutil.LinearFit(xs, ys)
		if !ok {
			continue
		}

		daily := mathutil.Clamp(math.Exp(slope)-1, e.MinRate, e.MaxRate)
		weightedSum += daily * float64(window)
		totalWeight += float64(window)
	}

	if totalWeight == 0 {
		return e.DefaultRate, false
	}
	return weightedSum / totalWeight, true
}
