package breakdown

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Evaluate the fixed-curve segment formulas directly on either side of
// the internal breakpoints; the curve must be continuous by construction.
func TestFixedCurveContinuousAtBreakpoints(t *testing.T) {
	rate := 0.012
	left03 := 1 + (rate*0.3)*0.3*10
	right03 := 1 + (rate*0.8)*(0.3+((0.3-0.3)/0.4)*0.7)
	assert.InDelta(t, left03, right03, 1e-12, "discontinuity at p=0.3")

	left07 := 1 + (rate*0.8)*(0.3+((0.7-0.3)/0.4)*0.7)
	right07 := 1 + (rate*0.6)*(0.8+((0.7-0.7)/0.3)*0.2)
	assert.InDelta(t, left07, right07, 1e-12, "discontinuity at p=0.7")
}

func TestRegressionCurveContinuousAtBreakpoints(t *testing.T) {
	rate := 0.02
	left02 := 1 + (rate*0.5)*0.2*5
	right02 := 1 + (rate*0.8)*(0.5+((0.2-0.2)/0.4)*0.5)
	assert.InDelta(t, left02, right02, 1e-12, "discontinuity at p=0.2")

	left06 := 1 + (rate*0.8)*(0.5+((0.6-0.2)/0.4)*0.5)
	right06 := 1 + (rate*0.6)*(0.8+((0.6-0.6)/0.3)*0.2)
	assert.InDelta(t, left06, right06, 1e-12, "discontinuity at p=0.6")

	left09 := 1 + (rate*0.6)*(0.8+((0.9-0.6)/0.3)*0.2)
	right09 := 1 + (rate*0.3)*(0.9+((0.9-0.9)/0.1)*0.1)
	assert.InDelta(t, left09, right09, 1e-12, "discontinuity at p=0.9")
}

func TestFixedCurveZeroRateIsFlat(t *testing.T) {
	curve := FixedGrowthCurve(30, 0, 0.5)
	for i, factor := range curve {
		assert.InDelta(t, 1.0, factor, 1e-12, "day %d", i)
	}
}

func TestFixedCurveIsNonDecreasingForPositiveRate(t *testing.T) {
	curve := FixedGrowthCurve(31, 0.012, 0.5)
	require.Len(t, curve, 31)
	for i := 1; i < len(curve); i++ {
		assert.GreaterOrEqual(t, curve[i], curve[i-1]-1e-12, "day %d", i)
	}
	assert.Greater(t, curve[30], curve[0])
}

func TestCurveVariantsDiffer(t *testing.T) {
	fixed := FixedGrowthCurve(30, 0.012, 0)
	regression := RegressionGrowthCurve(30, 0.012, 0)
	assert.NotEqual(t, fixed, regression)
}

func defaultEstimator(windows ...int) *RegressionEstimator {
	return &RegressionEstimator{
		Windows:     windows,
		DefaultRate: 0.012,
		MinRate:     0.001,
		MaxRate:     0.05,
	}
}

func TestEstimateRateInsufficientHistory(t *testing.T) {
	estimator := defaultEstimator(30, 7)

	rate, estimated := estimator.EstimateRate([]float64{1000000}, 0)
	assert.False(t, estimated)
	assert.Equal(t, 0.012, rate)

	// History exists but is shorter than the smallest window.
	rate, estimated = estimator.EstimateRate([]float64{1, 2, 3}, 2)
	assert.False(t, estimated)
	assert.Equal(t, 0.012, rate)
}

func TestEstimateRateTwoPointGrowth(t *testing.T) {
	estimator := defaultEstimator(2)

	// 20% month-over-month growth: slope = ln(1.2), daily rate exp(slope)-1
	// = 0.2 before clamping, clamped to the 5% ceiling.
	rate, estimated := estimator.EstimateRate([]float64{1000000, 1200000}, 1)
	require.True(t, estimated)
	assert.Greater(t, rate, 0.0)
	assert.GreaterOrEqual(t, rate, estimator.MinRate)
	assert.LessOrEqual(t, rate, estimator.MaxRate)
	assert.InDelta(t, 0.05, rate, 1e-12)
}

func TestEstimateRateMonotonicInTrend(t *testing.T) {
	estimator := &RegressionEstimator{
		Windows:     []int{4},
		DefaultRate: 0.012,
		MinRate:     -1,
		MaxRate:     1,
	}

	low := []float64{100, 101, 102, 103}
	high := []float64{100, 105, 110, 116}

	lowRate, ok := estimator.EstimateRate(low, 3)
	require.True(t, ok)
	highRate, ok := estimator.EstimateRate(high, 3)
	require.True(t, ok)
	assert.GreaterOrEqual(t, highRate, lowRate)
}

func TestEstimateRateWindowWeighting(t *testing.T) {
	// Flat long window, strong growth in the short window: the long
	// window dominates the weighted average.
	totals := []float64{100, 100, 100, 100, 100, 120}
	wide := &RegressionEstimator{Windows: []int{6}, DefaultRate: 0, MinRate: -1, MaxRate: 1}
	both := &RegressionEstimator{Windows: []int{6, 2}, DefaultRate: 0, MinRate: -1, MaxRate: 1}
	narrow := &RegressionEstimator{Windows: []int{2}, DefaultRate: 0, MinRate: -1, MaxRate: 1}

	wideRate, ok := wide.EstimateRate(totals, 5)
	require.True(t, ok)
	bothRate, ok := both.EstimateRate(totals, 5)
	require.True(t, ok)
	narrowRate, ok := narrow.EstimateRate(totals, 5)
	require.True(t, ok)

	assert.Greater(t, narrowRate, wideRate)
	// Combined sits between the extremes, closer to the 6-month window.
	assert.Greater(t, bothRate, wideRate)
	assert.Less(t, bothRate, narrowRate)
	assert.Less(t, math.Abs(bothRate-wideRate), math.Abs(bothRate-narrowRate))
}

func TestEstimateRateClampsNegativeTrend(t *testing.T) {
	estimator := defaultEstimator(3)
	rate, estimated := estimator.EstimateRate([]float64{100, 80, 60}, 2)
	require.True(t, estimated)
	assert.Equal(t, estimator.MinRate, rate)
}

func TestEstimateRateSkipsWindowsLargerThanHistory(t *testing.T) {
	estimator := defaultEstimator(30, 3)
	rate, estimated := estimator.EstimateRate([]float64{100, 110, 121}, 2)
	require.True(t, estimated)
	// Only the 3-month window fits: pure 10% monthly trend, clamped.
	assert.InDelta(t, 0.05, rate, 1e-12)
}
