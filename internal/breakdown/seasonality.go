package breakdown

import (
	"github.com/targetplan/daily-breakdown/internal/config"
	"github.com/targetplan/daily-breakdown/pkg/constants"
)

// WeeklyWeights maps each day's weekday index to its coefficient in the
// named weekly set and smooths the result. Unknown pattern names resolve
// to the default set; the returned resolution makes that substitution
// visible to the caller.
func WeeklyWeights(lib *config.PatternLibrary, weekdays []int, pattern string, smoothing float64) ([]float64, config.PatternResolution) {
	coefficients, resolution := lib.ResolveWeekly(pattern)
	weights := make([]float64, len(weekdays))
	for i, weekday := range weekdays {
		weights[i] = coefficients[weekday]
	}
	return Smooth(weights, smoothing), resolution
}

// MonthlyWeights maps each day of the month to its coefficient in the
// named monthly set and smooths the result. Months shorter than the set
// use a prefix; months longer than the set pad with the neutral weight.
// The same fallback rule as WeeklyWeights applies to unknown names.
func MonthlyWeights(lib *config.PatternLibrary, daysInMonth int, pattern string, smoothing float64) ([]float64, config.PatternResolution) {
	coefficients, resolution := lib.ResolveMonthly(pattern)
	weights := make([]float64, daysInMonth)
	for i := 0; i < daysInMonth; i++ {
		if i < len(coefficients) {
			weights[i] = coefficients[i]
		} else {
			weights[i] = constants.NeutralWeight
		}
	}
	return Smooth(weights, smoothing), resolution
}
