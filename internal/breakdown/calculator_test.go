package breakdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/targetplan/daily-breakdown/internal/config"
	"github.com/targetplan/daily-breakdown/pkg/constants"
	"github.com/targetplan/daily-breakdown/pkg/mathutil"
	"github.com/targetplan/daily-breakdown/pkg/testutil"
)

func newTestCalculator(t *testing.T, conf *config.Configuration) *Calculator {
	t.Helper()
	patterns, err := conf.PatternLibrary()
	require.NoError(t, err)
	logger, _ := zap.NewDevelopment()
	return NewCalculator(logger, conf, patterns)
}

func TestDailyTargetsSumToMonthlyTarget(t *testing.T) {
	conf := config.DefaultConfiguration()
	calculator := newTestCalculator(t, conf)

	tests := []struct {
		name           string
		target         float64
		days           int
		weeklyPattern  string
		monthlyPattern string
	}{
		{"default patterns 31 days", 5000000, 31, "default", "default"},
		{"weekend heavy 30 days", 1234567.89, 30, "weekend_heavy", "salary_cycle"},
		{"business focused 29 days", 42, 29, "business_focused", "month_end_heavy"},
		{"single day month", 99999, 1, "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets, _, err := calculator.DailyTargets(Request{
				MonthlyTarget:  tt.target,
				Days:           testutil.MonthDays(1404, 1, tt.days),
				WeeklyPattern:  tt.weeklyPattern,
				MonthlyPattern: tt.monthlyPattern,
			})
			require.NoError(t, err)
			require.Len(t, targets, tt.days)
			assert.True(t, mathutil.WithinRelativeTolerance(mathutil.Sum(targets), tt.target, constants.TargetTolerance),
				"sum %v does not match target %v", mathutil.Sum(targets), tt.target)
			for i, v := range targets {
				assert.GreaterOrEqual(t, v, 0.0, "day %d", i)
			}
		})
	}
}

// With flat patterns and zero growth every curve is flat, so all 30 days
// get an equal share of the 3,000,000 target.
func TestDailyTargetsBalancedScenario(t *testing.T) {
	conf := config.DefaultConfiguration()
	conf.Breakdown.GrowthRate = 0
	calculator := newTestCalculator(t, conf)

	targets, prov, err := calculator.DailyTargets(Request{
		MonthlyTarget:  3000000,
		Days:           testutil.MonthDays(1404, 2, 30),
		WeeklyPattern:  constants.BalancedPatternName,
		MonthlyPattern: constants.BalancedPatternName,
	})
	require.NoError(t, err)
	require.Len(t, targets, 30)

	for i, v := range targets {
		assert.InDelta(t, 100000.0, v, 1e-6, "day %d", i)
	}
	assert.Equal(t, MethodFixed, prov.Method)
	assert.False(t, prov.RateEstimated)
}

func TestDailyTargetsRegressionProvenance(t *testing.T) {
	conf := config.DefaultConfiguration()
	calculator := newTestCalculator(t, conf)

	// Two months of history with a single window of 2 fitting exactly.
	targets, prov, err := calculator.DailyTargets(Request{
		MonthlyTarget:     1200000,
		Days:              testutil.MonthDays(1404, 2, 30),
		WeeklyPattern:     constants.DefaultPatternName,
		MonthlyPattern:    constants.DefaultPatternName,
		UseRegression:     true,
		RegressionWindows: []int{2},
		MonthlyTotals:     []float64{1000000, 1200000},
		CurrentMonthIndex: 1,
	})
	require.NoError(t, err)
	require.Len(t, targets, 30)

	assert.Equal(t, MethodRegression, prov.Method)
	assert.True(t, prov.RateEstimated)
	assert.Greater(t, prov.GrowthRate, 0.0)
	assert.LessOrEqual(t, prov.GrowthRate, conf.Breakdown.MaxGrowthRate)
	assert.GreaterOrEqual(t, prov.GrowthRate, conf.Breakdown.MinGrowthRate)
	assert.Equal(t, []int{2}, prov.RegressionWindows)
}

func TestDailyTargetsRegressionFallsBackToDefaultRate(t *testing.T) {
	conf := config.DefaultConfiguration()
	calculator := newTestCalculator(t, conf)

	_, prov, err := calculator.DailyTargets(Request{
		MonthlyTarget:     1000000,
		Days:              testutil.MonthDays(1404, 1, 30),
		WeeklyPattern:     constants.DefaultPatternName,
		MonthlyPattern:    constants.DefaultPatternName,
		UseRegression:     true,
		RegressionWindows: []int{30, 7},
		MonthlyTotals:     []float64{1000000},
		CurrentMonthIndex: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, MethodRegression, prov.Method)
	assert.False(t, prov.RateEstimated)
	assert.Equal(t, conf.Breakdown.GrowthRate, prov.GrowthRate)
}

func TestDailyTargetsUnknownPatternsObservableInProvenance(t *testing.T) {
	conf := config.DefaultConfiguration()
	calculator := newTestCalculator(t, conf)

	fromUnknown, prov, err := calculator.DailyTargets(Request{
		MonthlyTarget:  500000,
		Days:           testutil.MonthDays(1404, 3, 31),
		WeeklyPattern:  "definitely_missing",
		MonthlyPattern: "also_missing",
	})
	require.NoError(t, err)
	assert.True(t, prov.WeeklyPattern.FellBack)
	assert.True(t, prov.MonthlyPattern.FellBack)
	assert.Equal(t, constants.DefaultPatternName, prov.WeeklyPattern.Resolved)
	assert.Equal(t, constants.DefaultPatternName, prov.MonthlyPattern.Resolved)

	fromDefault, _, err := calculator.DailyTargets(Request{
		MonthlyTarget:  500000,
		Days:           testutil.MonthDays(1404, 3, 31),
		WeeklyPattern:  constants.DefaultPatternName,
		MonthlyPattern: constants.DefaultPatternName,
	})
	require.NoError(t, err)
	assert.Equal(t, fromDefault, fromUnknown)
}

func TestDailyTargetsNoDays(t *testing.T) {
	conf := config.DefaultConfiguration()
	calculator := newTestCalculator(t, conf)

	_, _, err := calculator.DailyTargets(Request{MonthlyTarget: 1000})
	assert.Error(t, err)
}

func TestCombineWeightsIsArithmeticMean(t *testing.T) {
	combined := combineWeights([]float64{1, 2}, []float64{2, 4}, []float64{3, 6})
	assert.Equal(t, []float64{2, 4}, combined)
}
