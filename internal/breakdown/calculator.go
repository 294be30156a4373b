package breakdown

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/targetplan/daily-breakdown/internal/config"
	"github.com/targetplan/daily-breakdown/pkg/constants"
	"github.com/targetplan/daily-breakdown/pkg/dataset"
	"github.com/targetplan/daily-breakdown/pkg/mathutil"
)

// Method identifies which growth variant produced an allocation.
type Method string

const (
	// MethodFixed is the fixed-shape growth curve driven by the
	// configured growth rate.
	MethodFixed Method = "fixed"

	// MethodRegression is the regression-driven growth curve whose rate
	// is estimated from historical monthly totals.
	MethodRegression Method = "regression"
)

// Request carries everything needed to break one monthly target into
// daily targets. MonthlyTotals and CurrentMonthIndex are only consulted
// when UseRegression is set.
type Request struct {
	MonthlyTarget     float64
	Days              []dataset.Day
	WeeklyPattern     string
	MonthlyPattern    string
	UseRegression     bool
	RegressionWindows []int
	MonthlyTotals     []float64
	CurrentMonthIndex int
}

// Provenance records how a month's daily targets were computed.
type Provenance struct {
	Method              Method
	GrowthRate          float64
	RateEstimated       bool
	GrowthSmoothing     float64
	WeeklySmoothing     float64
	MonthlySmoothing    float64
	RegressionSmoothing float64
	WeeklyPattern       config.PatternResolution
	MonthlyPattern      config.PatternResolution
	RegressionWindows   []int
}

// Calculator computes daily target allocations. It is stateless across
// calls apart from references to the read-only configuration and the
// pattern library.
type Calculator struct {
	conf     *config.Configuration
	patterns *config.PatternLibrary
	logger   *zap.Logger
}

// NewCalculator creates a Calculator bound to the given configuration and
// pattern library.
func NewCalculator(logger *zap.Logger, conf *config.Configuration, patterns *config.PatternLibrary) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{conf: conf, patterns: patterns, logger: logger}
}

// DailyTargets breaks a monthly target into one value per calendar day.
// The three weight series (growth, weekly, monthly) are combined by
// arithmetic mean, smoothed once more, and normalized so the daily values
// sum to the monthly target. A zero combined sum is a configuration error
// (all-zero coefficients) and is returned as such rather than producing
// NaN output.
func (c *Calculator) DailyTargets(req Request) ([]float64, Provenance, error) {
	daysInMonth := len(req.Days)
	if daysInMonth == 0 {
		return nil, Provenance{}, fmt.Errorf("no calendar days supplied")
	}
	b := c.conf.Breakdown

	prov := Provenance{
		Method:              MethodFixed,
		GrowthRate:          b.GrowthRate,
		GrowthSmoothing:     b.GrowthSmoothing,
		WeeklySmoothing:     b.WeeklySmoothing,
		MonthlySmoothing:    b.MonthlySmoothing,
		RegressionSmoothing: b.RegressionSmoothing,
	}

	var growthCurve []float64
	if req.UseRegression {
		prov.Method = MethodRegression
		windows := req.RegressionWindows
		if len(windows) == 0 {
			windows = b.RegressionWindows
		}
		prov.RegressionWindows = windows

		estimator := &RegressionEstimator{
			Windows:     windows,
			DefaultRate: b.GrowthRate,
			MinRate:     b.MinGrowthRate,
			MaxRate:     b.MaxGrowthRate,
		}
		rate, estimated := estimator.EstimateRate(req.MonthlyTotals, req.CurrentMonthIndex)
		prov.GrowthRate = rate
		prov.RateEstimated = estimated
		if !estimated {
			c.logger.Debug("insufficient history for regression windows, using default growth rate",
				zap.String("op", "breakdown.DailyTargets"),
				zap.Float64("rate", rate),
			)
		}
		growthCurve = RegressionGrowthCurve(daysInMonth, rate, b.RegressionSmoothing)
	} else {
		growthCurve = FixedGrowthCurve(daysInMonth, b.GrowthRate, b.GrowthSmoothing)
	}

	weekdays := make([]int, daysInMonth)
	for i, day := range req.Days {
		weekdays[i] = day.Weekday
	}
	weeklyWeights, weeklyResolution := WeeklyWeights(c.patterns, weekdays, req.WeeklyPattern, b.WeeklySmoothing)
	prov.WeeklyPattern = weeklyResolution
	if weeklyResolution.FellBack {
		c.logger.Warn("unknown weekly pattern, substituting default",
			zap.String("op", "breakdown.DailyTargets"),
			zap.String("requested", weeklyResolution.Requested),
		)
	}

	monthlyWeights, monthlyResolution := MonthlyWeights(c.patterns, daysInMonth, req.MonthlyPattern, b.MonthlySmoothing)
	prov.MonthlyPattern = monthlyResolution
	if monthlyResolution.FellBack {
		c.logger.Warn("unknown monthly pattern, substituting default",
			zap.String("op", "breakdown.DailyTargets"),
			zap.String("requested", monthlyResolution.Requested),
		)
	}

	combined := combineWeights(growthCurve, weeklyWeights, monthlyWeights)
	final := Smooth(combined, constants.CombineSmoothing)

	total := mathutil.Sum(final)
	if total <= 0 {
		return nil, prov, fmt.Errorf("combined weights sum to %v; all-zero coefficient configuration cannot be normalized", total)
	}

	dailyTargets := make([]float64, daysInMonth)
	for i, weight := range final {
		dailyTargets[i] = req.MonthlyTarget * weight / total
	}
	return dailyTargets, prov, nil
}

// combineWeights merges the three series with an unweighted arithmetic
// mean. Equal contribution is a tunable design choice; a multiplicative
// combination would compound extremes.
func combineWeights(growth, weekly, monthly []float64) []float64 {
	combined := make([]float64, len(growth))
	for i := range combined {
		combined[i] = (growth[i] + weekly[i] + monthly[i]) / 3
	}
	return combined
}
