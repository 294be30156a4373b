// Package schedule defines the daily-allocation table and includes the
// orchestration that walks the monthly plan and assembles it.
package schedule

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/targetplan/daily-breakdown/internal/breakdown"
	"github.com/targetplan/daily-breakdown/internal/config"
	"github.com/targetplan/daily-breakdown/pkg/dataset"
)

// Allocation is one daily target for one category, with full provenance.
type Allocation struct {
	Year        int
	Month       int
	DayID       string
	DateString  string
	Line        string
	Metric      string
	SubMetric   string
	DailyTarget float64
	Unit        string

	Method              breakdown.Method
	GrowthRate          float64
	RateEstimated       bool
	GrowthSmoothing     float64
	WeeklySmoothing     float64
	MonthlySmoothing    float64
	RegressionSmoothing float64
	WeeklyPattern       string
	WeeklyFellBack      bool
	MonthlyPattern      string
	MonthlyFellBack     bool
	RegressionWindows   []int
}

// CategoryKey returns the composite category identifier for the row.
func (a Allocation) CategoryKey() string {
	return fmt.Sprintf("%s/%s/%s", a.Line, a.Metric, a.SubMetric)
}

// Schedule is the full daily-allocation table produced by one method run.
type Schedule struct {
	MethodName  string
	RunID       string
	Allocations []Allocation
}

// Build decomposes every plan row into daily allocations using the given
// method. Rows are processed in plan order; regression mode receives the
// ordered monthly totals of the whole plan with the row index as the
// current-month index. A plan month missing from the calendar is a hard
// error.
func Build(logger *zap.Logger, conf *config.Configuration, plan *dataset.Plan, cal *dataset.Calendar, method config.Method) (*Schedule, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	patterns, err := conf.PatternLibrary()
	if err != nil {
		return nil, err
	}
	calculator := breakdown.NewCalculator(logger, conf, patterns)

	var monthlyTotals []float64
	if method.UseRegression {
		monthlyTotals = plan.MonthlyTotals()
	}

	result := &Schedule{MethodName: method.Name}
	for i, row := range plan.Rows {
		days, err := cal.MonthDays(row.Year, row.Month)
		if err != nil {
			return nil, fmt.Errorf("plan row %s %d-%02d: %w", row.CategoryKey(), row.Year, row.Month, err)
		}

		dailyTargets, prov, err := calculator.DailyTargets(breakdown.Request{
			MonthlyTarget:     row.Target,
			Days:              days,
			WeeklyPattern:     method.WeeklyPattern,
			MonthlyPattern:    method.MonthlyPattern,
			UseRegression:     method.UseRegression,
			RegressionWindows: conf.WindowsFor(method),
			MonthlyTotals:     monthlyTotals,
			CurrentMonthIndex: i,
		})
		if err != nil {
			return nil, fmt.Errorf("plan row %s %d-%02d: %w", row.CategoryKey(), row.Year, row.Month, err)
		}

		logger.Debug("decomposed monthly target",
			zap.String("op", "schedule.Build"),
			zap.String("category", row.CategoryKey()),
			zap.Int("year", row.Year),
			zap.Int("month", row.Month),
			zap.Int("days", len(days)),
			zap.Float64("growthRate", prov.GrowthRate),
		)

		for j, day := range days {
			result.Allocations = append(result.Allocations, Allocation{
				Year:        row.Year,
				Month:       row.Month,
				DayID:       day.DayID,
				DateString:  day.DateString,
				Line:        row.Line,
				Metric:      row.Metric,
				SubMetric:   row.SubMetric,
				DailyTarget: dailyTargets[j],
				Unit:        row.Unit,

				Method:              prov.Method,
				GrowthRate:          prov.GrowthRate,
				RateEstimated:       prov.RateEstimated,
				GrowthSmoothing:     prov.GrowthSmoothing,
				WeeklySmoothing:     prov.WeeklySmoothing,
				MonthlySmoothing:    prov.MonthlySmoothing,
				RegressionSmoothing: prov.RegressionSmoothing,
				WeeklyPattern:       prov.WeeklyPattern.Resolved,
				WeeklyFellBack:      prov.WeeklyPattern.FellBack,
				MonthlyPattern:      prov.MonthlyPattern.Resolved,
				MonthlyFellBack:     prov.MonthlyPattern.FellBack,
				RegressionWindows:   prov.RegressionWindows,
			})
		}
	}

	logger.Info("daily breakdown assembled",
		zap.String("op", "schedule.Build"),
		zap.String("method", method.Name),
		zap.Int("planRows", len(plan.Rows)),
		zap.Int("allocations", len(result.Allocations)),
	)
	return result, nil
}
