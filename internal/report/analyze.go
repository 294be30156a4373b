// Package report computes quality metrics over a finished schedule:
// day-to-day smoothness and reconciliation of daily sums against the
// monthly plan targets.
package report

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/targetplan/daily-breakdown/internal/schedule"
	"github.com/targetplan/daily-breakdown/pkg/constants"
	"github.com/targetplan/daily-breakdown/pkg/dataset"
)

// SmoothnessStats summarizes day-to-day variation of the daily targets,
// computed within each (year, month, category) series.
type SmoothnessStats struct {
	AvgDayChange    float64
	MaxDayChange    float64
	AvgDayChangePct float64
	MaxDayChangePct float64
	SmoothDaysPct   float64 // share of days whose change is under the threshold
}

// ValidationStats summarizes how closely the daily sums reconcile with
// the monthly targets.
type ValidationStats struct {
	AvgDifferencePct float64
	MaxDifferencePct float64
	MinDifferencePct float64
	Reconciled       bool // every month within the relative tolerance
}

// Analysis is the result of analyzing one schedule.
type Analysis struct {
	Smoothness SmoothnessStats
	Validation ValidationStats
}

type seriesKey struct {
	year     int
	month    int
	category string
}

// Analyze computes smoothness and reconciliation statistics for a
// schedule against its plan. Monthly sums are accumulated with decimal
// arithmetic so reconciliation is not distorted by accumulation order.
func Analyze(logger *zap.Logger, sched *schedule.Schedule, plan *dataset.Plan) (*Analysis, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(sched.Allocations) == 0 {
		return nil, fmt.Errorf("schedule has no allocations to analyze")
	}

	series := make(map[seriesKey][]float64)
	sums := make(map[seriesKey]decimal.Decimal)
	var order []seriesKey
	for _, alloc := range sched.Allocations {
		key := seriesKey{year: alloc.Year, month: alloc.Month, category: alloc.CategoryKey()}
		if _, seen := series[key]; !seen {
			order = append(order, key)
		}
		series[key] = append(series[key], alloc.DailyTarget)
		sums[key] = sums[key].Add(decimal.NewFromFloat(alloc.DailyTarget))
	}

	analysis := &Analysis{}
	analysis.Smoothness = smoothness(series)

	targets := make(map[seriesKey]float64, len(plan.Rows))
	for _, row := range plan.Rows {
		targets[seriesKey{year: row.Year, month: row.Month, category: row.CategoryKey()}] = row.Target
	}

	validation := ValidationStats{
		Reconciled:       true,
		MinDifferencePct: math.Inf(1),
		MaxDifferencePct: math.Inf(-1),
	}
	var diffSum float64
	var months int
	for _, key := range order {
		target, ok := targets[key]
		if !ok {
			return nil, fmt.Errorf("allocation series %s %d-%02d has no matching plan row", key.category, key.year, key.month)
		}
		computed := sums[key]
		diff := computed.Sub(decimal.NewFromFloat(target))
		var diffPct float64
		if target != 0 {
			diffPct, _ = diff.Div(decimal.NewFromFloat(target)).Mul(decimal.NewFromInt(constants.PercentageMultiplier)).Float64()
		}
		diffSum += diffPct
		months++
		if diffPct > validation.MaxDifferencePct {
			validation.MaxDifferencePct = diffPct
		}
		if diffPct < validation.MinDifferencePct {
			validation.MinDifferencePct = diffPct
		}
		if math.Abs(diffPct) > constants.TargetTolerance*constants.PercentageMultiplier {
			validation.Reconciled = false
			logger.Warn("monthly reconciliation outside tolerance",
				zap.String("op", "report.Analyze"),
				zap.String("category", key.category),
				zap.Int("year", key.year),
				zap.Int("month", key.month),
				zap.Float64("differencePct", diffPct),
			)
		}
	}
	if months > 0 {
		validation.AvgDifferencePct = diffSum / float64(months)
	}
	analysis.Validation = validation

	logger.Info("schedule analyzed",
		zap.String("op", "report.Analyze"),
		zap.String("method", sched.MethodName),
		zap.Float64("avgDayChangePct", analysis.Smoothness.AvgDayChangePct),
		zap.Float64("smoothDaysPct", analysis.Smoothness.SmoothDaysPct),
		zap.Bool("reconciled", validation.Reconciled),
	)
	return analysis, nil
}

// smoothness aggregates first-difference statistics across all series.
func smoothness(series map[seriesKey][]float64) SmoothnessStats {
	var stats SmoothnessStats
	var changeSum, pctSum float64
	var changes, smoothDays int
	for _, values := range series {
		for i := 1; i < len(values); i++ {
			change := math.Abs(values[i] - values[i-1])
			changeSum += change
			if change > stats.MaxDayChange {
				stats.MaxDayChange = change
			}
			if values[i-1] != 0 {
				pct := math.Abs(change/values[i-1]) * constants.PercentageMultiplier
				pctSum += pct
				if pct > stats.MaxDayChangePct {
					stats.MaxDayChangePct = pct
				}
				if pct < constants.SmoothDayChangeThreshold {
					smoothDays++
				}
			}
			changes++
		}
	}
	if changes > 0 {
		stats.AvgDayChange = changeSum / float64(changes)
		stats.AvgDayChangePct = pctSum / float64(changes)
		stats.SmoothDaysPct = float64(smoothDays) / float64(changes) * constants.PercentageMultiplier
	}
	return stats
}
