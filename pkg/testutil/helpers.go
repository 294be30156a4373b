// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"

	"github.com/targetplan/daily-breakdown/pkg/dataset"
)

// MonthDays builds a synthetic calendar month of n days. Day ids follow
// the YYYYMMDD convention and weekdays cycle from the first of the
// month, matching the derived weekday rule.
func MonthDays(year, month, n int) []dataset.Day {
	days := make([]dataset.Day, n)
	for d := 1; d <= n; d++ {
		days[d-1] = dataset.Day{
			Year:       year,
			Month:      month,
			DayOfMonth: d,
			Weekday:    (d - 1) % 7,
			DayID:      fmt.Sprintf("%04d%02d%02d", year, month, d),
			DateString: fmt.Sprintf("%04d-%02d-%02d", year, month, d),
		}
	}
	return days
}

// Calendar builds a calendar covering consecutive months starting at
// (year, month), each with the given number of days.
func Calendar(year, month int, daysPerMonth ...int) *dataset.Calendar {
	var days []dataset.Day
	y, m := year, month
	for _, n := range daysPerMonth {
		days = append(days, MonthDays(y, m, n)...)
		m++
		if m > 12 {
			m = 1
			y++
		}
	}
	return dataset.NewCalendar(days)
}

// PlanRow builds a target row for a fixed test category.
func PlanRow(year, month int, target float64) dataset.TargetRow {
	return dataset.TargetRow{
		Year:      year,
		Month:     month,
		Line:      "retail",
		Metric:    "revenue",
		SubMetric: "cards",
		Target:    target,
		Unit:      "IRR",
	}
}

// Plan builds a single-category plan from consecutive monthly targets
// starting at (year, month).
func Plan(year, month int, targets ...float64) *dataset.Plan {
	plan := &dataset.Plan{}
	y, m := year, month
	for _, target := range targets {
		plan.Rows = append(plan.Rows, PlanRow(y, m, target))
		m++
		if m > 12 {
			m = 1
			y++
		}
	}
	plan.Sort()
	return plan
}
