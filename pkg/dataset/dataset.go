// Package dataset defines the two source tables consumed by the breakdown
// engine: the monthly-target plan and the calendar dimension. Both are
// immutable once loaded.
package dataset

import (
	"fmt"
	"sort"
)

// TargetRow is one monthly target for one category. The category key is
// the (Line, Metric, SubMetric) triple.
type TargetRow struct {
	Year      int
	Month     int
	Line      string
	Metric    string
	SubMetric string
	Target    float64
	Unit      string
}

// CategoryKey returns the composite category identifier for the row.
func (r TargetRow) CategoryKey() string {
	return fmt.Sprintf("%s/%s/%s", r.Line, r.Metric, r.SubMetric)
}

// Day is one calendar day. Weekday is 0-6 in the calendar's own week
// order; DayID is the unique day identifier from the source table.
type Day struct {
	Year       int
	Month      int
	DayOfMonth int
	Weekday    int
	DayID      string
	DateString string
}

// Plan is the ordered monthly-target table.
type Plan struct {
	Rows []TargetRow
}

// Sort orders rows by (year, month, line, metric, sub_metric), the order
// in which the regression estimator consumes monthly totals.
func (p *Plan) Sort() {
	sort.SliceStable(p.Rows, func(i, j int) bool {
		a, b := p.Rows[i], p.Rows[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Metric != b.Metric {
			return a.Metric < b.Metric
		}
		return a.SubMetric < b.SubMetric
	})
}

// MonthlyTotals returns the targets of all rows in plan order. The caller
// is responsible for ensuring totals are strictly positive before feeding
// them to the regression estimator (log of a non-positive total is
// undefined).
func (p *Plan) MonthlyTotals() []float64 {
	totals := make([]float64, len(p.Rows))
	for i, row := range p.Rows {
		totals[i] = row.Target
	}
	return totals
}

type monthKey struct {
	year  int
	month int
}

// Calendar is the day dimension, queryable by (year, month).
type Calendar struct {
	days map[monthKey][]Day
}

// NewCalendar builds a calendar from days, grouping them by (year, month)
// and ordering each month by day of month.
func NewCalendar(days []Day) *Calendar {
	cal := &Calendar{days: make(map[monthKey][]Day)}
	for _, day := range days {
		key := monthKey{year: day.Year, month: day.Month}
		cal.days[key] = append(cal.days[key], day)
	}
	for key := range cal.days {
		month := cal.days[key]
		sort.Slice(month, func(i, j int) bool {
			return month[i].DayOfMonth < month[j].DayOfMonth
		})
	}
	return cal
}

// MonthDays returns the ordered days of the given month. A month absent
// from the calendar is a hard error; the engine never guesses or
// interpolates missing calendar data.
func (c *Calendar) MonthDays(year, month int) ([]Day, error) {
	days, ok := c.days[monthKey{year: year, month: month}]
	if !ok || len(days) == 0 {
		return nil, fmt.Errorf("no calendar days found for year %d, month %d", year, month)
	}
	return days, nil
}

// HasMonth reports whether the calendar covers the given month.
func (c *Calendar) HasMonth(year, month int) bool {
	days, ok := c.days[monthKey{year: year, month: month}]
	return ok && len(days) > 0
}

// ValidateCompatibility checks that every plan (year, month) exists in the
// calendar and returns a hard error naming the missing combinations.
func ValidateCompatibility(plan *Plan, cal *Calendar) error {
	var missing []string
	seen := make(map[monthKey]bool)
	for _, row := range plan.Rows {
		key := monthKey{year: row.Year, month: row.Month}
		if seen[key] {
			continue
		}
		seen[key] = true
		if !cal.HasMonth(row.Year, row.Month) {
			missing = append(missing, fmt.Sprintf("%d-%02d", row.Year, row.Month))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing calendar data for plan months: %v", missing)
	}
	return nil
}
