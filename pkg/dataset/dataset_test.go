package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanSortOrder(t *testing.T) {
	plan := &Plan{Rows: []TargetRow{
		{Year: 1404, Month: 2, Line: "retail", Metric: "revenue", SubMetric: "cards", Target: 2},
		{Year: 1404, Month: 1, Line: "retail", Metric: "revenue", SubMetric: "cards", Target: 1},
		{Year: 1403, Month: 12, Line: "retail", Metric: "revenue", SubMetric: "cards", Target: 0.5},
		{Year: 1404, Month: 1, Line: "corporate", Metric: "revenue", SubMetric: "cards", Target: 3},
	}}
	plan.Sort()

	assert.Equal(t, []float64{0.5, 3, 1, 2}, plan.MonthlyTotals())
}

func TestCalendarMonthDaysOrdered(t *testing.T) {
	cal := NewCalendar([]Day{
		{Year: 1404, Month: 1, DayOfMonth: 3, DayID: "14040103"},
		{Year: 1404, Month: 1, DayOfMonth: 1, DayID: "14040101"},
		{Year: 1404, Month: 1, DayOfMonth: 2, DayID: "14040102"},
	})

	days, err := cal.MonthDays(1404, 1)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, 1, days[0].DayOfMonth)
	assert.Equal(t, 3, days[2].DayOfMonth)
}

func TestCalendarMissingMonthIsHardError(t *testing.T) {
	cal := NewCalendar(nil)
	_, err := cal.MonthDays(1404, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no calendar days")
}

func TestValidateCompatibility(t *testing.T) {
	cal := NewCalendar([]Day{{Year: 1404, Month: 1, DayOfMonth: 1, DayID: "14040101"}})
	plan := &Plan{Rows: []TargetRow{
		{Year: 1404, Month: 1, Target: 100},
		{Year: 1404, Month: 2, Target: 100},
	}}

	err := ValidateCompatibility(plan, cal)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1404-02")

	plan.Rows = plan.Rows[:1]
	assert.NoError(t, ValidateCompatibility(plan, cal))
}

func TestCategoryKey(t *testing.T) {
	row := TargetRow{Line: "retail", Metric: "revenue", SubMetric: "cards"}
	assert.Equal(t, "retail/revenue/cards", row.CategoryKey())
}
