package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthDays(t *testing.T) {
	days := MonthDays(1404, 1, 31)
	require.Len(t, days, 31)
	assert.Equal(t, "14040101", days[0].DayID)
	assert.Equal(t, 0, days[0].Weekday)
	assert.Equal(t, 2, days[30].Weekday) // day 31: (31-1) mod 7
	assert.Equal(t, 31, days[30].DayOfMonth)
}

func TestCalendarWrapsYear(t *testing.T) {
	cal := Calendar(1403, 12, 30, 31)
	_, err := cal.MonthDays(1403, 12)
	assert.NoError(t, err)
	_, err = cal.MonthDays(1404, 1)
	assert.NoError(t, err)
}

func TestPlanOrdering(t *testing.T) {
	plan := Plan(1403, 11, 100, 200, 300)
	require.Len(t, plan.Rows, 3)
	assert.Equal(t, []float64{100, 200, 300}, plan.MonthlyTotals())
	assert.Equal(t, 1, plan.Rows[2].Month)
	assert.Equal(t, 1404, plan.Rows[2].Year)
}
