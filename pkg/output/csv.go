package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/targetplan/daily-breakdown/internal/schedule"
)

// csvHeader lists the allocation columns in output order, provenance last.
var csvHeader = []string{
	"year", "month", "date_id", "date_string",
	"line", "metric", "sub_metric", "daily_target", "unit",
	"method", "growth_rate", "rate_estimated",
	"growth_smoothing", "weekly_smoothing", "monthly_smoothing", "regression_smoothing",
	"weekly_pattern", "weekly_fell_back", "monthly_pattern", "monthly_fell_back",
	"regression_windows", "run_id",
}

// CsvFormat writes the full allocation table, including provenance
// columns, to the given file.
func CsvFormat(path string, sched *schedule.Schedule) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, alloc := range sched.Allocations {
		record := []string{
			strconv.Itoa(alloc.Year),
			strconv.Itoa(alloc.Month),
			alloc.DayID,
			alloc.DateString,
			alloc.Line,
			alloc.Metric,
			alloc.SubMetric,
			strconv.FormatFloat(alloc.DailyTarget, 'f', -1, 64),
			alloc.Unit,
			string(alloc.Method),
			strconv.FormatFloat(alloc.GrowthRate, 'f', -1, 64),
			strconv.FormatBool(alloc.RateEstimated),
			strconv.FormatFloat(alloc.GrowthSmoothing, 'f', -1, 64),
			strconv.FormatFloat(alloc.WeeklySmoothing, 'f', -1, 64),
			strconv.FormatFloat(alloc.MonthlySmoothing, 'f', -1, 64),
			strconv.FormatFloat(alloc.RegressionSmoothing, 'f', -1, 64),
			alloc.WeeklyPattern,
			strconv.FormatBool(alloc.WeeklyFellBack),
			alloc.MonthlyPattern,
			strconv.FormatBool(alloc.MonthlyFellBack),
			formatWindows(alloc.RegressionWindows),
			sched.RunID,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatWindows(windows []int) string {
	if len(windows) == 0 {
		return ""
	}
	parts := make([]string, len(windows))
	for i, w := range windows {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, " ")
}
