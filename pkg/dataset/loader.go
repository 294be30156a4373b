package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Column aliases accepted in calendar files. Persian date dimension
// exports carry a persian_ prefix on these columns.
var calendarAliases = map[string]string{
	"persian_year":         "year",
	"persian_month_number": "month",
	"persian_date":         "date_id",
	"persian_day":          "day_of_month",
}

// LoadPlan reads the monthly-target table from a CSV file. Required
// columns: year, month, line, metric, sub_metric, target, unit. Target
// values may contain thousands separators.
func LoadPlan(path string) (*Plan, error) {
	records, header, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("error loading plan data: %w", err)
	}

	required := []string{"year", "month", "line", "metric", "sub_metric", "target", "unit"}
	columns, err := resolveColumns(header, required, nil)
	if err != nil {
		return nil, fmt.Errorf("error loading plan data: %w", err)
	}

	plan := &Plan{Rows: make([]TargetRow, 0, len(records))}
	for n, record := range records {
		year, err := strconv.Atoi(strings.TrimSpace(record[columns["year"]]))
		if err != nil {
			return nil, fmt.Errorf("plan row %d: invalid year %q", n+2, record[columns["year"]])
		}
		month, err := strconv.Atoi(strings.TrimSpace(record[columns["month"]]))
		if err != nil {
			return nil, fmt.Errorf("plan row %d: invalid month %q", n+2, record[columns["month"]])
		}
		rawTarget := strings.ReplaceAll(strings.TrimSpace(record[columns["target"]]), ",", "")
		target, err := strconv.ParseFloat(rawTarget, 64)
		if err != nil {
			return nil, fmt.Errorf("plan row %d: invalid target %q", n+2, record[columns["target"]])
		}
		plan.Rows = append(plan.Rows, TargetRow{
			Year:      year,
			Month:     month,
			Line:      strings.TrimSpace(record[columns["line"]]),
			Metric:    strings.TrimSpace(record[columns["metric"]]),
			SubMetric: strings.TrimSpace(record[columns["sub_metric"]]),
			Target:    target,
			Unit:      strings.TrimSpace(record[columns["unit"]]),
		})
	}
	plan.Sort()
	return plan, nil
}

// LoadCalendar reads the calendar dimension from a CSV file. Required
// columns (directly or via aliases): year, month, date_id, date_string.
// day_of_month and weekday are used when present; otherwise day of month
// is taken from the trailing digits of date_id and weekday is derived as
// (day-1) mod 7 from it.
func LoadCalendar(path string) (*Calendar, error) {
	records, header, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("error loading calendar data: %w", err)
	}

	required := []string{"year", "month", "date_id", "date_string"}
	columns, err := resolveColumns(header, required, calendarAliases)
	if err != nil {
		return nil, fmt.Errorf("error loading calendar data: %w", err)
	}
	optional := resolveOptionalColumns(header, []string{"day_of_month", "weekday"}, calendarAliases)

	days := make([]Day, 0, len(records))
	for n, record := range records {
		year, err := strconv.Atoi(strings.TrimSpace(record[columns["year"]]))
		if err != nil {
			return nil, fmt.Errorf("calendar row %d: invalid year %q", n+2, record[columns["year"]])
		}
		month, err := strconv.Atoi(strings.TrimSpace(record[columns["month"]]))
		if err != nil {
			return nil, fmt.Errorf("calendar row %d: invalid month %q", n+2, record[columns["month"]])
		}
		dayID := strings.TrimSpace(record[columns["date_id"]])

		var dayOfMonth int
		if idx, ok := optional["day_of_month"]; ok {
			dayOfMonth, err = strconv.Atoi(strings.TrimSpace(record[idx]))
			if err != nil {
				return nil, fmt.Errorf("calendar row %d: invalid day_of_month %q", n+2, record[idx])
			}
		} else {
			dayOfMonth, err = dayOfMonthFromID(dayID)
			if err != nil {
				return nil, fmt.Errorf("calendar row %d: %w", n+2, err)
			}
		}

		var weekday int
		if idx, ok := optional["weekday"]; ok {
			weekday, err = strconv.Atoi(strings.TrimSpace(record[idx]))
			if err != nil {
				return nil, fmt.Errorf("calendar row %d: invalid weekday %q", n+2, record[idx])
			}
			if weekday < 0 || weekday > 6 {
				return nil, fmt.Errorf("calendar row %d: weekday %d out of range 0-6", n+2, weekday)
			}
		} else {
			weekday = (dayOfMonth - 1) % 7
		}

		days = append(days, Day{
			Year:       year,
			Month:      month,
			DayOfMonth: dayOfMonth,
			Weekday:    weekday,
			DayID:      dayID,
			DateString: strings.TrimSpace(record[columns["date_string"]]),
		})
	}
	return NewCalendar(days), nil
}

// dayOfMonthFromID extracts the day of month from a YYYYMMDD day id.
func dayOfMonthFromID(dayID string) (int, error) {
	if len(dayID) < 8 {
		return 0, fmt.Errorf("day id %q too short to carry a day of month", dayID)
	}
	day, err := strconv.Atoi(dayID[len(dayID)-2:])
	if err != nil || day < 1 || day > 31 {
		return 0, fmt.Errorf("day id %q does not end in a valid day of month", dayID)
	}
	return day, nil
}

func readCSV(path string) ([][]string, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("file %s is empty", path)
	}
	return rows[1:], rows[0], nil
}

// resolveColumns maps required column names to indices in the header,
// honoring aliases, and errors on anything missing.
func resolveColumns(header []string, required []string, aliases map[string]string) (map[string]int, error) {
	index := headerIndex(header, aliases)
	columns := make(map[string]int, len(required))
	var missing []string
	for _, name := range required {
		idx, ok := index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		columns[name] = idx
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %v", missing)
	}
	return columns, nil
}

func resolveOptionalColumns(header []string, names []string, aliases map[string]string) map[string]int {
	index := headerIndex(header, aliases)
	columns := make(map[string]int)
	for _, name := range names {
		if idx, ok := index[name]; ok {
			columns[name] = idx
		}
	}
	return columns
}

func headerIndex(header []string, aliases map[string]string) map[string]int {
	index := make(map[string]int, len(header))
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		if canonical, ok := aliases[name]; ok {
			name = canonical
		}
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return index
}
