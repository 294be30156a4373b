package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/targetplan/daily-breakdown/internal/schedule"
)

// XlsxFormat writes one workbook with a sheet per schedule. The header
// row is bold and frozen; columns mirror the CSV output.
func XlsxFormat(path string, schedules []*schedule.Schedule) error {
	workbook := excelize.NewFile()
	defer func() {
		_ = workbook.Close()
	}()

	headerStyle, err := workbook.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E0E7EF"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for n, sched := range schedules {
		sheet := sched.MethodName
		if sheet == "" {
			sheet = fmt.Sprintf("method_%d", n+1)
		}
		if _, err := workbook.NewSheet(sheet); err != nil {
			return err
		}

		header := make([]interface{}, len(csvHeader))
		for i, name := range csvHeader {
			header[i] = name
		}
		if err := workbook.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
		lastColumn, err := excelize.ColumnNumberToName(len(csvHeader))
		if err != nil {
			return err
		}
		if err := workbook.SetCellStyle(sheet, "A1", lastColumn+"1", headerStyle); err != nil {
			return err
		}
		if err := workbook.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}

		for i, alloc := range sched.Allocations {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			row := []interface{}{
				alloc.Year, alloc.Month, alloc.DayID, alloc.DateString,
				alloc.Line, alloc.Metric, alloc.SubMetric, alloc.DailyTarget, alloc.Unit,
				string(alloc.Method), alloc.GrowthRate, alloc.RateEstimated,
				alloc.GrowthSmoothing, alloc.WeeklySmoothing, alloc.MonthlySmoothing, alloc.RegressionSmoothing,
				alloc.WeeklyPattern, alloc.WeeklyFellBack, alloc.MonthlyPattern, alloc.MonthlyFellBack,
				formatWindows(alloc.RegressionWindows), sched.RunID,
			}
			if err := workbook.SetSheetRow(sheet, cell, &row); err != nil {
				return err
			}
		}
	}

	// Drop the implicit default sheet so the first method sheet is active.
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	return workbook.SaveAs(path)
}
