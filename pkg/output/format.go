// Package output provides the sinks for a finished schedule: a
// human-readable table, a CSV file, an Excel workbook, and an HTML chart.
package output

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/targetplan/daily-breakdown/internal/report"
	"github.com/targetplan/daily-breakdown/internal/schedule"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(sched *schedule.Schedule, analysis *report.Analysis) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Results for method %s ---\n", sched.MethodName)
	fmt.Printf("Date       | Category                        | Daily Target    | Unit\n")
	fmt.Printf("____       | ________                        | ____________    | ____\n")
	for _, alloc := range sched.Allocations {
		_, _ = p.Printf("%-10s | %-31s | %15.2f | %s\n", alloc.DayID, alloc.CategoryKey(), alloc.DailyTarget, alloc.Unit)
	}

	if analysis != nil {
		fmt.Printf("\n--- Analysis for method %s ---\n", sched.MethodName)
		_, _ = p.Printf("Average day-to-day change:   %.0f\n", analysis.Smoothness.AvgDayChange)
		_, _ = p.Printf("Maximum day-to-day change:   %.0f\n", analysis.Smoothness.MaxDayChange)
		fmt.Printf("Average day-to-day change %%: %.2f%%\n", analysis.Smoothness.AvgDayChangePct)
		fmt.Printf("Maximum day-to-day change %%: %.2f%%\n", analysis.Smoothness.MaxDayChangePct)
		fmt.Printf("Days with <5%% change:        %.1f%%\n", analysis.Smoothness.SmoothDaysPct)
		fmt.Printf("Average target difference:   %.6f%%\n", analysis.Validation.AvgDifferencePct)
		fmt.Printf("Maximum target difference:   %.6f%%\n", analysis.Validation.MaxDifferencePct)
		fmt.Printf("Reconciled within tolerance: %t\n", analysis.Validation.Reconciled)
	}
	fmt.Printf("\n")
}
