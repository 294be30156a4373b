package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/targetplan/daily-breakdown/internal/report"
)

func TestPrettyFormat(t *testing.T) {
	analysis := &report.Analysis{
		Smoothness: report.SmoothnessStats{
			AvgDayChange:    120,
			MaxDayChange:    300,
			AvgDayChangePct: 1.2,
			MaxDayChangePct: 3.1,
			SmoothDaysPct:   98.5,
		},
		Validation: report.ValidationStats{Reconciled: true},
	}

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	PrettyFormat(sampleSchedule(), analysis)

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	output := buf.String()

	if !strings.Contains(output, "--- Results for method fixed ---") {
		t.Errorf("PrettyFormat missing method header")
	}
	if !strings.Contains(output, "retail/revenue/cards") {
		t.Errorf("PrettyFormat missing category column")
	}
	if !strings.Contains(output, "100,000.50") {
		t.Errorf("PrettyFormat missing grouped daily target")
	}
	if !strings.Contains(output, "Days with <5% change:") || !strings.Contains(output, "98.5%") {
		t.Errorf("PrettyFormat missing smoothness summary")
	}
	if !strings.Contains(output, "Reconciled within tolerance: true") {
		t.Errorf("PrettyFormat missing reconciliation line")
	}
}
