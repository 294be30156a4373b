package output

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/targetplan/daily-breakdown/internal/schedule"
)

// Chart palette, shared with the workbook header fill.
const (
	chartPrimary     = "#2563eb"
	chartPrimaryDark = "#1e293b"
	chartGrid        = "#e0e7ef"
)

const chartWidth = 840.0
const chartHeight = 240.0
const chartPadding = 24.0

type chartSeries struct {
	Title  string
	Points string
	Min    float64
	Max    float64
	Days   int
}

type chartPage struct {
	Title       string
	Primary     string
	PrimaryDark string
	Grid        string
	Width       float64
	Height      float64
	Series      []chartSeries
}

var chartTemplate = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; color: {{.PrimaryDark}}; margin: 2em; }
h1 { font-size: 1.3em; }
h2 { font-size: 1.0em; margin-bottom: 0.2em; }
.meta { color: #64748b; font-size: 0.85em; margin-bottom: 1.5em; }
svg { border: 1px solid {{.Grid}}; margin-bottom: 2em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Series}}
<h2>{{.Title}}</h2>
<div class="meta">{{.Days}} days | min {{printf "%.0f" .Min}} | max {{printf "%.0f" .Max}}</div>
<svg width="{{$.Width}}" height="{{$.Height}}" viewBox="0 0 {{$.Width}} {{$.Height}}">
<polyline fill="none" stroke="{{$.Primary}}" stroke-width="2" points="{{.Points}}"/>
</svg>
{{end}}
</body>
</html>
`))

// ChartFormat writes a self-contained HTML page with one line chart per
// category series in the schedule.
func ChartFormat(path string, sched *schedule.Schedule) error {
	page := chartPage{
		Title:       fmt.Sprintf("Daily Target Breakdown — %s", sched.MethodName),
		Primary:     chartPrimary,
		PrimaryDark: chartPrimaryDark,
		Grid:        chartGrid,
		Width:       chartWidth,
		Height:      chartHeight,
	}

	var order []string
	values := make(map[string][]float64)
	for _, alloc := range sched.Allocations {
		key := alloc.CategoryKey()
		if _, seen := values[key]; !seen {
			order = append(order, key)
		}
		values[key] = append(values[key], alloc.DailyTarget)
	}

	for _, key := range order {
		page.Series = append(page.Series, buildSeries(key, values[key]))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return chartTemplate.Execute(file, page)
}

// buildSeries scales a value series into SVG polyline coordinates.
func buildSeries(title string, vals []float64) chartSeries {
	series := chartSeries{Title: title, Days: len(vals)}
	if len(vals) == 0 {
		return series
	}

	series.Min, series.Max = vals[0], vals[0]
	for _, v := range vals {
		if v < series.Min {
			series.Min = v
		}
		if v > series.Max {
			series.Max = v
		}
	}

	span := series.Max - series.Min
	if span == 0 {
		span = 1 // flat series draws a centered line
	}
	innerWidth := chartWidth - 2*chartPadding
	innerHeight := chartHeight - 2*chartPadding

	var points []string
	for i, v := range vals {
		x := chartPadding
		if len(vals) > 1 {
			x += innerWidth * float64(i) / float64(len(vals)-1)
		}
		y := chartPadding + innerHeight*(1-(v-series.Min)/span)
		points = append(points, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	series.Points = strings.Join(points, " ")
	return series
}
