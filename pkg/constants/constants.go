// Package constants provides shared constants for the daily-breakdown application.
package constants

// Pattern name constants
const (
	// DefaultPatternName is the coefficient set used when a requested
	// pattern name is not present in the library.
	DefaultPatternName = "default"

	// BalancedPatternName is the all-ones coefficient set.
	BalancedPatternName = "balanced"
)

// Coefficient set size constraints
const (
	// WeekdaysPerWeek is the required length of a weekly coefficient set.
	WeekdaysPerWeek = 7

	// MinMonthlyCoefficients is the minimum length of a monthly coefficient set.
	MinMonthlyCoefficients = 29

	// MaxMonthlyCoefficients is the maximum length of a monthly coefficient set.
	MaxMonthlyCoefficients = 31

	// NeutralWeight pads monthly coefficient sets shorter than the month.
	NeutralWeight = 1.0
)

// Growth and smoothing defaults.
const (
	// DefaultGrowthRate is the default daily growth rate (1.2%).
	DefaultGrowthRate = 0.012

	// DefaultGrowthSmoothing is the smoothing factor for the fixed growth curve.
	DefaultGrowthSmoothing = 0.5

	// DefaultWeeklySmoothing is the smoothing factor for weekly seasonality.
	DefaultWeeklySmoothing = 0.3

	// DefaultMonthlySmoothing is the smoothing factor for monthly seasonality.
	DefaultMonthlySmoothing = 0.4

	// DefaultRegressionSmoothing is the smoothing factor for the regression curve.
	DefaultRegressionSmoothing = 0.3

	// DefaultMinGrowthRate is the lower clamp bound for estimated rates (0.1%).
	DefaultMinGrowthRate = 0.001

	// DefaultMaxGrowthRate is the upper clamp bound for estimated rates (5%).
	DefaultMaxGrowthRate = 0.05

	// CombineSmoothing is the fixed smoothing factor applied to the
	// combined weight series before normalization.
	CombineSmoothing = 0.1
)

// DefaultRegressionWindows are the trailing window sizes (months) used for
// regression growth estimation when none are configured.
var DefaultRegressionWindows = []int{30, 7}

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatXLSX is the Excel workbook output format
	OutputFormatXLSX = "xlsx"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Numeric tolerances
const (
	// TargetTolerance is the relative tolerance when reconciling daily
	// sums against monthly targets.
	TargetTolerance = 1e-9

	// SmoothDayChangeThreshold is the day-over-day percent change under
	// which a day counts as "smooth" in analysis.
	SmoothDayChangeThreshold = 5.0

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)
