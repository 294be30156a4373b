package config

import (
	"fmt"

	"github.com/targetplan/daily-breakdown/pkg/constants"
)

// PatternLibrary holds the named weekly and monthly coefficient sets. It is
// an explicit value object constructed once and passed by reference into
// the calculator; there is deliberately no process-wide registry.
type PatternLibrary struct {
	weekly  map[string][]float64
	monthly map[string][]float64
}

// PatternResolution records how a pattern name was resolved so that a
// fallback to the default set is observable by the caller.
type PatternResolution struct {
	Requested string
	Resolved  string
	FellBack  bool
}

// NewPatternLibrary returns a library preloaded with the builtin sets.
//
// Weekly coefficients are indexed by weekday 0-6 in calendar order
// (the reference data starts the week on Saturday). Monthly coefficients
// are indexed by day of month starting at day 1.
func NewPatternLibrary() *PatternLibrary {
	lib := &PatternLibrary{
		weekly: map[string][]float64{
			constants.DefaultPatternName:  {0.85, 0.90, 0.95, 1.05, 1.10, 1.10, 0.85},
			"business_focused":            {0.70, 0.80, 1.15, 1.20, 1.25, 1.20, 0.70},
			"weekend_heavy":               {1.20, 1.30, 0.80, 0.85, 0.90, 0.85, 1.15},
			constants.BalancedPatternName: {1.00, 1.00, 1.00, 1.00, 1.00, 1.00, 1.00},
		},
		monthly: map[string][]float64{
			constants.DefaultPatternName:  defaultMonthlyCoefficients(),
			"salary_cycle":                salaryCycleCoefficients(),
			"month_end_heavy":             monthEndHeavyCoefficients(),
			constants.BalancedPatternName: balancedMonthlyCoefficients(),
		},
	}
	return lib
}

// SetWeekly registers a weekly coefficient set. The set must have exactly
// 7 non-negative entries.
func (lib *PatternLibrary) SetWeekly(name string, coefficients []float64) error {
	if len(coefficients) != constants.WeekdaysPerWeek {
		return fmt.Errorf("weekly pattern %q must have exactly %d coefficients, got %d", name, constants.WeekdaysPerWeek, len(coefficients))
	}
	if err := checkNonNegative(name, coefficients); err != nil {
		return err
	}
	lib.weekly[name] = append([]float64(nil), coefficients...)
	return nil
}

// SetMonthly registers a monthly coefficient set. The set must have 29-31
// non-negative entries; shorter months use a prefix and longer months pad
// with the neutral weight at computation time.
func (lib *PatternLibrary) SetMonthly(name string, coefficients []float64) error {
	if len(coefficients) < constants.MinMonthlyCoefficients || len(coefficients) > constants.MaxMonthlyCoefficients {
		return fmt.Errorf("monthly pattern %q must have %d-%d coefficients, got %d", name, constants.MinMonthlyCoefficients, constants.MaxMonthlyCoefficients, len(coefficients))
	}
	if err := checkNonNegative(name, coefficients); err != nil {
		return err
	}
	lib.monthly[name] = append([]float64(nil), coefficients...)
	return nil
}

// ResolveWeekly returns the weekly coefficient set for name, substituting
// the default set for unknown names. The resolution reports whether the
// substitution happened.
func (lib *PatternLibrary) ResolveWeekly(name string) ([]float64, PatternResolution) {
	if coefficients, ok := lib.weekly[name]; ok {
		return coefficients, PatternResolution{Requested: name, Resolved: name}
	}
	return lib.weekly[constants.DefaultPatternName], PatternResolution{
		Requested: name,
		Resolved:  constants.DefaultPatternName,
		FellBack:  true,
	}
}

// ResolveMonthly returns the monthly coefficient set for name with the
// same fallback rule as ResolveWeekly.
func (lib *PatternLibrary) ResolveMonthly(name string) ([]float64, PatternResolution) {
	if coefficients, ok := lib.monthly[name]; ok {
		return coefficients, PatternResolution{Requested: name, Resolved: name}
	}
	return lib.monthly[constants.DefaultPatternName], PatternResolution{
		Requested: name,
		Resolved:  constants.DefaultPatternName,
		FellBack:  true,
	}
}

// HasWeekly reports whether a weekly set with the given name exists.
func (lib *PatternLibrary) HasWeekly(name string) bool {
	_, ok := lib.weekly[name]
	return ok
}

// HasMonthly reports whether a monthly set with the given name exists.
func (lib *PatternLibrary) HasMonthly(name string) bool {
	_, ok := lib.monthly[name]
	return ok
}

func checkNonNegative(name string, coefficients []float64) error {
	for i, c := range coefficients {
		if c < 0 {
			return fmt.Errorf("pattern %q coefficient %d is negative (%v)", name, i, c)
		}
	}
	return nil
}

// defaultMonthlyCoefficients generates the builtin monthly shape: a gentle
// rise through mid-month followed by a mild taper.
func defaultMonthlyCoefficients() []float64 {
	coefficients := make([]float64, 0, constants.MaxMonthlyCoefficients)
	for day := 1; day <= constants.MaxMonthlyCoefficients; day++ {
		position := float64(day-1) / 30.0
		var weight float64
		switch {
		case position < 0.25:
			weight = 0.90 + position*0.4
		case position < 0.5:
			weight = 1.00 + (position-0.25)*0.4
		case position < 0.75:
			weight = 1.05 - (position-0.5)*0.2
		default:
			weight = 1.00 - (position-0.75)*0.2
		}
		coefficients = append(coefficients, weight)
	}
	return coefficients
}

// salaryCycleCoefficients weights the start of the month heavily, tracking
// spending right after salaries land.
func salaryCycleCoefficients() []float64 {
	coefficients := make([]float64, 0, constants.MaxMonthlyCoefficients)
	for day := 1; day <= constants.MaxMonthlyCoefficients; day++ {
		var weight float64
		switch {
		case day <= 5:
			weight = 1.30
		case day <= 10:
			weight = 1.15
		case day <= 20:
			weight = 0.95
		case day <= 25:
			weight = 0.85
		default:
			weight = 0.75
		}
		coefficients = append(coefficients, weight)
	}
	return coefficients
}

// monthEndHeavyCoefficients weights the end of the month, for series that
// close strongly (collections, quota pushes).
func monthEndHeavyCoefficients() []float64 {
	coefficients := make([]float64, 0, constants.MaxMonthlyCoefficients)
	for day := 1; day <= constants.MaxMonthlyCoefficients; day++ {
		position := float64(day-1) / 30.0
		var weight float64
		switch {
		case position < 0.3:
			weight = 0.80 + position*0.4
		case position < 0.7:
			weight = 0.92 + (position-0.3)*0.2
		default:
			weight = 1.00 + (position-0.7)*0.5
		}
		coefficients = append(coefficients, weight)
	}
	return coefficients
}

func balancedMonthlyCoefficients() []float64 {
	coefficients := make([]float64, constants.MaxMonthlyCoefficients)
	for i := range coefficients {
		coefficients[i] = 1.0
	}
	return coefficients
}
