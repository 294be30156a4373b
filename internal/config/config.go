// Package config defines the data structures related to configuration and
// includes functions for loading, defaulting, and validating the config.
package config

import (
	"fmt"
	"sort"

	"github.com/spf13/viper"
	"github.com/targetplan/daily-breakdown/pkg/constants"
)

// Configuration holds all configuration for daily-breakdown.
type Configuration struct {
	Breakdown BreakdownConfig
	Patterns  PatternConfig `yaml:"patterns,omitempty"`
	Methods   []Method      `yaml:"methods,omitempty"`
	Input     InputConfig   `yaml:"input,omitempty"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// BreakdownConfig holds the numeric parameters of the breakdown engine.
type BreakdownConfig struct {
	GrowthRate          float64
	GrowthSmoothing     float64
	WeeklySmoothing     float64
	MonthlySmoothing    float64
	RegressionSmoothing float64
	MinGrowthRate       float64
	MaxGrowthRate       float64
	RegressionWindows   []int
}

// PatternConfig holds user-supplied coefficient sets that are merged over
// the builtin pattern library.
type PatternConfig struct {
	Weekly  map[string][]float64 `yaml:"weekly,omitempty"`
	Monthly map[string][]float64 `yaml:"monthly,omitempty"`
}

// Method describes one breakdown run over the full plan.
type Method struct {
	Name              string
	WeeklyPattern     string
	MonthlyPattern    string
	UseRegression     bool
	RegressionWindows []int
}

// InputConfig holds the paths of the two source tables.
type InputConfig struct {
	PlanFile     string `yaml:"planFile,omitempty"`
	CalendarFile string `yaml:"calendarFile,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format    string `yaml:"format,omitempty"`    // pretty, csv, xlsx
	Directory string `yaml:"directory,omitempty"` // session directories are created here
	Chart     bool   `yaml:"chart,omitempty"`     // emit the HTML chart alongside data files
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Engine defaults are registered with viper so that an
// absent key falls back while an explicit zero in the file is preserved.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	v.SetDefault("breakdown.growthrate", constants.DefaultGrowthRate)
	v.SetDefault("breakdown.growthsmoothing", constants.DefaultGrowthSmoothing)
	v.SetDefault("breakdown.weeklysmoothing", constants.DefaultWeeklySmoothing)
	v.SetDefault("breakdown.monthlysmoothing", constants.DefaultMonthlySmoothing)
	v.SetDefault("breakdown.regressionsmoothing", constants.DefaultRegressionSmoothing)
	v.SetDefault("breakdown.mingrowthrate", constants.DefaultMinGrowthRate)
	v.SetDefault("breakdown.maxgrowthrate", constants.DefaultMaxGrowthRate)
	v.SetDefault("breakdown.regressionwindows", constants.DefaultRegressionWindows)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.normalize()
	return &configuration, nil
}

// DefaultConfiguration returns a configuration carrying only the engine
// defaults, for callers that construct everything programmatically.
func DefaultConfiguration() *Configuration {
	conf := &Configuration{
		Breakdown: BreakdownConfig{
			GrowthRate:          constants.DefaultGrowthRate,
			GrowthSmoothing:     constants.DefaultGrowthSmoothing,
			WeeklySmoothing:     constants.DefaultWeeklySmoothing,
			MonthlySmoothing:    constants.DefaultMonthlySmoothing,
			RegressionSmoothing: constants.DefaultRegressionSmoothing,
			MinGrowthRate:       constants.DefaultMinGrowthRate,
			MaxGrowthRate:       constants.DefaultMaxGrowthRate,
			RegressionWindows:   append([]int(nil), constants.DefaultRegressionWindows...),
		},
	}
	conf.normalize()
	return conf
}

// normalize sorts window lists descending and fills in method defaults.
func (conf *Configuration) normalize() {
	sortWindowsDescending(conf.Breakdown.RegressionWindows)
	for i := range conf.Methods {
		method := &conf.Methods[i]
		if method.WeeklyPattern == "" {
			method.WeeklyPattern = constants.DefaultPatternName
		}
		if method.MonthlyPattern == "" {
			method.MonthlyPattern = constants.DefaultPatternName
		}
		sortWindowsDescending(method.RegressionWindows)
	}
}

// Validate checks the configuration for hard errors: smoothing factors out
// of range, inverted clamp bounds, non-positive regression windows, and
// malformed coefficient sets. These are surfaced at load time rather than
// deep inside the numeric pipeline.
func (conf *Configuration) Validate() error {
	b := conf.Breakdown
	smoothings := map[string]float64{
		"growthSmoothing":     b.GrowthSmoothing,
		"weeklySmoothing":     b.WeeklySmoothing,
		"monthlySmoothing":    b.MonthlySmoothing,
		"regressionSmoothing": b.RegressionSmoothing,
	}
	for name, factor := range smoothings {
		if factor < 0 || factor > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", name, factor)
		}
	}

	if b.MinGrowthRate > b.MaxGrowthRate {
		return fmt.Errorf("minGrowthRate %v exceeds maxGrowthRate %v", b.MinGrowthRate, b.MaxGrowthRate)
	}

	if err := validateWindows(b.RegressionWindows); err != nil {
		return err
	}
	for _, method := range conf.Methods {
		if err := validateWindows(method.RegressionWindows); err != nil {
			return fmt.Errorf("method %s: %w", method.Name, err)
		}
	}

	// Coefficient length checks are delegated to the pattern library
	// constructor so there is a single place enforcing them.
	if _, err := conf.PatternLibrary(); err != nil {
		return err
	}

	return nil
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings for soft problems that do not prevent a run.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(conf.Methods) == 0 {
		warnings = append(warnings, "no methods configured; a single default-pattern fixed-growth method will be used")
	}

	lib, err := conf.PatternLibrary()
	if err != nil {
		// Validate reports this as a hard error; nothing useful to warn on.
		return warnings
	}
	for _, method := range conf.Methods {
		if !lib.HasWeekly(method.WeeklyPattern) {
			warnings = append(warnings, fmt.Sprintf("method %s references unknown weekly pattern %q; the default set will be substituted", method.Name, method.WeeklyPattern))
		}
		if !lib.HasMonthly(method.MonthlyPattern) {
			warnings = append(warnings, fmt.Sprintf("method %s references unknown monthly pattern %q; the default set will be substituted", method.Name, method.MonthlyPattern))
		}
		if method.UseRegression && len(method.RegressionWindows) == 0 && len(conf.Breakdown.RegressionWindows) == 0 {
			warnings = append(warnings, fmt.Sprintf("method %s uses regression but no windows are configured; the default growth rate will always apply", method.Name))
		}
	}

	return warnings
}

// PatternLibrary builds the pattern library from the builtin sets merged
// with the user-supplied sets. User sets override builtins of the same name.
func (conf *Configuration) PatternLibrary() (*PatternLibrary, error) {
	lib := NewPatternLibrary()
	for name, coefficients := range conf.Patterns.Weekly {
		if err := lib.SetWeekly(name, coefficients); err != nil {
			return nil, err
		}
	}
	for name, coefficients := range conf.Patterns.Monthly {
		if err := lib.SetMonthly(name, coefficients); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// WindowsFor returns the regression windows for a method, preferring the
// per-method list over the engine-wide one.
func (conf *Configuration) WindowsFor(method Method) []int {
	if len(method.RegressionWindows) > 0 {
		return method.RegressionWindows
	}
	return conf.Breakdown.RegressionWindows
}

func validateWindows(windows []int) error {
	for _, w := range windows {
		if w <= 0 {
			return fmt.Errorf("regression windows must be positive integers, got %d", w)
		}
	}
	return nil
}

func sortWindowsDescending(windows []int) {
	sort.Sort(sort.Reverse(sort.IntSlice(windows)))
}
