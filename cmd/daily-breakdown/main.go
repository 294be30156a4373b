package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/targetplan/daily-breakdown/internal/config"
	"github.com/targetplan/daily-breakdown/internal/report"
	"github.com/targetplan/daily-breakdown/internal/schedule"
	"github.com/targetplan/daily-breakdown/pkg/constants"
	"github.com/targetplan/daily-breakdown/pkg/dataset"
	"github.com/targetplan/daily-breakdown/pkg/output"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	planFlag := flag.String("plan", "", "path override for the monthly-target CSV")
	calendarFlag := flag.String("calendar", "", "path override for the calendar CSV")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, xlsx")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = output.ValidateFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Hard configuration errors stop the run; soft problems are warnings.
	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Resolve input paths (CLI overrides take precedence)
	planPath := conf.Input.PlanFile
	if *planFlag != "" {
		planPath = *planFlag
	}
	calendarPath := conf.Input.CalendarFile
	if *calendarFlag != "" {
		calendarPath = *calendarFlag
	}
	if planPath == "" || calendarPath == "" {
		logger.Fatal("plan and calendar file paths must be set via config or flags",
			zap.String("op", "main"),
		)
	}

	plan, err := dataset.LoadPlan(planPath)
	if err != nil {
		logger.Fatal("failed to load monthly-target plan",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	cal, err := dataset.LoadCalendar(calendarPath)
	if err != nil {
		logger.Fatal("failed to load calendar",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if err := dataset.ValidateCompatibility(plan, cal); err != nil {
		logger.Fatal("plan and calendar are incompatible",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	methods := conf.Methods
	if len(methods) == 0 {
		methods = []config.Method{{
			Name:           constants.DefaultPatternName,
			WeeklyPattern:  constants.DefaultPatternName,
			MonthlyPattern: constants.DefaultPatternName,
		}}
	}

	runID := uuid.NewString()
	sessionDir := ""
	if outputFormat != constants.OutputFormatPretty || conf.Output.Chart {
		base := conf.Output.Directory
		if base == "" {
			base = "data"
		}
		sessionDir = filepath.Join(base, "daily_breakdown_"+runID[:8])
		if err := os.MkdirAll(sessionDir, 0755); err != nil {
			logger.Fatal("failed to create session directory",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Info("session directory created",
			zap.String("op", "main"),
			zap.String("directory", sessionDir),
			zap.String("runID", runID),
		)
	}

	var schedules []*schedule.Schedule
	for _, method := range methods {
		sched, err := schedule.Build(logger, conf, plan, cal, method)
		if err != nil {
			logger.Fatal("failed to compute daily breakdown",
				zap.String("op", "main"),
				zap.String("method", method.Name),
				zap.Error(err),
			)
		}
		sched.RunID = runID

		analysis, err := report.Analyze(logger, sched, plan)
		if err != nil {
			logger.Fatal("failed to analyze daily breakdown",
				zap.String("op", "main"),
				zap.String("method", method.Name),
				zap.Error(err),
			)
		}

		switch outputFormat {
		case constants.OutputFormatPretty:
			output.PrettyFormat(sched, analysis)
		case constants.OutputFormatCSV:
			path := filepath.Join(sessionDir, fmt.Sprintf("daily_breakdown_%s.csv", method.Name))
			if err := output.CsvFormat(path, sched); err != nil {
				logger.Fatal("failed to write CSV output",
					zap.String("op", "main"),
					zap.Error(err),
				)
			}
			logger.Info("CSV written",
				zap.String("op", "main"),
				zap.String("path", path),
			)
		}

		if conf.Output.Chart {
			path := filepath.Join(sessionDir, fmt.Sprintf("daily_breakdown_%s.html", method.Name))
			if err := output.ChartFormat(path, sched); err != nil {
				logger.Fatal("failed to write chart output",
					zap.String("op", "main"),
					zap.Error(err),
				)
			}
			logger.Info("chart written",
				zap.String("op", "main"),
				zap.String("path", path),
			)
		}

		schedules = append(schedules, sched)
	}

	if outputFormat == constants.OutputFormatXLSX {
		path := filepath.Join(sessionDir, "daily_breakdown.xlsx")
		if err := output.XlsxFormat(path, schedules); err != nil {
			logger.Fatal("failed to write XLSX output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Info("workbook written",
			zap.String("op", "main"),
			zap.String("path", path),
		)
	}
}
