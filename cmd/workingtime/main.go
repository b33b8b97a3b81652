package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/username/workingtime/internal/calendar"
	"github.com/username/workingtime/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "workingtime",
		Short:         "Working time calculator",
		Long:          "Add or subtract a duration to a timestamp counting only working hours, skipping weekends and holidays",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			switch {
			case err != nil:
				initLogger("info")
			case cfg.Log.File != "":
				fileLogger, ferr := initFileLogger(cfg.Log.File, cfg.Log.Level)
				if ferr != nil {
					initLogger(cfg.Log.Level)
					logger.Warn("Log file unavailable, logging to console",
						zap.String("file", cfg.Log.File),
						zap.Error(ferr))
					return
				}
				logger = fileLogger
			default:
				initLogger(cfg.Log.Level)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: search ./config.yaml, $HOME/.workingtime, /etc/workingtime)")

	rootCmd.AddCommand(calcCmd())
	rootCmd.AddCommand(dayCmd())

	return rootCmd
}

// loadHolidays loads the holiday file named in the config, if any
func loadHolidays(cfg *config.Config) (calendar.Calendar, error) {
	if cfg.HolidaysFile == "" {
		return nil, nil
	}
	fc := calendar.NewFileCalendar(cfg.HolidaysFile, logger)
	if err := fc.Load(); err != nil {
		return nil, err
	}
	return fc, nil
}

func parseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return zapLevel
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

// initFileLogger writes JSON logs to logFile, rotated by lumberjack.
// The directory of logFile must already exist.
func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	dir := filepath.Dir(logFile)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("log directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("log directory %s is not a directory", dir)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), parseLevel(level))
	return zap.New(core), nil
}
