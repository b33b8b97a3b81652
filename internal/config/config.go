package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/username/workingtime/internal/calendar"
	"github.com/username/workingtime/internal/workingtime"
	"github.com/username/workingtime/pkg/dateutil"
)

// Config represents application configuration
type Config struct {
	WorkingDay     WorkingDayConfig `mapstructure:"working_day"`
	Weekends       []string         `mapstructure:"weekends"`
	ExceptionDates []string         `mapstructure:"exception_dates"`
	HolidaysFile   string           `mapstructure:"holidays_file"`
	MaxAttempts    int              `mapstructure:"max_attempts"` // UnboundedAttempts or >= 0
	Location       string           `mapstructure:"location"`     // IANA name, empty = Local
	Output         OutputConfig     `mapstructure:"output"`
	Log            LogConfig        `mapstructure:"log"`
}

// WorkingDayConfig represents the daily working window
type WorkingDayConfig struct {
	Start string `mapstructure:"start"` // HH:MM
	End   string `mapstructure:"end"`   // HH:MM
}

// OutputConfig represents result formatting
type OutputConfig struct {
	Layout string `mapstructure:"layout"` // Go time layout
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// UnboundedAttempts disables the attempt bound. 0 fails any calculation
// that needs to move past the start day.
const UnboundedAttempts = -1

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		WorkingDay:  WorkingDayConfig{Start: "06:00", End: "23:00"},
		MaxAttempts: UnboundedAttempts,
		Output:      OutputConfig{Layout: dateutil.DateTimeLayout},
		Log:         LogConfig{Level: "info"},
	}
}

// Load loads configuration from file and WORKINGTIME_* environment variables.
// With an empty configPath a missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("working_day.start", defaults.WorkingDay.Start)
	v.SetDefault("working_day.end", defaults.WorkingDay.End)
	v.SetDefault("weekends", []string{})
	v.SetDefault("exception_dates", []string{})
	v.SetDefault("holidays_file", "")
	v.SetDefault("max_attempts", defaults.MaxAttempts)
	v.SetDefault("location", "")
	v.SetDefault("output.layout", defaults.Output.Layout)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", defaults.Log.Level)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.workingtime")
		v.AddConfigPath("/etc/workingtime")
	}

	// Read environment variables
	v.SetEnvPrefix("workingtime")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	window, err := c.GetWindow()
	if err != nil {
		return err
	}
	if window.Length() <= 0 {
		return fmt.Errorf("working_day.start (%s) must be before working_day.end (%s)",
			c.WorkingDay.Start, c.WorkingDay.End)
	}

	if _, err := calendar.ParseWeekends(c.Weekends); err != nil {
		return fmt.Errorf("weekends: %w", err)
	}

	if c.MaxAttempts < UnboundedAttempts {
		return fmt.Errorf("max_attempts must be %d (unbounded) or >= 0, got %d", UnboundedAttempts, c.MaxAttempts)
	}

	if _, err := c.GetLocation(); err != nil {
		return err
	}

	return nil
}

// GetWindow returns the parsed working window
func (c *Config) GetWindow() (workingtime.WorkingWindow, error) {
	return workingtime.ParseWindow(c.WorkingDay.Start, c.WorkingDay.End)
}

// GetWeekends returns the parsed weekend set
func (c *Config) GetWeekends() calendar.Weekends {
	w, err := calendar.ParseWeekends(c.Weekends)
	if err != nil {
		return calendar.NewWeekends()
	}
	return w
}

// GetMaxAttempts returns the attempt bound. Default: unbounded
func (c *Config) GetMaxAttempts() int {
	if c.MaxAttempts == UnboundedAttempts {
		return workingtime.Unbounded
	}
	return c.MaxAttempts
}

// GetLocation returns the zone used to interpret input timestamps
func (c *Config) GetLocation() (*time.Location, error) {
	if c.Location == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid location: %w", err)
	}
	return loc, nil
}

// GetLayout returns the output time layout
func (c *Config) GetLayout() string {
	if c.Output.Layout == "" {
		return dateutil.DateTimeLayout
	}
	return c.Output.Layout
}

// FormatTime renders t with the output layout
func (c *Config) FormatTime(t time.Time) string {
	layout := c.GetLayout()
	if layout == dateutil.DateTimeLayout {
		return dateutil.FormatDateTime(t)
	}
	return t.Format(layout)
}
