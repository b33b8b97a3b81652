package workingtime

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/username/workingtime/internal/calendar"
	"github.com/username/workingtime/pkg/dateutil"
	"go.uber.org/zap"
)

// Unbounded is the default attempt limit
const Unbounded = math.MaxInt

// Config is the full input of one calculation
type Config struct {
	From       time.Time
	Window     WorkingWindow
	Weekends   calendar.Weekends
	Exceptions calendar.ExceptionDates
	// Holidays is consulted in addition to Weekends and Exceptions. Optional.
	Holidays    calendar.Calendar
	Duration    Duration
	Direction   Direction
	MaxAttempts int
}

// DefaultConfig returns a forward, zero-duration config starting now
// with the 06:00-23:00 window and no attempt limit
func DefaultConfig() Config {
	return Config{
		From:        time.Now(),
		Window:      DefaultWindow,
		Weekends:    calendar.NewWeekends(),
		MaxAttempts: Unbounded,
	}
}

// Calendar returns the calendar that classifies overflow days
func (c Config) Calendar(logger *zap.Logger) calendar.Calendar {
	rules := calendar.NewRules(c.Weekends, c.Exceptions)
	if c.Holidays == nil {
		return rules
	}
	return calendar.NewCompositeCalendar(logger, rules, c.Holidays)
}

// Builder assembles a Config. Parse failures are collected and
// reported by Build.
type Builder struct {
	cfg     Config
	loc     *time.Location
	fromRaw *string // parsed in loc by Build
	errs    []error
}

// NewBuilder starts from DefaultConfig
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig(), loc: time.Local}
}

// In sets the location used to parse the FromString value
func (b *Builder) In(loc *time.Location) *Builder {
	if loc != nil {
		b.loc = loc
	}
	return b
}

// From sets the start timestamp
func (b *Builder) From(t time.Time) *Builder {
	b.cfg.From = t
	b.fromRaw = nil
	return b
}

// FromString sets the start timestamp from a string. It is parsed by Build,
// so In may be called before or after it.
func (b *Builder) FromString(value string) *Builder {
	b.fromRaw = &value
	return b
}

// StartHour sets the working day start hour
func (b *Builder) StartHour(hour int) *Builder {
	b.cfg.Window.StartHour = hour
	return b
}

// StartMinute sets the working day start minute
func (b *Builder) StartMinute(minute int) *Builder {
	b.cfg.Window.StartMinute = minute
	return b
}

// EndHour sets the working day end hour
func (b *Builder) EndHour(hour int) *Builder {
	b.cfg.Window.EndHour = hour
	return b
}

// EndMinute sets the working day end minute
func (b *Builder) EndMinute(minute int) *Builder {
	b.cfg.Window.EndMinute = minute
	return b
}

// Window sets the whole working window
func (b *Builder) Window(w WorkingWindow) *Builder {
	b.cfg.Window = w
	return b
}

func (b *Builder) Years(n int) *Builder {
	b.cfg.Duration.Years = n
	return b
}

func (b *Builder) Months(n int) *Builder {
	b.cfg.Duration.Months = n
	return b
}

func (b *Builder) Days(n int) *Builder {
	b.cfg.Duration.Days = n
	return b
}

func (b *Builder) Hours(n int) *Builder {
	b.cfg.Duration.Hours = n
	return b
}

func (b *Builder) Minutes(n int) *Builder {
	b.cfg.Duration.Minutes = n
	return b
}

func (b *Builder) Seconds(n int) *Builder {
	b.cfg.Duration.Seconds = n
	return b
}

// Duration replaces all duration components
func (b *Builder) Duration(d Duration) *Builder {
	b.cfg.Duration = d
	return b
}

// Reverse switches to subtraction
func (b *Builder) Reverse() *Builder {
	b.cfg.Direction = Reverse
	return b
}

// Direction sets the direction explicitly
func (b *Builder) Direction(dir Direction) *Builder {
	b.cfg.Direction = dir
	return b
}

// Weekends sets the weekend weekdays
func (b *Builder) Weekends(days ...time.Weekday) *Builder {
	b.cfg.Weekends = calendar.NewWeekends(days...)
	return b
}

// WeekendNames sets the weekend set from English weekday names
func (b *Builder) WeekendNames(names ...string) *Builder {
	w, err := calendar.ParseWeekends(names)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.cfg.Weekends = w
	return b
}

// ExceptionDates sets MM-DD / YYYY-MM-DD exception specifiers.
// Malformed specifiers are kept and never match.
func (b *Builder) ExceptionDates(specs ...string) *Builder {
	b.cfg.Exceptions = calendar.ParseExceptionDates(specs)
	return b
}

// Holidays adds an external holiday calendar
func (b *Builder) Holidays(cal calendar.Calendar) *Builder {
	b.cfg.Holidays = cal
	return b
}

// MaxAttempts bounds overflow resolution
func (b *Builder) MaxAttempts(n int) *Builder {
	b.cfg.MaxAttempts = n
	return b
}

// Build returns the assembled Config or the collected parse errors
func (b *Builder) Build() (Config, error) {
	cfg := b.cfg
	errs := b.errs
	if b.fromRaw != nil {
		t, err := dateutil.ParseDateTime(*b.fromRaw, b.loc)
		if err != nil {
			errs = append(errs, fmt.Errorf("start timestamp: %w", err))
		}
		cfg.From = t
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}
