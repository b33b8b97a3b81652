package workingtime

import (
	"time"

	"github.com/username/workingtime/internal/calendar"
	"go.uber.org/zap"
)

// Calculator resolves a Config into a working-time timestamp.
// A Calculator is immutable and safe for concurrent use.
type Calculator struct {
	cfg    Config
	days   calendar.Calendar
	logger *zap.Logger
}

// NewCalculator creates a new Calculator
func NewCalculator(cfg Config, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Calculator{
		cfg:    cfg,
		days:   cfg.Calendar(logger),
		logger: logger,
	}
}

// Calculate runs a single calculation with a no-op logger
func Calculate(cfg Config) (time.Time, error) {
	return NewCalculator(cfg, nil).Calculate()
}

// Calculate applies the duration to the start timestamp and moves any part
// that falls outside the start day's window onto following (or, in reverse,
// preceding) working days.
func (c *Calculator) Calculate() (time.Time, error) {
	from := c.cfg.From
	if c.cfg.Duration.IsZero() {
		return from, nil
	}

	result, err := c.cfg.Duration.ApplyTo(from, c.cfg.Direction)
	if err != nil {
		return time.Time{}, err
	}

	c.logger.Debug("Duration applied",
		zap.Time("from", from),
		zap.Stringer("duration", c.cfg.Duration),
		zap.Stringer("direction", c.cfg.Direction),
		zap.Time("raw", result))

	if c.cfg.Direction == Reverse {
		startOfDay := c.cfg.Window.StartOf(from)
		if !result.Before(startOfDay) {
			return result, nil
		}
		return c.resolve(Reverse, startOfDay, startOfDay.Unix()-result.Unix())
	}

	endOfDay := c.cfg.Window.EndOf(from)
	if !result.After(endOfDay) {
		return result, nil
	}
	return c.resolve(Forward, endOfDay, result.Unix()-endOfDay.Unix())
}

// ResolveForward places overflow past boundary onto following working days.
// The overflow is counted in whole seconds.
func (c *Calculator) ResolveForward(boundary time.Time, overflow time.Duration) (time.Time, error) {
	return c.resolve(Forward, boundary, int64(overflow/time.Second))
}

// ResolveReverse places overflow before boundary onto preceding working days
func (c *Calculator) ResolveReverse(boundary time.Time, overflow time.Duration) (time.Time, error) {
	return c.resolve(Reverse, boundary, int64(overflow/time.Second))
}

// resolve carries overflow seconds across days. Seconds rather than
// time.Duration keep multi-century offsets exact.
func (c *Calculator) resolve(dir Direction, boundary time.Time, overflow int64) (time.Time, error) {
	advance := advanceForward
	if dir == Reverse {
		advance = advanceReverse
	}
	if overflow < 0 {
		overflow = -overflow
	}

	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		s := advance(boundary, overflow, c.cfg.Window, c.days)
		if s.Done {
			return s.Result, nil
		}

		if s.Skipped {
			c.logger.Debug("Skipping non-working day",
				zap.Time("day", s.Boundary),
				zap.Int("attempt", attempt))
		} else {
			c.logger.Debug("Working day consumed",
				zap.Time("day", s.Boundary),
				zap.Int64("remaining_seconds", s.Overflow),
				zap.Int("attempt", attempt))
		}
		boundary, overflow = s.Boundary, s.Overflow
	}

	c.logger.Warn("Overflow resolution exhausted",
		zap.Stringer("direction", dir),
		zap.Int("max_attempts", c.cfg.MaxAttempts),
		zap.Time("boundary", boundary),
		zap.Int64("remaining_seconds", overflow))

	return time.Time{}, &MaxAttemptsError{
		Direction: dir,
		Attempts:  c.cfg.MaxAttempts,
		Boundary:  boundary,
		Remaining: overflow,
	}
}
