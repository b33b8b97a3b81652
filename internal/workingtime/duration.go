package workingtime

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Direction selects whether the duration is added or subtracted
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// String returns "forward" or "reverse"
func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Duration is a calendar interval with non-negative components.
// The sign comes from Direction.
type Duration struct {
	Years   int
	Months  int
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// IsZero reports whether every component is zero
func (d Duration) IsZero() bool {
	return d == Duration{}
}

// maxClockSeconds keeps t.Unix() plus the clock part inside int64
const maxClockSeconds = math.MaxInt64 / 2

// ClockSeconds returns the fixed-length part (hours, minutes, seconds) in
// whole seconds. ok is false for negative components or a sum that does
// not fit.
func (d Duration) ClockSeconds() (secs int64, ok bool) {
	parts := [...]struct{ n, unit int64 }{
		{int64(d.Hours), 3600},
		{int64(d.Minutes), 60},
		{int64(d.Seconds), 1},
	}
	for _, p := range parts {
		if p.n < 0 || p.n > (maxClockSeconds-secs)/p.unit {
			return 0, false
		}
		secs += p.n * p.unit
	}
	return secs, true
}

// String renders the ISO-8601 period form P{y}Y{m}M{d}DT{h}H{i}M{s}S
func (d Duration) String() string {
	return fmt.Sprintf("P%dY%dM%dDT%dH%dM%dS", d.Years, d.Months, d.Days, d.Hours, d.Minutes, d.Seconds)
}

// ApplyTo applies the interval once to t. Years, months and days use
// calendar rollover (Jan 31 + 1 month normalizes past February), then the
// clock part is added as elapsed seconds.
func (d Duration) ApplyTo(t time.Time, dir Direction) (time.Time, error) {
	secs, ok := d.ClockSeconds()
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s", ErrDurationRange, d)
	}

	sign := 1
	if dir == Reverse {
		sign = -1
	}
	t = t.AddDate(sign*d.Years, sign*d.Months, sign*d.Days)
	return time.Unix(t.Unix()+int64(sign)*secs, int64(t.Nanosecond())).In(t.Location()), nil
}

var isoPeriod = regexp.MustCompile(`^P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration parses an ISO-8601 period such as "P1DT3H30M".
// Weeks are folded into days.
func ParseDuration(value string) (Duration, error) {
	m := isoPeriod.FindStringSubmatch(value)
	if m == nil || value == "P" || value[len(value)-1] == 'T' {
		return Duration{}, fmt.Errorf("invalid ISO-8601 duration %q", value)
	}

	n := make([]int, len(m))
	for i := 1; i < len(m); i++ {
		if m[i] == "" {
			continue
		}
		v, err := strconv.Atoi(m[i])
		if err != nil {
			return Duration{}, fmt.Errorf("invalid ISO-8601 duration %q: %w", value, err)
		}
		n[i] = v
	}

	return Duration{
		Years:   n[1],
		Months:  n[2],
		Days:    n[3]*7 + n[4],
		Hours:   n[5],
		Minutes: n[6],
		Seconds: n[7],
	}, nil
}
