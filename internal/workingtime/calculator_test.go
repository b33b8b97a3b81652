package workingtime

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.UTC)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return ts
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		from       string
		window     WorkingWindow
		duration   Duration
		weekends   []string
		exceptions []string
		reverse    bool
		want       string
	}{
		{
			name:     "simple addition within working hours",
			from:     "2024-03-12 10:00:00",
			window:   WorkingWindow{StartHour: 8, EndHour: 17},
			duration: Duration{Hours: 5},
			weekends: []string{"Saturday", "Sunday"},
			want:     "2024-03-12 15:00:00",
		},
		{
			name:     "adding time beyond working hours",
			from:     "2024-03-12 14:00:00",
			window:   WorkingWindow{StartHour: 8, EndHour: 17},
			duration: Duration{Hours: 5},
			weekends: []string{"Saturday", "Sunday"},
			want:     "2024-03-13 10:00:00",
		},
		{
			name:     "skip weekend",
			from:     "2024-03-08 16:00:00",
			window:   WorkingWindow{StartHour: 8, EndHour: 17},
			duration: Duration{Hours: 3},
			weekends: []string{"Saturday", "Sunday"},
			want:     "2024-03-11 10:00:00",
		},
		{
			name:       "handle exception date",
			from:       "2024-03-07 12:00:00",
			window:     WorkingWindow{StartHour: 8, EndHour: 17},
			duration:   Duration{Days: 1, Hours: 4},
			weekends:   []string{"Saturday", "Sunday"},
			exceptions: []string{"03-08"},
			want:       "2024-03-13 13:00:00",
		},
		{
			name:       "single occurrence exception date",
			from:       "2024-03-07 12:00:00",
			window:     WorkingWindow{StartHour: 8, EndHour: 17},
			duration:   Duration{Days: 1, Hours: 4},
			weekends:   []string{"Saturday", "Sunday"},
			exceptions: []string{"2024-03-08"},
			want:       "2024-03-13 13:00:00",
		},
		{
			name:       "cross year calculation",
			from:       "2024-12-30 14:00:00",
			window:     WorkingWindow{StartHour: 8, EndHour: 17},
			duration:   Duration{Days: 3, Hours: 2},
			weekends:   []string{"Saturday", "Sunday"},
			exceptions: []string{"01-01"},
			want:       "2025-01-10 16:00:00",
		},
		{
			name:     "reverse calculation",
			from:     "2024-03-15 10:00:00",
			window:   WorkingWindow{StartHour: 8, EndHour: 17},
			duration: Duration{Days: 1, Hours: 3, Minutes: 30},
			weekends: []string{"Saturday", "Sunday"},
			reverse:  true,
			want:     "2024-03-12 09:30:00",
		},
		{
			name:     "reverse within the same day",
			from:     "2024-03-15 10:00:00",
			window:   WorkingWindow{StartHour: 8, EndHour: 17},
			duration: Duration{Hours: 2},
			reverse:  true,
			want:     "2024-03-15 08:00:00",
		},
		{
			name:     "weekend in the middle (Wed, Thu)",
			from:     "2024-03-11 15:00:00",
			window:   WorkingWindow{StartHour: 8, EndHour: 17},
			duration: Duration{Days: 3, Hours: 2},
			weekends: []string{"Wednesday", "Thursday"},
			want:     "2024-03-23 17:00:00",
		},
		{
			name:     "no weekends at all",
			from:     "2024-03-08 14:00:00",
			window:   WorkingWindow{StartHour: 6, StartMinute: 30, EndHour: 21},
			duration: Duration{Days: 2, Hours: 5, Minutes: 30},
			want:     "2024-03-12 09:30:00",
		},
		{
			name:       "one week vacation",
			from:       "2024-07-01 09:00:00",
			window:     WorkingWindow{StartHour: 8, EndHour: 17},
			duration:   Duration{Days: 2, Hours: 4, Minutes: 30},
			weekends:   []string{"Saturday", "Sunday"},
			exceptions: []string{"07-02", "07-03", "07-04", "07-05", "07-06", "07-07"},
			want:       "2024-07-12 16:30:00",
		},
		{
			name:     "long range addition over multiple months",
			from:     "2024-08-15 14:30:00",
			window:   WorkingWindow{StartHour: 9, EndHour: 18},
			duration: Duration{Months: 1, Days: 5, Hours: 7, Minutes: 45},
			weekends: []string{"Saturday", "Sunday"},
			want:     "2024-12-30 13:15:00",
		},
		{
			name:     "reverse with midweek weekends",
			from:     "2024-10-10 11:00:00",
			window:   WorkingWindow{StartHour: 8, EndHour: 17},
			duration: Duration{Days: 2, Hours: 6},
			weekends: []string{"Tuesday", "Wednesday"},
			reverse:  true,
			want:     "2024-09-30 11:00:00",
		},
		{
			name:       "reverse with multiple holidays",
			from:       "2024-12-28 14:00:00",
			window:     WorkingWindow{StartHour: 7, EndHour: 16, EndMinute: 30},
			duration:   Duration{Days: 4, Hours: 3, Minutes: 45},
			weekends:   []string{"Saturday", "Sunday"},
			exceptions: []string{"12-30", "12-31", "01-01"},
			reverse:    true,
			want:       "2024-12-16 09:15:00",
		},
		{
			name:     "leap year",
			from:     "2024-02-28 12:00:00",
			window:   WorkingWindow{StartHour: 8, EndHour: 17},
			duration: Duration{Days: 2, Hours: 4},
			weekends: []string{"Saturday", "Sunday"},
			want:     "2024-03-07 10:00:00",
		},
		{
			name:       "malformed exception is inert",
			from:       "2024-03-12 14:00:00",
			window:     WorkingWindow{StartHour: 8, EndHour: 17},
			duration:   Duration{Hours: 5},
			weekends:   []string{"Saturday", "Sunday"},
			exceptions: []string{"2024-13-03", "03-13x"},
			want:       "2024-03-13 10:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder().
				In(time.UTC).
				FromString(tt.from).
				Window(tt.window).
				Duration(tt.duration).
				WeekendNames(tt.weekends...).
				ExceptionDates(tt.exceptions...)
			if tt.reverse {
				b.Reverse()
			}

			cfg, err := b.Build()
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			result, err := Calculate(cfg)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}

			if got := result.Format("2006-01-02 15:04:05"); got != tt.want {
				t.Errorf("Calculate() from %s = %s, want %s", tt.from, got, tt.want)
			}
		})
	}
}

func TestCalculate_ZeroDurationReturnsStart(t *testing.T) {
	window := WorkingWindow{StartHour: 8, EndHour: 17}

	for _, from := range []string{"2024-03-12 10:00:00", "2024-03-08 18:00:00", "2024-03-09 03:00:00"} {
		for _, dir := range []Direction{Forward, Reverse} {
			cfg := DefaultConfig()
			cfg.From = mustTime(t, from)
			cfg.Window = window
			cfg.Direction = dir
			cfg.MaxAttempts = 0

			result, err := Calculate(cfg)
			if err != nil {
				t.Fatalf("Calculate(%s, %v) error = %v", from, dir, err)
			}
			if !result.Equal(cfg.From) {
				t.Errorf("Calculate(%s, %v) = %v, want start unchanged", from, dir, result)
			}
		}
	}
}

func TestCalculate_ContainmentIsExact(t *testing.T) {
	from := mustTime(t, "2024-03-12 08:00:00")

	for _, d := range []Duration{{Seconds: 1}, {Hours: 4, Minutes: 59, Seconds: 59}, {Hours: 9}} {
		cfg := DefaultConfig()
		cfg.From = from
		cfg.Window = WorkingWindow{StartHour: 8, EndHour: 17}
		cfg.Duration = d

		result, err := Calculate(cfg)
		if err != nil {
			t.Fatalf("Calculate(%v) error = %v", d, err)
		}
		secs, _ := d.ClockSeconds()
		if want := from.Add(time.Duration(secs) * time.Second); !result.Equal(want) {
			t.Errorf("Calculate(%v) = %v, want %v", d, result, want)
		}
	}
}

func TestCalculate_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		from       string
		duration   Duration
		exceptions []string
	}{
		{"overflow into next day", "2024-03-12 14:00:00", Duration{Hours: 5}, nil},
		{"over the weekend", "2024-03-08 16:00:00", Duration{Hours: 3}, nil},
		{"over an exception", "2024-03-07 12:00:00", Duration{Days: 1, Hours: 4}, []string{"03-08"}},
		{"inside one day", "2024-03-12 09:00:00", Duration{Hours: 2, Minutes: 15}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := mustTime(t, tt.from)
			base := NewBuilder().
				Window(WorkingWindow{StartHour: 8, EndHour: 17}).
				Weekends(time.Saturday, time.Sunday).
				ExceptionDates(tt.exceptions...).
				Duration(tt.duration)

			forwardCfg, _ := base.From(start).Direction(Forward).Build()
			forward, err := Calculate(forwardCfg)
			if err != nil {
				t.Fatalf("forward Calculate() error = %v", err)
			}

			reverseCfg, _ := base.From(forward).Direction(Reverse).Build()
			back, err := Calculate(reverseCfg)
			if err != nil {
				t.Fatalf("reverse Calculate() error = %v", err)
			}

			if back.After(start) {
				t.Errorf("round trip landed after start: %v > %v", back, start)
			}
			if !back.Equal(start) {
				t.Errorf("round trip = %v, want %v", back, start)
			}
		})
	}
}

func TestCalculate_LongDurations(t *testing.T) {
	from := mustTime(t, "2024-03-12 10:00:00")
	window := WorkingWindow{EndHour: 23, EndMinute: 59}

	tests := []struct {
		name       string
		d          Duration
		rawForward time.Time
		rawReverse time.Time
	}{
		{
			name:       "three million hours",
			d:          Duration{Hours: 3_000_000},
			rawForward: from.Add(1_500_000 * time.Hour).Add(1_500_000 * time.Hour),
			rawReverse: from.Add(-1_500_000 * time.Hour).Add(-1_500_000 * time.Hour),
		},
		{
			name:       "three hundred years",
			d:          Duration{Years: 300},
			rawForward: from.AddDate(300, 0, 0),
			rawReverse: from.AddDate(-300, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, dir := range []Direction{Forward, Reverse} {
				cfg := DefaultConfig()
				cfg.From = from
				cfg.Window = window
				cfg.Duration = tt.d
				cfg.Direction = dir

				raw := tt.rawForward
				if dir == Reverse {
					raw = tt.rawReverse
				}

				result, err := Calculate(cfg)
				if err != nil {
					t.Fatalf("Calculate(%v) error = %v", dir, err)
				}
				// Every skipped night pushes the result further out.
				if dir == Forward && (result.Before(raw) || !result.After(from)) {
					t.Errorf("Calculate(forward) = %v, want after %v", result, raw)
				}
				if dir == Reverse && (result.After(raw) || !result.Before(from)) {
					t.Errorf("Calculate(reverse) = %v, want before %v", result, raw)
				}
				if result.Before(window.StartOf(result)) || result.After(window.EndOf(result)) {
					t.Errorf("Calculate(%v) = %v, outside working window", dir, result)
				}
			}
		})
	}
}

func TestCalculate_DurationOutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.From = mustTime(t, "2024-03-12 10:00:00")
	cfg.Duration = Duration{Hours: math.MaxInt64 / 3600}

	if _, err := Calculate(cfg); !errors.Is(err, ErrDurationRange) {
		t.Errorf("Calculate() error = %v, want ErrDurationRange", err)
	}
}

func TestCalculate_MaxAttempts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.From = mustTime(t, "2024-03-08 18:00:00")
	cfg.Window = WorkingWindow{StartHour: 8, EndHour: 17}
	cfg.Duration = Duration{Hours: 1}
	cfg.MaxAttempts = 0

	_, err := Calculate(cfg)
	if !errors.Is(err, ErrMaxAttempts) {
		t.Fatalf("Calculate() error = %v, want ErrMaxAttempts", err)
	}
	if err.Error() != "Unable to adjust time" {
		t.Errorf("error message = %q, want %q", err.Error(), "Unable to adjust time")
	}
}

func TestCalculate_AllDaysWeekendFailsWithinBound(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	cfg, err := NewBuilder().
		From(mustTime(t, "2024-03-12 16:00:00")).
		Window(WorkingWindow{StartHour: 8, EndHour: 17}).
		WeekendNames("Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday").
		Hours(3).
		MaxAttempts(100).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	_, err = NewCalculator(cfg, zap.New(core)).Calculate()

	var maxErr *MaxAttemptsError
	if !errors.As(err, &maxErr) {
		t.Fatalf("Calculate() error = %v, want *MaxAttemptsError", err)
	}
	if maxErr.Attempts != 100 || maxErr.Direction != Forward {
		t.Errorf("MaxAttemptsError = %+v, want 100 forward attempts", maxErr)
	}
	if maxErr.Remaining != 2*3600 {
		t.Errorf("Remaining = %ds, want 7200s", maxErr.Remaining)
	}
	if want := mustTime(t, "2024-06-20 08:00:00"); !maxErr.Boundary.Equal(want) {
		t.Errorf("Boundary = %v, want %v", maxErr.Boundary, want)
	}
	if logs.FilterMessage("Overflow resolution exhausted").Len() != 1 {
		t.Errorf("expected one exhaustion warning, got %d log entries", logs.Len())
	}
}

func TestCalculator_ResolveForward(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window = WorkingWindow{StartHour: 8, EndHour: 17}
	cfg.Weekends = nil
	calc := NewCalculator(cfg, nil)

	b, _ := NewBuilder().Window(cfg.Window).WeekendNames("Saturday", "Sunday").Build()
	weekendCalc := NewCalculator(b, nil)

	// Friday 16:00 measured against Friday 17:00 leaves one hour of magnitude.
	friday := mustTime(t, "2024-03-08 17:00:00")
	result, err := weekendCalc.ResolveForward(friday, mustTime(t, "2024-03-08 16:00:00").Sub(friday))
	if err != nil {
		t.Fatalf("ResolveForward() error = %v", err)
	}
	if want := mustTime(t, "2024-03-11 09:00:00"); !result.Equal(want) {
		t.Errorf("ResolveForward() = %v, want %v", result, want)
	}

	result, err = calc.ResolveForward(friday, time.Hour)
	if err != nil {
		t.Fatalf("ResolveForward() error = %v", err)
	}
	if want := mustTime(t, "2024-03-09 09:00:00"); !result.Equal(want) {
		t.Errorf("ResolveForward() without weekends = %v, want %v", result, want)
	}
}

func TestCalculator_ResolveReverse(t *testing.T) {
	cfg, _ := NewBuilder().
		Window(WorkingWindow{StartHour: 8, EndHour: 17}).
		WeekendNames("Saturday", "Sunday").
		Build()
	calc := NewCalculator(cfg, nil)

	result, err := calc.ResolveReverse(mustTime(t, "2024-03-11 08:00:00"), 0)
	if err != nil {
		t.Fatalf("ResolveReverse() error = %v", err)
	}
	if want := mustTime(t, "2024-03-08 17:00:00"); !result.Equal(want) {
		t.Errorf("ResolveReverse() = %v, want %v", result, want)
	}
}

func TestCalculator_ResolveExhausted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window = WorkingWindow{StartHour: 8, EndHour: 17}
	cfg.MaxAttempts = -1
	calc := NewCalculator(cfg, nil)

	tests := []struct {
		name    string
		resolve func(time.Time, time.Duration) (time.Time, error)
		dir     Direction
	}{
		{"forward", calc.ResolveForward, Forward},
		{"reverse", calc.ResolveReverse, Reverse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.resolve(mustTime(t, "2024-03-08 17:00:00"), time.Hour)

			var maxErr *MaxAttemptsError
			if !errors.As(err, &maxErr) {
				t.Fatalf("error = %v, want *MaxAttemptsError", err)
			}
			if maxErr.Direction != tt.dir {
				t.Errorf("Direction = %v, want %v", maxErr.Direction, tt.dir)
			}
		})
	}
}

func TestCalculator_ConcurrentUse(t *testing.T) {
	cfg, _ := NewBuilder().
		From(mustTime(t, "2024-03-08 16:00:00")).
		Window(WorkingWindow{StartHour: 8, EndHour: 17}).
		WeekendNames("Saturday", "Sunday").
		Hours(3).
		Build()
	calc := NewCalculator(cfg, nil)
	want := mustTime(t, "2024-03-11 10:00:00")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := calc.Calculate()
			if err != nil || !result.Equal(want) {
				t.Errorf("Calculate() = %v, %v, want %v", result, err, want)
			}
		}()
	}
	wg.Wait()
}

func TestBuilder_Errors(t *testing.T) {
	_, err := NewBuilder().
		FromString("yesterday").
		WeekendNames("Saturday", "Blursday").
		Build()
	if err == nil {
		t.Fatal("Build() expected error, got nil")
	}
}

func TestBuilder_FromStringUsesFinalLocation(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)

	tests := []struct {
		name  string
		build func() *Builder
		want  time.Time
	}{
		{
			name:  "location set after string",
			build: func() *Builder { return NewBuilder().FromString("2024-03-12 10:00").In(msk) },
			want:  time.Date(2024, 3, 12, 10, 0, 0, 0, msk),
		},
		{
			name:  "location set before string",
			build: func() *Builder { return NewBuilder().In(msk).FromString("2024-03-12 10:00") },
			want:  time.Date(2024, 3, 12, 10, 0, 0, 0, msk),
		},
		{
			name:  "later From wins",
			build: func() *Builder { return NewBuilder().FromString("garbage").From(time.Date(2024, 3, 12, 7, 0, 0, 0, time.UTC)) },
			want:  time.Date(2024, 3, 12, 7, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.build().Build()
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if !cfg.From.Equal(tt.want) {
				t.Errorf("From = %v, want %v", cfg.From, tt.want)
			}
		})
	}
}

func TestBuilder_Defaults(t *testing.T) {
	cfg, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if cfg.Window != DefaultWindow {
		t.Errorf("Window = %v, want %v", cfg.Window, DefaultWindow)
	}
	if cfg.MaxAttempts != Unbounded {
		t.Errorf("MaxAttempts = %d, want Unbounded", cfg.MaxAttempts)
	}
	if cfg.Direction != Forward || !cfg.Duration.IsZero() {
		t.Errorf("Direction/Duration = %v/%v, want forward zero", cfg.Direction, cfg.Duration)
	}
	if cfg.From.IsZero() {
		t.Error("From must default to now")
	}
}
