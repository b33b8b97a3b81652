package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/workingtime/internal/config"
	"github.com/username/workingtime/internal/workingtime"
	"go.uber.org/zap"
)

type calcOptions struct {
	from         string
	duration     string
	years        int
	months       int
	days         int
	hours        int
	minutes      int
	seconds      int
	reverse      bool
	start        string
	end          string
	weekends     []string
	exceptions   []string
	holidaysFile string
	maxAttempts  int
	layout       string
}

func calcCmd() *cobra.Command {
	var opts calcOptions

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the timestamp reached after a working-time duration",
		Example: `  workingtime calc --from "2024-03-08 16:00:00" --hours 3 --start 08:00 --end 17:00 --weekends Saturday,Sunday
  workingtime calc --from "2024-03-15 10:00" --duration P1DT3H30M --reverse`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			opts.applyTo(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}

			calcCfg, err := buildCalcConfig(cfg, opts)
			if err != nil {
				return err
			}

			logger.Info("Calculating working time",
				zap.Time("from", calcCfg.From),
				zap.Stringer("duration", calcCfg.Duration),
				zap.Stringer("direction", calcCfg.Direction),
				zap.Stringer("window", calcCfg.Window),
				zap.Strings("weekends", calcCfg.Weekends.Names()))

			result, err := workingtime.NewCalculator(calcCfg, logger).Calculate()
			if err != nil {
				return fmt.Errorf("calculation failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cfg.FormatTime(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "Start timestamp (default: now)")
	cmd.Flags().StringVarP(&opts.duration, "duration", "d", "", "ISO-8601 duration, e.g. P1DT3H30M (overrides component flags)")
	cmd.Flags().IntVar(&opts.years, "years", 0, "Years to add")
	cmd.Flags().IntVar(&opts.months, "months", 0, "Months to add")
	cmd.Flags().IntVar(&opts.days, "days", 0, "Days to add")
	cmd.Flags().IntVar(&opts.hours, "hours", 0, "Hours to add")
	cmd.Flags().IntVar(&opts.minutes, "minutes", 0, "Minutes to add")
	cmd.Flags().IntVar(&opts.seconds, "seconds", 0, "Seconds to add")
	cmd.Flags().BoolVarP(&opts.reverse, "reverse", "r", false, "Subtract the duration instead of adding it")
	cmd.Flags().StringVar(&opts.start, "start", "", "Working day start HH:MM")
	cmd.Flags().StringVar(&opts.end, "end", "", "Working day end HH:MM")
	cmd.Flags().StringSliceVar(&opts.weekends, "weekends", nil, "Weekend day names")
	cmd.Flags().StringSliceVar(&opts.exceptions, "exceptions", nil, "Exception dates MM-DD or YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.holidaysFile, "holidays-file", "", "Holiday list file")
	cmd.Flags().IntVar(&opts.maxAttempts, "max-attempts", config.UnboundedAttempts, "Bound on day-skip iterations (-1 = unbounded, 0 = fail if the result leaves the start day)")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "Output time layout")

	return cmd
}

// applyTo overrides config values with flags given on the command line
func (o calcOptions) applyTo(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("start") {
		cfg.WorkingDay.Start = o.start
	}
	if flags.Changed("end") {
		cfg.WorkingDay.End = o.end
	}
	if flags.Changed("weekends") {
		cfg.Weekends = o.weekends
	}
	if flags.Changed("exceptions") {
		cfg.ExceptionDates = o.exceptions
	}
	if flags.Changed("holidays-file") {
		cfg.HolidaysFile = o.holidaysFile
	}
	if flags.Changed("max-attempts") {
		cfg.MaxAttempts = o.maxAttempts
	}
	if flags.Changed("layout") {
		cfg.Output.Layout = o.layout
	}
}

func (o calcOptions) durationValue() (workingtime.Duration, error) {
	if o.duration != "" {
		return workingtime.ParseDuration(o.duration)
	}
	d := workingtime.Duration{
		Years:   o.years,
		Months:  o.months,
		Days:    o.days,
		Hours:   o.hours,
		Minutes: o.minutes,
		Seconds: o.seconds,
	}
	if d.Years < 0 || d.Months < 0 || d.Days < 0 || d.Hours < 0 || d.Minutes < 0 || d.Seconds < 0 {
		return workingtime.Duration{}, fmt.Errorf("duration components must not be negative, use --reverse")
	}
	return d, nil
}

// buildCalcConfig turns a validated config plus flags into a calculation config
func buildCalcConfig(cfg *config.Config, opts calcOptions) (workingtime.Config, error) {
	loc, err := cfg.GetLocation()
	if err != nil {
		return workingtime.Config{}, err
	}
	window, err := cfg.GetWindow()
	if err != nil {
		return workingtime.Config{}, err
	}
	duration, err := opts.durationValue()
	if err != nil {
		return workingtime.Config{}, err
	}
	holidays, err := loadHolidays(cfg)
	if err != nil {
		return workingtime.Config{}, err
	}

	b := workingtime.NewBuilder().
		In(loc).
		From(time.Now().In(loc)).
		Window(window).
		WeekendNames(cfg.Weekends...).
		ExceptionDates(cfg.ExceptionDates...).
		Holidays(holidays).
		Duration(duration).
		MaxAttempts(cfg.GetMaxAttempts())
	if opts.from != "" {
		b.FromString(opts.from)
	}
	if opts.reverse {
		b.Reverse()
	}

	calcCfg, err := b.Build()
	if err != nil {
		return workingtime.Config{}, err
	}

	if calcCfg.Weekends.Full() {
		logger.Warn("Every weekday is a weekend, calculations leaving the start day cannot succeed",
			zap.Int("max_attempts", calcCfg.MaxAttempts))
	}
	if invalid := calcCfg.Exceptions.Invalid(); len(invalid) > 0 {
		logger.Warn("Ignoring unmatchable exception dates", zap.Strings("dates", invalid))
	}

	return calcCfg, nil
}
