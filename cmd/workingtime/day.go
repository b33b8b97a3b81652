package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/workingtime/internal/calendar"
	"github.com/username/workingtime/internal/config"
	"github.com/username/workingtime/pkg/dateutil"
	"go.uber.org/zap"
)

func dayCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "day [DATE]",
		Short: "Show whether dates are working days",
		Long:  "Classify DATE (default: today) and the following days as workday, weekend or holiday using the configured weekends, exception dates and holiday file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loc, err := cfg.GetLocation()
			if err != nil {
				return err
			}

			date := dateutil.StartOfDay(time.Now().In(loc))
			if len(args) == 1 {
				date, err = dateutil.ParseDateTime(args[0], loc)
				if err != nil {
					return fmt.Errorf("invalid date: %w", err)
				}
			}

			holidays, err := loadHolidays(cfg)
			if err != nil {
				return err
			}
			cal := calendar.NewCompositeCalendar(logger,
				calendar.NewRules(cfg.GetWeekends(), calendar.ParseExceptionDates(cfg.ExceptionDates)),
				holidays)

			logger.Debug("Classifying days",
				zap.Time("from", date),
				zap.Int("count", count))

			for i := 0; i < count; i++ {
				info := cal.GetDayInfo(date.AddDate(0, 0, i))
				fmt.Fprintln(cmd.OutOrStdout(), formatDayInfo(info))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of consecutive days to show")

	return cmd
}

func formatDayInfo(info calendar.DayInfo) string {
	line := fmt.Sprintf("%s %-9s %s", info.Date.Format("2006-01-02"), info.Date.Weekday(), info.Type)
	if info.Note != "" && info.Type == calendar.DayTypeHoliday {
		line += " (" + info.Note + ")"
	}
	return line
}
