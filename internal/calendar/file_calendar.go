package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileCalendar implements Calendar using a local holiday list
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	dates    ExceptionDates
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
	}
}

// Load loads holiday dates from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holidays file: %w", err)
	}
	defer file.Close()

	var dates ExceptionDates
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: MM-DD|YYYY-MM-DD [note]
		// Example: 01-01 New Year
		parts := strings.SplitN(line, " ", 2)
		date := ParseExceptionDate(parts[0])
		if !date.Valid() {
			fc.logger.Warn("Invalid holiday date",
				zap.String("file", fc.filePath),
				zap.Int("line", lineNo),
				zap.String("date", parts[0]))
			continue
		}
		if len(parts) == 2 {
			date.Note = strings.TrimSpace(parts[1])
		}
		dates = append(dates, date)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holidays file: %w", err)
	}

	fc.dates = dates
	fc.logger.Info("Holidays file loaded",
		zap.String("file", fc.filePath),
		zap.Int("dates", len(dates)))

	return nil
}

// Dates returns the loaded holiday specifiers
func (fc *FileCalendar) Dates() ExceptionDates {
	return fc.dates
}

// GetDayInfo returns holiday for listed dates and workday otherwise
func (fc *FileCalendar) GetDayInfo(date time.Time) DayInfo {
	e, ok := fc.dates.Match(date)
	if !ok {
		return workday(date)
	}
	note := e.Note
	if note == "" {
		note = "holiday " + e.Raw
	}
	return DayInfo{Date: date, Type: DayTypeHoliday, Note: note}
}
