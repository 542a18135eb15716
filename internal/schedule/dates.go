package schedule

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseDate parses a canonical YYYY-MM-DD date.
func ParseDate(date string) (time.Time, error) {
	const op = "schedule.ParseDate"

	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	return d, nil
}

// Weekday returns the day of week of a canonical date, Sunday=0.
func Weekday(date string) (time.Weekday, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}

	return d.Weekday(), nil
}

// AddDays shifts a canonical date by n calendar days.
func AddDays(date string, n int) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}

	return d.AddDate(0, 0, n).Format(DateLayout), nil
}

// DayName returns the English weekday name of a canonical date.
func DayName(date string) string {
	d, err := ParseDate(date)
	if err != nil {
		return ""
	}

	return d.Weekday().String()
}

// FormatDateDisplay renders a canonical date as "January 2, 2006".
func FormatDateDisplay(date string) string {
	d, err := ParseDate(date)
	if err != nil {
		return date
	}

	return d.Format("January 2, 2006")
}

// FormatTimeDisplay renders a 24-hour HH:MM slot time as 12-hour with
// an AM/PM suffix.
func FormatTimeDisplay(t string) string {
	parsed, err := time.Parse(TimeLayout, t)
	if err != nil {
		return t
	}

	return parsed.Format("3:04 PM")
}
