package schedule

import "coachcal-service/internal/models"

// OccupiesDate reports whether a booking occupies targetDate.
//
// A weekly-recurring booking matches whenever the weekday of targetDate
// equals its recurring weekday, regardless of whether targetDate precedes
// the series anchor date. A single-date booking matches on exact date
// equality. Dates are assumed well-formed; validation is the caller's
// concern.
func OccupiesDate(b models.Booking, targetDate string) bool {
	if b.Recurring != nil {
		wd, err := Weekday(targetDate)
		if err != nil {
			return false
		}
		return wd == b.Recurring.Weekday
	}

	return b.Date == targetDate
}
