package schedule

import (
	"time"

	"coachcal-service/internal/models"
)

// ConflictHorizonDays is the forward window, in days, scanned for
// recurring-series collisions before a new recurring booking is committed.
const ConflictHorizonDays = 84

// SameClientSameSlot returns every booking with exactly this client, date
// and time. A non-empty result blocks creation of a booking with the same
// triple; the caller turns the match set into a refusal.
func SameClientSameSlot(clientID, date, slotTime string, bookings []models.Booking) []models.Booking {
	var matches []models.Booking
	for _, b := range bookings {
		if b.ClientID == clientID && b.Date == date && b.Time == slotTime {
			matches = append(matches, b)
		}
	}
	return matches
}

// RecurringConflicts returns every existing recurring booking for the same
// client, weekday and time whose anchor date falls within
// [anchorDate, anchorDate+ConflictHorizonDays].
func RecurringConflicts(clientID string, day time.Weekday, slotTime, anchorDate string, bookings []models.Booking) []models.Booking {
	horizonEnd, err := AddDays(anchorDate, ConflictHorizonDays)
	if err != nil {
		return nil
	}

	var matches []models.Booking
	for _, b := range bookings {
		if b.Recurring == nil || b.ClientID != clientID {
			continue
		}
		if b.Recurring.Weekday != day || b.Time != slotTime {
			continue
		}
		// Lexicographic comparison is chronological for canonical dates.
		if b.Date >= anchorDate && b.Date <= horizonEnd {
			matches = append(matches, b)
		}
	}
	return matches
}

// FindDuplicates returns every booking that shares (clientId, date, time)
// with at least one other booking in the collection. Used for the post-hoc
// integrity report, not for blocking writes.
func FindDuplicates(bookings []models.Booking) []models.Booking {
	type slotKey struct {
		clientID, date, time string
	}

	counts := make(map[slotKey]int, len(bookings))
	for _, b := range bookings {
		counts[slotKey{b.ClientID, b.Date, b.Time}]++
	}

	var duplicates []models.Booking
	for _, b := range bookings {
		if counts[slotKey{b.ClientID, b.Date, b.Time}] > 1 {
			duplicates = append(duplicates, b)
		}
	}
	return duplicates
}
