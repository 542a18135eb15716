package schedule

import "coachcal-service/internal/models"

// ComposeDay merges the slot grid with the supplied bookings into the day
// view for date. For each slot the first booking in caller order that
// occupies the date at that time wins; remaining claimants are ignored
// rather than treated as an error, since the write path prevents such
// duplicates. The input slice is never mutated and the returned schedule
// holds copies of the matched bookings.
func ComposeDay(date string, bookings []models.Booking) models.DaySchedule {
	grid := GenerateSlots()

	schedule := models.DaySchedule{
		Date:  date,
		Slots: make([]models.TimeSlot, 0, len(grid)),
	}

	for _, t := range grid {
		slot := models.TimeSlot{Time: t}

		for _, b := range bookings {
			if b.Time != t || !OccupiesDate(b, date) {
				continue
			}

			owner := b
			slot.IsBooked = true
			slot.Booking = &owner
			break
		}

		schedule.Slots = append(schedule.Slots, slot)
	}

	return schedule
}
