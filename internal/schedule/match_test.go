package schedule

import (
	"testing"
	"time"

	"coachcal-service/internal/models"
)

func singleBooking(date, slotTime string) models.Booking {
	return models.Booking{
		ID:       "b1",
		ClientID: "c1",
		Date:     date,
		Time:     slotTime,
		CallType: models.CallOnboarding,
		Status:   models.BookingScheduled,
		Duration: models.DefaultDurationMinutes,
	}
}

func weeklyBooking(anchor, slotTime string, day time.Weekday) models.Booking {
	b := singleBooking(anchor, slotTime)
	b.CallType = models.CallFollowUp
	b.Recurring = &models.WeeklyRecurrence{Weekday: day}
	return b
}

func TestOccupiesDateSingle(t *testing.T) {
	b := singleBooking("2024-03-01", "11:10")

	tests := []struct {
		date string
		want bool
	}{
		{"2024-03-01", true},
		{"2024-03-02", false},
		{"2024-03-08", false},
	}

	for _, tt := range tests {
		if got := OccupiesDate(b, tt.date); got != tt.want {
			t.Errorf("OccupiesDate(single, %q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestOccupiesDateRecurring(t *testing.T) {
	// Anchored on Wednesday 2024-03-06.
	b := weeklyBooking("2024-03-06", "14:10", time.Wednesday)

	tests := []struct {
		name string
		date string
		want bool
	}{
		{"anchor date itself", "2024-03-06", true},
		{"wednesday a week later", "2024-03-13", true},
		{"wednesday months later", "2024-07-03", true},
		{"thursday", "2024-03-07", false},
		{"monday", "2024-03-04", false},
		// The series matches weekdays before its anchor as well.
		{"wednesday before anchor", "2024-02-28", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OccupiesDate(b, tt.date); got != tt.want {
				t.Errorf("OccupiesDate(recurring, %q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestWeekdaySundayFirst(t *testing.T) {
	// 2024-03-03 is a Sunday; the convention is Sunday=0.
	wd, err := Weekday("2024-03-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wd != time.Sunday || int(wd) != 0 {
		t.Errorf("Weekday(2024-03-03) = %v (%d), want Sunday (0)", wd, int(wd))
	}
}
