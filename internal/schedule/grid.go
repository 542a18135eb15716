package schedule

import "fmt"

// Grid bounds in minutes from midnight. The last emitted slot is exactly
// GridEnd.
const (
	GridStart    = 10*60 + 30 // 10:30
	GridEnd      = 19*60 + 30 // 19:30
	SlotInterval = 20
	SlotsPerDay  = 27
)

// GenerateSlots returns the fixed ordered grid of bookable times for any
// day, formatted as zero-padded 24-hour HH:MM strings.
func GenerateSlots() []string {
	slots := make([]string, 0, SlotsPerDay)
	for m := GridStart; m <= GridEnd; m += SlotInterval {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

// IsGridSlot reports whether t is one of the grid times.
func IsGridSlot(t string) bool {
	for _, s := range GenerateSlots() {
		if s == t {
			return true
		}
	}
	return false
}
