package schedule

import (
	"regexp"
	"testing"
)

func TestGenerateSlots(t *testing.T) {
	slots := GenerateSlots()

	if len(slots) != SlotsPerDay {
		t.Fatalf("got %d slots, want %d", len(slots), SlotsPerDay)
	}

	if slots[0] != "10:30" {
		t.Errorf("first slot = %q, want 10:30", slots[0])
	}
	if slots[len(slots)-1] != "19:30" {
		t.Errorf("last slot = %q, want 19:30", slots[len(slots)-1])
	}

	format := regexp.MustCompile(`^\d{2}:\d{2}$`)
	for i, s := range slots {
		if !format.MatchString(s) {
			t.Errorf("slot %d = %q, want zero-padded HH:MM", i, s)
		}
	}
}

func TestGenerateSlotsStep(t *testing.T) {
	slots := GenerateSlots()

	prev := -1
	for i, s := range slots {
		m := int(s[0]-'0')*600 + int(s[1]-'0')*60 + int(s[3]-'0')*10 + int(s[4]-'0')
		if prev >= 0 && m-prev != SlotInterval {
			t.Errorf("slot %d (%s): step %d minutes, want %d", i, s, m-prev, SlotInterval)
		}
		prev = m
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	a := GenerateSlots()
	b := GenerateSlots()

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("slot %d differs between calls: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestIsGridSlot(t *testing.T) {
	tests := []struct {
		time string
		want bool
	}{
		{"10:30", true},
		{"14:10", true},
		{"19:30", true},
		{"19:50", false},
		{"10:00", false},
		{"10:40", false},
		{"9:30", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsGridSlot(tt.time); got != tt.want {
			t.Errorf("IsGridSlot(%q) = %v, want %v", tt.time, got, tt.want)
		}
	}
}
