package schedule

import "testing"

func TestAddDays(t *testing.T) {
	tests := []struct {
		date string
		n    int
		want string
	}{
		{"2024-03-01", 1, "2024-03-02"},
		{"2024-03-01", -1, "2024-02-29"}, // leap year
		{"2024-03-04", ConflictHorizonDays, "2024-05-27"},
		{"2024-12-31", 1, "2025-01-01"},
	}

	for _, tt := range tests {
		got, err := AddDays(tt.date, tt.n)
		if err != nil {
			t.Errorf("AddDays(%q, %d): unexpected error %v", tt.date, tt.n, err)
			continue
		}
		if got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.date, tt.n, got, tt.want)
		}
	}

	if _, err := AddDays("01-03-2024", 1); err == nil {
		t.Errorf("AddDays accepted a non-canonical date")
	}
}

func TestFormatTimeDisplay(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"10:30", "10:30 AM"},
		{"12:10", "12:10 PM"},
		{"14:10", "2:10 PM"},
		{"19:30", "7:30 PM"},
		{"garbage", "garbage"},
	}

	for _, tt := range tests {
		if got := FormatTimeDisplay(tt.in); got != tt.want {
			t.Errorf("FormatTimeDisplay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDayName(t *testing.T) {
	if got := DayName("2024-03-06"); got != "Wednesday" {
		t.Errorf("DayName(2024-03-06) = %q, want Wednesday", got)
	}
	if got := FormatDateDisplay("2024-03-06"); got != "March 6, 2024" {
		t.Errorf("FormatDateDisplay(2024-03-06) = %q, want March 6, 2024", got)
	}
}
