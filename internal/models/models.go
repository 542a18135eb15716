package models

import "time"

type CallType string

const (
	CallOnboarding   CallType = "onboarding"
	CallFollowUp     CallType = "follow-up"
	CallConsultation CallType = "consultation"
	CallAssessment   CallType = "assessment"
)

func (c CallType) Valid() bool {
	switch c {
	case CallOnboarding, CallFollowUp, CallConsultation, CallAssessment:
		return true
	}
	return false
}

type BookingStatus string

const (
	BookingScheduled BookingStatus = "scheduled"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no-show"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingScheduled, BookingCompleted, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientProspect ClientStatus = "prospect"
)

// DefaultDurationMinutes is the length of every coaching call.
const DefaultDurationMinutes = 60

// WeeklyRecurrence marks a booking that repeats every week on Weekday.
// A booking with a nil *WeeklyRecurrence occupies a single calendar date;
// a non-nil one uses its Date only as the series anchor.
type WeeklyRecurrence struct {
	Weekday time.Weekday
}

type Booking struct {
	ID          string
	CoachID     string
	ClientID    string
	ClientName  string
	ClientPhone string
	Date        string // YYYY-MM-DD; anchor date when Recurring is set
	Time        string // HH:MM, always one of the grid slots
	CallType    CallType
	Recurring   *WeeklyRecurrence
	Status      BookingStatus
	Duration    int
	Notes       string
	CreatedAt   time.Time
}

// IsRecurring reports whether the booking repeats weekly.
func (b Booking) IsRecurring() bool {
	return b.Recurring != nil
}

type Client struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CoachID   string
	Status    ClientStatus
	Notes     string
	CreatedAt time.Time
}

// TimeSlot is a derived value, recomputed on every reconciliation.
type TimeSlot struct {
	Time     string
	IsBooked bool
	Booking  *Booking
}

// DaySchedule is the composed view of one calendar day, slots in
// chronological order.
type DaySchedule struct {
	Date  string
	Slots []TimeSlot
}
