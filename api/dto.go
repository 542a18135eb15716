package api

import "time"

type BookingRequest struct {
	CoachID      string `json:"coach_id"`
	ClientID     string `json:"client_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	CallType     string `json:"call_type"`
	IsRecurring  bool   `json:"is_recurring"`
	RecurringDay *int   `json:"recurring_day,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type BookingResponse struct {
	ID           string    `json:"id"`
	CoachID      string    `json:"coach_id"`
	ClientID     string    `json:"client_id"`
	ClientName   string    `json:"client_name"`
	ClientPhone  string    `json:"client_phone"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	CallType     string    `json:"call_type"`
	IsRecurring  bool      `json:"is_recurring"`
	RecurringDay *int      `json:"recurring_day,omitempty"`
	Status       string    `json:"status"`
	Duration     int       `json:"duration"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type BookingStatusRequest struct {
	Status string `json:"status"`
}

type TimeSlotResponse struct {
	Time     string           `json:"time"`
	Display  string           `json:"display"`
	IsBooked bool             `json:"is_booked"`
	Booking  *BookingResponse `json:"booking,omitempty"`
}

type DayScheduleResponse struct {
	Date        string             `json:"date"`
	DayName     string             `json:"day_name"`
	DisplayDate string             `json:"display_date"`
	Slots       []TimeSlotResponse `json:"slots"`
}

type ClientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	CoachID string `json:"coach_id"`
	Status  string `json:"status"`
}

type BookingStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Upcoming       int `json:"upcoming"`
	Cancelled      int `json:"cancelled"`
	CompletionRate int `json:"completion_rate"`
}

type ClientStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Inactive  int `json:"inactive"`
	Prospects int `json:"prospects"`
}

type StatsResponse struct {
	Bookings BookingStats `json:"bookings"`
	Clients  ClientStats  `json:"clients"`
}
