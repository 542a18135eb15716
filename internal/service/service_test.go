package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"coachcal-service/api"
	"coachcal-service/internal/directory"
	"coachcal-service/internal/models"
	"coachcal-service/internal/schedule"
	"coachcal-service/pkg/response"
)

type fakeStore struct {
	bookings []models.Booking
	nextID   int
}

func (f *fakeStore) CreateBooking(_ context.Context, b *models.Booking) (string, error) {
	f.nextID++
	stored := *b
	stored.ID = fmt.Sprintf("b%d", f.nextID)
	f.bookings = append(f.bookings, stored)
	return stored.ID, nil
}

func (f *fakeStore) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, response.ErrNotFound
}

func (f *fakeStore) ListBookings(context.Context) ([]models.Booking, error) {
	out := make([]models.Booking, len(f.bookings))
	copy(out, f.bookings)
	return out, nil
}

func (f *fakeStore) ListBookingsByClient(_ context.Context, clientID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ClientID == clientID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) ListBookingsByDateRange(_ context.Context, from, to string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Date >= from && b.Date <= to {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateBookingStatus(_ context.Context, id string, status models.BookingStatus) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
			return nil
		}
	}
	return response.ErrNotFound
}

func (f *fakeStore) DeleteBooking(_ context.Context, id string) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return response.ErrNotFound
}

func (f *fakeStore) SubscribeBookings(context.Context) (<-chan []models.Booking, func(), error) {
	ch := make(chan []models.Booking, 1)
	ch <- append([]models.Booking(nil), f.bookings...)
	close(ch)
	return ch, func() {}, nil
}

type fakeLocker struct {
	denied bool
	locks  int
}

func (f *fakeLocker) Lock(context.Context, string, time.Duration) (bool, error) {
	if f.denied {
		return false, nil
	}
	f.locks++
	return true, nil
}

func (f *fakeLocker) Unlock(context.Context, string) error { return nil }

func newTestService(store *fakeStore, locker *fakeLocker) *Service {
	dir := directory.New([]models.Client{
		{ID: "c1", Name: "Sarah Johnson", Phone: "+1-555-0101", CoachID: "coach1", Status: models.ClientActive},
		{ID: "c2", Name: "Michael Chen", Phone: "+1-555-0102", CoachID: "coach1", Status: models.ClientProspect},
	})
	return NewService(store, dir, locker)
}

func validRequest() *api.BookingRequest {
	return &api.BookingRequest{
		CoachID:  "coach1",
		ClientID: "c1",
		Date:     "2024-03-01",
		Time:     "11:10",
		CallType: "onboarding",
	}
}

func TestCreateBooking(t *testing.T) {
	store := &fakeStore{}
	locker := &fakeLocker{}
	svc := newTestService(store, locker)

	booking, err := svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.ID == "" {
		t.Errorf("booking has no assigned id")
	}
	if booking.ClientName != "Sarah Johnson" || booking.ClientPhone != "+1-555-0101" {
		t.Errorf("client reference not denormalized from the roster: %+v", booking)
	}
	if booking.Status != string(models.BookingScheduled) {
		t.Errorf("status = %q, want scheduled", booking.Status)
	}
	if booking.Duration != models.DefaultDurationMinutes {
		t.Errorf("duration = %d, want %d", booking.Duration, models.DefaultDurationMinutes)
	}
	if booking.CreatedAt.IsZero() {
		t.Errorf("createdAt not set")
	}
	if locker.locks != 1 {
		t.Errorf("slot lock taken %d times, want 1", locker.locks)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeLocker{})

	tests := []struct {
		name    string
		mutate  func(*api.BookingRequest)
		wantErr error
	}{
		{"malformed date", func(r *api.BookingRequest) { r.Date = "03/01/2024" }, response.ErrValidation},
		{"off-grid time", func(r *api.BookingRequest) { r.Time = "11:00" }, response.ErrValidation},
		{"unknown call type", func(r *api.BookingRequest) { r.CallType = "therapy" }, response.ErrValidation},
		{"unknown client", func(r *api.BookingRequest) { r.ClientID = "c99" }, response.ErrNotFound},
		{"recurring day out of range", func(r *api.BookingRequest) {
			r.IsRecurring = true
			day := 7
			r.RecurringDay = &day
		}, response.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := svc.CreateBooking(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateBookingDuplicateRefused(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeLocker{})

	if _, err := svc.CreateBooking(context.Background(), validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.CreateBooking(context.Background(), validRequest())
	if !errors.Is(err, response.ErrDuplicateBooking) {
		t.Fatalf("got %v, want ErrDuplicateBooking", err)
	}
	if len(store.bookings) != 1 {
		t.Errorf("refused write still persisted: %d bookings", len(store.bookings))
	}

	// Same client, different slot is fine.
	other := validRequest()
	other.Time = "11:30"
	if _, err := svc.CreateBooking(context.Background(), other); err != nil {
		t.Errorf("unexpected error for a free slot: %v", err)
	}
}

func TestCreateBookingRecurringConflictRefused(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeLocker{})

	first := validRequest()
	first.Date = "2024-03-04" // Monday
	first.Time = "10:30"
	first.CallType = "follow-up"
	first.IsRecurring = true

	if _, err := svc.CreateBooking(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A second Monday 10:30 series for the same client, anchored a week
	// earlier: the existing anchor falls inside the new series' forward
	// horizon, so creation is refused.
	second := validRequest()
	second.Date = "2024-02-26" // Monday, one week before the first anchor
	second.Time = "10:30"
	second.CallType = "follow-up"
	second.IsRecurring = true

	_, err := svc.CreateBooking(context.Background(), second)
	if !errors.Is(err, response.ErrRecurringConflict) {
		t.Fatalf("got %v, want ErrRecurringConflict", err)
	}

	// The duplicate check fires first for an identical anchor slot.
	_, err = svc.CreateBooking(context.Background(), first)
	if !errors.Is(err, response.ErrDuplicateBooking) {
		t.Errorf("got %v, want ErrDuplicateBooking for identical triple", err)
	}
}

func TestCreateBookingLocked(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeLocker{denied: true})

	_, err := svc.CreateBooking(context.Background(), validRequest())
	if !errors.Is(err, response.ErrLocked) {
		t.Fatalf("got %v, want ErrLocked", err)
	}
}

func TestGetDaySchedule(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeLocker{})

	if _, err := svc.CreateBooking(context.Background(), validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	day, err := svc.GetDaySchedule(context.Background(), "2024-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if day.DayName != "Friday" {
		t.Errorf("day name = %q, want Friday", day.DayName)
	}
	if len(day.Slots) != schedule.SlotsPerDay {
		t.Fatalf("got %d slots, want %d", len(day.Slots), schedule.SlotsPerDay)
	}

	booked := 0
	for _, slot := range day.Slots {
		if slot.IsBooked {
			booked++
			if slot.Time != "11:10" || slot.Booking == nil {
				t.Errorf("unexpected booked slot %+v", slot)
			}
		}
	}
	if booked != 1 {
		t.Errorf("%d slots booked, want 1", booked)
	}

	if _, err := svc.GetDaySchedule(context.Background(), "tomorrow"); !errors.Is(err, response.ErrValidation) {
		t.Errorf("got %v, want ErrValidation for malformed date", err)
	}
}

func TestWatchDaySchedule(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeLocker{})

	if _, err := svc.CreateBooking(context.Background(), validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ch, cancel, err := svc.WatchDaySchedule(context.Background(), "2024-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cancel()

	day, ok := <-ch
	if !ok {
		t.Fatalf("channel closed before first notification")
	}
	if day.Date != "2024-03-01" || len(day.Slots) != schedule.SlotsPerDay {
		t.Errorf("unexpected projection %+v", day)
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeLocker{})

	created, err := svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateBookingStatus(context.Background(), created.ID, "completed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != "completed" {
		t.Errorf("status = %q, want completed", updated.Status)
	}

	if _, err := svc.UpdateBookingStatus(context.Background(), created.ID, "rescheduled"); !errors.Is(err, response.ErrValidation) {
		t.Errorf("got %v, want ErrValidation for unknown status", err)
	}

	if _, err := svc.UpdateBookingStatus(context.Background(), "missing", "completed"); !errors.Is(err, response.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteBooking(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeLocker{})

	created, err := svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteBooking(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.bookings) != 0 {
		t.Errorf("booking still present after delete")
	}

	if err := svc.DeleteBooking(context.Background(), created.ID); !errors.Is(err, response.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound on second delete", err)
	}
}

func TestDuplicateReport(t *testing.T) {
	// Seed the store directly: the write path refuses duplicates, the
	// report exists to surface ones that slipped in upstream.
	store := &fakeStore{
		bookings: []models.Booking{
			{ID: "b1", ClientID: "c1", Date: "2024-03-01", Time: "11:10", Status: models.BookingScheduled},
			{ID: "b2", ClientID: "c1", Date: "2024-03-01", Time: "11:10", Status: models.BookingScheduled},
			{ID: "b3", ClientID: "c2", Date: "2024-03-01", Time: "11:10", Status: models.BookingScheduled},
		},
	}
	svc := newTestService(store, &fakeLocker{})

	report, err := svc.DuplicateReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("got %d entries, want both members of the duplicate pair", len(report))
	}
	for _, b := range report {
		if b.ClientID != "c1" {
			t.Errorf("booking %s in report, want only the c1 pair", b.ID)
		}
	}
}

func TestStats(t *testing.T) {
	store := &fakeStore{
		bookings: []models.Booking{
			{ID: "b1", Status: models.BookingCompleted},
			{ID: "b2", Status: models.BookingCompleted},
			{ID: "b3", Status: models.BookingScheduled},
			{ID: "b4", Status: models.BookingCancelled},
		},
	}
	svc := newTestService(store, &fakeLocker{})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Bookings.Total != 4 || stats.Bookings.Completed != 2 ||
		stats.Bookings.Upcoming != 1 || stats.Bookings.Cancelled != 1 {
		t.Errorf("booking stats = %+v", stats.Bookings)
	}
	if stats.Bookings.CompletionRate != 50 {
		t.Errorf("completion rate = %d, want 50", stats.Bookings.CompletionRate)
	}
	if stats.Clients.Total != 2 || stats.Clients.Active != 1 || stats.Clients.Prospects != 1 {
		t.Errorf("client stats = %+v", stats.Clients)
	}
}

func TestSearchClients(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeLocker{})

	clients, err := svc.SearchClients(context.Background(), "sarah")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 1 || clients[0].ID != "c1" {
		t.Errorf("got %+v, want only Sarah Johnson", clients)
	}
}
