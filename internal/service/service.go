package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"coachcal-service/api"
	"coachcal-service/internal/lock"
	"coachcal-service/internal/models"
	"coachcal-service/internal/schedule"
	"coachcal-service/pkg/response"
)

type Service struct {
	store     Store
	directory ClientDirectory
	locker    lock.Locker
}

func NewService(store Store, dir ClientDirectory, locker lock.Locker) *Service {
	return &Service{store: store, directory: dir, locker: locker}
}

type Store interface {
	// Bookings
	CreateBooking(ctx context.Context, booking *models.Booking) (string, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListBookingsByClient(ctx context.Context, clientID string) ([]models.Booking, error)
	ListBookingsByDateRange(ctx context.Context, from, to string) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error
	DeleteBooking(ctx context.Context, id string) error
	SubscribeBookings(ctx context.Context) (<-chan []models.Booking, func(), error)
}

type ClientDirectory interface {
	Get(id string) (*models.Client, error)
	List() []models.Client
	Search(q string) []models.Client
}

// #### schedule ####

func (s *Service) GetDaySchedule(ctx context.Context, date string) (*api.DayScheduleResponse, error) {
	const op = "service.GetDaySchedule"

	if _, err := schedule.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%s: invalid date: %w", op, response.ErrValidation)
	}

	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	day := schedule.ComposeDay(date, bookings)
	return dayScheduleToResponse(day), nil
}

// WatchDaySchedule recomposes the day from scratch on every store
// notification. The returned cancel function ends the subscription and
// closes the channel.
func (s *Service) WatchDaySchedule(ctx context.Context, date string) (<-chan *api.DayScheduleResponse, func(), error) {
	const op = "service.WatchDaySchedule"

	if _, err := schedule.ParseDate(date); err != nil {
		return nil, nil, fmt.Errorf("%s: invalid date: %w", op, response.ErrValidation)
	}

	notifications, cancel, err := s.store.SubscribeBookings(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make(chan *api.DayScheduleResponse, 1)
	go func() {
		defer close(out)
		for bookings := range notifications {
			day := schedule.ComposeDay(date, bookings)
			select {
			case out <- dayScheduleToResponse(day):
			case <-ctx.Done():
				cancel()
				return
			}
		}
	}()

	return out, cancel, nil
}

// #### bookings ####

func (s *Service) CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error) {
	const op = "service.CreateBooking"

	if _, err := schedule.ParseDate(req.Date); err != nil {
		return nil, fmt.Errorf("%s: invalid date: %w", op, response.ErrValidation)
	}

	if !schedule.IsGridSlot(req.Time) {
		return nil, fmt.Errorf("%s: time is not a bookable slot: %w", op, response.ErrValidation)
	}

	callType := models.CallType(req.CallType)
	if !callType.Valid() {
		return nil, fmt.Errorf("%s: unknown call type: %w", op, response.ErrValidation)
	}

	client, err := s.directory.Get(req.ClientID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var recurring *models.WeeklyRecurrence
	if req.IsRecurring {
		// The series weekday defaults to the weekday of the chosen date.
		day, err := schedule.Weekday(req.Date)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if req.RecurringDay != nil {
			if *req.RecurringDay < 0 || *req.RecurringDay > 6 {
				return nil, fmt.Errorf("%s: recurring day out of range: %w", op, response.ErrValidation)
			}
			day = time.Weekday(*req.RecurringDay)
		}
		recurring = &models.WeeklyRecurrence{Weekday: day}
	}

	lockKey := fmt.Sprintf("slot:%s:%s", req.Date, req.Time)

	locked, err := s.locker.Lock(ctx, lockKey, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if matches := schedule.SameClientSameSlot(req.ClientID, req.Date, req.Time, bookings); len(matches) > 0 {
		return nil, fmt.Errorf("%s: %w", op, response.ErrDuplicateBooking)
	}

	if recurring != nil {
		if matches := schedule.RecurringConflicts(req.ClientID, recurring.Weekday, req.Time, req.Date, bookings); len(matches) > 0 {
			return nil, fmt.Errorf("%s: %w", op, response.ErrRecurringConflict)
		}
	}

	booking := &models.Booking{
		CoachID:     req.CoachID,
		ClientID:    client.ID,
		ClientName:  client.Name,
		ClientPhone: client.Phone,
		Date:        req.Date,
		Time:        req.Time,
		CallType:    callType,
		Recurring:   recurring,
		Status:      models.BookingScheduled,
		Duration:    models.DefaultDurationMinutes,
		Notes:       req.Notes,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.store.CreateBooking(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("%s: create booking: %w", op, err)
	}

	return s.GetBooking(ctx, id)
}

func (s *Service) GetBooking(ctx context.Context, id string) (*api.BookingResponse, error) {
	const op = "service.GetBooking"

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := bookingToResponse(*booking)
	return &resp, nil
}

func (s *Service) ListBookings(ctx context.Context, clientID *string, from, to *string, status *string) ([]*api.BookingResponse, error) {
	const op = "service.ListBookings"

	var (
		bookings []models.Booking
		err      error
	)

	switch {
	case clientID != nil:
		bookings, err = s.store.ListBookingsByClient(ctx, *clientID)
	case from != nil && to != nil:
		bookings, err = s.store.ListBookingsByDateRange(ctx, *from, *to)
	default:
		bookings, err = s.store.ListBookings(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		if status != nil && string(b.Status) != *status {
			continue
		}
		resp := bookingToResponse(b)
		result = append(result, &resp)
	}

	return result, nil
}

// UpcomingBookings returns scheduled bookings from today forward, ordered
// by date then time, capped at limit.
func (s *Service) UpcomingBookings(ctx context.Context, limit int) ([]*api.BookingResponse, error) {
	const op = "service.UpcomingBookings"

	if limit <= 0 {
		limit = 10
	}

	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	today := time.Now().Format(schedule.DateLayout)

	upcoming := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == models.BookingScheduled && b.Date >= today {
			upcoming = append(upcoming, b)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].Date != upcoming[j].Date {
			return upcoming[i].Date < upcoming[j].Date
		}
		return upcoming[i].Time < upcoming[j].Time
	})

	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}

	result := make([]*api.BookingResponse, 0, len(upcoming))
	for _, b := range upcoming {
		resp := bookingToResponse(b)
		result = append(result, &resp)
	}

	return result, nil
}

func (s *Service) UpdateBookingStatus(ctx context.Context, id string, status string) (*api.BookingResponse, error) {
	const op = "service.UpdateBookingStatus"

	bookingStatus := models.BookingStatus(status)
	if !bookingStatus.Valid() {
		return nil, fmt.Errorf("%s: unknown status: %w", op, response.ErrValidation)
	}

	err := s.store.UpdateBookingStatus(ctx, id, bookingStatus)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetBooking(ctx, id)
}

func (s *Service) DeleteBooking(ctx context.Context, id string) error {
	const op = "service.DeleteBooking"

	err := s.store.DeleteBooking(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DuplicateReport lists every booking sharing (client, date, time) with
// another one. A read-time integrity report; nothing is blocked or fixed.
func (s *Service) DuplicateReport(ctx context.Context) ([]*api.BookingResponse, error) {
	const op = "service.DuplicateReport"

	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	duplicates := schedule.FindDuplicates(bookings)

	result := make([]*api.BookingResponse, 0, len(duplicates))
	for _, b := range duplicates {
		resp := bookingToResponse(b)
		result = append(result, &resp)
	}

	return result, nil
}

// #### clients ####

func (s *Service) GetClient(ctx context.Context, id string) (*api.ClientResponse, error) {
	const op = "service.GetClient"

	client, err := s.directory.Get(id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := clientToResponse(*client)
	return &resp, nil
}

func (s *Service) SearchClients(ctx context.Context, q string) ([]*api.ClientResponse, error) {
	clients := s.directory.Search(q)

	result := make([]*api.ClientResponse, 0, len(clients))
	for _, c := range clients {
		resp := clientToResponse(c)
		result = append(result, &resp)
	}

	return result, nil
}

// #### stats ####

func (s *Service) Stats(ctx context.Context) (*api.StatsResponse, error) {
	const op = "service.Stats"

	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var stats api.StatsResponse
	stats.Bookings.Total = len(bookings)
	for _, b := range bookings {
		switch b.Status {
		case models.BookingCompleted:
			stats.Bookings.Completed++
		case models.BookingScheduled:
			stats.Bookings.Upcoming++
		case models.BookingCancelled:
			stats.Bookings.Cancelled++
		}
	}
	if stats.Bookings.Total > 0 {
		stats.Bookings.CompletionRate = 100 * stats.Bookings.Completed / stats.Bookings.Total
	}

	clients := s.directory.List()
	stats.Clients.Total = len(clients)
	for _, c := range clients {
		switch c.Status {
		case models.ClientActive:
			stats.Clients.Active++
		case models.ClientInactive:
			stats.Clients.Inactive++
		case models.ClientProspect:
			stats.Clients.Prospects++
		}
	}

	return &stats, nil
}

// #### conversions ####

func bookingToResponse(b models.Booking) api.BookingResponse {
	resp := api.BookingResponse{
		ID:          b.ID,
		CoachID:     b.CoachID,
		ClientID:    b.ClientID,
		ClientName:  b.ClientName,
		ClientPhone: b.ClientPhone,
		Date:        b.Date,
		Time:        b.Time,
		CallType:    string(b.CallType),
		Status:      string(b.Status),
		Duration:    b.Duration,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
	}

	if b.Recurring != nil {
		resp.IsRecurring = true
		day := int(b.Recurring.Weekday)
		resp.RecurringDay = &day
	}

	return resp
}

func clientToResponse(c models.Client) api.ClientResponse {
	return api.ClientResponse{
		ID:      c.ID,
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		CoachID: c.CoachID,
		Status:  string(c.Status),
	}
}

func dayScheduleToResponse(day models.DaySchedule) *api.DayScheduleResponse {
	resp := &api.DayScheduleResponse{
		Date:        day.Date,
		DayName:     schedule.DayName(day.Date),
		DisplayDate: schedule.FormatDateDisplay(day.Date),
		Slots:       make([]api.TimeSlotResponse, 0, len(day.Slots)),
	}

	for _, slot := range day.Slots {
		slotResp := api.TimeSlotResponse{
			Time:     slot.Time,
			Display:  schedule.FormatTimeDisplay(slot.Time),
			IsBooked: slot.IsBooked,
		}
		if slot.Booking != nil {
			b := bookingToResponse(*slot.Booking)
			slotResp.Booking = &b
		}
		resp.Slots = append(resp.Slots, slotResp)
	}

	return resp
}
