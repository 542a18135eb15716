package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"coachcal-service/internal/models"
	"coachcal-service/pkg/response"
)

const (
	collBookings = "bookings"
	collClients  = "clients"
)

type Storage struct {
	client *firestore.Client
}

func New(ctx context.Context, projectID, credentialsFile string) (*Storage, error) {
	const op = "storage.firestore.New"

	conf := &firebase.Config{ProjectID: projectID}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{client: client}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.client == nil {
		return nil
	}

	return s.client.Close()
}

// Document shapes mirror the field names in the live collections; the
// recurring flag pair is folded into the tagged model on the way out.

type bookingDoc struct {
	CoachID      string    `firestore:"coachId"`
	ClientID     string    `firestore:"clientId"`
	ClientName   string    `firestore:"clientName"`
	ClientPhone  string    `firestore:"clientPhone"`
	Date         string    `firestore:"date"`
	Time         string    `firestore:"time"`
	CallType     string    `firestore:"callType"`
	IsRecurring  bool      `firestore:"isRecurring"`
	RecurringDay int       `firestore:"recurringDay"`
	Status       string    `firestore:"status"`
	Duration     int       `firestore:"duration"`
	Notes        string    `firestore:"notes"`
	CreatedAt    time.Time `firestore:"createdAt"`
}

type clientDoc struct {
	Name      string    `firestore:"name"`
	Phone     string    `firestore:"phone"`
	Email     string    `firestore:"email"`
	CoachID   string    `firestore:"coachId"`
	Status    string    `firestore:"status"`
	Notes     string    `firestore:"notes"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func docFromBooking(b *models.Booking) bookingDoc {
	doc := bookingDoc{
		CoachID:      b.CoachID,
		ClientID:     b.ClientID,
		ClientName:   b.ClientName,
		ClientPhone:  b.ClientPhone,
		Date:         b.Date,
		Time:         b.Time,
		CallType:     string(b.CallType),
		RecurringDay: -1,
		Status:       string(b.Status),
		Duration:     b.Duration,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
	}

	if b.Recurring != nil {
		doc.IsRecurring = true
		doc.RecurringDay = int(b.Recurring.Weekday)
	}

	return doc
}

func bookingFromDoc(id string, doc bookingDoc) models.Booking {
	b := models.Booking{
		ID:          id,
		CoachID:     doc.CoachID,
		ClientID:    doc.ClientID,
		ClientName:  doc.ClientName,
		ClientPhone: doc.ClientPhone,
		Date:        doc.Date,
		Time:        doc.Time,
		CallType:    models.CallType(doc.CallType),
		Status:      models.BookingStatus(doc.Status),
		Duration:    doc.Duration,
		Notes:       doc.Notes,
		CreatedAt:   doc.CreatedAt,
	}

	if doc.IsRecurring && doc.RecurringDay >= 0 && doc.RecurringDay <= 6 {
		b.Recurring = &models.WeeklyRecurrence{Weekday: time.Weekday(doc.RecurringDay)}
	}

	return b
}

func clientFromDoc(id string, doc clientDoc) models.Client {
	return models.Client{
		ID:        id,
		Name:      doc.Name,
		Phone:     doc.Phone,
		Email:     doc.Email,
		CoachID:   doc.CoachID,
		Status:    models.ClientStatus(doc.Status),
		Notes:     doc.Notes,
		CreatedAt: doc.CreatedAt,
	}
}

// #### bookings ####

func (s *Storage) CreateBooking(ctx context.Context, booking *models.Booking) (string, error) {
	const op = "storage.firestore.CreateBooking"

	ref, _, err := s.client.Collection(collBookings).Add(ctx, docFromBooking(booking))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return ref.ID, nil
}

func (s *Storage) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	const op = "storage.firestore.GetBooking"

	snap, err := s.client.Collection(collBookings).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var doc bookingDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booking := bookingFromDoc(snap.Ref.ID, doc)
	return &booking, nil
}

// ListBookings returns the full collection in arrival order (createdAt).
func (s *Storage) ListBookings(ctx context.Context) ([]models.Booking, error) {
	const op = "storage.firestore.ListBookings"

	query := s.client.Collection(collBookings).OrderBy("createdAt", firestore.Asc)

	return s.queryBookings(ctx, op, query)
}

func (s *Storage) ListBookingsByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	const op = "storage.firestore.ListBookingsByClient"

	query := s.client.Collection(collBookings).
		Where("clientId", "==", clientID).
		OrderBy("date", firestore.Desc)

	return s.queryBookings(ctx, op, query)
}

func (s *Storage) ListBookingsByDateRange(ctx context.Context, from, to string) ([]models.Booking, error) {
	const op = "storage.firestore.ListBookingsByDateRange"

	query := s.client.Collection(collBookings).
		Where("date", ">=", from).
		Where("date", "<=", to).
		OrderBy("date", firestore.Asc)

	return s.queryBookings(ctx, op, query)
}

func (s *Storage) queryBookings(ctx context.Context, op string, query firestore.Query) ([]models.Booking, error) {
	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookings := make([]models.Booking, 0, len(snaps))
	for _, snap := range snaps {
		var doc bookingDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		bookings = append(bookings, bookingFromDoc(snap.Ref.ID, doc))
	}

	return bookings, nil
}

func (s *Storage) UpdateBookingStatus(ctx context.Context, id string, bookingStatus models.BookingStatus) error {
	const op = "storage.firestore.UpdateBookingStatus"

	ref := s.client.Collection(collBookings).Doc(id)

	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "status", Value: string(bookingStatus)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) DeleteBooking(ctx context.Context, id string) error {
	const op = "storage.firestore.DeleteBooking"

	ref := s.client.Collection(collBookings).Doc(id)

	// Delete is a no-op on a missing document; check existence so the
	// caller can report it.
	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SubscribeBookings delivers the full current collection on every change.
// The returned cancel function stops the listener and closes the channel.
func (s *Storage) SubscribeBookings(ctx context.Context) (<-chan []models.Booking, func(), error) {
	const op = "storage.firestore.SubscribeBookings"

	ctx, cancel := context.WithCancel(ctx)

	iter := s.client.Collection(collBookings).Snapshots(ctx)
	ch := make(chan []models.Booking, 1)

	go func() {
		defer close(ch)
		defer iter.Stop()

		for {
			snap, err := iter.Next()
			if err != nil {
				return
			}

			snaps, err := snap.Documents.GetAll()
			if err != nil {
				return
			}

			bookings := make([]models.Booking, 0, len(snaps))
			for _, docSnap := range snaps {
				var doc bookingDoc
				if err := docSnap.DataTo(&doc); err != nil {
					continue
				}
				bookings = append(bookings, bookingFromDoc(docSnap.Ref.ID, doc))
			}

			select {
			case ch <- bookings:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, cancel, nil
}

// #### clients ####

func (s *Storage) GetClient(ctx context.Context, id string) (*models.Client, error) {
	const op = "storage.firestore.GetClient"

	snap, err := s.client.Collection(collClients).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var doc clientDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := clientFromDoc(snap.Ref.ID, doc)
	return &client, nil
}

func (s *Storage) ListClients(ctx context.Context) ([]models.Client, error) {
	const op = "storage.firestore.ListClients"

	snaps, err := s.client.Collection(collClients).OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	clients := make([]models.Client, 0, len(snaps))
	for _, snap := range snaps {
		var doc clientDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		clients = append(clients, clientFromDoc(snap.Ref.ID, doc))
	}

	return clients, nil
}

// SeedClients bulk-writes roster entries, keeping any provided ids.
func (s *Storage) SeedClients(ctx context.Context, clients []models.Client) error {
	const op = "storage.firestore.SeedClients"

	bw := s.client.BulkWriter(ctx)

	jobs := make([]*firestore.BulkWriterJob, 0, len(clients))
	for _, c := range clients {
		doc := clientDoc{
			Name:      c.Name,
			Phone:     c.Phone,
			Email:     c.Email,
			CoachID:   c.CoachID,
			Status:    string(c.Status),
			Notes:     c.Notes,
			CreatedAt: c.CreatedAt,
		}

		ref := s.client.Collection(collClients).NewDoc()
		if c.ID != "" {
			ref = s.client.Collection(collClients).Doc(c.ID)
		}

		job, err := bw.Set(ref, doc)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		jobs = append(jobs, job)
	}

	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}
