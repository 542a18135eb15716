package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"coachcal-service/api"
	"coachcal-service/pkg/response"
	"coachcal-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type BookingGetter interface {
	GetBooking(ctx context.Context, id string) (*api.BookingResponse, error)
	ListBookings(ctx context.Context, clientID *string, from, to *string, status *string) ([]*api.BookingResponse, error)
	UpcomingBookings(ctx context.Context, limit int) ([]*api.BookingResponse, error)
}

type Response struct {
	response.Response
	Bookings []api.BookingResponse `json:"bookings,omitempty"`
	Booking  *api.BookingResponse  `json:"booking,omitempty"`
}

func New(log *slog.Logger, getter BookingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if r.URL.Path == "/bookings/upcoming" {
			limit := 10
			if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
				if n, err := strconv.Atoi(limitStr); err == nil {
					limit = n
				}
			}

			bookings, err := getter.UpcomingBookings(r.Context(), limit)
			if err != nil {
				log.Error("Failed to list upcoming bookings", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list upcoming bookings"))
				return
			}

			log.Info("Upcoming bookings retrieved", slog.Int("count", len(bookings)))
			respondList(w, r, bookings)
			return
		}

		id := chi.URLParam(r, "id")

		if id != "" {
			booking, err := getter.GetBooking(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("resource not found")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get booking", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get booking"))
				return
			}

			log.Info("Booking retrieved", slog.Any("booking", booking))
			render.JSON(w, r, Response{
				Booking: booking,
			})
			return
		}

		// List
		clientID := r.URL.Query().Get("client_id")
		from := r.URL.Query().Get("from")
		to := r.URL.Query().Get("to")
		status := r.URL.Query().Get("status")

		var clientIDPtr, fromPtr, toPtr, statusPtr *string
		if clientID != "" {
			clientIDPtr = &clientID
		}
		if from != "" {
			fromPtr = &from
		}
		if to != "" {
			toPtr = &to
		}
		if status != "" {
			statusPtr = &status
		}

		bookings, err := getter.ListBookings(r.Context(), clientIDPtr, fromPtr, toPtr, statusPtr)

		if err != nil {
			log.Error("Failed to list bookings", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list bookings"))
			return
		}

		log.Info("Bookings retrieved", slog.Int("count", len(bookings)))
		respondList(w, r, bookings)
	}
}

func respondList(w http.ResponseWriter, r *http.Request, bookings []*api.BookingResponse) {
	bookingsResponse := make([]api.BookingResponse, len(bookings))
	for i, b := range bookings {
		bookingsResponse[i] = *b
	}
	render.JSON(w, r, Response{
		Bookings: bookingsResponse,
	})
}
