package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"coachcal-service/api"
	"coachcal-service/pkg/response"
	"coachcal-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ScheduleGetter interface {
	GetDaySchedule(ctx context.Context, date string) (*api.DayScheduleResponse, error)
}

type Response struct {
	response.Response
	Schedule *api.DayScheduleResponse `json:"schedule,omitempty"`
}

func New(log *slog.Logger, getter ScheduleGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		date := chi.URLParam(r, "date")
		if date == "" {
			log.Error("date is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "date is required"))
			return
		}

		schedule, err := getter.GetDaySchedule(r.Context(), date)

		if errors.Is(err, response.ErrValidation) {
			log.Error("invalid date", slog.String("date", date))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "date must be YYYY-MM-DD"))
			return
		}

		if err != nil {
			log.Error("Failed to compose day schedule", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to compose day schedule"))
			return
		}

		log.Info("Schedule composed", slog.String("date", date))
		render.JSON(w, r, Response{
			Schedule: schedule,
		})
	}
}
