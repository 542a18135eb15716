package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"coachcal-service/api"
	"coachcal-service/pkg/response"
	"coachcal-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ScheduleWatcher interface {
	WatchDaySchedule(ctx context.Context, date string) (<-chan *api.DayScheduleResponse, func(), error)
}

// New streams the composed day schedule as server-sent events, one event
// per store notification.
func New(log *slog.Logger, watcher ScheduleWatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.stream.New"

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

		flusher, ok := w.(http.Flusher)
		if !ok {
			log.Error("response writer does not support streaming")
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "streaming unsupported"))
			return
		}

		updates, cancel, err := watcher.WatchDaySchedule(r.Context(), date)

		if errors.Is(err, response.ErrValidation) {
			log.Error("invalid date", slog.String("date", date))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "date must be YYYY-MM-DD"))
			return
		}

		if err != nil {
			log.Error("Failed to subscribe", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to subscribe"))
			return
		}
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		log.Info("Schedule stream opened", slog.String("date", date))

		for {
			select {
			case <-r.Context().Done():
				log.Info("Schedule stream closed by client", slog.String("date", date))
				return
			case schedule, ok := <-updates:
				if !ok {
					log.Info("Schedule stream ended", slog.String("date", date))
					return
				}

				payload, err := json.Marshal(schedule)
				if err != nil {
					log.Error("Failed to encode schedule event", sl.Err(err))
					return
				}

				if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
