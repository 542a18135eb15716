package get

import (
	"context"
	"log/slog"
	"net/http"

	"coachcal-service/api"
	"coachcal-service/pkg/response"
	"coachcal-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type DuplicateReporter interface {
	DuplicateReport(ctx context.Context) ([]*api.BookingResponse, error)
}

type Response struct {
	response.Response
	Duplicates []api.BookingResponse `json:"duplicates"`
	Count      int                   `json:"count"`
}

func New(log *slog.Logger, reporter DuplicateReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.integrity.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		duplicates, err := reporter.DuplicateReport(r.Context())
		if err != nil {
			log.Error("Failed to build duplicate report", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to build duplicate report"))
			return
		}

		log.Info("Duplicate report built", slog.Int("count", len(duplicates)))

		duplicatesResponse := make([]api.BookingResponse, len(duplicates))
		for i, b := range duplicates {
			duplicatesResponse[i] = *b
		}
		render.JSON(w, r, Response{
			Duplicates: duplicatesResponse,
			Count:      len(duplicatesResponse),
		})
	}
}
