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

type ClientGetter interface {
	GetClient(ctx context.Context, id string) (*api.ClientResponse, error)
	SearchClients(ctx context.Context, q string) ([]*api.ClientResponse, error)
}

type Response struct {
	response.Response
	Clients []api.ClientResponse `json:"clients,omitempty"`
	Client  *api.ClientResponse  `json:"client,omitempty"`
}

func New(log *slog.Logger, getter ClientGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.clients.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		if id != "" {
			client, err := getter.GetClient(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("resource not found")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get client", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get client"))
				return
			}

			log.Info("Client retrieved", slog.String("id", id))
			render.JSON(w, r, Response{
				Client: client,
			})
			return
		}

		// List, optionally filtered by a name/phone substring.
		q := r.URL.Query().Get("q")

		clients, err := getter.SearchClients(r.Context(), q)
		if err != nil {
			log.Error("Failed to search clients", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to search clients"))
			return
		}

		log.Info("Clients retrieved", slog.Int("count", len(clients)))
		clientsResponse := make([]api.ClientResponse, len(clients))
		for i, c := range clients {
			clientsResponse[i] = *c
		}
		render.JSON(w, r, Response{
			Clients: clientsResponse,
		})
	}
}
