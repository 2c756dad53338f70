package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"appointment-service/api"
	"appointment-service/pkg/response"
	"appointment-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type AvailabilityRuleGetter interface {
	GetAvailabilityRule(ctx context.Context, id string) (*api.AvailabilityRuleResponse, error)
}

type Response struct {
	response.Response
	Rule *api.AvailabilityRuleResponse `json:"rule,omitempty"`
}

func New(log *slog.Logger, getter AvailabilityRuleGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("id is empty")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.BAD_REQUEST, "id is required"))
			return
		}

		rule, err := getter.GetAvailabilityRule(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Info("Availability rule not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(response.NOT_FOUND, "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to get availability rule", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.FAILED_REQUEST, "failed to get availability rule"))
			return
		}

		render.JSON(w, r, Response{Rule: rule})
	}
}
