package list

import (
	"context"
	"log/slog"
	"net/http"

	"appointment-service/api"
	"appointment-service/pkg/response"
	"appointment-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type AvailabilityRuleLister interface {
	ListAvailabilityRules(ctx context.Context, doctorID string) ([]*api.AvailabilityRuleResponse, error)
}

type Response struct {
	response.Response
	Rules []*api.AvailabilityRuleResponse `json:"rules"`
}

func New(log *slog.Logger, lister AvailabilityRuleLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		doctorID := chi.URLParam(r, "doctor_id")

		rules, err := lister.ListAvailabilityRules(r.Context(), doctorID)
		if err != nil {
			log.Error("Failed to list availability rules", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.FAILED_REQUEST, "failed to list availability rules"))
			return
		}

		log.Info("Availability rules retrieved", slog.String("doctor_id", doctorID), slog.Int("count", len(rules)))

		render.JSON(w, r, Response{Rules: rules})
	}
}
