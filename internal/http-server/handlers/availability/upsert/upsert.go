package upsert

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"appointment-service/api"
	"appointment-service/internal/slots"
	"appointment-service/pkg/response"
	"appointment-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type AvailabilityRuleUpserter interface {
	UpsertAvailabilityRule(ctx context.Context, req *api.AvailabilityRuleRequest) (*api.AvailabilityRuleResponse, error)
}

type Request struct {
	api.AvailabilityRuleRequest
}

type Response struct {
	response.Response
	Rule *api.AvailabilityRuleResponse `json:"rule,omitempty"`
}

// New handles PUT /doctors/{doctor_id}/availability. The doctor in the path
// wins over any doctor_id in the body.
func New(log *slog.Logger, upserter AvailabilityRuleUpserter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.upsert.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.BAD_REQUEST, "failed to decode request"))
			return
		}

		req.DoctorID = chi.URLParam(r, "doctor_id")

		log.Info("Request body decoded", slog.Any("request", req))

		rule, err := upserter.UpsertAvailabilityRule(r.Context(), &req.AvailabilityRuleRequest)

		if errors.Is(err, slots.ErrInvalidRule) {
			log.Warn("Availability rule rejected", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.INVALID_RULE, err.Error()))
			return
		}

		if errors.Is(err, response.ErrBadRequest) {
			log.Warn("Availability rule rejected by storage", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.INVALID_RULE, "availability rule violates a storage constraint"))
			return
		}

		if err != nil {
			log.Error("Failed to upsert availability rule", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.FAILED_REQUEST, "failed to save availability rule"))
			return
		}

		log.Info("Availability rule saved", slog.String("id", rule.ID))

		render.JSON(w, r, Response{Rule: rule})
	}
}
