package status

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

type AppointmentStatusUpdater interface {
	UpdateAppointmentStatus(ctx context.Context, id string, status string) (*api.AppointmentResponse, error)
}

type Request struct {
	api.AppointmentStatusRequest
}

type Response struct {
	response.Response
	Appointment *api.AppointmentResponse `json:"appointment,omitempty"`
}

func New(log *slog.Logger, updater AppointmentStatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.appointments.status.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.BAD_REQUEST, "failed to decode request"))
			return
		}

		appointment, err := updater.UpdateAppointmentStatus(r.Context(), id, req.Status)

		if errors.Is(err, response.ErrBadRequest) {
			log.Warn("Unknown status", slog.String("status", req.Status))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.INVALID_STATUS, "unknown status"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Info("Appointment not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(response.NOT_FOUND, "resource not found"))
			return
		}

		if errors.Is(err, response.ErrInvalidStatus) {
			log.Warn("Status change rejected", sl.Err(err))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error(response.INVALID_STATUS, "status change not allowed"))
			return
		}

		if err != nil {
			log.Error("Failed to update appointment status", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.FAILED_REQUEST, "failed to update appointment status"))
			return
		}

		log.Info("Appointment status updated", slog.String("id", id), slog.String("status", appointment.Status))

		render.JSON(w, r, Response{Appointment: appointment})
	}
}
