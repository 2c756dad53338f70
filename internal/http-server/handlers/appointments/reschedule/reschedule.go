package reschedule

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

type AppointmentRescheduler interface {
	RescheduleAppointment(ctx context.Context, id string, scheduledAt string) (*api.AppointmentResponse, error)
}

type Request struct {
	api.AppointmentRescheduleRequest
}

type Response struct {
	response.Response
	Appointment *api.AppointmentResponse `json:"appointment,omitempty"`
}

func New(log *slog.Logger, rescheduler AppointmentRescheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.appointments.reschedule.New"

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

		if req.ScheduledAt == "" {
			log.Error("scheduled_at is empty")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.BAD_REQUEST, "scheduled_at is required"))
			return
		}

		appointment, err := rescheduler.RescheduleAppointment(r.Context(), id, req.ScheduledAt)

		switch {
		case err == nil:
		case errors.Is(err, response.ErrBadRequest):
			log.Warn("Invalid reschedule request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.BAD_REQUEST, err.Error()))
			return
		case errors.Is(err, response.ErrNotFound):
			log.Info("Appointment not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(response.NOT_FOUND, "resource not found"))
			return
		case errors.Is(err, response.ErrInvalidStatus):
			log.Warn("Appointment cannot be rescheduled", sl.Err(err))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error(response.INVALID_STATUS, "appointment cannot be rescheduled"))
			return
		case errors.Is(err, response.ErrLocked):
			log.Warn("Slot is locked by another request", sl.Err(err))
			render.Status(r, http.StatusLocked)
			render.JSON(w, r, response.Error(response.LOCKED, "slot is being booked, retry"))
			return
		case errors.Is(err, response.ErrSlotNotAvailable):
			log.Warn("Slot is not available", sl.Err(err))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error(response.SLOT_NOT_AVAILABLE, "slot is not available"))
			return
		case errors.Is(err, response.ErrConflict):
			log.Warn("Slot already booked", sl.Err(err))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error(response.CONFLICT, "slot already booked"))
			return
		default:
			log.Error("Failed to reschedule appointment", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.FAILED_REQUEST, "failed to reschedule appointment"))
			return
		}

		log.Info("Appointment rescheduled", slog.String("id", id), slog.String("scheduled_at", appointment.ScheduledAt))

		render.JSON(w, r, Response{Appointment: appointment})
	}
}
