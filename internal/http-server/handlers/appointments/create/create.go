package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"appointment-service/api"
	"appointment-service/pkg/response"
	"appointment-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type AppointmentBooker interface {
	BookAppointment(ctx context.Context, req *api.AppointmentRequest) (*api.AppointmentResponse, error)
}

type Request struct {
	api.AppointmentRequest
}

type Response struct {
	response.Response
	Appointment *api.AppointmentResponse `json:"appointment,omitempty"`
}

func New(log *slog.Logger, booker AppointmentBooker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.appointments.create.New"

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

		log.Info("Request body decoded", slog.Any("request", req))

		if req.DoctorID == "" {
			log.Error("doctor_id is empty")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.BAD_REQUEST, "doctor_id is required"))
			return
		}

		if req.PatientID == "" {
			log.Error("patient_id is empty")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.BAD_REQUEST, "patient_id is required"))
			return
		}

		appointment, err := booker.BookAppointment(r.Context(), &req.AppointmentRequest)
		if err != nil {
			writeBookingError(log, w, r, err, "failed to book appointment")
			return
		}

		log.Info("Appointment booked", slog.String("id", appointment.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{Appointment: appointment})
	}
}

func writeBookingError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, response.ErrBadRequest):
		log.Warn("Invalid booking request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.BAD_REQUEST, err.Error()))
	case errors.Is(err, response.ErrLocked):
		log.Warn("Slot is locked by another request", sl.Err(err))
		render.Status(r, http.StatusLocked)
		render.JSON(w, r, response.Error(response.LOCKED, "slot is being booked, retry"))
	case errors.Is(err, response.ErrSlotNotAvailable):
		log.Warn("Slot is not available", sl.Err(err))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(response.SLOT_NOT_AVAILABLE, "slot is not available"))
	case errors.Is(err, response.ErrConflict):
		log.Warn("Slot already booked", sl.Err(err))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(response.CONFLICT, "slot already booked"))
	default:
		log.Error("Failed to book appointment", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.FAILED_REQUEST, msg))
	}
}
