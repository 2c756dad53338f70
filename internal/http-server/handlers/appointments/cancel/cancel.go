package cancel

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

type AppointmentCanceler interface {
	CancelAppointment(ctx context.Context, id string) (*api.AppointmentResponse, error)
}

type Response struct {
	response.Response
	Appointment *api.AppointmentResponse `json:"appointment,omitempty"`
}

func New(log *slog.Logger, canceler AppointmentCanceler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.appointments.cancel.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		appointment, err := canceler.CancelAppointment(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Info("Appointment not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(response.NOT_FOUND, "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to cancel appointment", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.FAILED_REQUEST, "failed to cancel appointment"))
			return
		}

		log.Info("Appointment canceled", slog.String("id", id))

		render.JSON(w, r, Response{Appointment: appointment})
	}
}
