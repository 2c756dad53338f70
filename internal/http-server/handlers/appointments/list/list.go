package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"appointment-service/api"
	"appointment-service/pkg/response"
	"appointment-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type AppointmentLister interface {
	ListAppointments(ctx context.Context, doctorID string, from, to time.Time) ([]*api.AppointmentResponse, error)
}

type Response struct {
	response.Response
	Appointments []*api.AppointmentResponse `json:"appointments"`
}

// New handles GET /doctors/{doctor_id}/appointments?from=YYYY-MM-DD&to=YYYY-MM-DD.
// to is exclusive and defaults to a week after from.
func New(log *slog.Logger, lister AppointmentLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.appointments.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		doctorID := chi.URLParam(r, "doctor_id")

		from, err := time.Parse(api.DateLayout, r.URL.Query().Get("from"))
		if err != nil {
			log.Error("Invalid from", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.BAD_REQUEST, "from must be YYYY-MM-DD"))
			return
		}

		to := from.AddDate(0, 0, 7)
		if toStr := r.URL.Query().Get("to"); toStr != "" {
			to, err = time.Parse(api.DateLayout, toStr)
			if err != nil {
				log.Error("Invalid to", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(response.BAD_REQUEST, "to must be YYYY-MM-DD"))
				return
			}
		}

		appointments, err := lister.ListAppointments(r.Context(), doctorID, from, to)

		if errors.Is(err, response.ErrBadRequest) {
			log.Warn("Invalid range", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.BAD_REQUEST, "to must be after from"))
			return
		}

		if err != nil {
			log.Error("Failed to list appointments", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.FAILED_REQUEST, "failed to list appointments"))
			return
		}

		log.Info("Appointments retrieved", slog.Int("count", len(appointments)))

		render.JSON(w, r, Response{Appointments: appointments})
	}
}
