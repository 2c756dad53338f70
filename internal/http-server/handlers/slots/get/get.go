package get

import (
	"context"
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

type SlotGetter interface {
	GetSlotsForDoctorOnDate(ctx context.Context, doctorID string, date time.Time) (*api.DaySlots, error)
	GetWeeklySlotsForDoctor(ctx context.Context, doctorID string) (map[string]*api.DaySlots, error)
}

type Response struct {
	response.Response
	Slots *api.DaySlots             `json:"slots,omitempty"`
	Week  map[string]*api.DaySlots `json:"week,omitempty"`
}

// New handles GET /doctors/{doctor_id}/slots. With ?date=YYYY-MM-DD it
// returns that day, without it the current Monday..Sunday week.
func New(log *slog.Logger, getter SlotGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.slots.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		doctorID := chi.URLParam(r, "doctor_id")
		if doctorID == "" {
			log.Error("doctor_id is empty")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.BAD_REQUEST, "doctor_id is required"))
			return
		}

		dateStr := r.URL.Query().Get("date")

		if dateStr == "" {
			week, err := getter.GetWeeklySlotsForDoctor(r.Context(), doctorID)
			if err != nil {
				log.Error("Failed to get weekly slots", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error(response.FAILED_REQUEST, "failed to get slots"))
				return
			}

			log.Info("Weekly slots retrieved", slog.String("doctor_id", doctorID))
			render.JSON(w, r, Response{Week: week})
			return
		}

		date, err := time.Parse(api.DateLayout, dateStr)
		if err != nil {
			log.Error("Invalid date", slog.String("date", dateStr), sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.BAD_REQUEST, "date must be YYYY-MM-DD"))
			return
		}

		day, err := getter.GetSlotsForDoctorOnDate(r.Context(), doctorID, date)
		if err != nil {
			log.Error("Failed to get slots", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.FAILED_REQUEST, "failed to get slots"))
			return
		}

		log.Info("Slots retrieved",
			slog.String("doctor_id", doctorID),
			slog.String("date", dateStr),
			slog.Int("available", len(day.Available)),
		)

		render.JSON(w, r, Response{Slots: day})
	}
}
