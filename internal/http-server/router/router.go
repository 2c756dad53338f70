package router

import (
	"log/slog"
	"net/http"

	appointmentCancel "appointment-service/internal/http-server/handlers/appointments/cancel"
	appointmentCreate "appointment-service/internal/http-server/handlers/appointments/create"
	appointmentGet "appointment-service/internal/http-server/handlers/appointments/get"
	appointmentList "appointment-service/internal/http-server/handlers/appointments/list"
	appointmentReschedule "appointment-service/internal/http-server/handlers/appointments/reschedule"
	appointmentStatus "appointment-service/internal/http-server/handlers/appointments/status"
	availDelete "appointment-service/internal/http-server/handlers/availability/delete"
	availGet "appointment-service/internal/http-server/handlers/availability/get"
	availList "appointment-service/internal/http-server/handlers/availability/list"
	availUpsert "appointment-service/internal/http-server/handlers/availability/upsert"
	slotGet "appointment-service/internal/http-server/handlers/slots/get"
	"appointment-service/pkg/middleware/mwLogger"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	availUpsert.AvailabilityRuleUpserter
	availGet.AvailabilityRuleGetter
	availList.AvailabilityRuleLister
	availDelete.AvailabilityRuleDeleter
	slotGet.SlotGetter
	appointmentCreate.AppointmentBooker
	appointmentGet.AppointmentGetter
	appointmentList.AppointmentLister
	appointmentReschedule.AppointmentRescheduler
	appointmentCancel.AppointmentCanceler
	appointmentStatus.AppointmentStatusUpdater
}

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func New(log *slog.Logger, service Service) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	router.Route("/doctors/{doctor_id}", func(r chi.Router) {
		r.Put("/availability", availUpsert.New(log, service))
		r.Get("/availability", availList.New(log, service))
		r.Get("/slots", slotGet.New(log, service))
		r.Get("/appointments", appointmentList.New(log, service))
	})

	router.Get("/availability/{id}", availGet.New(log, service))
	router.Delete("/availability/{id}", availDelete.New(log, service))

	router.Post("/appointments", appointmentCreate.New(log, service))
	router.Get("/appointments/{id}", appointmentGet.New(log, service))
	router.Put("/appointments/{id}/reschedule", appointmentReschedule.New(log, service))
	router.Put("/appointments/{id}/cancel", appointmentCancel.New(log, service))
	router.Put("/appointments/{id}/status", appointmentStatus.New(log, service))

	return router
}
