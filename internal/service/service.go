package service

import (
	"context"
	"fmt"
	"time"

	"appointment-service/api"
	"appointment-service/internal/lock"
	"appointment-service/internal/models"
	"appointment-service/internal/slots"
	"appointment-service/pkg/response"

	"golang.org/x/sync/errgroup"
)

const defaultLockTTL = 10 * time.Second

type Service struct {
	store   Store
	locker  lock.Locker
	lockTTL time.Duration
	now     func() time.Time
}

func NewService(store Store, locker lock.Locker, lockTTL time.Duration) *Service {
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}

	return &Service{
		store:   store,
		locker:  locker,
		lockTTL: lockTTL,
		now:     time.Now,
	}
}

type Store interface {
	// Availability Rules
	UpsertAvailabilityRule(ctx context.Context, rule *models.AvailabilityRule) (*models.AvailabilityRule, error)
	GetAvailabilityRule(ctx context.Context, id string) (*models.AvailabilityRule, error)
	// GetRuleForDay returns nil, nil when the doctor has no rule for the day.
	GetRuleForDay(ctx context.Context, doctorID string, dayOfWeek int) (*models.AvailabilityRule, error)
	ListAvailabilityRules(ctx context.Context, doctorID string) ([]*models.AvailabilityRule, error)
	DeleteAvailabilityRule(ctx context.Context, id string) error

	// Appointments
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error)
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, doctorID string, from, to time.Time) ([]*models.Appointment, error)
	// ListBookedTimes returns scheduled_at of every non-canceled appointment in [from, to).
	ListBookedTimes(ctx context.Context, doctorID string, from, to time.Time) ([]time.Time, error)
	UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error
	RescheduleAppointment(ctx context.Context, id string, scheduledAt time.Time) error
}

// Availability Rules

func (s *Service) UpsertAvailabilityRule(ctx context.Context, req *api.AvailabilityRuleRequest) (*api.AvailabilityRuleResponse, error) {
	const op = "service.UpsertAvailabilityRule"

	if req.DoctorID == "" {
		return nil, fmt.Errorf("%s: %w: doctor_id is required", op, slots.ErrInvalidRule)
	}
	if req.DayOfWeek == nil {
		return nil, fmt.Errorf("%s: %w: day_of_week is required", op, slots.ErrInvalidRule)
	}

	if err := slots.ValidateRule(*req.DayOfWeek, req.StartTime, req.EndTime, req.SlotDuration); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	start, err := slots.NormalizeTime(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	end, err := slots.NormalizeTime(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	rule, err := s.store.UpsertAvailabilityRule(ctx, &models.AvailabilityRule{
		DoctorID:     req.DoctorID,
		DayOfWeek:    *req.DayOfWeek,
		StartTime:    start,
		EndTime:      end,
		SlotDuration: req.SlotDuration,
		IsActive:     active,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toRuleResponse(rule), nil
}

func (s *Service) GetAvailabilityRule(ctx context.Context, id string) (*api.AvailabilityRuleResponse, error) {
	const op = "service.GetAvailabilityRule"

	rule, err := s.store.GetAvailabilityRule(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toRuleResponse(rule), nil
}

func (s *Service) ListAvailabilityRules(ctx context.Context, doctorID string) ([]*api.AvailabilityRuleResponse, error) {
	const op = "service.ListAvailabilityRules"

	rules, err := s.store.ListAvailabilityRules(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.AvailabilityRuleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, toRuleResponse(rule))
	}

	return result, nil
}

func (s *Service) DeleteAvailabilityRule(ctx context.Context, id string) error {
	const op = "service.DeleteAvailabilityRule"

	if err := s.store.DeleteAvailabilityRule(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Slots

func (s *Service) GetSlotsForDoctorOnDate(ctx context.Context, doctorID string, date time.Time) (*api.DaySlots, error) {
	const op = "service.GetSlotsForDoctorOnDate"

	day := truncateToDate(date)

	d, err := s.daySlots(ctx, doctorID, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toDaySlots(day, d), nil
}

// GetWeeklySlotsForDoctor reconciles Monday..Sunday of the current week,
// keyed by lowercase day name. Days are independent and fetched
// concurrently; any failure fails the whole week.
func (s *Service) GetWeeklySlotsForDoctor(ctx context.Context, doctorID string) (map[string]*api.DaySlots, error) {
	const op = "service.GetWeeklySlotsForDoctor"

	days := slots.Week(truncateToDate(s.now()))
	results := make([]slots.Day, len(days))

	g, gctx := errgroup.WithContext(ctx)
	for i, day := range days {
		g.Go(func() error {
			d, err := s.daySlots(gctx, doctorID, day)
			if err != nil {
				return fmt.Errorf("%s: %w", slots.DayKey(day), err)
			}
			results[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	week := make(map[string]*api.DaySlots, len(days))
	for i, day := range days {
		week[slots.DayKey(day)] = toDaySlots(day, results[i])
	}

	return week, nil
}

func (s *Service) daySlots(ctx context.Context, doctorID string, day time.Time) (slots.Day, error) {
	rule, err := s.store.GetRuleForDay(ctx, doctorID, int(day.Weekday()))
	if err != nil {
		return slots.Day{}, fmt.Errorf("get rule: %w", err)
	}

	if rule == nil || !rule.IsActive {
		return slots.Reconcile(day, nil, nil), nil
	}

	booked, err := s.store.ListBookedTimes(ctx, doctorID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return slots.Day{}, fmt.Errorf("list booked: %w", err)
	}

	return slots.Reconcile(day, rule, booked), nil
}

// Appointments

func (s *Service) BookAppointment(ctx context.Context, req *api.AppointmentRequest) (*api.AppointmentResponse, error) {
	const op = "service.BookAppointment"

	if req.DoctorID == "" || req.PatientID == "" {
		return nil, fmt.Errorf("%s: %w: doctor_id and patient_id are required", op, response.ErrBadRequest)
	}

	at, err := parseScheduledAt(req.ScheduledAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	unlock, err := s.acquire(ctx, lockKey(req.DoctorID, at))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer unlock()

	if err := s.ensureAvailable(ctx, req.DoctorID, at); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// the unique index on (doctor_id, scheduled_at) is the final word if
	// another writer got past the lock
	id, err := s.store.CreateAppointment(ctx, &models.Appointment{
		DoctorID:    req.DoctorID,
		PatientID:   req.PatientID,
		ScheduledAt: at,
		Status:      models.AppointmentPending,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: create appointment: %w", op, err)
	}

	return s.GetAppointment(ctx, id)
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*api.AppointmentResponse, error) {
	const op = "service.GetAppointment"

	appointment, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toAppointmentResponse(appointment), nil
}

func (s *Service) ListAppointments(ctx context.Context, doctorID string, from, to time.Time) ([]*api.AppointmentResponse, error) {
	const op = "service.ListAppointments"

	if !to.After(from) {
		return nil, fmt.Errorf("%s: %w: to must be after from", op, response.ErrBadRequest)
	}

	appointments, err := s.store.ListAppointments(ctx, doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, toAppointmentResponse(a))
	}

	return result, nil
}

func (s *Service) RescheduleAppointment(ctx context.Context, id string, scheduledAt string) (*api.AppointmentResponse, error) {
	const op = "service.RescheduleAppointment"

	at, err := parseScheduledAt(scheduledAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	appointment, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch appointment.Status {
	case models.AppointmentPending, models.AppointmentConfirmed:
	default:
		return nil, fmt.Errorf("%s: %w: cannot reschedule %s appointment", op, response.ErrInvalidStatus, appointment.Status)
	}

	if appointment.ScheduledAt.Equal(at) {
		return toAppointmentResponse(appointment), nil
	}

	unlock, err := s.acquire(ctx, lockKey(appointment.DoctorID, at))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer unlock()

	if err := s.ensureAvailable(ctx, appointment.DoctorID, at); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.RescheduleAppointment(ctx, id, at); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetAppointment(ctx, id)
}

func (s *Service) CancelAppointment(ctx context.Context, id string) (*api.AppointmentResponse, error) {
	const op = "service.CancelAppointment"

	appointment, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if appointment.Status == models.AppointmentCanceled {
		return toAppointmentResponse(appointment), nil
	}

	if err := s.store.UpdateAppointmentStatus(ctx, id, models.AppointmentCanceled); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetAppointment(ctx, id)
}

func (s *Service) UpdateAppointmentStatus(ctx context.Context, id string, status string) (*api.AppointmentResponse, error) {
	const op = "service.UpdateAppointmentStatus"

	next := models.AppointmentStatus(status)
	if !next.Valid() {
		return nil, fmt.Errorf("%s: %w: unknown status %q", op, response.ErrBadRequest, status)
	}

	appointment, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if appointment.Status == next {
		return toAppointmentResponse(appointment), nil
	}

	// reviving a canceled appointment could collide with a booking made
	// after it freed the slot
	if appointment.Status == models.AppointmentCanceled {
		return nil, fmt.Errorf("%s: %w: appointment is canceled", op, response.ErrInvalidStatus)
	}

	if err := s.store.UpdateAppointmentStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetAppointment(ctx, id)
}

func (s *Service) ensureAvailable(ctx context.Context, doctorID string, at time.Time) error {
	day, err := s.daySlots(ctx, doctorID, truncateToDate(at))
	if err != nil {
		return err
	}

	if !day.IsAvailable(slots.Label(at)) {
		return fmt.Errorf("%s at %s: %w", doctorID, at.Format(api.DateTimeLayout), response.ErrSlotNotAvailable)
	}

	return nil
}

func (s *Service) acquire(ctx context.Context, key string) (func(), error) {
	token, ok, err := s.locker.Lock(ctx, key, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("lock %s: %w", key, response.ErrLocked)
	}

	return func() {
		_ = s.locker.Unlock(context.WithoutCancel(ctx), key, token)
	}, nil
}

func lockKey(doctorID string, at time.Time) string {
	return fmt.Sprintf("doctor:%s:%s", doctorID, at.Format(api.DateTimeLayout))
}

func parseScheduledAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: scheduled_at is required", response.ErrBadRequest)
	}

	at, err := time.Parse(api.DateTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: scheduled_at: %w", response.ErrBadRequest, err)
	}

	return at, nil
}

// truncateToDate drops the clock and the zone: all dates are naive
// wall-clock values carried in UTC.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toRuleResponse(rule *models.AvailabilityRule) *api.AvailabilityRuleResponse {
	return &api.AvailabilityRuleResponse{
		ID:           rule.ID,
		DoctorID:     rule.DoctorID,
		DayOfWeek:    rule.DayOfWeek,
		StartTime:    rule.StartTime,
		EndTime:      rule.EndTime,
		SlotDuration: rule.SlotDuration,
		IsActive:     rule.IsActive,
	}
}

func toDaySlots(day time.Time, d slots.Day) *api.DaySlots {
	return &api.DaySlots{
		Date:      day.Format(api.DateLayout),
		All:       d.All,
		Taken:     d.Taken,
		Available: d.Available(),
	}
}

func toAppointmentResponse(a *models.Appointment) *api.AppointmentResponse {
	return &api.AppointmentResponse{
		ID:          a.ID,
		DoctorID:    a.DoctorID,
		PatientID:   a.PatientID,
		ScheduledAt: a.ScheduledAt.Format(api.DateTimeLayout),
		Status:      string(a.Status),
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
	}
}
