package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"appointment-service/internal/models"
	"appointment-service/pkg/response"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

const (
	pqUniqueViolation = "23505"
	pqCheckViolation  = "23514"
	pqInvalidText     = "22P02"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB wraps an already opened handle.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgres.Migrate"

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// mapErr turns driver errors into the response sentinels handlers match on.
func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return response.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s", response.ErrConflict, pqErr.Constraint)
		case pqCheckViolation:
			return fmt.Errorf("%w: %s", response.ErrBadRequest, pqErr.Constraint)
		case pqInvalidText:
			// malformed uuid in a lookup, no such row can exist
			return response.ErrNotFound
		}
	}

	return err
}

// #### availability rules ####

const ruleColumns = `id, doctor_id, day_of_week, start_time, end_time, slot_duration, is_active, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRule(row scanner) (*models.AvailabilityRule, error) {
	var r models.AvailabilityRule

	err := row.Scan(
		&r.ID,
		&r.DoctorID,
		&r.DayOfWeek,
		&r.StartTime,
		&r.EndTime,
		&r.SlotDuration,
		&r.IsActive,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// UpsertAvailabilityRule keeps a single rule per doctor and weekday.
func (s *Storage) UpsertAvailabilityRule(ctx context.Context, rule *models.AvailabilityRule) (*models.AvailabilityRule, error) {
	const op = "storage.postgres.UpsertAvailabilityRule"

	row := s.db.QueryRowContext(ctx,
		`INSERT INTO availability_rules
		(id, doctor_id, day_of_week, start_time, end_time, slot_duration, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (doctor_id, day_of_week)
		DO UPDATE
		SET start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			slot_duration = EXCLUDED.slot_duration,
			is_active = EXCLUDED.is_active,
			updated_at = now()
		RETURNING `+ruleColumns,
		uuid.NewString(),
		rule.DoctorID,
		rule.DayOfWeek,
		rule.StartTime,
		rule.EndTime,
		rule.SlotDuration,
		rule.IsActive,
	)

	saved, err := scanRule(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return saved, nil
}

func (s *Storage) GetAvailabilityRule(ctx context.Context, id string) (*models.AvailabilityRule, error) {
	const op = "storage.postgres.GetAvailabilityRule"

	row := s.db.QueryRowContext(ctx, `SELECT `+ruleColumns+` FROM availability_rules WHERE id=$1`, id)

	rule, err := scanRule(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return rule, nil
}

func (s *Storage) GetRuleForDay(ctx context.Context, doctorID string, dayOfWeek int) (*models.AvailabilityRule, error) {
	const op = "storage.postgres.GetRuleForDay"

	row := s.db.QueryRowContext(ctx,
		`SELECT `+ruleColumns+` FROM availability_rules
		WHERE doctor_id=$1 AND day_of_week=$2 AND is_active=TRUE`,
		doctorID, dayOfWeek)

	rule, err := scanRule(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rule, nil
}

func (s *Storage) ListAvailabilityRules(ctx context.Context, doctorID string) ([]*models.AvailabilityRule, error) {
	const op = "storage.postgres.ListAvailabilityRules"

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+ruleColumns+` FROM availability_rules WHERE doctor_id=$1 ORDER BY day_of_week`,
		doctorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	rules := []*models.AvailabilityRule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rules, nil
}

func (s *Storage) DeleteAvailabilityRule(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteAvailabilityRule"

	res, err := s.db.ExecContext(ctx, `DELETE FROM availability_rules WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

// #### appointments ####

const appointmentColumns = `id, doctor_id, patient_id, scheduled_at, status, notes, created_at, updated_at`

func scanAppointment(row scanner) (*models.Appointment, error) {
	var a models.Appointment

	err := row.Scan(
		&a.ID,
		&a.DoctorID,
		&a.PatientID,
		&a.ScheduledAt,
		&a.Status,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (s *Storage) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	const op = "storage.postgres.CreateAppointment"

	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO appointments
		(id, doctor_id, patient_id, scheduled_at, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id,
		appointment.DoctorID,
		appointment.PatientID,
		appointment.ScheduledAt,
		string(appointment.Status),
		appointment.Notes,
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return id, nil
}

func (s *Storage) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	const op = "storage.postgres.GetAppointment"

	row := s.db.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id=$1`, id)

	appointment, err := scanAppointment(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return appointment, nil
}

func (s *Storage) ListAppointments(ctx context.Context, doctorID string, from, to time.Time) ([]*models.Appointment, error) {
	const op = "storage.postgres.ListAppointments"

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments
		WHERE doctor_id=$1 AND scheduled_at >= $2 AND scheduled_at < $3
		ORDER BY scheduled_at`,
		doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	appointments := []*models.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return appointments, nil
}

func (s *Storage) ListBookedTimes(ctx context.Context, doctorID string, from, to time.Time) ([]time.Time, error) {
	const op = "storage.postgres.ListBookedTimes"

	rows, err := s.db.QueryContext(ctx,
		`SELECT scheduled_at FROM appointments
		WHERE doctor_id=$1 AND scheduled_at >= $2 AND scheduled_at < $3 AND status <> $4
		ORDER BY scheduled_at`,
		doctorID, from, to, string(models.AppointmentCanceled))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var booked []time.Time
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		booked = append(booked, at)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return booked, nil
}

func (s *Storage) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	const op = "storage.postgres.UpdateAppointmentStatus"

	res, err := s.db.ExecContext(ctx,
		`UPDATE appointments SET status=$1, updated_at=now() WHERE id=$2`,
		string(status), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return requireOneRow(op, res)
}

func (s *Storage) RescheduleAppointment(ctx context.Context, id string, scheduledAt time.Time) error {
	const op = "storage.postgres.RescheduleAppointment"

	res, err := s.db.ExecContext(ctx,
		`UPDATE appointments SET scheduled_at=$1, updated_at=now() WHERE id=$2`,
		scheduledAt, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return requireOneRow(op, res)
}

func requireOneRow(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}
