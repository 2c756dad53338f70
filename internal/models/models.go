package models

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCanceled  AppointmentStatus = "canceled"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCanceled, AppointmentNoShow:
		return true
	}
	return false
}

// AvailabilityRule is a weekly window during which a doctor accepts
// appointments. StartTime and EndTime are "HH:MM" wall-clock values.
type AvailabilityRule struct {
	ID           string    `db:"id"`
	DoctorID     string    `db:"doctor_id"`
	DayOfWeek    int       `db:"day_of_week"`
	StartTime    string    `db:"start_time"`
	EndTime      string    `db:"end_time"`
	SlotDuration int       `db:"slot_duration"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Appointment struct {
	ID          string            `db:"id"`
	DoctorID    string            `db:"doctor_id"`
	PatientID   string            `db:"patient_id"`
	ScheduledAt time.Time         `db:"scheduled_at"`
	Status      AppointmentStatus `db:"status"`
	Notes       string            `db:"notes"`
	CreatedAt   time.Time         `db:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at"`
}
