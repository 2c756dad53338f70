package api

import "time"

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

type AvailabilityRuleRequest struct {
	DoctorID     string `json:"doctor_id"`
	DayOfWeek    *int   `json:"day_of_week"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SlotDuration int    `json:"slot_duration"`
	// IsActive defaults to true when omitted.
	IsActive     *bool  `json:"is_active"`
}

type AvailabilityRuleResponse struct {
	ID           string `json:"id"`
	DoctorID     string `json:"doctor_id"`
	DayOfWeek    int    `json:"day_of_week"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SlotDuration int    `json:"slot_duration"`
	IsActive     bool   `json:"is_active"`
}

// DaySlots carries the full slot list of a day and the labels already
// booked. Available is all minus taken.
type DaySlots struct {
	Date      string   `json:"date"`
	All       []string `json:"all"`
	Taken     []string `json:"taken"`
	Available []string `json:"available"`
}

// AppointmentRequest.ScheduledAt is a naive wall-clock value in
// DateTimeLayout, no zone is attached.
type AppointmentRequest struct {
	DoctorID    string `json:"doctor_id"`
	PatientID   string `json:"patient_id"`
	ScheduledAt string `json:"scheduled_at"`
	Notes       string `json:"notes,omitempty"`
}

type AppointmentRescheduleRequest struct {
	ScheduledAt string `json:"scheduled_at"`
}

type AppointmentStatusRequest struct {
	Status string `json:"status"`
}

type AppointmentResponse struct {
	ID          string    `json:"id"`
	DoctorID    string    `json:"doctor_id"`
	PatientID   string    `json:"patient_id"`
	ScheduledAt string    `json:"scheduled_at"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
