package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"appointment-service/api"
	"appointment-service/internal/models"
	"appointment-service/internal/slots"
	"appointment-service/pkg/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// -- Mocks --

type mockStore struct {
	mock.Mock
}

func (m *mockStore) UpsertAvailabilityRule(ctx context.Context, rule *models.AvailabilityRule) (*models.AvailabilityRule, error) {
	args := m.Called(ctx, rule)
	saved, _ := args.Get(0).(*models.AvailabilityRule)
	return saved, args.Error(1)
}

func (m *mockStore) GetAvailabilityRule(ctx context.Context, id string) (*models.AvailabilityRule, error) {
	args := m.Called(ctx, id)
	rule, _ := args.Get(0).(*models.AvailabilityRule)
	return rule, args.Error(1)
}

func (m *mockStore) GetRuleForDay(ctx context.Context, doctorID string, dayOfWeek int) (*models.AvailabilityRule, error) {
	args := m.Called(ctx, doctorID, dayOfWeek)
	rule, _ := args.Get(0).(*models.AvailabilityRule)
	return rule, args.Error(1)
}

func (m *mockStore) ListAvailabilityRules(ctx context.Context, doctorID string) ([]*models.AvailabilityRule, error) {
	args := m.Called(ctx, doctorID)
	rules, _ := args.Get(0).([]*models.AvailabilityRule)
	return rules, args.Error(1)
}

func (m *mockStore) DeleteAvailabilityRule(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	args := m.Called(ctx, appointment)
	return args.String(0), args.Error(1)
}

func (m *mockStore) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.Appointment)
	return a, args.Error(1)
}

func (m *mockStore) ListAppointments(ctx context.Context, doctorID string, from, to time.Time) ([]*models.Appointment, error) {
	args := m.Called(ctx, doctorID, from, to)
	list, _ := args.Get(0).([]*models.Appointment)
	return list, args.Error(1)
}

func (m *mockStore) ListBookedTimes(ctx context.Context, doctorID string, from, to time.Time) ([]time.Time, error) {
	args := m.Called(ctx, doctorID, from, to)
	booked, _ := args.Get(0).([]time.Time)
	return booked, args.Error(1)
}

func (m *mockStore) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockStore) RescheduleAppointment(ctx context.Context, id string, scheduledAt time.Time) error {
	return m.Called(ctx, id, scheduledAt).Error(0)
}

type mockLocker struct {
	mock.Mock
}

func (m *mockLocker) Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockLocker) Unlock(ctx context.Context, key, token string) error {
	return m.Called(ctx, key, token).Error(0)
}

// -- Helpers --

var (
	monday   = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	thursday = time.Date(2025, time.March, 13, 16, 45, 0, 0, time.UTC)
)

func newTestService() (*Service, *mockStore, *mockLocker) {
	store := &mockStore{}
	locker := &mockLocker{}

	s := NewService(store, locker, time.Second)
	s.now = func() time.Time { return thursday }

	return s, store, locker
}

func morningRule(day int) *models.AvailabilityRule {
	return &models.AvailabilityRule{
		ID:           "rule-1",
		DoctorID:     "doc-1",
		DayOfWeek:    day,
		StartTime:    "09:00",
		EndTime:      "10:00",
		SlotDuration: 20,
		IsActive:     true,
	}
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

// -- Availability rules --

func TestService_UpsertAvailabilityRule(t *testing.T) {
	s, store, _ := newTestService()

	store.On("UpsertAvailabilityRule", mock.Anything, mock.MatchedBy(func(r *models.AvailabilityRule) bool {
		return r.DoctorID == "doc-1" && r.DayOfWeek == 2 && r.StartTime == "08:00" && r.EndTime == "12:30" && r.SlotDuration == 30 && r.IsActive
	})).Return(&models.AvailabilityRule{
		ID: "rule-9", DoctorID: "doc-1", DayOfWeek: 2, StartTime: "08:00", EndTime: "12:30", SlotDuration: 30, IsActive: true,
	}, nil)

	resp, err := s.UpsertAvailabilityRule(context.Background(), &api.AvailabilityRuleRequest{
		DoctorID:     "doc-1",
		DayOfWeek:    intPtr(2),
		StartTime:    "8:00",
		EndTime:      "12:30",
		SlotDuration: 30,
		IsActive:     boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "rule-9", resp.ID)
	assert.Equal(t, "08:00", resp.StartTime)
	store.AssertExpectations(t)
}

func TestService_UpsertAvailabilityRule_ActiveFlag(t *testing.T) {
	tests := []struct {
		name     string
		isActive *bool
		want     bool
	}{
		{"omitted defaults to active", nil, true},
		{"explicit inactive", boolPtr(false), false},
		{"explicit active", boolPtr(true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store, _ := newTestService()

			store.On("UpsertAvailabilityRule", mock.Anything, mock.MatchedBy(func(r *models.AvailabilityRule) bool {
				return r.IsActive == tt.want
			})).Return(&models.AvailabilityRule{ID: "rule-9", DoctorID: "doc-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", SlotDuration: 20, IsActive: tt.want}, nil)

			resp, err := s.UpsertAvailabilityRule(context.Background(), &api.AvailabilityRuleRequest{
				DoctorID:     "doc-1",
				DayOfWeek:    intPtr(1),
				StartTime:    "09:00",
				EndTime:      "10:00",
				SlotDuration: 20,
				IsActive:     tt.isActive,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.IsActive)
			store.AssertExpectations(t)
		})
	}
}

func TestService_UpsertAvailabilityRule_Rejected(t *testing.T) {
	tests := []struct {
		name string
		req  api.AvailabilityRuleRequest
	}{
		{"missing doctor", api.AvailabilityRuleRequest{DayOfWeek: intPtr(1), StartTime: "09:00", EndTime: "10:00", SlotDuration: 15}},
		{"missing day", api.AvailabilityRuleRequest{DoctorID: "doc-1", StartTime: "09:00", EndTime: "10:00", SlotDuration: 15}},
		{"bad start", api.AvailabilityRuleRequest{DoctorID: "doc-1", DayOfWeek: intPtr(1), StartTime: "9h", EndTime: "10:00", SlotDuration: 15}},
		{"reversed window", api.AvailabilityRuleRequest{DoctorID: "doc-1", DayOfWeek: intPtr(1), StartTime: "11:00", EndTime: "10:00", SlotDuration: 15}},
		{"zero duration", api.AvailabilityRuleRequest{DoctorID: "doc-1", DayOfWeek: intPtr(1), StartTime: "09:00", EndTime: "10:00"}},
		{"day out of range", api.AvailabilityRuleRequest{DoctorID: "doc-1", DayOfWeek: intPtr(7), StartTime: "09:00", EndTime: "10:00", SlotDuration: 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store, _ := newTestService()

			_, err := s.UpsertAvailabilityRule(context.Background(), &tt.req)
			assert.ErrorIs(t, err, slots.ErrInvalidRule)
			store.AssertNotCalled(t, "UpsertAvailabilityRule", mock.Anything, mock.Anything)
		})
	}
}

func TestService_DeleteAvailabilityRule_NotFound(t *testing.T) {
	s, store, _ := newTestService()

	store.On("DeleteAvailabilityRule", mock.Anything, "missing").Return(response.ErrNotFound)

	err := s.DeleteAvailabilityRule(context.Background(), "missing")
	assert.ErrorIs(t, err, response.ErrNotFound)
}

func TestService_ListAvailabilityRules(t *testing.T) {
	s, store, _ := newTestService()

	store.On("ListAvailabilityRules", mock.Anything, "doc-1").
		Return([]*models.AvailabilityRule{morningRule(1), morningRule(3)}, nil)

	rules, err := s.ListAvailabilityRules(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Len(t, rules, 2)
}

// -- Slots --

func TestService_GetSlotsForDoctorOnDate(t *testing.T) {
	s, store, _ := newTestService()

	store.On("GetRuleForDay", mock.Anything, "doc-1", 1).Return(morningRule(1), nil)
	store.On("ListBookedTimes", mock.Anything, "doc-1", monday, monday.AddDate(0, 0, 1)).
		Return([]time.Time{monday.Add(9*time.Hour + 20*time.Minute)}, nil)

	day, err := s.GetSlotsForDoctorOnDate(context.Background(), "doc-1", monday.Add(13*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", day.Date)
	assert.Equal(t, []string{"09:00", "09:20", "09:40"}, day.All)
	assert.Equal(t, []string{"09:20"}, day.Taken)
	assert.Equal(t, []string{"09:00", "09:40"}, day.Available)
	store.AssertExpectations(t)
}

func TestService_GetSlotsForDoctorOnDate_NoRule(t *testing.T) {
	s, store, _ := newTestService()
	sunday := monday.AddDate(0, 0, 6)

	store.On("GetRuleForDay", mock.Anything, "doc-1", 0).Return(nil, nil)

	day, err := s.GetSlotsForDoctorOnDate(context.Background(), "doc-1", sunday)
	require.NoError(t, err)

	assert.Equal(t, []string{}, day.All)
	assert.Equal(t, []string{}, day.Taken)
	store.AssertNotCalled(t, "ListBookedTimes", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetSlotsForDoctorOnDate_StoreError(t *testing.T) {
	s, store, _ := newTestService()

	store.On("GetRuleForDay", mock.Anything, "doc-1", 1).Return(morningRule(1), nil)
	store.On("ListBookedTimes", mock.Anything, "doc-1", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset"))

	day, err := s.GetSlotsForDoctorOnDate(context.Background(), "doc-1", monday)
	assert.Error(t, err)
	assert.Nil(t, day)
}

func TestService_GetWeeklySlotsForDoctor(t *testing.T) {
	s, store, _ := newTestService()

	store.On("GetRuleForDay", mock.Anything, "doc-1", 0).Return(nil, nil)
	store.On("GetRuleForDay", mock.Anything, "doc-1", 6).Return(nil, nil)
	for d := 1; d <= 5; d++ {
		store.On("GetRuleForDay", mock.Anything, "doc-1", d).Return(morningRule(d), nil)
	}

	wednesday := monday.AddDate(0, 0, 2)
	store.On("ListBookedTimes", mock.Anything, "doc-1", wednesday, wednesday.AddDate(0, 0, 1)).
		Return([]time.Time{wednesday.Add(9 * time.Hour)}, nil)
	store.On("ListBookedTimes", mock.Anything, "doc-1", mock.Anything, mock.Anything).
		Return([]time.Time{}, nil)

	week, err := s.GetWeeklySlotsForDoctor(context.Background(), "doc-1")
	require.NoError(t, err)

	require.Len(t, week, 7)
	assert.Equal(t, "2025-03-10", week["monday"].Date)
	assert.Equal(t, "2025-03-16", week["sunday"].Date)
	assert.Equal(t, []string{}, week["sunday"].All)
	assert.Equal(t, []string{}, week["sunday"].Taken)
	assert.Equal(t, []string{}, week["saturday"].All)
	assert.Equal(t, []string{"09:00"}, week["wednesday"].Taken)
	assert.Equal(t, []string{"09:20", "09:40"}, week["wednesday"].Available)
	assert.Equal(t, []string{"09:00", "09:20", "09:40"}, week["friday"].Available)
}

func TestService_GetWeeklySlotsForDoctor_FailsWhole(t *testing.T) {
	s, store, _ := newTestService()

	store.On("GetRuleForDay", mock.Anything, "doc-1", 4).Return(nil, errors.New("timeout"))
	store.On("GetRuleForDay", mock.Anything, "doc-1", mock.Anything).Return(nil, nil)

	week, err := s.GetWeeklySlotsForDoctor(context.Background(), "doc-1")
	assert.Error(t, err)
	assert.Nil(t, week)
}

// -- Appointments --

func TestService_BookAppointment(t *testing.T) {
	s, store, locker := newTestService()
	at := monday.Add(9*time.Hour + 40*time.Minute)

	locker.On("Lock", mock.Anything, "doctor:doc-1:2025-03-10T09:40", time.Second).Return("tok", true, nil)
	locker.On("Unlock", mock.Anything, "doctor:doc-1:2025-03-10T09:40", "tok").Return(nil)
	store.On("GetRuleForDay", mock.Anything, "doc-1", 1).Return(morningRule(1), nil)
	store.On("ListBookedTimes", mock.Anything, "doc-1", monday, monday.AddDate(0, 0, 1)).
		Return([]time.Time{monday.Add(9*time.Hour + 20*time.Minute)}, nil)
	store.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(a *models.Appointment) bool {
		return a.DoctorID == "doc-1" && a.PatientID == "pat-1" && a.ScheduledAt.Equal(at) && a.Status == models.AppointmentPending
	})).Return("appt-1", nil)
	store.On("GetAppointment", mock.Anything, "appt-1").Return(&models.Appointment{
		ID: "appt-1", DoctorID: "doc-1", PatientID: "pat-1", ScheduledAt: at, Status: models.AppointmentPending,
	}, nil)

	resp, err := s.BookAppointment(context.Background(), &api.AppointmentRequest{
		DoctorID:    "doc-1",
		PatientID:   "pat-1",
		ScheduledAt: "2025-03-10T09:40",
	})
	require.NoError(t, err)
	assert.Equal(t, "appt-1", resp.ID)
	assert.Equal(t, "2025-03-10T09:40", resp.ScheduledAt)
	store.AssertExpectations(t)
	locker.AssertExpectations(t)
}

func TestService_BookAppointment_SlotTaken(t *testing.T) {
	s, store, locker := newTestService()

	locker.On("Lock", mock.Anything, mock.Anything, mock.Anything).Return("tok", true, nil)
	locker.On("Unlock", mock.Anything, mock.Anything, "tok").Return(nil)
	store.On("GetRuleForDay", mock.Anything, "doc-1", 1).Return(morningRule(1), nil)
	store.On("ListBookedTimes", mock.Anything, "doc-1", mock.Anything, mock.Anything).
		Return([]time.Time{monday.Add(9*time.Hour + 20*time.Minute)}, nil)

	_, err := s.BookAppointment(context.Background(), &api.AppointmentRequest{
		DoctorID: "doc-1", PatientID: "pat-1", ScheduledAt: "2025-03-10T09:20",
	})
	assert.ErrorIs(t, err, response.ErrSlotNotAvailable)
	store.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
	locker.AssertCalled(t, "Unlock", mock.Anything, "doctor:doc-1:2025-03-10T09:20", "tok")
}

func TestService_BookAppointment_OutsideRule(t *testing.T) {
	s, store, locker := newTestService()

	locker.On("Lock", mock.Anything, mock.Anything, mock.Anything).Return("tok", true, nil)
	locker.On("Unlock", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	store.On("GetRuleForDay", mock.Anything, "doc-1", 1).Return(morningRule(1), nil)
	store.On("ListBookedTimes", mock.Anything, "doc-1", mock.Anything, mock.Anything).Return([]time.Time{}, nil)

	for _, at := range []string{"2025-03-10T10:00", "2025-03-10T09:10", "2025-03-10T08:40"} {
		_, err := s.BookAppointment(context.Background(), &api.AppointmentRequest{
			DoctorID: "doc-1", PatientID: "pat-1", ScheduledAt: at,
		})
		assert.ErrorIs(t, err, response.ErrSlotNotAvailable, at)
	}
}

func TestService_BookAppointment_Locked(t *testing.T) {
	s, store, locker := newTestService()

	locker.On("Lock", mock.Anything, mock.Anything, mock.Anything).Return("", false, nil)

	_, err := s.BookAppointment(context.Background(), &api.AppointmentRequest{
		DoctorID: "doc-1", PatientID: "pat-1", ScheduledAt: "2025-03-10T09:00",
	})
	assert.ErrorIs(t, err, response.ErrLocked)
	store.AssertNotCalled(t, "GetRuleForDay", mock.Anything, mock.Anything, mock.Anything)
	locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_BookAppointment_StorageConflict(t *testing.T) {
	s, store, locker := newTestService()

	locker.On("Lock", mock.Anything, mock.Anything, mock.Anything).Return("tok", true, nil)
	locker.On("Unlock", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	store.On("GetRuleForDay", mock.Anything, "doc-1", 1).Return(morningRule(1), nil)
	store.On("ListBookedTimes", mock.Anything, "doc-1", mock.Anything, mock.Anything).Return([]time.Time{}, nil)
	store.On("CreateAppointment", mock.Anything, mock.Anything).
		Return("", errors.Join(response.ErrConflict, errors.New("appointments_doctor_slot_uq")))

	_, err := s.BookAppointment(context.Background(), &api.AppointmentRequest{
		DoctorID: "doc-1", PatientID: "pat-2", ScheduledAt: "2025-03-10T09:00",
	})
	assert.ErrorIs(t, err, response.ErrConflict)
}

func TestService_BookAppointment_BadInput(t *testing.T) {
	s, _, locker := newTestService()

	for _, req := range []api.AppointmentRequest{
		{PatientID: "pat-1", ScheduledAt: "2025-03-10T09:00"},
		{DoctorID: "doc-1", ScheduledAt: "2025-03-10T09:00"},
		{DoctorID: "doc-1", PatientID: "pat-1"},
		{DoctorID: "doc-1", PatientID: "pat-1", ScheduledAt: "10/03/2025 09:00"},
	} {
		_, err := s.BookAppointment(context.Background(), &req)
		assert.ErrorIs(t, err, response.ErrBadRequest)
	}

	locker.AssertNotCalled(t, "Lock", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_RescheduleAppointment(t *testing.T) {
	s, store, locker := newTestService()
	oldAt := monday.Add(9 * time.Hour)
	newAt := monday.AddDate(0, 0, 1).Add(9*time.Hour + 40*time.Minute)
	tuesday := monday.AddDate(0, 0, 1)

	store.On("GetAppointment", mock.Anything, "appt-1").Return(&models.Appointment{
		ID: "appt-1", DoctorID: "doc-1", PatientID: "pat-1", ScheduledAt: oldAt, Status: models.AppointmentConfirmed,
	}, nil).Once()
	locker.On("Lock", mock.Anything, "doctor:doc-1:2025-03-11T09:40", time.Second).Return("tok", true, nil)
	locker.On("Unlock", mock.Anything, "doctor:doc-1:2025-03-11T09:40", "tok").Return(nil)
	store.On("GetRuleForDay", mock.Anything, "doc-1", 2).Return(morningRule(2), nil)
	store.On("ListBookedTimes", mock.Anything, "doc-1", tuesday, tuesday.AddDate(0, 0, 1)).Return([]time.Time{}, nil)
	store.On("RescheduleAppointment", mock.Anything, "appt-1", newAt).Return(nil)
	store.On("GetAppointment", mock.Anything, "appt-1").Return(&models.Appointment{
		ID: "appt-1", DoctorID: "doc-1", PatientID: "pat-1", ScheduledAt: newAt, Status: models.AppointmentConfirmed,
	}, nil).Once()

	resp, err := s.RescheduleAppointment(context.Background(), "appt-1", "2025-03-11T09:40")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-11T09:40", resp.ScheduledAt)
	store.AssertExpectations(t)
}

func TestService_RescheduleAppointment_Canceled(t *testing.T) {
	s, store, locker := newTestService()

	store.On("GetAppointment", mock.Anything, "appt-1").Return(&models.Appointment{
		ID: "appt-1", DoctorID: "doc-1", ScheduledAt: monday.Add(9 * time.Hour), Status: models.AppointmentCanceled,
	}, nil)

	_, err := s.RescheduleAppointment(context.Background(), "appt-1", "2025-03-11T09:40")
	assert.ErrorIs(t, err, response.ErrInvalidStatus)
	locker.AssertNotCalled(t, "Lock", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_RescheduleAppointment_SameTime(t *testing.T) {
	s, store, locker := newTestService()
	at := monday.Add(9 * time.Hour)

	store.On("GetAppointment", mock.Anything, "appt-1").Return(&models.Appointment{
		ID: "appt-1", DoctorID: "doc-1", ScheduledAt: at, Status: models.AppointmentPending,
	}, nil)

	resp, err := s.RescheduleAppointment(context.Background(), "appt-1", "2025-03-10T09:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10T09:00", resp.ScheduledAt)
	store.AssertNotCalled(t, "RescheduleAppointment", mock.Anything, mock.Anything, mock.Anything)
	locker.AssertNotCalled(t, "Lock", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CancelAppointment(t *testing.T) {
	s, store, _ := newTestService()
	at := monday.Add(9 * time.Hour)

	store.On("GetAppointment", mock.Anything, "appt-1").Return(&models.Appointment{
		ID: "appt-1", ScheduledAt: at, Status: models.AppointmentPending,
	}, nil).Once()
	store.On("UpdateAppointmentStatus", mock.Anything, "appt-1", models.AppointmentCanceled).Return(nil)
	store.On("GetAppointment", mock.Anything, "appt-1").Return(&models.Appointment{
		ID: "appt-1", ScheduledAt: at, Status: models.AppointmentCanceled,
	}, nil).Once()

	resp, err := s.CancelAppointment(context.Background(), "appt-1")
	require.NoError(t, err)
	assert.Equal(t, "canceled", resp.Status)
	store.AssertExpectations(t)
}

func TestService_CancelAppointment_AlreadyCanceled(t *testing.T) {
	s, store, _ := newTestService()

	store.On("GetAppointment", mock.Anything, "appt-1").Return(&models.Appointment{
		ID: "appt-1", Status: models.AppointmentCanceled,
	}, nil)

	_, err := s.CancelAppointment(context.Background(), "appt-1")
	require.NoError(t, err)
	store.AssertNotCalled(t, "UpdateAppointmentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateAppointmentStatus(t *testing.T) {
	s, store, _ := newTestService()

	store.On("GetAppointment", mock.Anything, "appt-1").Return(&models.Appointment{
		ID: "appt-1", Status: models.AppointmentConfirmed,
	}, nil).Once()
	store.On("UpdateAppointmentStatus", mock.Anything, "appt-1", models.AppointmentNoShow).Return(nil)
	store.On("GetAppointment", mock.Anything, "appt-1").Return(&models.Appointment{
		ID: "appt-1", Status: models.AppointmentNoShow,
	}, nil).Once()

	resp, err := s.UpdateAppointmentStatus(context.Background(), "appt-1", "no_show")
	require.NoError(t, err)
	assert.Equal(t, "no_show", resp.Status)
}

func TestService_UpdateAppointmentStatus_Rejected(t *testing.T) {
	s, store, _ := newTestService()

	_, err := s.UpdateAppointmentStatus(context.Background(), "appt-1", "archived")
	assert.ErrorIs(t, err, response.ErrBadRequest)

	store.On("GetAppointment", mock.Anything, "appt-2").Return(&models.Appointment{
		ID: "appt-2", Status: models.AppointmentCanceled,
	}, nil)

	_, err = s.UpdateAppointmentStatus(context.Background(), "appt-2", "confirmed")
	assert.ErrorIs(t, err, response.ErrInvalidStatus)
	store.AssertNotCalled(t, "UpdateAppointmentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ListAppointments_BadRange(t *testing.T) {
	s, _, _ := newTestService()

	_, err := s.ListAppointments(context.Background(), "doc-1", monday, monday)
	assert.ErrorIs(t, err, response.ErrBadRequest)
}
