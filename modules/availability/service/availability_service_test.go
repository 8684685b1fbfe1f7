package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-booking-api/core/errors"
	"go-booking-api/modules/availability/dto"
	"go-booking-api/modules/availability/entity"
	bookingentity "go-booking-api/modules/booking/entity"
	scheduleentity "go-booking-api/modules/schedule/entity"
)

type stubScheduleRepo struct {
	eventType *scheduleentity.EventType
	rules     []scheduleentity.AvailabilityRule
	oneOffs   []scheduleentity.OneOffSlot
	blocked   []scheduleentity.BlockedInterval
}

func (s *stubScheduleRepo) CreateEventType(_ context.Context, et *scheduleentity.EventType) (*scheduleentity.EventType, error) {
	return et, nil
}
func (s *stubScheduleRepo) GetEventTypeByID(_ context.Context, _ uuid.UUID) (*scheduleentity.EventType, error) {
	return s.eventType, nil
}
func (s *stubScheduleRepo) GetEventTypeBySlug(_ context.Context, slug string) (*scheduleentity.EventType, error) {
	if s.eventType != nil && s.eventType.Slug == slug {
		return s.eventType, nil
	}
	return nil, nil
}
func (s *stubScheduleRepo) ListEventTypes(_ context.Context) ([]scheduleentity.EventType, error) {
	return nil, nil
}
func (s *stubScheduleRepo) UpdateEventType(_ context.Context, _ *scheduleentity.EventType) error {
	return nil
}
func (s *stubScheduleRepo) DeleteEventType(_ context.Context, _ uuid.UUID) error { return nil }
func (s *stubScheduleRepo) CreateRule(_ context.Context, r *scheduleentity.AvailabilityRule) (*scheduleentity.AvailabilityRule, error) {
	return r, nil
}
func (s *stubScheduleRepo) GetRulesByEventType(_ context.Context, _ uuid.UUID) ([]scheduleentity.AvailabilityRule, error) {
	return s.rules, nil
}
func (s *stubScheduleRepo) DeleteRule(_ context.Context, _ uuid.UUID) error { return nil }
func (s *stubScheduleRepo) CreateOneOffSlot(_ context.Context, o *scheduleentity.OneOffSlot) (*scheduleentity.OneOffSlot, error) {
	return o, nil
}
func (s *stubScheduleRepo) GetOneOffSlotsInRange(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]scheduleentity.OneOffSlot, error) {
	return s.oneOffs, nil
}
func (s *stubScheduleRepo) DeleteOneOffSlot(_ context.Context, _ uuid.UUID) error { return nil }
func (s *stubScheduleRepo) CreateBlockedInterval(_ context.Context, b *scheduleentity.BlockedInterval) (*scheduleentity.BlockedInterval, error) {
	return b, nil
}
func (s *stubScheduleRepo) GetBlockedIntervalsInRange(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]scheduleentity.BlockedInterval, error) {
	return s.blocked, nil
}
func (s *stubScheduleRepo) DeleteBlockedInterval(_ context.Context, _ uuid.UUID) error { return nil }

type stubBookings struct {
	bookings []bookingentity.Booking
}

func (s *stubBookings) GetActiveBookingsInRange(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]bookingentity.Booking, error) {
	return s.bookings, nil
}

type stubBusySource struct {
	busy  []entity.TimeWindow
	err   error
	calls int
}

func (s *stubBusySource) GetBusyIntervals(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]entity.TimeWindow, error) {
	s.calls++
	return s.busy, s.err
}

func serviceEventType() *scheduleentity.EventType {
	ownerID := uuid.New()
	return &scheduleentity.EventType{
		ID:              uuid.New(),
		OwnerID:         &ownerID,
		Name:            "Consultation",
		Slug:            "consultation",
		DurationMinutes: 30,
		Capacity:        1,
		IsActive:        true,
		Timezone:        "UTC",
	}
}

func mondayRule(eventTypeID uuid.UUID) scheduleentity.AvailabilityRule {
	return scheduleentity.AvailabilityRule{
		ID:          uuid.New(),
		EventTypeID: eventTypeID,
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "10:00",
		IsActive:    true,
	}
}

func TestGetAvailabilityBySlug(t *testing.T) {
	et := serviceEventType()
	repo := &stubScheduleRepo{eventType: et, rules: []scheduleentity.AvailabilityRule{mondayRule(et.ID)}}
	svc := NewAvailabilityService(repo, &stubBookings{}, nil, nil)

	result, appErr := svc.GetAvailabilityBySlug(context.Background(), "consultation", &dto.AvailabilityQuery{
		From: "2026-03-02",
		To:   "2026-03-03",
	})
	require.Nil(t, appErr)

	assert.Equal(t, et.ID.String(), result.EventTypeID)
	require.Len(t, result.Slots, 2)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), result.Slots[0].Start)
}

func TestGetAvailabilityBySlugUnknown(t *testing.T) {
	svc := NewAvailabilityService(&stubScheduleRepo{}, &stubBookings{}, nil, nil)

	_, appErr := svc.GetAvailabilityBySlug(context.Background(), "missing", &dto.AvailabilityQuery{
		From: "2026-03-02", To: "2026-03-03",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestGetAvailabilityBySlugBadDates(t *testing.T) {
	et := serviceEventType()
	repo := &stubScheduleRepo{eventType: et}
	svc := NewAvailabilityService(repo, &stubBookings{}, nil, nil)

	tests := []struct {
		name     string
		from, to string
	}{
		{"missing from", "", "2026-03-03"},
		{"missing to", "2026-03-02", ""},
		{"garbage from", "yesterday", "2026-03-03"},
		{"inverted range", "2026-03-03", "2026-03-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, appErr := svc.GetAvailabilityBySlug(context.Background(), "consultation", &dto.AvailabilityQuery{
				From: tt.from, To: tt.to,
			})
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrInvalidRange, appErr.Code)
		})
	}
}

func TestGetAvailabilityRejectsOversizedRange(t *testing.T) {
	et := serviceEventType()
	svc := NewAvailabilityService(&stubScheduleRepo{eventType: et}, &stubBookings{}, nil, nil)

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_, appErr := svc.GetAvailability(context.Background(), et.ID, from, from.AddDate(0, 0, 120), false)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidRange, appErr.Code)
}

func TestGetAvailabilityExternalBusyFailureDegrades(t *testing.T) {
	et := serviceEventType()
	repo := &stubScheduleRepo{eventType: et, rules: []scheduleentity.AvailabilityRule{mondayRule(et.ID)}}
	busy := &stubBusySource{err: errors.NewAppError(errors.ErrIntegrationUnavailable, "calendar down", nil)}
	svc := NewAvailabilityService(repo, &stubBookings{}, busy, nil)

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	result, appErr := svc.GetAvailability(context.Background(), et.ID, from, from.AddDate(0, 0, 1), true)
	require.Nil(t, appErr, "a calendar outage must not fail the request")

	assert.Equal(t, 1, busy.calls)
	require.Len(t, result.Slots, 2)
	assert.True(t, result.Slots[0].Available, "internal data alone decides when the calendar is down")
}

func TestGetAvailabilityExternalBusyNarrows(t *testing.T) {
	et := serviceEventType()
	repo := &stubScheduleRepo{eventType: et, rules: []scheduleentity.AvailabilityRule{mondayRule(et.ID)}}
	busy := &stubBusySource{busy: []entity.TimeWindow{{
		Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
	}}}
	svc := NewAvailabilityService(repo, &stubBookings{}, busy, nil)

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	result, appErr := svc.GetAvailability(context.Background(), et.ID, from, from.AddDate(0, 0, 1), true)
	require.Nil(t, appErr)

	require.Len(t, result.Slots, 2)
	assert.False(t, result.Slots[0].Available)
	assert.True(t, result.Slots[1].Available)
}

func TestCheckSlotStillAvailableIgnoresExternalCalendar(t *testing.T) {
	et := serviceEventType()
	repo := &stubScheduleRepo{eventType: et, rules: []scheduleentity.AvailabilityRule{mondayRule(et.ID)}}
	busy := &stubBusySource{busy: []entity.TimeWindow{{
		Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}}}
	svc := NewAvailabilityService(repo, &stubBookings{}, busy, nil)

	decision, appErr := svc.CheckSlotStillAvailable(context.Background(), et.ID,
		time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC))
	require.Nil(t, appErr)

	// Internal records are authoritative at write time.
	assert.True(t, decision.Allowed)
	assert.Zero(t, busy.calls)
}

func TestCheckSlotStillAvailableDeniesBookedSlot(t *testing.T) {
	et := serviceEventType()
	repo := &stubScheduleRepo{eventType: et, rules: []scheduleentity.AvailabilityRule{mondayRule(et.ID)}}
	bookings := &stubBookings{bookings: []bookingentity.Booking{{
		ID:            uuid.New(),
		EventTypeID:   et.ID,
		StartTime:     time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		Status:        bookingentity.BookingStatusConfirmed,
		AttendeeCount: 1,
	}}}
	svc := NewAvailabilityService(repo, bookings, nil, nil)

	decision, appErr := svc.CheckSlotStillAvailable(context.Background(), et.ID,
		time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC))
	require.Nil(t, appErr)

	assert.False(t, decision.Allowed)
	assert.Equal(t, DenyReasonTaken, decision.Reason)
}
