package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-booking-api/core/errors"
	availabilitydto "go-booking-api/modules/availability/dto"
	availabilityservice "go-booking-api/modules/availability/service"
	"go-booking-api/modules/booking/dto"
	"go-booking-api/modules/booking/entity"
	"go-booking-api/modules/booking/repository"
	scheduleentity "go-booking-api/modules/schedule/entity"
)

// ===================== fakes =====================

type fakeBookingRepo struct {
	created     []entity.Booking
	capacityErr error
	bookings    map[uuid.UUID]*entity.Booking
	statusSet   map[uuid.UUID]entity.BookingStatus
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:  map[uuid.UUID]*entity.Booking{},
		statusSet: map[uuid.UUID]entity.BookingStatus{},
	}
}

func (f *fakeBookingRepo) CreateWithCapacityGuard(_ context.Context, booking *entity.Booking, _ int) (*entity.Booking, error) {
	if f.capacityErr != nil {
		return nil, f.capacityErr
	}
	created := *booking
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	f.created = append(f.created, created)
	f.bookings[created.ID] = &created
	return &created, nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, reference string) (*entity.Booking, error) {
	for _, b := range f.bookings {
		if b.Reference == reference {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) GetActiveBookingsInRange(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]entity.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) ListByEventType(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]entity.Booking, error) {
	out := make([]entity.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) error {
	f.statusSet[id] = status
	if b, ok := f.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

type fakeScheduleRepo struct {
	eventType *scheduleentity.EventType
}

func (f *fakeScheduleRepo) CreateEventType(_ context.Context, et *scheduleentity.EventType) (*scheduleentity.EventType, error) {
	return et, nil
}
func (f *fakeScheduleRepo) GetEventTypeByID(_ context.Context, _ uuid.UUID) (*scheduleentity.EventType, error) {
	return f.eventType, nil
}
func (f *fakeScheduleRepo) GetEventTypeBySlug(_ context.Context, slug string) (*scheduleentity.EventType, error) {
	if f.eventType != nil && f.eventType.Slug == slug {
		return f.eventType, nil
	}
	return nil, nil
}
func (f *fakeScheduleRepo) ListEventTypes(_ context.Context) ([]scheduleentity.EventType, error) {
	return nil, nil
}
func (f *fakeScheduleRepo) UpdateEventType(_ context.Context, _ *scheduleentity.EventType) error {
	return nil
}
func (f *fakeScheduleRepo) DeleteEventType(_ context.Context, _ uuid.UUID) error { return nil }
func (f *fakeScheduleRepo) CreateRule(_ context.Context, r *scheduleentity.AvailabilityRule) (*scheduleentity.AvailabilityRule, error) {
	return r, nil
}
func (f *fakeScheduleRepo) GetRulesByEventType(_ context.Context, _ uuid.UUID) ([]scheduleentity.AvailabilityRule, error) {
	return nil, nil
}
func (f *fakeScheduleRepo) DeleteRule(_ context.Context, _ uuid.UUID) error { return nil }
func (f *fakeScheduleRepo) CreateOneOffSlot(_ context.Context, s *scheduleentity.OneOffSlot) (*scheduleentity.OneOffSlot, error) {
	return s, nil
}
func (f *fakeScheduleRepo) GetOneOffSlotsInRange(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]scheduleentity.OneOffSlot, error) {
	return nil, nil
}
func (f *fakeScheduleRepo) DeleteOneOffSlot(_ context.Context, _ uuid.UUID) error { return nil }
func (f *fakeScheduleRepo) CreateBlockedInterval(_ context.Context, b *scheduleentity.BlockedInterval) (*scheduleentity.BlockedInterval, error) {
	return b, nil
}
func (f *fakeScheduleRepo) GetBlockedIntervalsInRange(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]scheduleentity.BlockedInterval, error) {
	return nil, nil
}
func (f *fakeScheduleRepo) DeleteBlockedInterval(_ context.Context, _ uuid.UUID) error { return nil }

type fakeAvailability struct {
	decision     availabilityservice.SlotDecision
	invalidated  int
	checkedStart time.Time
	checkedEnd   time.Time
}

func (f *fakeAvailability) GetAvailabilityBySlug(_ context.Context, _ string, _ *availabilitydto.AvailabilityQuery) (*availabilitydto.AvailabilityResponse, *errors.AppError) {
	return nil, nil
}

func (f *fakeAvailability) GetAvailability(_ context.Context, _ uuid.UUID, _, _ time.Time, _ bool) (*availabilitydto.AvailabilityResponse, *errors.AppError) {
	return nil, nil
}

func (f *fakeAvailability) CheckSlotStillAvailable(_ context.Context, _ uuid.UUID, start, end time.Time) (*availabilityservice.SlotDecision, *errors.AppError) {
	f.checkedStart = start
	f.checkedEnd = end
	d := f.decision
	return &d, nil
}

func (f *fakeAvailability) InvalidateCache(_ context.Context, _ uuid.UUID) {
	f.invalidated++
}

// ===================== tests =====================

var slotStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func testEventType() *scheduleentity.EventType {
	return &scheduleentity.EventType{
		ID:              uuid.New(),
		Name:            "Consultation",
		Slug:            "consultation",
		DurationMinutes: 30,
		Capacity:        2,
		IsActive:        true,
		Timezone:        "UTC",
	}
}

func newService(et *scheduleentity.EventType, avail *fakeAvailability, repo *fakeBookingRepo) BookingServiceInterface {
	return NewBookingService(repo, &fakeScheduleRepo{eventType: et}, avail, nil)
}

func TestCreateBookingSuccess(t *testing.T) {
	et := testEventType()
	repo := newFakeBookingRepo()
	avail := &fakeAvailability{decision: availabilityservice.SlotDecision{Allowed: true, RemainingSeats: 2}}
	svc := newService(et, avail, repo)

	result, appErr := svc.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		EventTypeSlug: "consultation",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		StartTime:     slotStart,
		AttendeeCount: 1,
	})
	require.Nil(t, appErr)

	assert.Equal(t, string(entity.BookingStatusConfirmed), result.Status)
	assert.NotEmpty(t, result.Reference)
	assert.Equal(t, slotStart.Add(30*time.Minute), result.EndTime)
	assert.Equal(t, 1, avail.invalidated, "cache must be invalidated after a write")

	// The guard must have been asked about exactly the requested slot.
	assert.Equal(t, slotStart, avail.checkedStart)
	assert.Equal(t, slotStart.Add(30*time.Minute), avail.checkedEnd)
}

func TestCreateBookingPendingWhenApprovalRequired(t *testing.T) {
	et := testEventType()
	et.RequiresApproval = true
	repo := newFakeBookingRepo()
	avail := &fakeAvailability{decision: availabilityservice.SlotDecision{Allowed: true, RemainingSeats: 2}}
	svc := newService(et, avail, repo)

	result, appErr := svc.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		EventTypeSlug: "consultation",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		StartTime:     slotStart,
	})
	require.Nil(t, appErr)
	assert.Equal(t, string(entity.BookingStatusPending), result.Status)
}

func TestCreateBookingDeniedSlot(t *testing.T) {
	et := testEventType()
	repo := newFakeBookingRepo()
	avail := &fakeAvailability{decision: availabilityservice.SlotDecision{Allowed: false, Reason: availabilityservice.DenyReasonTaken}}
	svc := newService(et, avail, repo)

	_, appErr := svc.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		EventTypeSlug: "consultation",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		StartTime:     slotStart,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrSlotConflict, appErr.Code)
	assert.Empty(t, repo.created, "no write on a denied slot")
	assert.Zero(t, avail.invalidated)
}

func TestCreateBookingNotEnoughSeats(t *testing.T) {
	et := testEventType()
	repo := newFakeBookingRepo()
	avail := &fakeAvailability{decision: availabilityservice.SlotDecision{Allowed: true, RemainingSeats: 1}}
	svc := newService(et, avail, repo)

	_, appErr := svc.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		EventTypeSlug: "consultation",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		StartTime:     slotStart,
		AttendeeCount: 2,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrSlotConflict, appErr.Code)
}

func TestCreateBookingCapacityRaceMapsToConflict(t *testing.T) {
	et := testEventType()
	repo := newFakeBookingRepo()
	repo.capacityErr = repository.ErrCapacityExceeded
	avail := &fakeAvailability{decision: availabilityservice.SlotDecision{Allowed: true, RemainingSeats: 1}}
	svc := newService(et, avail, repo)

	_, appErr := svc.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		EventTypeSlug: "consultation",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		StartTime:     slotStart,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrSlotConflict, appErr.Code)
	assert.Zero(t, avail.invalidated)
}

func TestCreateBookingUnknownEventType(t *testing.T) {
	repo := newFakeBookingRepo()
	avail := &fakeAvailability{decision: availabilityservice.SlotDecision{Allowed: true, RemainingSeats: 1}}
	svc := newService(nil, avail, repo)

	_, appErr := svc.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		EventTypeSlug: "missing",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		StartTime:     slotStart,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestCreateBookingValidation(t *testing.T) {
	et := testEventType()
	svc := newService(et, &fakeAvailability{}, newFakeBookingRepo())

	tests := []struct {
		name string
		req  dto.CreateBookingRequest
	}{
		{"missing slug", dto.CreateBookingRequest{CustomerName: "A", CustomerEmail: "a@b.c", StartTime: slotStart}},
		{"missing customer", dto.CreateBookingRequest{EventTypeSlug: "consultation", StartTime: slotStart}},
		{"missing start", dto.CreateBookingRequest{EventTypeSlug: "consultation", CustomerName: "A", CustomerEmail: "a@b.c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, appErr := svc.CreateBooking(context.Background(), &tt.req)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
		})
	}
}

func TestCancelBooking(t *testing.T) {
	et := testEventType()
	repo := newFakeBookingRepo()
	avail := &fakeAvailability{decision: availabilityservice.SlotDecision{Allowed: true, RemainingSeats: 2}}
	svc := newService(et, avail, repo)

	created, appErr := svc.CreateBooking(context.Background(), &dto.CreateBookingRequest{
		EventTypeSlug: "consultation",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		StartTime:     slotStart,
	})
	require.Nil(t, appErr)
	id := uuid.MustParse(created.ID)

	cancelled, appErr := svc.CancelBooking(context.Background(), id)
	require.Nil(t, appErr)
	assert.Equal(t, string(entity.BookingStatusCancelled), cancelled.Status)
	assert.Equal(t, 2, avail.invalidated, "create and cancel each invalidate")

	// Cancelling again is a no-op.
	again, appErr := svc.CancelBooking(context.Background(), id)
	require.Nil(t, appErr)
	assert.Equal(t, string(entity.BookingStatusCancelled), again.Status)
	assert.Equal(t, 2, avail.invalidated)
}
