package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-booking-api/core/errors"
	"go-booking-api/modules/schedule/dto"
	"go-booking-api/modules/schedule/entity"
)

// memScheduleRepo is an in-memory ScheduleRepositoryInterface for service
// tests.
type memScheduleRepo struct {
	eventTypes map[uuid.UUID]*entity.EventType
	rules      []entity.AvailabilityRule
	oneOffs    []entity.OneOffSlot
	blocked    []entity.BlockedInterval
}

func newMemScheduleRepo() *memScheduleRepo {
	return &memScheduleRepo{eventTypes: map[uuid.UUID]*entity.EventType{}}
}

func (m *memScheduleRepo) CreateEventType(_ context.Context, et *entity.EventType) (*entity.EventType, error) {
	created := *et
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	m.eventTypes[created.ID] = &created
	return &created, nil
}

func (m *memScheduleRepo) GetEventTypeByID(_ context.Context, id uuid.UUID) (*entity.EventType, error) {
	return m.eventTypes[id], nil
}

func (m *memScheduleRepo) GetEventTypeBySlug(_ context.Context, slug string) (*entity.EventType, error) {
	for _, et := range m.eventTypes {
		if et.Slug == slug {
			return et, nil
		}
	}
	return nil, nil
}

func (m *memScheduleRepo) ListEventTypes(_ context.Context) ([]entity.EventType, error) {
	out := make([]entity.EventType, 0, len(m.eventTypes))
	for _, et := range m.eventTypes {
		out = append(out, *et)
	}
	return out, nil
}

func (m *memScheduleRepo) UpdateEventType(_ context.Context, et *entity.EventType) error {
	m.eventTypes[et.ID] = et
	return nil
}

func (m *memScheduleRepo) DeleteEventType(_ context.Context, id uuid.UUID) error {
	delete(m.eventTypes, id)
	return nil
}

func (m *memScheduleRepo) CreateRule(_ context.Context, rule *entity.AvailabilityRule) (*entity.AvailabilityRule, error) {
	created := *rule
	created.ID = uuid.New()
	m.rules = append(m.rules, created)
	return &created, nil
}

func (m *memScheduleRepo) GetRulesByEventType(_ context.Context, eventTypeID uuid.UUID) ([]entity.AvailabilityRule, error) {
	var out []entity.AvailabilityRule
	for _, r := range m.rules {
		if r.EventTypeID == eventTypeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memScheduleRepo) DeleteRule(_ context.Context, id uuid.UUID) error {
	for i, r := range m.rules {
		if r.ID == id {
			m.rules = append(m.rules[:i], m.rules[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memScheduleRepo) CreateOneOffSlot(_ context.Context, slot *entity.OneOffSlot) (*entity.OneOffSlot, error) {
	created := *slot
	created.ID = uuid.New()
	m.oneOffs = append(m.oneOffs, created)
	return &created, nil
}

func (m *memScheduleRepo) GetOneOffSlotsInRange(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]entity.OneOffSlot, error) {
	return m.oneOffs, nil
}

func (m *memScheduleRepo) DeleteOneOffSlot(_ context.Context, _ uuid.UUID) error { return nil }

func (m *memScheduleRepo) CreateBlockedInterval(_ context.Context, block *entity.BlockedInterval) (*entity.BlockedInterval, error) {
	created := *block
	created.ID = uuid.New()
	m.blocked = append(m.blocked, created)
	return &created, nil
}

func (m *memScheduleRepo) GetBlockedIntervalsInRange(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]entity.BlockedInterval, error) {
	return m.blocked, nil
}

func (m *memScheduleRepo) DeleteBlockedInterval(_ context.Context, _ uuid.UUID) error { return nil }

func validCreateRequest() *dto.CreateEventTypeRequest {
	return &dto.CreateEventTypeRequest{
		Name:            "Intro Call",
		DurationMinutes: 30,
		Capacity:        1,
		Timezone:        "Europe/Berlin",
	}
}

func TestCreateEventType(t *testing.T) {
	svc := NewScheduleService(newMemScheduleRepo())

	result, appErr := svc.CreateEventType(context.Background(), uuid.New(), validCreateRequest())
	require.Nil(t, appErr)

	assert.Equal(t, "Intro Call", result.Name)
	assert.Equal(t, "intro-call", result.Slug)
	assert.True(t, result.IsActive)
}

func TestCreateEventTypeDefaultsCapacity(t *testing.T) {
	svc := NewScheduleService(newMemScheduleRepo())

	req := validCreateRequest()
	req.Capacity = 0

	result, appErr := svc.CreateEventType(context.Background(), uuid.New(), req)
	require.Nil(t, appErr)
	assert.Equal(t, 1, result.Capacity)
}

func TestCreateEventTypeRejectsBadConfig(t *testing.T) {
	svc := NewScheduleService(newMemScheduleRepo())

	tests := []struct {
		name     string
		mutate   func(*dto.CreateEventTypeRequest)
		wantCode errors.ErrorCode
	}{
		{"missing name", func(r *dto.CreateEventTypeRequest) { r.Name = "" }, errors.ErrInvalidInput},
		{"zero duration", func(r *dto.CreateEventTypeRequest) { r.DurationMinutes = 0 }, errors.ErrInvalidConfiguration},
		{"negative duration", func(r *dto.CreateEventTypeRequest) { r.DurationMinutes = -15 }, errors.ErrInvalidConfiguration},
		{"negative buffer", func(r *dto.CreateEventTypeRequest) { r.BufferBeforeMinutes = -5 }, errors.ErrInvalidConfiguration},
		{"negative capacity", func(r *dto.CreateEventTypeRequest) { r.Capacity = -2 }, errors.ErrInvalidConfiguration},
		{"unknown timezone", func(r *dto.CreateEventTypeRequest) { r.Timezone = "Mars/Olympus" }, errors.ErrInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, appErr := svc.CreateEventType(context.Background(), uuid.New(), req)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestUpdateEventTypeRevalidates(t *testing.T) {
	repo := newMemScheduleRepo()
	svc := NewScheduleService(repo)

	created, appErr := svc.CreateEventType(context.Background(), uuid.New(), validCreateRequest())
	require.Nil(t, appErr)
	id := uuid.MustParse(created.ID)

	bad := -10
	_, appErr = svc.UpdateEventType(context.Background(), id, &dto.UpdateEventTypeRequest{
		BufferBeforeMinutes: &bad,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidConfiguration, appErr.Code)
}

func TestAddRule(t *testing.T) {
	repo := newMemScheduleRepo()
	svc := NewScheduleService(repo)

	created, appErr := svc.CreateEventType(context.Background(), uuid.New(), validCreateRequest())
	require.Nil(t, appErr)
	id := uuid.MustParse(created.ID)

	rule, appErr := svc.AddRule(context.Background(), id, &dto.CreateRuleRequest{
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	require.Nil(t, appErr)
	assert.Equal(t, 1, rule.DayOfWeek)
	assert.True(t, rule.IsActive)
}

func TestAddRuleRejectsBadRules(t *testing.T) {
	repo := newMemScheduleRepo()
	svc := NewScheduleService(repo)

	created, appErr := svc.CreateEventType(context.Background(), uuid.New(), validCreateRequest())
	require.Nil(t, appErr)
	id := uuid.MustParse(created.ID)

	tests := []struct {
		name string
		req  dto.CreateRuleRequest
	}{
		{"day too large", dto.CreateRuleRequest{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"}},
		{"negative day", dto.CreateRuleRequest{DayOfWeek: -1, StartTime: "09:00", EndTime: "17:00"}},
		{"bad start", dto.CreateRuleRequest{DayOfWeek: 1, StartTime: "morning", EndTime: "17:00"}},
		{"end before start", dto.CreateRuleRequest{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"}},
		{"end equals start", dto.CreateRuleRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, appErr := svc.AddRule(context.Background(), id, &tt.req)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrInvalidConfiguration, appErr.Code)
		})
	}
}

func TestAddRuleUnknownEventType(t *testing.T) {
	svc := NewScheduleService(newMemScheduleRepo())

	_, appErr := svc.AddRule(context.Background(), uuid.New(), &dto.CreateRuleRequest{
		DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestAddOneOffSlotRejectsInvertedWindow(t *testing.T) {
	repo := newMemScheduleRepo()
	svc := NewScheduleService(repo)

	created, appErr := svc.CreateEventType(context.Background(), uuid.New(), validCreateRequest())
	require.Nil(t, appErr)
	id := uuid.MustParse(created.ID)

	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, appErr = svc.AddOneOffSlot(context.Background(), id, &dto.CreateOneOffSlotRequest{
		StartTime: at,
		EndTime:   at.Add(-time.Hour),
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidConfiguration, appErr.Code)
}

func TestAddBlockedIntervalGlobal(t *testing.T) {
	repo := newMemScheduleRepo()
	svc := NewScheduleService(repo)

	at := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	block, appErr := svc.AddBlockedInterval(context.Background(), &dto.CreateBlockedIntervalRequest{
		StartTime: at,
		EndTime:   at.Add(24 * time.Hour),
		Reason:    "public holiday",
	})
	require.Nil(t, appErr)
	assert.Empty(t, block.EventTypeID, "no event type means a global block")
}
