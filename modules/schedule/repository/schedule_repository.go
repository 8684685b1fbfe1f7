package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"go-booking-api/core/database"
	"go-booking-api/core/logger"
	"go-booking-api/modules/schedule/entity"
)

// ScheduleRepository reads and writes the scheduling configuration: event
// types, weekly rules, one-off slots and blocked intervals.
type ScheduleRepository struct {
	DB database.IDatabase
}

func NewScheduleRepository(db database.IDatabase) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

// ScheduleRepositoryInterface defines the repository contract.
type ScheduleRepositoryInterface interface {
	// Event types
	CreateEventType(ctx context.Context, et *entity.EventType) (*entity.EventType, error)
	GetEventTypeByID(ctx context.Context, id uuid.UUID) (*entity.EventType, error)
	GetEventTypeBySlug(ctx context.Context, slug string) (*entity.EventType, error)
	ListEventTypes(ctx context.Context) ([]entity.EventType, error)
	UpdateEventType(ctx context.Context, et *entity.EventType) error
	DeleteEventType(ctx context.Context, id uuid.UUID) error

	// Weekly rules
	CreateRule(ctx context.Context, rule *entity.AvailabilityRule) (*entity.AvailabilityRule, error)
	GetRulesByEventType(ctx context.Context, eventTypeID uuid.UUID) ([]entity.AvailabilityRule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error

	// One-off slots
	CreateOneOffSlot(ctx context.Context, slot *entity.OneOffSlot) (*entity.OneOffSlot, error)
	GetOneOffSlotsInRange(ctx context.Context, eventTypeID uuid.UUID, from, to time.Time) ([]entity.OneOffSlot, error)
	DeleteOneOffSlot(ctx context.Context, id uuid.UUID) error

	// Blocked intervals
	CreateBlockedInterval(ctx context.Context, block *entity.BlockedInterval) (*entity.BlockedInterval, error)
	GetBlockedIntervalsInRange(ctx context.Context, eventTypeID uuid.UUID, from, to time.Time) ([]entity.BlockedInterval, error)
	DeleteBlockedInterval(ctx context.Context, id uuid.UUID) error
}

// ===================== Event types =====================

func (r *ScheduleRepository) CreateEventType(ctx context.Context, et *entity.EventType) (*entity.EventType, error) {
	query := `
		INSERT INTO event_types (owner_id, name, slug, description, duration_minutes,
		                         buffer_before_minutes, buffer_after_minutes, capacity,
		                         requires_approval, is_active, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, owner_id, name, slug, description, duration_minutes,
		          buffer_before_minutes, buffer_after_minutes, capacity,
		          requires_approval, is_active, timezone, created_at, updated_at
	`

	var created entity.EventType
	err := r.DB.GetContext(ctx, &created, query,
		et.OwnerID, et.Name, et.Slug, et.Description, et.DurationMinutes,
		et.BufferBeforeMinutes, et.BufferAfterMinutes, et.Capacity,
		et.RequiresApproval, et.IsActive, et.Timezone)
	if err != nil {
		logger.Error("ScheduleRepository:CreateEventType", err)
		return nil, err
	}

	return &created, nil
}

func (r *ScheduleRepository) GetEventTypeByID(ctx context.Context, id uuid.UUID) (*entity.EventType, error) {
	query := `
		SELECT id, owner_id, name, slug, description, duration_minutes,
		       buffer_before_minutes, buffer_after_minutes, capacity,
		       requires_approval, is_active, timezone, created_at, updated_at
		FROM event_types WHERE id = $1
	`

	var et entity.EventType
	err := r.DB.GetContext(ctx, &et, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ScheduleRepository:GetEventTypeByID", err)
		return nil, err
	}

	return &et, nil
}

func (r *ScheduleRepository) GetEventTypeBySlug(ctx context.Context, slug string) (*entity.EventType, error) {
	query := `
		SELECT id, owner_id, name, slug, description, duration_minutes,
		       buffer_before_minutes, buffer_after_minutes, capacity,
		       requires_approval, is_active, timezone, created_at, updated_at
		FROM event_types WHERE slug = $1
	`

	var et entity.EventType
	err := r.DB.GetContext(ctx, &et, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ScheduleRepository:GetEventTypeBySlug", err)
		return nil, err
	}

	return &et, nil
}

func (r *ScheduleRepository) ListEventTypes(ctx context.Context) ([]entity.EventType, error) {
	query := `
		SELECT id, owner_id, name, slug, description, duration_minutes,
		       buffer_before_minutes, buffer_after_minutes, capacity,
		       requires_approval, is_active, timezone, created_at, updated_at
		FROM event_types
		ORDER BY created_at DESC
	`

	var result []entity.EventType
	if err := r.DB.SelectContext(ctx, &result, query); err != nil {
		logger.Error("ScheduleRepository:ListEventTypes", err)
		return nil, err
	}

	return result, nil
}

func (r *ScheduleRepository) UpdateEventType(ctx context.Context, et *entity.EventType) error {
	query := `
		UPDATE event_types
		SET name = $2, slug = $3, description = $4, duration_minutes = $5,
		    buffer_before_minutes = $6, buffer_after_minutes = $7, capacity = $8,
		    requires_approval = $9, is_active = $10, timezone = $11, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		et.ID, et.Name, et.Slug, et.Description, et.DurationMinutes,
		et.BufferBeforeMinutes, et.BufferAfterMinutes, et.Capacity,
		et.RequiresApproval, et.IsActive, et.Timezone)
	if err != nil {
		logger.Error("ScheduleRepository:UpdateEventType", err)
		return err
	}

	return nil
}

func (r *ScheduleRepository) DeleteEventType(ctx context.Context, id uuid.UUID) error {
	if err := r.DB.ExecContext(ctx, `DELETE FROM event_types WHERE id = $1`, id); err != nil {
		logger.Error("ScheduleRepository:DeleteEventType", err)
		return err
	}
	return nil
}

// ===================== Weekly rules =====================

func (r *ScheduleRepository) CreateRule(ctx context.Context, rule *entity.AvailabilityRule) (*entity.AvailabilityRule, error) {
	query := `
		INSERT INTO availability_rules (event_type_id, day_of_week, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_type_id, day_of_week, start_time, end_time, is_active, created_at, updated_at
	`

	var created entity.AvailabilityRule
	err := r.DB.GetContext(ctx, &created, query,
		rule.EventTypeID, rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.IsActive)
	if err != nil {
		logger.Error("ScheduleRepository:CreateRule", err)
		return nil, err
	}

	return &created, nil
}

func (r *ScheduleRepository) GetRulesByEventType(ctx context.Context, eventTypeID uuid.UUID) ([]entity.AvailabilityRule, error) {
	query := `
		SELECT id, event_type_id, day_of_week, start_time, end_time, is_active, created_at, updated_at
		FROM availability_rules
		WHERE event_type_id = $1
		ORDER BY day_of_week, start_time
	`

	var rules []entity.AvailabilityRule
	if err := r.DB.SelectContext(ctx, &rules, query, eventTypeID); err != nil {
		logger.Error("ScheduleRepository:GetRulesByEventType", err)
		return nil, err
	}

	return rules, nil
}

func (r *ScheduleRepository) DeleteRule(ctx context.Context, id uuid.UUID) error {
	if err := r.DB.ExecContext(ctx, `DELETE FROM availability_rules WHERE id = $1`, id); err != nil {
		logger.Error("ScheduleRepository:DeleteRule", err)
		return err
	}
	return nil
}

// ===================== One-off slots =====================

func (r *ScheduleRepository) CreateOneOffSlot(ctx context.Context, slot *entity.OneOffSlot) (*entity.OneOffSlot, error) {
	query := `
		INSERT INTO one_off_slots (event_type_id, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id, event_type_id, start_time, end_time, created_at
	`

	var created entity.OneOffSlot
	err := r.DB.GetContext(ctx, &created, query, slot.EventTypeID, slot.StartTime, slot.EndTime)
	if err != nil {
		logger.Error("ScheduleRepository:CreateOneOffSlot", err)
		return nil, err
	}

	return &created, nil
}

func (r *ScheduleRepository) GetOneOffSlotsInRange(ctx context.Context, eventTypeID uuid.UUID, from, to time.Time) ([]entity.OneOffSlot, error) {
	query := `
		SELECT id, event_type_id, start_time, end_time, created_at
		FROM one_off_slots
		WHERE event_type_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`

	var slots []entity.OneOffSlot
	if err := r.DB.SelectContext(ctx, &slots, query, eventTypeID, from, to); err != nil {
		logger.Error("ScheduleRepository:GetOneOffSlotsInRange", err)
		return nil, err
	}

	return slots, nil
}

func (r *ScheduleRepository) DeleteOneOffSlot(ctx context.Context, id uuid.UUID) error {
	if err := r.DB.ExecContext(ctx, `DELETE FROM one_off_slots WHERE id = $1`, id); err != nil {
		logger.Error("ScheduleRepository:DeleteOneOffSlot", err)
		return err
	}
	return nil
}

// ===================== Blocked intervals =====================

func (r *ScheduleRepository) CreateBlockedInterval(ctx context.Context, block *entity.BlockedInterval) (*entity.BlockedInterval, error) {
	query := `
		INSERT INTO blocked_intervals (event_type_id, start_time, end_time, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, event_type_id, start_time, end_time, reason, created_at
	`

	var created entity.BlockedInterval
	err := r.DB.GetContext(ctx, &created, query, block.EventTypeID, block.StartTime, block.EndTime, block.Reason)
	if err != nil {
		logger.Error("ScheduleRepository:CreateBlockedInterval", err)
		return nil, err
	}

	return &created, nil
}

// GetBlockedIntervalsInRange returns blocks scoped to the event type plus
// global blocks, overlapping [from, to).
func (r *ScheduleRepository) GetBlockedIntervalsInRange(ctx context.Context, eventTypeID uuid.UUID, from, to time.Time) ([]entity.BlockedInterval, error) {
	query := `
		SELECT id, event_type_id, start_time, end_time, reason, created_at
		FROM blocked_intervals
		WHERE (event_type_id = $1 OR event_type_id IS NULL)
		  AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`

	var blocks []entity.BlockedInterval
	if err := r.DB.SelectContext(ctx, &blocks, query, eventTypeID, from, to); err != nil {
		logger.Error("ScheduleRepository:GetBlockedIntervalsInRange", err)
		return nil, err
	}

	return blocks, nil
}

func (r *ScheduleRepository) DeleteBlockedInterval(ctx context.Context, id uuid.UUID) error {
	if err := r.DB.ExecContext(ctx, `DELETE FROM blocked_intervals WHERE id = $1`, id); err != nil {
		logger.Error("ScheduleRepository:DeleteBlockedInterval", err)
		return err
	}
	return nil
}
