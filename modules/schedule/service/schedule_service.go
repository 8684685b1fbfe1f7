package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"go-booking-api/core/errors"
	"go-booking-api/modules/schedule/dto"
	"go-booking-api/modules/schedule/entity"
	"go-booking-api/modules/schedule/repository"
)

// ScheduleService manages the scheduling configuration. All invariants on
// event types and rules are enforced here, at the boundary, so the
// availability engine can trust its inputs.
type ScheduleService struct {
	repo repository.ScheduleRepositoryInterface
}

// ScheduleServiceInterface defines the service contract.
type ScheduleServiceInterface interface {
	CreateEventType(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventTypeRequest) (*dto.EventTypeResponse, *errors.AppError)
	GetEventType(ctx context.Context, id uuid.UUID) (*dto.EventTypeResponse, *errors.AppError)
	ListEventTypes(ctx context.Context) ([]dto.EventTypeResponse, *errors.AppError)
	UpdateEventType(ctx context.Context, id uuid.UUID, req *dto.UpdateEventTypeRequest) (*dto.EventTypeResponse, *errors.AppError)
	DeleteEventType(ctx context.Context, id uuid.UUID) *errors.AppError

	AddRule(ctx context.Context, eventTypeID uuid.UUID, req *dto.CreateRuleRequest) (*dto.AvailabilityRuleDTO, *errors.AppError)
	DeleteRule(ctx context.Context, id uuid.UUID) *errors.AppError

	AddOneOffSlot(ctx context.Context, eventTypeID uuid.UUID, req *dto.CreateOneOffSlotRequest) (*dto.OneOffSlotDTO, *errors.AppError)
	DeleteOneOffSlot(ctx context.Context, id uuid.UUID) *errors.AppError

	AddBlockedInterval(ctx context.Context, req *dto.CreateBlockedIntervalRequest) (*dto.BlockedIntervalDTO, *errors.AppError)
	DeleteBlockedInterval(ctx context.Context, id uuid.UUID) *errors.AppError
}

func NewScheduleService(repo repository.ScheduleRepositoryInterface) ScheduleServiceInterface {
	return &ScheduleService{repo: repo}
}

// CreateEventType validates and persists a new bookable event type.
func (s *ScheduleService) CreateEventType(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventTypeRequest) (*dto.EventTypeResponse, *errors.AppError) {
	if req.Name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Name is required", nil)
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}

	if appErr := validateEventTypeConfig(req.DurationMinutes, req.BufferBeforeMinutes, req.BufferAfterMinutes, capacity, req.Timezone); appErr != nil {
		return nil, appErr
	}

	et := &entity.EventType{
		OwnerID:             &ownerID,
		Name:                req.Name,
		Slug:                slug.Make(req.Name),
		DurationMinutes:     req.DurationMinutes,
		BufferBeforeMinutes: req.BufferBeforeMinutes,
		BufferAfterMinutes:  req.BufferAfterMinutes,
		Capacity:            capacity,
		RequiresApproval:    req.RequiresApproval,
		IsActive:            true,
		Timezone:            req.Timezone,
	}
	if req.Description != "" {
		et.Description = &req.Description
	}

	created, err := s.repo.CreateEventType(ctx, et)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create event type", err)
	}

	return dto.ToEventTypeResponse(created, nil), nil
}

func (s *ScheduleService) GetEventType(ctx context.Context, id uuid.UUID) (*dto.EventTypeResponse, *errors.AppError) {
	et, err := s.repo.GetEventTypeByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event type", err)
	}
	if et == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event type not found", nil)
	}

	rules, _ := s.repo.GetRulesByEventType(ctx, id)
	return dto.ToEventTypeResponse(et, rules), nil
}

func (s *ScheduleService) ListEventTypes(ctx context.Context) ([]dto.EventTypeResponse, *errors.AppError) {
	eventTypes, err := s.repo.ListEventTypes(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list event types", err)
	}

	result := make([]dto.EventTypeResponse, 0, len(eventTypes))
	for _, et := range eventTypes {
		result = append(result, *dto.ToEventTypeResponse(&et, nil))
	}
	return result, nil
}

func (s *ScheduleService) UpdateEventType(ctx context.Context, id uuid.UUID, req *dto.UpdateEventTypeRequest) (*dto.EventTypeResponse, *errors.AppError) {
	et, err := s.repo.GetEventTypeByID(ctx, id)
	if err != nil || et == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event type not found", err)
	}

	if req.Name != "" {
		et.Name = req.Name
		et.Slug = slug.Make(req.Name)
	}
	if req.Description != "" {
		et.Description = &req.Description
	}
	if req.DurationMinutes > 0 {
		et.DurationMinutes = req.DurationMinutes
	}
	if req.BufferBeforeMinutes != nil {
		et.BufferBeforeMinutes = *req.BufferBeforeMinutes
	}
	if req.BufferAfterMinutes != nil {
		et.BufferAfterMinutes = *req.BufferAfterMinutes
	}
	if req.Capacity > 0 {
		et.Capacity = req.Capacity
	}
	if req.RequiresApproval != nil {
		et.RequiresApproval = *req.RequiresApproval
	}
	if req.IsActive != nil {
		et.IsActive = *req.IsActive
	}
	if req.Timezone != "" {
		et.Timezone = req.Timezone
	}

	if appErr := validateEventTypeConfig(et.DurationMinutes, et.BufferBeforeMinutes, et.BufferAfterMinutes, et.Capacity, et.Timezone); appErr != nil {
		return nil, appErr
	}

	if err := s.repo.UpdateEventType(ctx, et); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update event type", err)
	}

	return s.GetEventType(ctx, id)
}

func (s *ScheduleService) DeleteEventType(ctx context.Context, id uuid.UUID) *errors.AppError {
	et, err := s.repo.GetEventTypeByID(ctx, id)
	if err != nil || et == nil {
		return errors.NewAppError(errors.ErrNotFound, "Event type not found", err)
	}

	if err := s.repo.DeleteEventType(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete event type", err)
	}
	return nil
}

// AddRule validates and persists a weekly availability rule.
func (s *ScheduleService) AddRule(ctx context.Context, eventTypeID uuid.UUID, req *dto.CreateRuleRequest) (*dto.AvailabilityRuleDTO, *errors.AppError) {
	et, err := s.repo.GetEventTypeByID(ctx, eventTypeID)
	if err != nil || et == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event type not found", err)
	}

	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, errors.NewAppError(errors.ErrInvalidConfiguration, "Day of week must be 0 (Sunday) through 6 (Saturday)", nil)
	}

	startMin, err := entity.MinuteOfDay(req.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidConfiguration, "Invalid start time", err)
	}
	endMin, err := entity.MinuteOfDay(req.EndTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidConfiguration, "Invalid end time", err)
	}
	if endMin <= startMin {
		return nil, errors.NewAppError(errors.ErrInvalidConfiguration, "Rule end time must be after start time", nil)
	}

	rule := &entity.AvailabilityRule{
		EventTypeID: eventTypeID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsActive:    true,
	}

	created, err := s.repo.CreateRule(ctx, rule)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create rule", err)
	}

	result := dto.ToRuleDTO(created)
	return &result, nil
}

func (s *ScheduleService) DeleteRule(ctx context.Context, id uuid.UUID) *errors.AppError {
	if err := s.repo.DeleteRule(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete rule", err)
	}
	return nil
}

// AddOneOffSlot validates and persists an explicit bookable window.
func (s *ScheduleService) AddOneOffSlot(ctx context.Context, eventTypeID uuid.UUID, req *dto.CreateOneOffSlotRequest) (*dto.OneOffSlotDTO, *errors.AppError) {
	et, err := s.repo.GetEventTypeByID(ctx, eventTypeID)
	if err != nil || et == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event type not found", err)
	}

	if !req.EndTime.After(req.StartTime) {
		return nil, errors.NewAppError(errors.ErrInvalidConfiguration, "Slot end must be after start", nil)
	}

	slot := &entity.OneOffSlot{
		EventTypeID: eventTypeID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}

	created, err := s.repo.CreateOneOffSlot(ctx, slot)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create one-off slot", err)
	}

	result := dto.ToOneOffSlotDTO(created)
	return &result, nil
}

func (s *ScheduleService) DeleteOneOffSlot(ctx context.Context, id uuid.UUID) *errors.AppError {
	if err := s.repo.DeleteOneOffSlot(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete one-off slot", err)
	}
	return nil
}

// AddBlockedInterval validates and persists a blocked period. An empty
// event type ID blocks all event types.
func (s *ScheduleService) AddBlockedInterval(ctx context.Context, req *dto.CreateBlockedIntervalRequest) (*dto.BlockedIntervalDTO, *errors.AppError) {
	if !req.EndTime.After(req.StartTime) {
		return nil, errors.NewAppError(errors.ErrInvalidConfiguration, "Blocked interval end must be after start", nil)
	}

	block := &entity.BlockedInterval{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if req.Reason != "" {
		block.Reason = &req.Reason
	}
	if req.EventTypeID != "" {
		id, err := uuid.Parse(req.EventTypeID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid event type ID", err)
		}
		et, err := s.repo.GetEventTypeByID(ctx, id)
		if err != nil || et == nil {
			return nil, errors.NewAppError(errors.ErrNotFound, "Event type not found", err)
		}
		block.EventTypeID = &id
	}

	created, err := s.repo.CreateBlockedInterval(ctx, block)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create blocked interval", err)
	}

	result := dto.ToBlockedIntervalDTO(created)
	return &result, nil
}

func (s *ScheduleService) DeleteBlockedInterval(ctx context.Context, id uuid.UUID) *errors.AppError {
	if err := s.repo.DeleteBlockedInterval(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete blocked interval", err)
	}
	return nil
}

// validateEventTypeConfig enforces the event type invariants: duration > 0,
// buffers >= 0, capacity >= 1, resolvable timezone. Violations surface
// immediately, never silently corrected.
func validateEventTypeConfig(durationMinutes, bufferBefore, bufferAfter, capacity int, timezone string) *errors.AppError {
	if durationMinutes <= 0 {
		return errors.NewAppError(errors.ErrInvalidConfiguration, "Duration must be positive", nil)
	}
	if bufferBefore < 0 || bufferAfter < 0 {
		return errors.NewAppError(errors.ErrInvalidConfiguration, "Buffers must not be negative", nil)
	}
	if capacity < 1 {
		return errors.NewAppError(errors.ErrInvalidConfiguration, "Capacity must be at least 1", nil)
	}
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return errors.NewAppError(errors.ErrInvalidConfiguration, "Unknown timezone", err)
		}
	}
	return nil
}
