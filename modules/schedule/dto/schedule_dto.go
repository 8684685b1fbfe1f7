package dto

import (
	"time"

	"go-booking-api/modules/schedule/entity"
)

// ===================== Request DTOs =====================

// CreateEventTypeRequest for creating a bookable event type
type CreateEventTypeRequest struct {
	Name                string `json:"name" validate:"required"`
	Description         string `json:"description"`
	DurationMinutes     int    `json:"duration_minutes" validate:"required,min=5,max=480"`
	BufferBeforeMinutes int    `json:"buffer_before_minutes"`
	BufferAfterMinutes  int    `json:"buffer_after_minutes"`
	Capacity            int    `json:"capacity"`
	RequiresApproval    bool   `json:"requires_approval"`
	Timezone            string `json:"timezone" validate:"required"`
}

// UpdateEventTypeRequest for updating an event type
type UpdateEventTypeRequest struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	DurationMinutes     int    `json:"duration_minutes"`
	BufferBeforeMinutes *int   `json:"buffer_before_minutes"`
	BufferAfterMinutes  *int   `json:"buffer_after_minutes"`
	Capacity            int    `json:"capacity"`
	RequiresApproval    *bool  `json:"requires_approval"`
	IsActive            *bool  `json:"is_active"`
	Timezone            string `json:"timezone"`
}

// CreateRuleRequest for adding a weekly availability rule
type CreateRuleRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"` // "09:00"
	EndTime   string `json:"end_time"`   // "17:00"
}

// CreateOneOffSlotRequest for adding an explicit bookable window
type CreateOneOffSlotRequest struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// CreateBlockedIntervalRequest for blocking out time. EventTypeID empty
// means the block applies globally.
type CreateBlockedIntervalRequest struct {
	EventTypeID string    `json:"event_type_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Reason      string    `json:"reason"`
}

// ===================== Response DTOs =====================

// EventTypeResponse for event type details
type EventTypeResponse struct {
	ID                  string                 `json:"id"`
	Name                string                 `json:"name"`
	Slug                string                 `json:"slug"`
	Description         string                 `json:"description,omitempty"`
	DurationMinutes     int                    `json:"duration_minutes"`
	BufferBeforeMinutes int                    `json:"buffer_before_minutes"`
	BufferAfterMinutes  int                    `json:"buffer_after_minutes"`
	Capacity            int                    `json:"capacity"`
	RequiresApproval    bool                   `json:"requires_approval"`
	IsActive            bool                   `json:"is_active"`
	Timezone            string                 `json:"timezone"`
	Rules               []AvailabilityRuleDTO  `json:"rules,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
}

// AvailabilityRuleDTO for a weekly rule
type AvailabilityRuleDTO struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

// OneOffSlotDTO for an explicit window
type OneOffSlotDTO struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// BlockedIntervalDTO for a blocked period
type BlockedIntervalDTO struct {
	ID          string    `json:"id"`
	EventTypeID string    `json:"event_type_id,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Reason      string    `json:"reason,omitempty"`
}

// ===================== Mapper Functions =====================

// ToEventTypeResponse maps entity to DTO
func ToEventTypeResponse(e *entity.EventType, rules []entity.AvailabilityRule) *EventTypeResponse {
	resp := &EventTypeResponse{
		ID:                  e.ID.String(),
		Name:                e.Name,
		Slug:                e.Slug,
		DurationMinutes:     e.DurationMinutes,
		BufferBeforeMinutes: e.BufferBeforeMinutes,
		BufferAfterMinutes:  e.BufferAfterMinutes,
		Capacity:            e.Capacity,
		RequiresApproval:    e.RequiresApproval,
		IsActive:            e.IsActive,
		Timezone:            e.Timezone,
		CreatedAt:           e.CreatedAt,
	}

	if e.Description != nil {
		resp.Description = *e.Description
	}

	for _, r := range rules {
		resp.Rules = append(resp.Rules, ToRuleDTO(&r))
	}

	return resp
}

// ToRuleDTO maps a rule entity to DTO
func ToRuleDTO(r *entity.AvailabilityRule) AvailabilityRuleDTO {
	return AvailabilityRuleDTO{
		ID:        r.ID.String(),
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		IsActive:  r.IsActive,
	}
}

// ToOneOffSlotDTO maps a one-off slot entity to DTO
func ToOneOffSlotDTO(s *entity.OneOffSlot) OneOffSlotDTO {
	return OneOffSlotDTO{
		ID:        s.ID.String(),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}

// ToBlockedIntervalDTO maps a blocked interval entity to DTO
func ToBlockedIntervalDTO(b *entity.BlockedInterval) BlockedIntervalDTO {
	resp := BlockedIntervalDTO{
		ID:        b.ID.String(),
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
	if b.EventTypeID != nil {
		resp.EventTypeID = b.EventTypeID.String()
	}
	if b.Reason != nil {
		resp.Reason = *b.Reason
	}
	return resp
}
