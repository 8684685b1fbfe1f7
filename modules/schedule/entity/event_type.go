package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventType is the bookable event configuration. The availability engine
// treats it as immutable per request.
type EventType struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	OwnerID             *uuid.UUID `db:"owner_id" json:"owner_id,omitempty"`
	Name                string     `db:"name" json:"name"`
	Slug                string     `db:"slug" json:"slug"`
	Description         *string    `db:"description" json:"description,omitempty"`
	DurationMinutes     int        `db:"duration_minutes" json:"duration_minutes"`
	BufferBeforeMinutes int        `db:"buffer_before_minutes" json:"buffer_before_minutes"`
	BufferAfterMinutes  int        `db:"buffer_after_minutes" json:"buffer_after_minutes"`
	Capacity            int        `db:"capacity" json:"capacity"`
	RequiresApproval    bool       `db:"requires_approval" json:"requires_approval"`
	IsActive            bool       `db:"is_active" json:"is_active"`
	Timezone            string     `db:"timezone" json:"timezone"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

func (e *EventType) Duration() time.Duration {
	return time.Duration(e.DurationMinutes) * time.Minute
}

func (e *EventType) BufferBefore() time.Duration {
	return time.Duration(e.BufferBeforeMinutes) * time.Minute
}

func (e *EventType) BufferAfter() time.Duration {
	return time.Duration(e.BufferAfterMinutes) * time.Minute
}
