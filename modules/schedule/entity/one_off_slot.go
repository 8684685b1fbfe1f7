package entity

import (
	"time"

	"github.com/google/uuid"
)

// OneOffSlot is an explicit absolute bookable window for exceptional dates
// (a single workshop, an extra evening). Lifecycle is independent from the
// weekly rules.
type OneOffSlot struct {
	ID          uuid.UUID `db:"id" json:"id"`
	EventTypeID uuid.UUID `db:"event_type_id" json:"event_type_id"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
