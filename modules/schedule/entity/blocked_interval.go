package entity

import (
	"time"

	"github.com/google/uuid"
)

// BlockedInterval removes availability: holidays, maintenance, manual holds.
// A nil EventTypeID blocks every event type.
type BlockedInterval struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	EventTypeID *uuid.UUID `db:"event_type_id" json:"event_type_id,omitempty"`
	StartTime   time.Time  `db:"start_time" json:"start_time"`
	EndTime     time.Time  `db:"end_time" json:"end_time"`
	Reason      *string    `db:"reason" json:"reason,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// AppliesTo reports whether the block affects the given event type.
func (b *BlockedInterval) AppliesTo(eventTypeID uuid.UUID) bool {
	return b.EventTypeID == nil || *b.EventTypeID == eventTypeID
}
