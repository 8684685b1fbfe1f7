package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AvailabilityRule is a weekly recurring bookable window: "every Monday
// 09:00-17:00" in the event type's timezone. Rules are independent and may
// overlap; overlap is idempotent, not additive.
type AvailabilityRule struct {
	ID          uuid.UUID `db:"id" json:"id"`
	EventTypeID uuid.UUID `db:"event_type_id" json:"event_type_id"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime   string    `db:"start_time" json:"start_time"`   // "09:00" local
	EndTime     string    `db:"end_time" json:"end_time"`       // "17:00" local
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ParseTimeOfDay parses an "HH:MM" rule time into hour and minute.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	if _, err = fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time of day %q out of range", s)
	}
	return hour, minute, nil
}

// MinuteOfDay converts an "HH:MM" string to minutes from midnight.
func MinuteOfDay(s string) (int, error) {
	h, m, err := ParseTimeOfDay(s)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}
