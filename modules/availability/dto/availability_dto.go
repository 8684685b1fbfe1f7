package dto

import (
	"time"

	"go-booking-api/modules/availability/entity"
)

// ===================== Request DTOs =====================

// AvailabilityQuery carries the raw query parameters for an availability
// request. Dates are either RFC3339 or "YYYY-MM-DD" (resolved in the event
// type's timezone).
type AvailabilityQuery struct {
	From            string `query:"from"`
	To              string `query:"to"`
	IncludeCalendar bool   `query:"calendar"`
}

// ===================== Response DTOs =====================

// ComputedSlotDTO is one bookable slot in an availability response
type ComputedSlotDTO struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Available      bool      `json:"available"`
	RemainingSeats int       `json:"remaining_seats"`
	DayOfWeek      string    `json:"day_of_week"`
	FormattedDate  string    `json:"formatted_date"`
	FormattedTime  string    `json:"formatted_time"`
}

// AvailabilityResponse is the full slot list for a queried range
type AvailabilityResponse struct {
	EventTypeID string            `json:"event_type_id"`
	EventName   string            `json:"event_name"`
	Timezone    string            `json:"timezone"`
	RangeStart  time.Time         `json:"range_start"`
	RangeEnd    time.Time         `json:"range_end"`
	Slots       []ComputedSlotDTO `json:"slots"`
}

// ===================== Mapper Functions =====================

// ToComputedSlotDTO maps an engine slot to its response shape, rendering
// display fields in the given location.
func ToComputedSlotDTO(s entity.ComputedSlot, loc *time.Location) ComputedSlotDTO {
	start := s.Start.In(loc)
	end := s.End.In(loc)

	return ComputedSlotDTO{
		Start:          s.Start,
		End:            s.End,
		Available:      s.Available,
		RemainingSeats: s.RemainingSeats,
		DayOfWeek:      start.Weekday().String(),
		FormattedDate:  start.Format("02/01/2006"),
		FormattedTime:  start.Format("15:04") + " - " + end.Format("15:04"),
	}
}
