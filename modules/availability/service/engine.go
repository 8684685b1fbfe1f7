package service

import (
	"sort"
	"time"

	"go-booking-api/modules/availability/entity"
	bookingentity "go-booking-api/modules/booking/entity"
	scheduleentity "go-booking-api/modules/schedule/entity"

	"go-booking-api/core/errors"
)

// SlotEngine computes bookable slots from a snapshot of scheduling data.
// It is stateless and performs no I/O; callers may share one instance
// across goroutines.
type SlotEngine struct{}

func NewSlotEngine() *SlotEngine {
	return &SlotEngine{}
}

// ComputeInput is the full snapshot a single computation runs against.
// The engine never mutates it.
type ComputeInput struct {
	EventType    scheduleentity.EventType
	Rules        []scheduleentity.AvailabilityRule
	OneOffSlots  []scheduleentity.OneOffSlot
	Blocked      []scheduleentity.BlockedInterval
	Bookings     []bookingentity.Booking
	ExternalBusy []entity.TimeWindow
	RangeStart   time.Time
	RangeEnd     time.Time
	Location     *time.Location
}

// Deny reasons for slot reservation checks.
const (
	DenyReasonNotBookable = "slot_not_bookable"
	DenyReasonTaken       = "slot_no_longer_available"
)

// SlotDecision is the reservation guard's answer. A deny is an expected,
// frequent outcome and is never modeled as an error.
type SlotDecision struct {
	Allowed        bool   `json:"allowed"`
	Reason         string `json:"reason,omitempty"`
	RemainingSeats int    `json:"remaining_seats"`
}

// ComputeSlots runs the full pipeline: expand recurring rules, merge in
// one-off windows, quantize to fixed-duration candidates, drop blocked
// slots, account capacity against non-cancelled bookings, then narrow by
// external busy time. The result is ordered by start and deterministic for
// a given input.
func (e *SlotEngine) ComputeSlots(in ComputeInput) ([]entity.ComputedSlot, *errors.AppError) {
	if appErr := e.validate(in); appErr != nil {
		return nil, appErr
	}

	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	expanded, err := ExpandRules(in.Rules, in.RangeStart, in.RangeEnd, loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidConfiguration, "Invalid availability rule", err)
	}

	candidates := e.generateCandidates(in, expanded)

	slots := make([]entity.ComputedSlot, 0, len(candidates))
	for _, candidate := range candidates {
		if e.overlapsBlocked(in, candidate) {
			continue
		}

		taken := e.attendeesOverlapping(in, candidate)
		remaining := in.EventType.Capacity - taken
		if remaining < 0 {
			remaining = 0
		}

		slot := entity.ComputedSlot{
			Start:          candidate.Start,
			End:            candidate.End,
			Available:      remaining > 0,
			RemainingSeats: remaining,
		}

		// External busy time overrides internal capacity but never adds
		// availability.
		if slot.Available && e.overlapsBusy(in.ExternalBusy, candidate) {
			slot.Available = false
		}

		slots = append(slots, slot)
	}

	return slots, nil
}

// CheckSlot is the reservation-time guard: it revalidates a single
// requested interval against the same snapshot. The caller is expected to
// have just read the booking and blocked data; the persistence layer's
// capacity constraint remains the final authority.
func (e *SlotEngine) CheckSlot(in ComputeInput, slotStart, slotEnd time.Time) (SlotDecision, *errors.AppError) {
	// Recompute over a range tight around the requested slot so the grid
	// alignment check uses the same windows the read path advertised.
	in.RangeStart = slotStart.Add(-24 * time.Hour)
	in.RangeEnd = slotEnd.Add(24 * time.Hour)

	slots, appErr := e.ComputeSlots(in)
	if appErr != nil {
		return SlotDecision{}, appErr
	}

	for _, slot := range slots {
		if !slot.Start.Equal(slotStart) || !slot.End.Equal(slotEnd) {
			continue
		}
		if !slot.Available {
			return SlotDecision{Allowed: false, Reason: DenyReasonTaken}, nil
		}
		return SlotDecision{Allowed: true, RemainingSeats: slot.RemainingSeats}, nil
	}

	// The interval does not land on any advertised slot: wrong grid, wrong
	// duration, or blocked out entirely.
	return SlotDecision{Allowed: false, Reason: DenyReasonNotBookable}, nil
}

func (e *SlotEngine) validate(in ComputeInput) *errors.AppError {
	if in.EventType.DurationMinutes <= 0 {
		return errors.NewAppError(errors.ErrInvalidConfiguration, "Event type duration must be positive", nil)
	}
	if in.EventType.BufferBeforeMinutes < 0 || in.EventType.BufferAfterMinutes < 0 {
		return errors.NewAppError(errors.ErrInvalidConfiguration, "Event type buffers must not be negative", nil)
	}
	if in.EventType.Capacity < 1 {
		return errors.NewAppError(errors.ErrInvalidConfiguration, "Event type capacity must be at least 1", nil)
	}
	if !in.RangeEnd.After(in.RangeStart) {
		return errors.NewAppError(errors.ErrInvalidRange, "Range end must be after range start", nil)
	}
	return nil
}

// generateCandidates merges recurring and one-off windows, then steps each
// merged window into consecutive slots of exactly the event duration.
// Remainders shorter than one duration are discarded, never shortened.
func (e *SlotEngine) generateCandidates(in ComputeInput, expanded []entity.TimeWindow) []entity.TimeWindow {
	windows := make([]entity.TimeWindow, 0, len(expanded)+len(in.OneOffSlots))
	windows = append(windows, expanded...)
	for _, slot := range in.OneOffSlots {
		w := entity.TimeWindow{Start: slot.StartTime, End: slot.EndTime}
		if Overlaps(w, entity.TimeWindow{Start: in.RangeStart, End: in.RangeEnd}) {
			windows = append(windows, w)
		}
	}

	merged := MergeWindows(windows)
	duration := in.EventType.Duration()

	var candidates []entity.TimeWindow
	for _, window := range merged {
		for cursor := window.Start; !cursor.Add(duration).After(window.End); cursor = cursor.Add(duration) {
			candidate := entity.TimeWindow{Start: cursor, End: cursor.Add(duration)}
			// Only offer slots fully inside the requested range.
			if candidate.Start.Before(in.RangeStart) || candidate.End.After(in.RangeEnd) {
				continue
			}
			candidates = append(candidates, candidate)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Start.Before(candidates[j].Start)
	})

	// Dedupe by start; merged windows are disjoint so duplicates only
	// appear if a one-off exactly mirrors a recurring window.
	deduped := candidates[:0]
	for i, c := range candidates {
		if i > 0 && c.Start.Equal(candidates[i-1].Start) {
			continue
		}
		deduped = append(deduped, c)
	}

	return deduped
}

// overlapsBlocked reports whether the slot's buffer-padded span touches any
// applicable blocked interval. Blocked slots are dropped whole; sub-slot
// granularity is never offered.
func (e *SlotEngine) overlapsBlocked(in ComputeInput, slot entity.TimeWindow) bool {
	padded := slot.Pad(in.EventType.BufferBefore(), in.EventType.BufferAfter())
	for _, block := range in.Blocked {
		if !block.AppliesTo(in.EventType.ID) {
			continue
		}
		if Overlaps(padded, entity.TimeWindow{Start: block.StartTime, End: block.EndTime}) {
			return true
		}
	}
	return false
}

// attendeesOverlapping sums attendee counts of non-cancelled bookings whose
// buffer-padded span overlaps the raw slot. Buffers are evaluated from the
// booking's perspective, so a booking's buffer always counts against the
// neighboring slot it encroaches on.
func (e *SlotEngine) attendeesOverlapping(in ComputeInput, slot entity.TimeWindow) int {
	before := in.EventType.BufferBefore()
	after := in.EventType.BufferAfter()

	total := 0
	for _, booking := range in.Bookings {
		if !booking.CountsAgainstCapacity() {
			continue
		}
		padded := entity.TimeWindow{Start: booking.StartTime, End: booking.EndTime}.Pad(before, after)
		if Overlaps(padded, slot) {
			attendees := booking.AttendeeCount
			if attendees < 1 {
				attendees = 1
			}
			total += attendees
		}
	}
	return total
}

func (e *SlotEngine) overlapsBusy(busy []entity.TimeWindow, slot entity.TimeWindow) bool {
	for _, b := range busy {
		if Overlaps(b, slot) {
			return true
		}
	}
	return false
}
