package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-booking-api/core/cache"
	"go-booking-api/core/constants"
	"go-booking-api/core/errors"
	"go-booking-api/core/logger"
	"go-booking-api/modules/availability/dto"
	"go-booking-api/modules/availability/entity"
	bookingentity "go-booking-api/modules/booking/entity"
	schedulerepo "go-booking-api/modules/schedule/repository"
)

// BookingReader is the slice of the booking store the engine needs: all
// bookings that still count against capacity within a range.
type BookingReader interface {
	GetActiveBookingsInRange(ctx context.Context, eventTypeID uuid.UUID, from, to time.Time) ([]bookingentity.Booking, error)
}

// BusyTimeSource reports a third-party calendar's busy windows for an
// owner. Implementations fail with ErrIntegrationUnavailable; the
// availability service recovers by using internal data only.
type BusyTimeSource interface {
	GetBusyIntervals(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]entity.TimeWindow, error)
}

// AvailabilityService is the read path: it assembles a snapshot from the
// configuration and booking stores and runs the slot engine over it.
type AvailabilityService struct {
	scheduleRepo schedulerepo.ScheduleRepositoryInterface
	bookings     BookingReader
	busySource   BusyTimeSource
	cache        *cache.Cache
	engine       *SlotEngine
}

// AvailabilityServiceInterface defines the service contract.
type AvailabilityServiceInterface interface {
	GetAvailabilityBySlug(ctx context.Context, slug string, query *dto.AvailabilityQuery) (*dto.AvailabilityResponse, *errors.AppError)
	GetAvailability(ctx context.Context, eventTypeID uuid.UUID, rangeStart, rangeEnd time.Time, includeExternal bool) (*dto.AvailabilityResponse, *errors.AppError)
	CheckSlotStillAvailable(ctx context.Context, eventTypeID uuid.UUID, slotStart, slotEnd time.Time) (*SlotDecision, *errors.AppError)
	InvalidateCache(ctx context.Context, eventTypeID uuid.UUID)
}

func NewAvailabilityService(
	scheduleRepo schedulerepo.ScheduleRepositoryInterface,
	bookings BookingReader,
	busySource BusyTimeSource,
	c *cache.Cache,
) AvailabilityServiceInterface {
	return &AvailabilityService{
		scheduleRepo: scheduleRepo,
		bookings:     bookings,
		busySource:   busySource,
		cache:        c,
		engine:       NewSlotEngine(),
	}
}

// GetAvailabilityBySlug resolves the public slug and date strings, then
// delegates to GetAvailability.
func (s *AvailabilityService) GetAvailabilityBySlug(ctx context.Context, slug string, query *dto.AvailabilityQuery) (*dto.AvailabilityResponse, *errors.AppError) {
	et, err := s.scheduleRepo.GetEventTypeBySlug(ctx, slug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load event type", err)
	}
	if et == nil || !et.IsActive {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event type not found", nil)
	}

	loc, locErr := time.LoadLocation(et.Timezone)
	if locErr != nil {
		return nil, errors.NewAppError(errors.ErrInvalidConfiguration, "Event type has an unknown timezone", locErr)
	}

	rangeStart, appErr := parseQueryTime(query.From, loc)
	if appErr != nil {
		return nil, appErr
	}
	rangeEnd, appErr := parseQueryTime(query.To, loc)
	if appErr != nil {
		return nil, appErr
	}

	return s.GetAvailability(ctx, et.ID, rangeStart, rangeEnd, query.IncludeCalendar)
}

// GetAvailability computes the ordered slot list for one event type over
// [rangeStart, rangeEnd).
func (s *AvailabilityService) GetAvailability(ctx context.Context, eventTypeID uuid.UUID, rangeStart, rangeEnd time.Time, includeExternal bool) (*dto.AvailabilityResponse, *errors.AppError) {
	if appErr := validateRange(rangeStart, rangeEnd); appErr != nil {
		return nil, appErr
	}

	cacheKey := s.cacheKey(ctx, eventTypeID, rangeStart, rangeEnd, includeExternal)
	if cached := s.cache.Get(ctx, cacheKey); cached != "" {
		var response dto.AvailabilityResponse
		if err := json.Unmarshal([]byte(cached), &response); err == nil {
			return &response, nil
		}
	}

	input, loc, appErr := s.loadSnapshot(ctx, eventTypeID, rangeStart, rangeEnd)
	if appErr != nil {
		return nil, appErr
	}

	if includeExternal {
		input.ExternalBusy = s.fetchExternalBusy(ctx, input.EventType.OwnerID, rangeStart, rangeEnd)
	}

	slots, appErr := s.engine.ComputeSlots(*input)
	if appErr != nil {
		return nil, appErr
	}

	response := &dto.AvailabilityResponse{
		EventTypeID: input.EventType.ID.String(),
		EventName:   input.EventType.Name,
		Timezone:    input.EventType.Timezone,
		RangeStart:  rangeStart,
		RangeEnd:    rangeEnd,
		Slots:       make([]dto.ComputedSlotDTO, 0, len(slots)),
	}
	for _, slot := range slots {
		response.Slots = append(response.Slots, dto.ToComputedSlotDTO(slot, loc))
	}

	if payload, err := json.Marshal(response); err == nil {
		s.cache.Set(ctx, cacheKey, string(payload), constants.AvailabilityCacheTTL)
	}

	return response, nil
}

// CheckSlotStillAvailable is the reservation guard: a fresh, uncached
// re-check of one interval immediately before a booking write. External
// calendars are not consulted here; internal records are authoritative.
func (s *AvailabilityService) CheckSlotStillAvailable(ctx context.Context, eventTypeID uuid.UUID, slotStart, slotEnd time.Time) (*SlotDecision, *errors.AppError) {
	if !slotEnd.After(slotStart) {
		return nil, errors.NewAppError(errors.ErrInvalidRange, "Slot end must be after slot start", nil)
	}

	// The engine re-derives candidates around the requested interval;
	// fetch a matching window of data.
	input, _, appErr := s.loadSnapshot(ctx, eventTypeID, slotStart.Add(-24*time.Hour), slotEnd.Add(24*time.Hour))
	if appErr != nil {
		return nil, appErr
	}

	decision, appErr := s.engine.CheckSlot(*input, slotStart, slotEnd)
	if appErr != nil {
		return nil, appErr
	}

	logger.Info("AvailabilityService:CheckSlotStillAvailable",
		"event_type_id", eventTypeID,
		"slot_start", slotStart,
		"allowed", decision.Allowed,
		"reason", decision.Reason,
	)
	return &decision, nil
}

// InvalidateCache bumps the event type's availability version so cached
// responses stop being served after a booking write.
func (s *AvailabilityService) InvalidateCache(ctx context.Context, eventTypeID uuid.UUID) {
	s.cache.Incr(ctx, versionKey(eventTypeID))
}

// loadSnapshot reads everything one computation needs. Bookings are
// fetched over a buffer-padded range so bookings just outside the range
// still count against edge slots.
func (s *AvailabilityService) loadSnapshot(ctx context.Context, eventTypeID uuid.UUID, rangeStart, rangeEnd time.Time) (*ComputeInput, *time.Location, *errors.AppError) {
	et, err := s.scheduleRepo.GetEventTypeByID(ctx, eventTypeID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load event type", err)
	}
	if et == nil || !et.IsActive {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "Event type not found", nil)
	}

	loc, locErr := time.LoadLocation(et.Timezone)
	if locErr != nil {
		return nil, nil, errors.NewAppError(errors.ErrInvalidConfiguration, "Event type has an unknown timezone", locErr)
	}

	rules, err := s.scheduleRepo.GetRulesByEventType(ctx, eventTypeID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load availability rules", err)
	}

	oneOffs, err := s.scheduleRepo.GetOneOffSlotsInRange(ctx, eventTypeID, rangeStart, rangeEnd)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load one-off slots", err)
	}

	blocked, err := s.scheduleRepo.GetBlockedIntervalsInRange(ctx, eventTypeID, rangeStart.Add(-et.BufferBefore()), rangeEnd.Add(et.BufferAfter()))
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load blocked intervals", err)
	}

	bookingPad := et.BufferBefore() + et.BufferAfter() + et.Duration()
	bookings, err := s.bookings.GetActiveBookingsInRange(ctx, eventTypeID, rangeStart.Add(-bookingPad), rangeEnd.Add(bookingPad))
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load bookings", err)
	}

	return &ComputeInput{
		EventType:   *et,
		Rules:       rules,
		OneOffSlots: oneOffs,
		Blocked:     blocked,
		Bookings:    bookings,
		RangeStart:  rangeStart,
		RangeEnd:    rangeEnd,
		Location:    loc,
	}, loc, nil
}

// fetchExternalBusy consults the external calendar with a hard timeout.
// Any failure degrades to internal-only availability; it never fails the
// request.
func (s *AvailabilityService) fetchExternalBusy(ctx context.Context, ownerID *uuid.UUID, rangeStart, rangeEnd time.Time) []entity.TimeWindow {
	if s.busySource == nil || ownerID == nil {
		return nil
	}

	busyCtx, cancel := context.WithTimeout(ctx, constants.ExternalCalendarTimeout)
	defer cancel()

	busy, err := s.busySource.GetBusyIntervals(busyCtx, *ownerID, rangeStart, rangeEnd)
	if err != nil {
		logger.Warn("AvailabilityService:fetchExternalBusy:Fallback",
			"error", err, "owner_id", *ownerID)
		return nil
	}
	return busy
}

func (s *AvailabilityService) cacheKey(ctx context.Context, eventTypeID uuid.UUID, rangeStart, rangeEnd time.Time, includeExternal bool) string {
	version := s.cache.GetInt(ctx, versionKey(eventTypeID))
	return fmt.Sprintf("availability:%s:%d:%d:%t:v%d",
		eventTypeID, rangeStart.Unix(), rangeEnd.Unix(), includeExternal, version)
}

func versionKey(eventTypeID uuid.UUID) string {
	return "availability:ver:" + eventTypeID.String()
}

func validateRange(rangeStart, rangeEnd time.Time) *errors.AppError {
	if !rangeEnd.After(rangeStart) {
		return errors.NewAppError(errors.ErrInvalidRange, "Range end must be after range start", nil)
	}
	if rangeEnd.Sub(rangeStart) > constants.MaxAvailabilityRangeDays*24*time.Hour {
		return errors.NewAppError(errors.ErrInvalidRange,
			fmt.Sprintf("Range must not exceed %d days", constants.MaxAvailabilityRangeDays), nil)
	}
	return nil
}

// parseQueryTime accepts RFC3339 or a bare date resolved at local midnight.
func parseQueryTime(value string, loc *time.Location) (time.Time, *errors.AppError) {
	if value == "" {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidRange, "Both from and to are required", nil)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, errors.NewAppError(errors.ErrInvalidRange, "Dates must be RFC3339 or YYYY-MM-DD", nil)
}
