package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-booking-api/core/errors"
	"go-booking-api/core/logger"
	"go-booking-api/core/tasks"
	"go-booking-api/core/utils"
	availabilityservice "go-booking-api/modules/availability/service"
	"go-booking-api/modules/booking/dto"
	"go-booking-api/modules/booking/entity"
	"go-booking-api/modules/booking/repository"
	scheduleentity "go-booking-api/modules/schedule/entity"
	schedulerepo "go-booking-api/modules/schedule/repository"
)

// BookingService creates and manages reservations. Creation runs the
// availability check first and then the capacity-guarded insert, so a
// stale availability page can never oversell a slot.
type BookingService struct {
	bookingRepo  repository.BookingRepositoryInterface
	scheduleRepo schedulerepo.ScheduleRepositoryInterface
	availability availabilityservice.AvailabilityServiceInterface
	taskClient   *tasks.Client
}

// BookingServiceInterface defines the service contract.
type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, *errors.AppError)
	GetBookingByReference(ctx context.Context, reference string) (*dto.BookingResponse, *errors.AppError)
	ListBookings(ctx context.Context, eventTypeID uuid.UUID, from, to time.Time) ([]dto.BookingResponse, *errors.AppError)
	CancelBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, *errors.AppError)
}

func NewBookingService(
	bookingRepo repository.BookingRepositoryInterface,
	scheduleRepo schedulerepo.ScheduleRepositoryInterface,
	availability availabilityservice.AvailabilityServiceInterface,
	taskClient *tasks.Client,
) BookingServiceInterface {
	return &BookingService{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		availability: availability,
		taskClient:   taskClient,
	}
}

// CreateBooking books one slot for a customer.
func (s *BookingService) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, *errors.AppError) {
	logger.Info("BookingService:CreateBooking:Start",
		"event_type_slug", req.EventTypeSlug, "start_time", req.StartTime)

	if appErr := validateCreateRequest(req); appErr != nil {
		return nil, appErr
	}

	et, err := s.scheduleRepo.GetEventTypeBySlug(ctx, req.EventTypeSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load event type", err)
	}
	if et == nil || !et.IsActive {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event type not found", nil)
	}

	if req.AttendeeCount > et.Capacity {
		return nil, errors.NewAppError(errors.ErrSlotConflict, "Requested seats exceed the event capacity", nil)
	}

	slotEnd := req.StartTime.Add(et.Duration())

	decision, appErr := s.availability.CheckSlotStillAvailable(ctx, et.ID, req.StartTime, slotEnd)
	if appErr != nil {
		return nil, appErr
	}
	if !decision.Allowed {
		return nil, errors.NewAppError(errors.ErrSlotConflict, "The requested slot is not available", nil)
	}
	if decision.RemainingSeats < req.AttendeeCount {
		return nil, errors.NewAppError(errors.ErrSlotConflict, "Not enough seats left in the requested slot", nil)
	}

	reference := utils.GenerateBookingReference()
	if reference == "" {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate booking reference", nil)
	}

	status := entity.BookingStatusConfirmed
	if et.RequiresApproval {
		status = entity.BookingStatusPending
	}

	booking := &entity.Booking{
		EventTypeID:   et.ID,
		Reference:     reference,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		StartTime:     req.StartTime,
		EndTime:       slotEnd,
		Status:        status,
		AttendeeCount: req.AttendeeCount,
	}

	created, err := s.bookingRepo.CreateWithCapacityGuard(ctx, booking, et.Capacity)
	if err != nil {
		if err == repository.ErrCapacityExceeded {
			logger.Warn("BookingService:CreateBooking:CapacityRace",
				"event_type_id", et.ID, "start_time", req.StartTime)
			return nil, errors.NewAppError(errors.ErrSlotConflict, "The requested slot is no longer available", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create booking", err)
	}

	s.availability.InvalidateCache(ctx, et.ID)
	s.enqueueMails(created, et)

	logger.Info("BookingService:CreateBooking:Success",
		"booking_id", created.ID, "reference", created.Reference, "status", created.Status)

	return dto.ToBookingResponse(created), nil
}

func (s *BookingService) GetBookingByReference(ctx context.Context, reference string) (*dto.BookingResponse, *errors.AppError) {
	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Booking not found", nil)
	}

	return dto.ToBookingResponse(booking), nil
}

func (s *BookingService) ListBookings(ctx context.Context, eventTypeID uuid.UUID, from, to time.Time) ([]dto.BookingResponse, *errors.AppError) {
	if !to.After(from) {
		return nil, errors.NewAppError(errors.ErrInvalidRange, "Range end must be after range start", nil)
	}

	bookings, err := s.bookingRepo.ListByEventType(ctx, eventTypeID, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list bookings", err)
	}

	return dto.ToBookingResponses(bookings), nil
}

// CancelBooking frees the booking's seats. Cancelling an already
// cancelled booking is a no-op.
func (s *BookingService) CancelBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, *errors.AppError) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Booking not found", nil)
	}

	if booking.Status != entity.BookingStatusCancelled {
		if err = s.bookingRepo.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to cancel booking", err)
		}
		booking.Status = entity.BookingStatusCancelled
		s.availability.InvalidateCache(ctx, booking.EventTypeID)

		logger.Info("BookingService:CancelBooking:Success",
			"booking_id", id, "reference", booking.Reference)
	}

	return dto.ToBookingResponse(booking), nil
}

// enqueueMails schedules confirmation and reminder mails. Mail failures
// never fail the booking.
func (s *BookingService) enqueueMails(booking *entity.Booking, et *scheduleentity.EventType) {
	payload := tasks.BookingMailPayload{
		BookingID:     booking.ID.String(),
		Reference:     booking.Reference,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		EventName:     et.Name,
		StartTime:     booking.StartTime,
	}

	if err := s.taskClient.EnqueueBookingConfirmation(payload); err != nil {
		logger.Warn("BookingService:enqueueMails:Confirmation", "error", err, "booking_id", booking.ID)
	}
	if err := s.taskClient.EnqueueBookingReminder(payload); err != nil {
		logger.Warn("BookingService:enqueueMails:Reminder", "error", err, "booking_id", booking.ID)
	}
}

func validateCreateRequest(req *dto.CreateBookingRequest) *errors.AppError {
	if req.EventTypeSlug == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "Event type slug is required", nil)
	}
	if req.CustomerName == "" || req.CustomerEmail == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "Customer name and email are required", nil)
	}
	if req.StartTime.IsZero() {
		return errors.NewAppError(errors.ErrInvalidInput, "Start time is required", nil)
	}
	if req.AttendeeCount < 1 {
		req.AttendeeCount = 1
	}
	return nil
}
