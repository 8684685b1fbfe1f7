package controller

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"go-booking-api/core/controller"
	"go-booking-api/core/errors"
	"go-booking-api/modules/booking/dto"
	"go-booking-api/modules/booking/service"
)

// BookingController handles booking HTTP requests. Creation and lookup
// by reference are public; listing and cancellation are admin-only.
type BookingController struct {
	controller.BaseController
	BookingService service.BookingServiceInterface
}

func NewBookingController(svc service.BookingServiceInterface) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		BookingService: svc,
	}
}

// CreateBooking handles POST /bookings
// @Summary Book a slot
// @Description Reserve a slot for a customer
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking details"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /public/bookings [post]
func (c *BookingController) CreateBooking(ctx echo.Context) error {
	var req dto.CreateBookingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.BookingService.CreateBooking(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Booking created successfully")
}

// GetBookingByReference handles GET /bookings/:reference
// @Summary Get booking by reference
// @Tags Booking
// @Produce json
// @Param reference path string true "Booking reference"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} errors.AppError
// @Router /public/bookings/{reference} [get]
func (c *BookingController) GetBookingByReference(ctx echo.Context) error {
	reference := ctx.Param("reference")
	if reference == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Booking reference is required")
	}

	result, appErr := c.BookingService.GetBookingByReference(ctx.Request().Context(), reference)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Booking retrieved successfully")
}

// ListBookings handles GET /event-types/:id/bookings
// @Summary List bookings for an event type
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event type ID"
// @Param from query string true "Range start (RFC3339)"
// @Param to query string true "Range end (RFC3339)"
// @Success 200 {array} dto.BookingResponse
// @Failure 400 {object} errors.AppError
// @Router /private/event-types/{id}/bookings [get]
func (c *BookingController) ListBookings(ctx echo.Context) error {
	eventTypeID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event type ID")
	}

	var query dto.BookingListQuery
	if err := ctx.Bind(&query); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid query parameters")
	}

	from, err := time.Parse(time.RFC3339, query.From)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "from must be RFC3339")
	}
	to, err := time.Parse(time.RFC3339, query.To)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "to must be RFC3339")
	}

	result, appErr := c.BookingService.ListBookings(ctx.Request().Context(), eventTypeID, from, to)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Bookings retrieved successfully")
}

// CancelBooking handles DELETE /bookings/:id
// @Summary Cancel a booking
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} errors.AppError
// @Router /private/bookings/{id} [delete]
func (c *BookingController) CancelBooking(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	result, appErr := c.BookingService.CancelBooking(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Booking cancelled successfully")
}
