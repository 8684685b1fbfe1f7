package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"go-booking-api/core/constants"
	"go-booking-api/core/controller"
	"go-booking-api/core/errors"
	"go-booking-api/core/utils"
	"go-booking-api/modules/schedule/dto"
	"go-booking-api/modules/schedule/service"
)

// ScheduleController handles scheduling configuration HTTP requests.
type ScheduleController struct {
	controller.BaseController
	ScheduleService service.ScheduleServiceInterface
}

func NewScheduleController(svc service.ScheduleServiceInterface) *ScheduleController {
	return &ScheduleController{
		BaseController:  controller.NewBaseController(),
		ScheduleService: svc,
	}
}

func (c *ScheduleController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// CreateEventType handles POST /event-types
// @Summary Create event type
// @Description Create a new bookable event type
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEventTypeRequest true "Event type configuration"
// @Success 200 {object} dto.EventTypeResponse
// @Failure 400 {object} errors.AppError
// @Router /private/event-types [post]
func (c *ScheduleController) CreateEventType(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateEventTypeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.CreateEventType(ctx.Request().Context(), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event type created successfully")
}

// GetEventType handles GET /event-types/:id
// @Summary Get event type
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event type ID"
// @Success 200 {object} dto.EventTypeResponse
// @Failure 404 {object} errors.AppError
// @Router /private/event-types/{id} [get]
func (c *ScheduleController) GetEventType(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event type ID")
	}

	result, appErr := c.ScheduleService.GetEventType(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListEventTypes handles GET /event-types
// @Summary List event types
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.EventTypeResponse
// @Router /private/event-types [get]
func (c *ScheduleController) ListEventTypes(ctx echo.Context) error {
	result, appErr := c.ScheduleService.ListEventTypes(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateEventType handles PUT /event-types/:id
// @Summary Update event type
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event type ID"
// @Param request body dto.UpdateEventTypeRequest true "Fields to update"
// @Success 200 {object} dto.EventTypeResponse
// @Router /private/event-types/{id} [put]
func (c *ScheduleController) UpdateEventType(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event type ID")
	}

	var req dto.UpdateEventTypeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.UpdateEventType(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event type updated successfully")
}

// DeleteEventType handles DELETE /event-types/:id
// @Summary Delete event type
// @Tags Schedule
// @Security BearerAuth
// @Param id path string true "Event type ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/event-types/{id} [delete]
func (c *ScheduleController) DeleteEventType(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event type ID")
	}

	if appErr := c.ScheduleService.DeleteEventType(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Event type deleted successfully")
}

// AddRule handles POST /event-types/:id/rules
// @Summary Add weekly availability rule
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event type ID"
// @Param request body dto.CreateRuleRequest true "Weekly rule"
// @Success 200 {object} dto.AvailabilityRuleDTO
// @Failure 400 {object} errors.AppError
// @Router /private/event-types/{id}/rules [post]
func (c *ScheduleController) AddRule(ctx echo.Context) error {
	eventTypeID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event type ID")
	}

	var req dto.CreateRuleRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.AddRule(ctx.Request().Context(), eventTypeID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Rule created successfully")
}

// DeleteRule handles DELETE /rules/:id
// @Summary Delete weekly availability rule
// @Tags Schedule
// @Security BearerAuth
// @Param id path string true "Rule ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/rules/{id} [delete]
func (c *ScheduleController) DeleteRule(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid rule ID")
	}

	if appErr := c.ScheduleService.DeleteRule(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Rule deleted successfully")
}

// AddOneOffSlot handles POST /event-types/:id/one-off-slots
// @Summary Add one-off bookable window
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event type ID"
// @Param request body dto.CreateOneOffSlotRequest true "Absolute window"
// @Success 200 {object} dto.OneOffSlotDTO
// @Router /private/event-types/{id}/one-off-slots [post]
func (c *ScheduleController) AddOneOffSlot(ctx echo.Context) error {
	eventTypeID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event type ID")
	}

	var req dto.CreateOneOffSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.AddOneOffSlot(ctx.Request().Context(), eventTypeID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "One-off slot created successfully")
}

// DeleteOneOffSlot handles DELETE /one-off-slots/:id
// @Summary Delete one-off bookable window
// @Tags Schedule
// @Security BearerAuth
// @Param id path string true "One-off slot ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/one-off-slots/{id} [delete]
func (c *ScheduleController) DeleteOneOffSlot(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid one-off slot ID")
	}

	if appErr := c.ScheduleService.DeleteOneOffSlot(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "One-off slot deleted successfully")
}

// AddBlockedInterval handles POST /blocked-intervals
// @Summary Block out time
// @Description Block a period globally or for one event type
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBlockedIntervalRequest true "Blocked period"
// @Success 200 {object} dto.BlockedIntervalDTO
// @Router /private/blocked-intervals [post]
func (c *ScheduleController) AddBlockedInterval(ctx echo.Context) error {
	var req dto.CreateBlockedIntervalRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.AddBlockedInterval(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Blocked interval created successfully")
}

// DeleteBlockedInterval handles DELETE /blocked-intervals/:id
// @Summary Unblock time
// @Tags Schedule
// @Security BearerAuth
// @Param id path string true "Blocked interval ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/blocked-intervals/{id} [delete]
func (c *ScheduleController) DeleteBlockedInterval(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid blocked interval ID")
	}

	if appErr := c.ScheduleService.DeleteBlockedInterval(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Blocked interval deleted successfully")
}
