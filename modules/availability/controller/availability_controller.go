package controller

import (
	"github.com/labstack/echo/v4"

	"go-booking-api/core/controller"
	"go-booking-api/core/errors"
	"go-booking-api/modules/availability/dto"
	"go-booking-api/modules/availability/service"
)

// AvailabilityController serves the public availability read endpoints.
type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// GetAvailability handles GET /availability/:slug
// @Summary Get bookable slots
// @Description Compute the bookable slots for an event type over a date range
// @Tags Availability
// @Produce json
// @Param slug path string true "Event type slug"
// @Param from query string true "Range start (RFC3339 or YYYY-MM-DD)"
// @Param to query string true "Range end (RFC3339 or YYYY-MM-DD)"
// @Param include_calendar query bool false "Overlay connected calendar busy times"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 400 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /public/availability/{slug} [get]
func (c *AvailabilityController) GetAvailability(ctx echo.Context) error {
	slug := ctx.Param("slug")
	if slug == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Event type slug is required")
	}

	var query dto.AvailabilityQuery
	if err := ctx.Bind(&query); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid query parameters")
	}

	result, appErr := c.AvailabilityService.GetAvailabilityBySlug(ctx.Request().Context(), slug, &query)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Availability computed successfully")
}
