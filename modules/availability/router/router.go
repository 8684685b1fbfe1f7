package router

import (
	"github.com/labstack/echo/v4"

	"go-booking-api/modules/availability/controller"
)

// AvailabilityRouter handles public availability routes
type AvailabilityRouter struct {
	AvailabilityController *controller.AvailabilityController
}

func NewAvailabilityRouter(availabilityController *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{
		AvailabilityController: availabilityController,
	}
}

// Setup registers availability routes (public, no auth)
func (r *AvailabilityRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	publicRoutes := v1.Group("/public")

	publicRoutes.GET("/availability/:slug", r.AvailabilityController.GetAvailability)
}
