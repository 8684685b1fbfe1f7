package router

import (
	"github.com/labstack/echo/v4"

	"go-booking-api/core/middleware"
	"go-booking-api/modules/calendar/controller"
)

// CalendarRouter handles calendar connection routes
type CalendarRouter struct {
	CalendarController *controller.CalendarController
}

func NewCalendarRouter(calendarController *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{
		CalendarController: calendarController,
	}
}

// Setup registers calendar routes (all admin-only)
func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private", mw.AuthMiddleware())

	connections := privateRoutes.Group("/calendar/connections")
	connections.POST("", r.CalendarController.ConnectCalendar)
	connections.GET("", r.CalendarController.ListConnections)
	connections.DELETE("/:provider", r.CalendarController.DisconnectCalendar)
}
