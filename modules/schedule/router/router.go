package router

import (
	"github.com/labstack/echo/v4"

	"go-booking-api/core/middleware"
	"go-booking-api/modules/schedule/controller"
)

// ScheduleRouter handles scheduling configuration routes
type ScheduleRouter struct {
	ScheduleController *controller.ScheduleController
}

func NewScheduleRouter(scheduleController *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{
		ScheduleController: scheduleController,
	}
}

// Setup registers scheduling configuration routes (all admin-only)
func (r *ScheduleRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private", mw.AuthMiddleware())

	eventTypes := privateRoutes.Group("/event-types")
	eventTypes.POST("", r.ScheduleController.CreateEventType)
	eventTypes.GET("", r.ScheduleController.ListEventTypes)
	eventTypes.GET("/:id", r.ScheduleController.GetEventType)
	eventTypes.PUT("/:id", r.ScheduleController.UpdateEventType)
	eventTypes.DELETE("/:id", r.ScheduleController.DeleteEventType)

	eventTypes.POST("/:id/rules", r.ScheduleController.AddRule)
	eventTypes.POST("/:id/one-off-slots", r.ScheduleController.AddOneOffSlot)

	privateRoutes.DELETE("/rules/:id", r.ScheduleController.DeleteRule)
	privateRoutes.DELETE("/one-off-slots/:id", r.ScheduleController.DeleteOneOffSlot)

	privateRoutes.POST("/blocked-intervals", r.ScheduleController.AddBlockedInterval)
	privateRoutes.DELETE("/blocked-intervals/:id", r.ScheduleController.DeleteBlockedInterval)
}
