package calendar

import (
	"github.com/labstack/echo/v4"

	"go-booking-api/core/database"
	"go-booking-api/core/middleware"
	"go-booking-api/modules/calendar/controller"
	"go-booking-api/modules/calendar/repository"
	"go-booking-api/modules/calendar/router"
	"go-booking-api/modules/calendar/service"
)

// Init wires the calendar module and registers its routes. The service
// is returned so the availability module can use it as a busy time
// source.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) service.CalendarServiceInterface {
	repo := repository.NewCalendarRepository(db)
	svc := service.NewCalendarService(repo)
	ctrl := controller.NewCalendarController(svc)
	rtr := router.NewCalendarRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
