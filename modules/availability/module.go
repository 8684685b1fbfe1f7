package availability

import (
	"github.com/labstack/echo/v4"

	"go-booking-api/core/cache"
	"go-booking-api/modules/availability/controller"
	"go-booking-api/modules/availability/router"
	"go-booking-api/modules/availability/service"
	schedulerepo "go-booking-api/modules/schedule/repository"
)

// Init wires the availability module and registers its public routes. The
// service is returned so the booking module can reuse it as its
// pre-write slot guard.
func Init(
	e *echo.Echo,
	scheduleRepo schedulerepo.ScheduleRepositoryInterface,
	bookings service.BookingReader,
	busySource service.BusyTimeSource,
	c *cache.Cache,
) service.AvailabilityServiceInterface {
	svc := service.NewAvailabilityService(scheduleRepo, bookings, busySource, c)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e)
	return svc
}
