package booking

import (
	"github.com/labstack/echo/v4"

	"go-booking-api/core/database"
	"go-booking-api/core/middleware"
	"go-booking-api/core/tasks"
	availabilityservice "go-booking-api/modules/availability/service"
	"go-booking-api/modules/booking/controller"
	"go-booking-api/modules/booking/repository"
	"go-booking-api/modules/booking/router"
	"go-booking-api/modules/booking/service"
	schedulerepo "go-booking-api/modules/schedule/repository"
)

// NewRepository builds the booking repository alone. The availability
// module needs it before the rest of the booking module can be wired.
func NewRepository(db database.IDatabase) repository.BookingRepositoryInterface {
	return repository.NewBookingRepository(db)
}

// Init wires the booking module and registers its routes.
func Init(
	e *echo.Echo,
	mw *middleware.Middleware,
	bookingRepo repository.BookingRepositoryInterface,
	scheduleRepo schedulerepo.ScheduleRepositoryInterface,
	availability availabilityservice.AvailabilityServiceInterface,
	taskClient *tasks.Client,
) {
	svc := service.NewBookingService(bookingRepo, scheduleRepo, availability, taskClient)
	ctrl := controller.NewBookingController(svc)
	rtr := router.NewBookingRouter(ctrl)

	rtr.Setup(e, mw)
}
