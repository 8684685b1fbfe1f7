package schedule

import (
	"github.com/labstack/echo/v4"

	"go-booking-api/core/database"
	"go-booking-api/core/middleware"
	"go-booking-api/modules/schedule/controller"
	"go-booking-api/modules/schedule/repository"
	"go-booking-api/modules/schedule/router"
	"go-booking-api/modules/schedule/service"
)

// Init wires the schedule module and registers its routes. The repository
// is returned so the availability and booking modules can read the same
// configuration.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) repository.ScheduleRepositoryInterface {
	repo := repository.NewScheduleRepository(db)
	svc := service.NewScheduleService(repo)
	ctrl := controller.NewScheduleController(svc)
	rtr := router.NewScheduleRouter(ctrl)

	rtr.Setup(e, mw)
	return repo
}
