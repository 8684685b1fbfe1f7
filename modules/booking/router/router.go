package router

import (
	"github.com/labstack/echo/v4"

	"go-booking-api/core/middleware"
	"go-booking-api/modules/booking/controller"
)

// BookingRouter handles booking routes
type BookingRouter struct {
	BookingController *controller.BookingController
}

func NewBookingRouter(bookingController *controller.BookingController) *BookingRouter {
	return &BookingRouter{
		BookingController: bookingController,
	}
}

// Setup registers booking routes. Booking creation and reference lookup
// are public; management routes require auth.
func (r *BookingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	publicRoutes := v1.Group("/public")
	publicRoutes.POST("/bookings", r.BookingController.CreateBooking)
	publicRoutes.GET("/bookings/:reference", r.BookingController.GetBookingByReference)

	privateRoutes := v1.Group("/private", mw.AuthMiddleware())
	privateRoutes.GET("/event-types/:id/bookings", r.BookingController.ListBookings)
	privateRoutes.DELETE("/bookings/:id", r.BookingController.CancelBooking)
}
