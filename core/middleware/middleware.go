package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"go-booking-api/core/constants"
	"go-booking-api/core/controller"
	"go-booking-api/core/errors"
	"go-booking-api/core/utils"
)

// Middleware bundles the route middlewares modules attach during Setup.
type Middleware struct {
	base controller.BaseController
}

func New() *Middleware {
	return &Middleware{
		base: controller.NewBaseController(),
	}
}

// AuthMiddleware validates the Authorization bearer token and stores the
// parsed claims under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return m.base.Unauthorized(errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return m.base.Unauthorized(errors.ErrInvalidTokenFormat, "Authorization header must be a Bearer token")
			}

			claims, err := utils.ParseAccessToken(parts[1])
			if err != nil {
				return m.base.Unauthorized(errors.ErrUnauthorized, "Invalid or expired token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
