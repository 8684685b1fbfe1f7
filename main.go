package main

import (
	"go-booking-api/core/logger"
	"go-booking-api/core/server"
)

// @title Booking API
// @version 1.0
// @description Availability and slot booking backend for the marketing site.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
