package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"go-booking-api/core/cache"
	"go-booking-api/core/config"
	"go-booking-api/core/database"
	"go-booking-api/core/logger"
	"go-booking-api/core/mailer"
	"go-booking-api/core/middleware"
	"go-booking-api/core/tasks"
	"go-booking-api/modules/availability"
	"go-booking-api/modules/booking"
	"go-booking-api/modules/calendar"
	"go-booking-api/modules/schedule"
)

// Run boots the full application: configuration, storage, background
// workers and the HTTP server. It blocks until SIGINT or SIGTERM.
func Run() error {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	c, err := cache.InitCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	taskClient := tasks.NewClient(cfg.Redis)
	defer taskClient.Close()

	worker := tasks.NewWorker(cfg.Redis, mailer.NewMailer(cfg.SMTP))
	if err := worker.Start(); err != nil {
		return fmt.Errorf("start task worker: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())

	mw := middleware.New()

	scheduleRepo := schedule.Init(e, db, mw)
	calendarSvc := calendar.Init(e, db, mw)
	bookingRepo := booking.NewRepository(db)
	availabilitySvc := availability.Init(e, scheduleRepo, bookingRepo, calendarSvc, c)
	booking.Init(e, mw, bookingRepo, scheduleRepo, availabilitySvc, taskClient)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		if err := e.Start(addr); err != nil {
			logger.Info("Server:Stopped", "error", err)
		}
	}()

	logger.Info("Server:Started", "addr", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server:ShuttingDown")
	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
