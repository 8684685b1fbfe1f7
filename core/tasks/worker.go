package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"go-booking-api/core/config"
	"go-booking-api/core/logger"
	"go-booking-api/core/mailer"
)

// Worker processes booking mail tasks.
type Worker struct {
	server *asynq.Server
	mailer *mailer.Mailer
}

func NewWorker(cfg config.RedisConfig, m *mailer.Mailer) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 5,
		},
	)

	return &Worker{server: server, mailer: m}
}

// Start runs the task server in a background goroutine.
func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingConfirmation, w.handleBookingConfirmation)
	mux.HandleFunc(TypeBookingReminder, w.handleBookingReminder)

	go func() {
		if err := w.server.Run(mux); err != nil {
			logger.Error("Tasks:Worker:Run", "error", err)
		}
	}()

	logger.Info("Task worker started")
	return nil
}

func (w *Worker) Shutdown() {
	if w != nil && w.server != nil {
		w.server.Shutdown()
	}
}

func (w *Worker) handleBookingConfirmation(ctx context.Context, t *asynq.Task) error {
	var p BookingMailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal confirmation payload: %w", err)
	}

	logger.Info("Tasks:handleBookingConfirmation", "booking_id", p.BookingID, "to", p.CustomerEmail)
	return w.mailer.SendBookingConfirmation(p.CustomerEmail, p.CustomerName, p.EventName, p.StartTime)
}

func (w *Worker) handleBookingReminder(ctx context.Context, t *asynq.Task) error {
	var p BookingMailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal reminder payload: %w", err)
	}

	logger.Info("Tasks:handleBookingReminder", "booking_id", p.BookingID, "to", p.CustomerEmail)
	return w.mailer.SendBookingReminder(p.CustomerEmail, p.CustomerName, p.EventName, p.StartTime)
}
