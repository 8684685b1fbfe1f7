package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"go-booking-api/core/config"
	"go-booking-api/core/logger"
)

// Task type names
const (
	TypeBookingConfirmation = "booking:confirmation"
	TypeBookingReminder     = "booking:reminder"
)

// ReminderLeadTime is how long before the booking start the reminder fires.
const ReminderLeadTime = 24 * time.Hour

// BookingMailPayload carries everything the mail handlers need so they do
// not have to read the database.
type BookingMailPayload struct {
	BookingID     string    `json:"booking_id"`
	Reference     string    `json:"reference"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	EventName     string    `json:"event_name"`
	StartTime     time.Time `json:"start_time"`
}

// Client enqueues background tasks.
type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueBookingConfirmation schedules an immediate confirmation mail.
func (c *Client) EnqueueBookingConfirmation(p BookingMailPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}

	info, err := c.client.Enqueue(
		asynq.NewTask(TypeBookingConfirmation, payload),
		asynq.MaxRetry(3),
	)
	if err != nil {
		logger.Error("Tasks:EnqueueBookingConfirmation", "error", err, "booking_id", p.BookingID)
		return err
	}

	logger.Info("Tasks:EnqueueBookingConfirmation:Enqueued", "task_id", info.ID, "booking_id", p.BookingID)
	return nil
}

// EnqueueBookingReminder schedules a reminder mail ahead of the booking
// start. Bookings starting sooner than the lead time get no reminder.
func (c *Client) EnqueueBookingReminder(p BookingMailPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	remindAt := p.StartTime.Add(-ReminderLeadTime)
	if remindAt.Before(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}

	info, err := c.client.Enqueue(
		asynq.NewTask(TypeBookingReminder, payload),
		asynq.ProcessAt(remindAt),
		asynq.MaxRetry(3),
	)
	if err != nil {
		logger.Error("Tasks:EnqueueBookingReminder", "error", err, "booking_id", p.BookingID)
		return err
	}

	logger.Info("Tasks:EnqueueBookingReminder:Enqueued",
		"task_id", info.ID, "booking_id", p.BookingID, "process_at", remindAt)
	return nil
}
