package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"go-booking-api/core/config"
	"go-booking-api/core/logger"
)

// Mailer sends transactional booking mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (m *Mailer) SendBookingConfirmation(to, customerName, eventName string, start time.Time) error {
	subject := fmt.Sprintf("Booking confirmed: %s", eventName)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking for %s on %s is confirmed.\n\nSee you then!",
		customerName, eventName, start.Format("Monday, 2 January 2006 at 15:04 MST"),
	)
	return m.send(to, subject, body)
}

func (m *Mailer) SendBookingReminder(to, customerName, eventName string, start time.Time) error {
	subject := fmt.Sprintf("Reminder: %s is coming up", eventName)
	body := fmt.Sprintf(
		"Hi %s,\n\nThis is a reminder that %s starts on %s.",
		customerName, eventName, start.Format("Monday, 2 January 2006 at 15:04 MST"),
	)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		logger.Error("Mailer:send", "error", err, "to", to, "subject", subject)
		return err
	}

	logger.Info("Mailer:send:Sent", "to", to, "subject", subject)
	return nil
}
