package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// Booking is a persisted reservation. Cancelled bookings never count
// against availability but are retained for audit.
type Booking struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	EventTypeID   uuid.UUID     `db:"event_type_id" json:"event_type_id"`
	Reference     string        `db:"reference" json:"reference"`
	CustomerName  string        `db:"customer_name" json:"customer_name"`
	CustomerEmail string        `db:"customer_email" json:"customer_email"`
	StartTime     time.Time     `db:"start_time" json:"start_time"`
	EndTime       time.Time     `db:"end_time" json:"end_time"`
	Status        BookingStatus `db:"status" json:"status"`
	AttendeeCount int           `db:"attendee_count" json:"attendee_count"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// CountsAgainstCapacity reports whether the booking consumes seats.
func (b *Booking) CountsAgainstCapacity() bool {
	return b.Status != BookingStatusCancelled
}
