package dto

import (
	"time"

	"go-booking-api/modules/booking/entity"
)

// CreateBookingRequest is the public booking form payload.
type CreateBookingRequest struct {
	EventTypeSlug string    `json:"event_type_slug"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	StartTime     time.Time `json:"start_time"`
	AttendeeCount int       `json:"attendee_count"`
}

// BookingListQuery filters the admin booking list.
type BookingListQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// BookingResponse is the booking as returned to clients.
type BookingResponse struct {
	ID            string    `json:"id"`
	EventTypeID   string    `json:"event_type_id"`
	Reference     string    `json:"reference"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	AttendeeCount int       `json:"attendee_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToBookingResponse(b *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID.String(),
		EventTypeID:   b.EventTypeID.String(),
		Reference:     b.Reference,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        string(b.Status),
		AttendeeCount: b.AttendeeCount,
		CreatedAt:     b.CreatedAt,
	}
}

func ToBookingResponses(bookings []entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, *ToBookingResponse(&bookings[i]))
	}
	return out
}
