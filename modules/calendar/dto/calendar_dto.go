package dto

import (
	"time"

	"go-booking-api/modules/calendar/entity"
)

const ProviderGoogle = "google"

// ConnectCalendarRequest saves OAuth tokens obtained by the admin UI.
type ConnectCalendarRequest struct {
	Provider      string    `json:"provider"`
	AccessToken   string    `json:"access_token"`
	RefreshToken  string    `json:"refresh_token"`
	ExpiresAt     time.Time `json:"expires_at"`
	CalendarEmail string    `json:"calendar_email"`
}

// CalendarConnectionResponse is a connection without its tokens.
type CalendarConnectionResponse struct {
	ID            string `json:"id"`
	Provider      string `json:"provider"`
	CalendarEmail string `json:"calendar_email"`
	IsActive      bool   `json:"is_active"`
	ConnectedAt   string `json:"connected_at"`
}

func ToCalendarConnectionResponse(conn *entity.CalendarConnection) *CalendarConnectionResponse {
	return &CalendarConnectionResponse{
		ID:            conn.ID.String(),
		Provider:      conn.Provider,
		CalendarEmail: conn.CalendarEmail,
		IsActive:      conn.IsActive,
		ConnectedAt:   conn.CreatedAt.Format(time.RFC3339),
	}
}
