package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"go-booking-api/core/config"
	"go-booking-api/core/errors"
	"go-booking-api/core/logger"
	availabilityentity "go-booking-api/modules/availability/entity"
	"go-booking-api/modules/calendar/dto"
	"go-booking-api/modules/calendar/entity"
	"go-booking-api/modules/calendar/repository"
)

const googleFreeBusyAPI = "https://www.googleapis.com/calendar/v3/freeBusy"

// CalendarService manages external calendar connections and exposes
// their busy windows to the availability engine.
type CalendarService struct {
	repo       repository.CalendarRepositoryInterface
	httpClient *http.Client
}

// CalendarServiceInterface defines the service contract. It satisfies
// the availability module's BusyTimeSource.
type CalendarServiceInterface interface {
	SaveConnection(ctx context.Context, ownerID uuid.UUID, req *dto.ConnectCalendarRequest) (*dto.CalendarConnectionResponse, *errors.AppError)
	GetConnections(ctx context.Context, ownerID uuid.UUID) ([]dto.CalendarConnectionResponse, *errors.AppError)
	DisconnectCalendar(ctx context.Context, ownerID uuid.UUID, provider string) *errors.AppError
	GetBusyIntervals(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]availabilityentity.TimeWindow, error)
}

func NewCalendarService(repo repository.CalendarRepositoryInterface) CalendarServiceInterface {
	return &CalendarService{
		repo:       repo,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SaveConnection stores or refreshes an owner's calendar connection.
func (s *CalendarService) SaveConnection(ctx context.Context, ownerID uuid.UUID, req *dto.ConnectCalendarRequest) (*dto.CalendarConnectionResponse, *errors.AppError) {
	if req.Provider != dto.ProviderGoogle {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unsupported calendar provider", nil)
	}
	if req.AccessToken == "" || req.RefreshToken == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Access and refresh tokens are required", nil)
	}

	existing, err := s.repo.GetConnectionByOwner(ctx, ownerID, req.Provider)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load calendar connection", err)
	}

	if existing != nil {
		existing.AccessToken = req.AccessToken
		existing.RefreshToken = req.RefreshToken
		existing.TokenExpiresAt = req.ExpiresAt
		existing.CalendarEmail = req.CalendarEmail
		existing.IsActive = true

		if err = s.repo.UpdateConnection(ctx, existing); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update calendar connection", err)
		}
		return dto.ToCalendarConnectionResponse(existing), nil
	}

	created, err := s.repo.CreateConnection(ctx, &entity.CalendarConnection{
		OwnerID:        ownerID,
		Provider:       req.Provider,
		AccessToken:    req.AccessToken,
		RefreshToken:   req.RefreshToken,
		TokenExpiresAt: req.ExpiresAt,
		CalendarEmail:  req.CalendarEmail,
		IsActive:       true,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to save calendar connection", err)
	}

	logger.Info("CalendarService:SaveConnection:Success",
		"owner_id", ownerID, "provider", req.Provider, "email", req.CalendarEmail)

	return dto.ToCalendarConnectionResponse(created), nil
}

func (s *CalendarService) GetConnections(ctx context.Context, ownerID uuid.UUID) ([]dto.CalendarConnectionResponse, *errors.AppError) {
	connections, err := s.repo.ListConnectionsByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list calendar connections", err)
	}

	result := make([]dto.CalendarConnectionResponse, 0, len(connections))
	for i := range connections {
		result = append(result, *dto.ToCalendarConnectionResponse(&connections[i]))
	}
	return result, nil
}

func (s *CalendarService) DisconnectCalendar(ctx context.Context, ownerID uuid.UUID, provider string) *errors.AppError {
	if err := s.repo.DeleteConnection(ctx, ownerID, provider); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to disconnect calendar", err)
	}
	return nil
}

// GetBusyIntervals returns the owner's busy windows from Google. An
// owner with no active connection is simply free. Any transport or API
// failure comes back as ErrIntegrationUnavailable; the caller decides
// whether to fail or degrade.
func (s *CalendarService) GetBusyIntervals(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]availabilityentity.TimeWindow, error) {
	conn, err := s.repo.GetConnectionByOwner(ctx, ownerID, dto.ProviderGoogle)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, nil
	}

	accessToken, err := s.ensureValidToken(ctx, conn)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrIntegrationUnavailable, "Calendar token refresh failed", err)
	}

	busy, err := s.callGoogleFreeBusy(ctx, accessToken, conn.CalendarEmail, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrIntegrationUnavailable, "Calendar busy lookup failed", err)
	}

	return busy, nil
}

// ensureValidToken refreshes the access token through the OAuth token
// source when it is expired or close to it. The refreshed token is
// persisted so the next call skips the round trip.
func (s *CalendarService) ensureValidToken(ctx context.Context, conn *entity.CalendarConnection) (string, error) {
	if time.Now().Before(conn.TokenExpiresAt.Add(-5 * time.Minute)) {
		return conn.AccessToken, nil
	}

	logger.Info("CalendarService:ensureValidToken:Refreshing", "owner_id", conn.OwnerID)

	cfg, ok := config.GetSafe()
	if !ok {
		return "", fmt.Errorf("configuration not initialized")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
	}

	token, err := oauthCfg.TokenSource(ctx, &oauth2.Token{
		AccessToken:  conn.AccessToken,
		RefreshToken: conn.RefreshToken,
		Expiry:       conn.TokenExpiresAt,
	}).Token()
	if err != nil {
		logger.Error("CalendarService:ensureValidToken:Refresh", err)
		return "", err
	}

	conn.AccessToken = token.AccessToken
	conn.TokenExpiresAt = token.Expiry
	if token.RefreshToken != "" {
		conn.RefreshToken = token.RefreshToken
	}

	if err = s.repo.UpdateConnection(ctx, conn); err != nil {
		logger.Warn("CalendarService:ensureValidToken:Persist", "error", err, "owner_id", conn.OwnerID)
	}

	return token.AccessToken, nil
}

// callGoogleFreeBusy queries the FreeBusy API and maps the busy blocks
// to time windows.
func (s *CalendarService) callGoogleFreeBusy(ctx context.Context, accessToken, email string, from, to time.Time) ([]availabilityentity.TimeWindow, error) {
	payload, err := json.Marshal(map[string]any{
		"timeMin": from.Format(time.RFC3339),
		"timeMax": to.Format(time.RFC3339),
		"items":   []map[string]string{{"id": email}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleFreeBusyAPI, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google freebusy api: status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Calendars map[string]struct {
			Busy []struct {
				Start time.Time `json:"start"`
				End   time.Time `json:"end"`
			} `json:"busy"`
		} `json:"calendars"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	var windows []availabilityentity.TimeWindow
	if cal, ok := result.Calendars[email]; ok {
		for _, b := range cal.Busy {
			windows = append(windows, availabilityentity.TimeWindow{Start: b.Start, End: b.End})
		}
	}

	return windows, nil
}
