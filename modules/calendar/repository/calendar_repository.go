package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"go-booking-api/core/database"
	"go-booking-api/core/logger"
	"go-booking-api/modules/calendar/entity"
)

// CalendarRepository persists external calendar connections.
type CalendarRepository struct {
	DB database.IDatabase
}

func NewCalendarRepository(db database.IDatabase) *CalendarRepository {
	return &CalendarRepository{DB: db}
}

// CalendarRepositoryInterface defines the repository contract.
type CalendarRepositoryInterface interface {
	CreateConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error)
	GetConnectionByOwner(ctx context.Context, ownerID uuid.UUID, provider string) (*entity.CalendarConnection, error)
	ListConnectionsByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.CalendarConnection, error)
	UpdateConnection(ctx context.Context, conn *entity.CalendarConnection) error
	DeleteConnection(ctx context.Context, ownerID uuid.UUID, provider string) error
}

func (r *CalendarRepository) CreateConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error) {
	query := `
		INSERT INTO calendar_connections (owner_id, provider, access_token, refresh_token,
		                                  token_expires_at, calendar_email, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, owner_id, provider, access_token, refresh_token,
		          token_expires_at, calendar_email, is_active, created_at, updated_at
	`

	var created entity.CalendarConnection
	err := r.DB.GetContext(ctx, &created, query,
		conn.OwnerID, conn.Provider, conn.AccessToken, conn.RefreshToken,
		conn.TokenExpiresAt, conn.CalendarEmail, conn.IsActive)
	if err != nil {
		logger.Error("CalendarRepository:CreateConnection", err)
		return nil, err
	}

	return &created, nil
}

func (r *CalendarRepository) GetConnectionByOwner(ctx context.Context, ownerID uuid.UUID, provider string) (*entity.CalendarConnection, error) {
	query := `
		SELECT id, owner_id, provider, access_token, refresh_token,
		       token_expires_at, calendar_email, is_active, created_at, updated_at
		FROM calendar_connections
		WHERE owner_id = $1 AND provider = $2 AND is_active = true
	`

	var conn entity.CalendarConnection
	err := r.DB.GetContext(ctx, &conn, query, ownerID, provider)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CalendarRepository:GetConnectionByOwner", err)
		return nil, err
	}

	return &conn, nil
}

func (r *CalendarRepository) ListConnectionsByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.CalendarConnection, error) {
	query := `
		SELECT id, owner_id, provider, access_token, refresh_token,
		       token_expires_at, calendar_email, is_active, created_at, updated_at
		FROM calendar_connections
		WHERE owner_id = $1
		ORDER BY created_at
	`

	connections := []entity.CalendarConnection{}
	err := r.DB.SelectContext(ctx, &connections, query, ownerID)
	if err != nil {
		logger.Error("CalendarRepository:ListConnectionsByOwner", err)
		return nil, err
	}

	return connections, nil
}

func (r *CalendarRepository) UpdateConnection(ctx context.Context, conn *entity.CalendarConnection) error {
	query := `
		UPDATE calendar_connections
		SET access_token = $2, refresh_token = $3, token_expires_at = $4,
		    calendar_email = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		conn.ID, conn.AccessToken, conn.RefreshToken, conn.TokenExpiresAt,
		conn.CalendarEmail, conn.IsActive)
	if err != nil {
		logger.Error("CalendarRepository:UpdateConnection", err)
		return err
	}

	return nil
}

func (r *CalendarRepository) DeleteConnection(ctx context.Context, ownerID uuid.UUID, provider string) error {
	query := `DELETE FROM calendar_connections WHERE owner_id = $1 AND provider = $2`

	if err := r.DB.ExecContext(ctx, query, ownerID, provider); err != nil {
		logger.Error("CalendarRepository:DeleteConnection", err)
		return err
	}

	return nil
}
