package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"go-booking-api/core/database"
	"go-booking-api/core/logger"
	"go-booking-api/modules/booking/entity"
)

// ErrCapacityExceeded is returned by CreateWithCapacityGuard when the
// recount under the advisory lock finds no seats left.
var ErrCapacityExceeded = errors.New("booking: slot capacity exceeded")

// BookingRepository persists reservations. Writes that consume seats go
// through CreateWithCapacityGuard so two racing requests cannot both
// pass the capacity check.
type BookingRepository struct {
	DB database.IDatabase
}

func NewBookingRepository(db database.IDatabase) *BookingRepository {
	return &BookingRepository{DB: db}
}

// BookingRepositoryInterface defines the repository contract.
type BookingRepositoryInterface interface {
	CreateWithCapacityGuard(ctx context.Context, booking *entity.Booking, capacity int) (*entity.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	GetByReference(ctx context.Context, reference string) (*entity.Booking, error)
	GetActiveBookingsInRange(ctx context.Context, eventTypeID uuid.UUID, from, to time.Time) ([]entity.Booking, error)
	ListByEventType(ctx context.Context, eventTypeID uuid.UUID, from, to time.Time) ([]entity.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
}

// CreateWithCapacityGuard inserts the booking inside a transaction that
// serializes writers per event type. The advisory lock is released when
// the transaction ends; the seat recount under the lock is the final
// word on capacity, regardless of what the pre-write availability check
// saw.
func (r *BookingRepository) CreateWithCapacityGuard(ctx context.Context, booking *entity.Booking, capacity int) (*entity.Booking, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("BookingRepository:CreateWithCapacityGuard:Begin", err)
		return nil, err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1::text))`,
		booking.EventTypeID); err != nil {
		logger.Error("BookingRepository:CreateWithCapacityGuard:Lock", err)
		return nil, err
	}

	var taken int
	err = tx.GetContext(ctx, &taken, `
		SELECT COALESCE(SUM(attendee_count), 0)
		FROM bookings
		WHERE event_type_id = $1
		  AND status != 'cancelled'
		  AND start_time < $3
		  AND end_time > $2
	`, booking.EventTypeID, booking.StartTime, booking.EndTime)
	if err != nil {
		logger.Error("BookingRepository:CreateWithCapacityGuard:Recount", err)
		return nil, err
	}

	if taken+booking.AttendeeCount > capacity {
		return nil, ErrCapacityExceeded
	}

	query := `
		INSERT INTO bookings (event_type_id, reference, customer_name, customer_email,
		                      start_time, end_time, status, attendee_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, event_type_id, reference, customer_name, customer_email,
		          start_time, end_time, status, attendee_count, created_at, updated_at
	`

	var created entity.Booking
	err = tx.GetContext(ctx, &created, query,
		booking.EventTypeID, booking.Reference, booking.CustomerName, booking.CustomerEmail,
		booking.StartTime, booking.EndTime, booking.Status, booking.AttendeeCount)
	if err != nil {
		logger.Error("BookingRepository:CreateWithCapacityGuard:Insert", err)
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("BookingRepository:CreateWithCapacityGuard:Commit", err)
		return nil, err
	}

	return &created, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, event_type_id, reference, customer_name, customer_email,
		       start_time, end_time, status, attendee_count, created_at, updated_at
		FROM bookings WHERE id = $1
	`

	var booking entity.Booking
	err := r.DB.GetContext(ctx, &booking, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetByID", err)
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	query := `
		SELECT id, event_type_id, reference, customer_name, customer_email,
		       start_time, end_time, status, attendee_count, created_at, updated_at
		FROM bookings WHERE reference = $1
	`

	var booking entity.Booking
	err := r.DB.GetContext(ctx, &booking, query, reference)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetByReference", err)
		return nil, err
	}

	return &booking, nil
}

// GetActiveBookingsInRange returns bookings that still count against
// capacity and overlap [from, to).
func (r *BookingRepository) GetActiveBookingsInRange(ctx context.Context, eventTypeID uuid.UUID, from, to time.Time) ([]entity.Booking, error) {
	query := `
		SELECT id, event_type_id, reference, customer_name, customer_email,
		       start_time, end_time, status, attendee_count, created_at, updated_at
		FROM bookings
		WHERE event_type_id = $1
		  AND status != 'cancelled'
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time
	`

	bookings := []entity.Booking{}
	err := r.DB.SelectContext(ctx, &bookings, query, eventTypeID, from, to)
	if err != nil {
		logger.Error("BookingRepository:GetActiveBookingsInRange", err)
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepository) ListByEventType(ctx context.Context, eventTypeID uuid.UUID, from, to time.Time) ([]entity.Booking, error) {
	query := `
		SELECT id, event_type_id, reference, customer_name, customer_email,
		       start_time, end_time, status, attendee_count, created_at, updated_at
		FROM bookings
		WHERE event_type_id = $1
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time
	`

	bookings := []entity.Booking{}
	err := r.DB.SelectContext(ctx, &bookings, query, eventTypeID, from, to)
	if err != nil {
		logger.Error("BookingRepository:ListByEventType", err)
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	if err := r.DB.ExecContext(ctx, query, id, status); err != nil {
		logger.Error("BookingRepository:UpdateStatus", err)
		return err
	}

	return nil
}
