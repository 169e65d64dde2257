package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eventpulse/eventpulse-api/internal/models"
)

// BookingRepository manages persistence for bookings.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a booking as a single write. The uniq_event_email index is
// the arbiter for concurrent duplicates; a losing write surfaces as a
// DUPLICATE_KEY error, a dangling event reference as REFERENCE_NOT_FOUND.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now

	const query = `INSERT INTO bookings (id, event_id, email, created_at, updated_at)
		VALUES (:id, :event_id, :email, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return translateConstraintError(err, "this email has already booked this event", "booked event does not exist")
	}
	return nil
}

// ListByEvent returns the bookings for an event, newest first.
func (r *BookingRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Booking, error) {
	const query = `SELECT id, event_id, email, created_at, updated_at FROM bookings WHERE event_id = $1 ORDER BY created_at DESC`
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, eventID); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// CountByEvent returns the number of bookings recorded for an event.
func (r *BookingRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM bookings WHERE event_id = $1", eventID); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return total, nil
}
