package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/eventpulse/eventpulse-api/internal/models"
)

const eventColumns = "id, slug, title, description, overview, image, venue, location, event_date, event_time, mode, audience, agenda, organizer, tags, created_at, updated_at"

// EventRepository manages persistence for events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns events matching the filter in newest-first order.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	base := "FROM events WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Mode != "" {
		conditions = append(conditions, fmt.Sprintf("mode = $%d", len(args)+1))
		args = append(args, filter.Mode)
	}
	if filter.Tag != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(tags)", len(args)+1))
		args = append(args, filter.Tag)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC", eventColumns, base)
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// FindBySlug fetches an event by its canonical slug. The match is exact and
// case-sensitive; callers normalise before calling.
func (r *EventRepository) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE slug = $1", eventColumns)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, slug); err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByID fetches an event by ID.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = $1", eventColumns)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// FindSimilar returns all events other than the given one whose tags overlap
// the provided set. Ordering is store-native.
func (r *EventRepository) FindSimilar(ctx context.Context, id string, tags []string) ([]models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id <> $1 AND tags && $2", eventColumns)
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, id, pq.Array(tags)); err != nil {
		return nil, fmt.Errorf("find similar events: %w", err)
	}
	return events, nil
}

// ExistsByID reports whether an event with the given ID exists.
func (r *EventRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM events WHERE id = $1 LIMIT 1", id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check event exists: %w", err)
	}
	return true, nil
}

// Create inserts a new event record. A colliding slug surfaces as a
// DUPLICATE_KEY error.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now

	const query = `INSERT INTO events (id, slug, title, description, overview, image, venue, location, event_date, event_time, mode, audience, agenda, organizer, tags, created_at, updated_at)
		VALUES (:id, :slug, :title, :description, :overview, :image, :venue, :location, :event_date, :event_time, :mode, :audience, :agenda, :organizer, :tags, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return translateConstraintError(err, "an event with this slug already exists", "event reference does not exist")
	}
	return nil
}

// Update modifies an existing event record.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE events SET slug = :slug, title = :title, description = :description, overview = :overview, image = :image, venue = :venue, location = :location, event_date = :event_date, event_time = :event_time, mode = :mode, audience = :audience, agenda = :agenda, organizer = :organizer, tags = :tags, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return translateConstraintError(err, "an event with this slug already exists", "event reference does not exist")
	}
	return nil
}
