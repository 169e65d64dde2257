package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventpulse/eventpulse-api/internal/models"
	appErrors "github.com/eventpulse/eventpulse-api/pkg/errors"
)

func newEventRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "slug", "title", "description", "overview", "image", "venue", "location", "event_date", "event_time", "mode", "audience", "agenda", "organizer", "tags", "created_at", "updated_at"}).
		AddRow("e1", "go-meetup", "Go Meetup", "desc", "overview", "https://cdn.example.com/go.png", "Hall A", "Berlin", "2025-03-05", "18:30", "offline", "developers", "{Welcome,Talks}", "ACME", "{go,backend}", time.Now(), time.Now())
}

func TestEventRepositoryFindBySlug(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE slug = $1")).
		WithArgs("go-meetup").
		WillReturnRows(eventRows())

	event, err := repo.FindBySlug(context.Background(), "go-meetup")
	require.NoError(t, err)
	assert.Equal(t, "go-meetup", event.Slug)
	assert.Equal(t, []string{"go", "backend"}, []string(event.Tags))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryFindBySlugNoRows(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE slug = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindBySlug(context.Background(), "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryFindSimilar(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE id <> $1 AND tags && $2")).
		WithArgs("e1", sqlmock.AnyArg()).
		WillReturnRows(eventRows())

	events, err := repo.FindSimilar(context.Background(), "e1", []string{"go"})
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryList(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE 1=1 AND mode = $1 AND $2 = ANY(tags) ORDER BY created_at DESC")).
		WithArgs("offline", "go").
		WillReturnRows(eventRows())

	events, err := repo.List(context.Background(), models.EventFilter{Mode: "offline", Tag: "go"})
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectExec("INSERT INTO events").
		WillReturnResult(sqlmock.NewResult(1, 1))

	event := &models.Event{
		Slug:        "go-meetup",
		Title:       "Go Meetup",
		Description: "desc",
		Overview:    "overview",
		Image:       "https://cdn.example.com/go.png",
		Venue:       "Hall A",
		Location:    "Berlin",
		Date:        "2025-03-05",
		Time:        "18:30",
		Mode:        models.ModeOffline,
		Audience:    "developers",
		Agenda:      []string{"Welcome"},
		Organizer:   "ACME",
		Tags:        []string{"go"},
	}
	require.NoError(t, repo.Create(context.Background(), event))
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryCreateDuplicateSlug(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectExec("INSERT INTO events").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uniq_events_slug"})

	err := repo.Create(context.Background(), &models.Event{Slug: "go-meetup", Title: "Go Meetup"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrDuplicateKey.Code, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryExistsByID(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM events WHERE id = $1 LIMIT 1")).
		WithArgs("e1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsByID(context.Background(), "e1")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM events WHERE id = $1 LIMIT 1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	exists, err = repo.ExistsByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
