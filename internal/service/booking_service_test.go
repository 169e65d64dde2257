package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventpulse/eventpulse-api/internal/models"
	appErrors "github.com/eventpulse/eventpulse-api/pkg/errors"
)

type bookingRepoStub struct {
	createErr error
	listResp  []models.Booking
	listErr   error
	count     int
	countErr  error

	created *models.Booking
}

func (s *bookingRepoStub) Create(ctx context.Context, booking *models.Booking) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = booking
	return nil
}

func (s *bookingRepoStub) ListByEvent(ctx context.Context, eventID string) ([]models.Booking, error) {
	return s.listResp, s.listErr
}

func (s *bookingRepoStub) CountByEvent(ctx context.Context, eventID string) (int, error) {
	return s.count, s.countErr
}

type eventFinderStub struct {
	exists    bool
	existsErr error
	event     *models.Event
	findErr   error
}

func (s *eventFinderStub) ExistsByID(ctx context.Context, id string) (bool, error) {
	return s.exists, s.existsErr
}

func (s *eventFinderStub) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.event, nil
}

func TestBookingServiceCreate(t *testing.T) {
	repo := &bookingRepoStub{}
	svc := NewBookingService(repo, &eventFinderStub{exists: true}, 0, nil, nil)

	booking, err := svc.Create(context.Background(), CreateBookingRequest{
		EventID: "e1",
		Email:   "  Visitor@Example.COM ",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, "e1", booking.EventID)
	assert.Equal(t, "visitor@example.com", booking.Email, "email is trimmed and lowercased before storage")
}

func TestBookingServiceCreateInvalidEmail(t *testing.T) {
	repo := &bookingRepoStub{}
	svc := NewBookingService(repo, &eventFinderStub{exists: true}, 0, nil, nil)

	_, err := svc.Create(context.Background(), CreateBookingRequest{EventID: "e1", Email: "not-an-email"})
	assertErrCode(t, err, appErrors.ErrInvalidFormat.Code)
	assert.Nil(t, repo.created)
}

func TestBookingServiceCreateMissingEvent(t *testing.T) {
	repo := &bookingRepoStub{}
	svc := NewBookingService(repo, &eventFinderStub{exists: false}, 0, nil, nil)

	_, err := svc.Create(context.Background(), CreateBookingRequest{EventID: "missing", Email: "visitor@example.com"})
	assertErrCode(t, err, appErrors.ErrReferenceNotFound.Code)
	assert.Nil(t, repo.created, "precondition failure must not write")
}

func TestBookingServiceCreateDuplicate(t *testing.T) {
	repo := &bookingRepoStub{createErr: appErrors.Clone(appErrors.ErrDuplicateKey, "this email has already booked this event")}
	svc := NewBookingService(repo, &eventFinderStub{exists: true}, 0, nil, nil)

	_, err := svc.Create(context.Background(), CreateBookingRequest{EventID: "e1", Email: "visitor@example.com"})
	assertErrCode(t, err, appErrors.ErrDuplicateKey.Code)
}

func TestBookingServiceCreateMissingPayload(t *testing.T) {
	svc := NewBookingService(&bookingRepoStub{}, &eventFinderStub{exists: true}, 0, nil, nil)

	_, err := svc.Create(context.Background(), CreateBookingRequest{Email: "visitor@example.com"})
	assertErrCode(t, err, appErrors.ErrValidation.Code)
}

func TestBookingServiceListByEvent(t *testing.T) {
	event := &models.Event{ID: "e1", Slug: "go-meetup", Title: "Go Meetup"}
	repo := &bookingRepoStub{
		listResp: []models.Booking{{ID: "b1", EventID: "e1", Email: "a@example.com"}},
		count:    1,
	}
	svc := NewBookingService(repo, &eventFinderStub{event: event}, 0, nil, nil)

	result, err := svc.ListByEvent(context.Background(), "go-meetup")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Len(t, result.Bookings, 1)
	assert.Equal(t, "go-meetup", result.Event.Slug)
}

func TestBookingServiceListByEventNotFound(t *testing.T) {
	svc := NewBookingService(&bookingRepoStub{}, &eventFinderStub{findErr: sql.ErrNoRows}, 0, nil, nil)

	_, err := svc.ListByEvent(context.Background(), "missing")
	assertErrCode(t, err, appErrors.ErrNotFound.Code)
}

func TestBookingServiceListByEventBlankSlug(t *testing.T) {
	svc := NewBookingService(&bookingRepoStub{}, &eventFinderStub{}, 0, nil, nil)

	_, err := svc.ListByEvent(context.Background(), "   ")
	assertErrCode(t, err, appErrors.ErrInvalidFormat.Code)
}

func TestBookingServiceExportCSV(t *testing.T) {
	event := &models.Event{ID: "e1", Slug: "go-meetup", Title: "Go Meetup"}
	bookedAt := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	repo := &bookingRepoStub{
		listResp: []models.Booking{{ID: "b1", EventID: "e1", Email: "a@example.com", CreatedAt: bookedAt}},
	}
	svc := NewBookingService(repo, &eventFinderStub{event: event}, 0, nil, nil)

	result, err := svc.ExportByEvent(context.Background(), "go-meetup", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "go-meetup-attendees.csv", result.Filename)

	content := string(result.Content)
	assert.True(t, strings.HasPrefix(content, "Email,Booked At\n"))
	assert.Contains(t, content, "a@example.com,2025-03-01 10:30")
}

func TestBookingServiceExportPDF(t *testing.T) {
	event := &models.Event{ID: "e1", Slug: "go-meetup", Title: "Go Meetup"}
	repo := &bookingRepoStub{
		listResp: []models.Booking{{ID: "b1", EventID: "e1", Email: "a@example.com", CreatedAt: time.Now()}},
	}
	svc := NewBookingService(repo, &eventFinderStub{event: event}, 0, nil, nil)

	result, err := svc.ExportByEvent(context.Background(), "go-meetup", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestBookingServiceExportUnknownFormat(t *testing.T) {
	event := &models.Event{ID: "e1", Slug: "go-meetup", Title: "Go Meetup"}
	svc := NewBookingService(&bookingRepoStub{}, &eventFinderStub{event: event}, 0, nil, nil)

	_, err := svc.ExportByEvent(context.Background(), "go-meetup", "xlsx")
	assertErrCode(t, err, appErrors.ErrValidation.Code)
}

func TestBookingServiceExportCapsRows(t *testing.T) {
	event := &models.Event{ID: "e1", Slug: "go-meetup", Title: "Go Meetup"}
	repo := &bookingRepoStub{
		listResp: []models.Booking{
			{Email: "a@example.com"},
			{Email: "b@example.com"},
			{Email: "c@example.com"},
		},
	}
	svc := NewBookingService(repo, &eventFinderStub{event: event}, 2, nil, nil)

	result, err := svc.ExportByEvent(context.Background(), "go-meetup", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	assert.Len(t, lines, 3, "header plus capped rows")
}
