package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventpulse/eventpulse-api/internal/models"
	"github.com/eventpulse/eventpulse-api/internal/service"
	appErrors "github.com/eventpulse/eventpulse-api/pkg/errors"
)

type bookingManagerMock struct {
	createResp *models.Booking
	createErr  error
	listResp   *service.EventBookings
	listErr    error
	exportResp *service.ExportResult
	exportErr  error

	createCalled bool
	lastSlug     string
	lastFormat   string
}

func (m *bookingManagerMock) Create(ctx context.Context, req service.CreateBookingRequest) (*models.Booking, error) {
	m.createCalled = true
	return m.createResp, m.createErr
}

func (m *bookingManagerMock) ListByEvent(ctx context.Context, slug string) (*service.EventBookings, error) {
	m.lastSlug = slug
	return m.listResp, m.listErr
}

func (m *bookingManagerMock) ExportByEvent(ctx context.Context, slug, format string) (*service.ExportResult, error) {
	m.lastSlug = slug
	m.lastFormat = format
	return m.exportResp, m.exportErr
}

func TestBookingHandlerCreate(t *testing.T) {
	mock := &bookingManagerMock{createResp: &models.Booking{ID: "b1", EventID: "e1", Email: "jane@example.com"}}
	h := NewBookingHandler(mock, true)

	payload, _ := json.Marshal(service.CreateBookingRequest{EventID: "e1", Email: "jane@example.com"})
	c, w := testContext(t, http.MethodPost, "/bookings", payload)

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestBookingHandlerCreateInvalidBody(t *testing.T) {
	mock := &bookingManagerMock{}
	h := NewBookingHandler(mock, true)

	c, w := testContext(t, http.MethodPost, "/bookings", []byte(`{"event_id":`))

	h.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mock.createCalled)
}

func TestBookingHandlerCreateDuplicate(t *testing.T) {
	mock := &bookingManagerMock{createErr: appErrors.Clone(appErrors.ErrDuplicateKey, "this email has already booked the event")}
	h := NewBookingHandler(mock, true)

	payload, _ := json.Marshal(service.CreateBookingRequest{EventID: "e1", Email: "jane@example.com"})
	c, w := testContext(t, http.MethodPost, "/bookings", payload)

	h.Create(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingHandlerCreateMissingEvent(t *testing.T) {
	mock := &bookingManagerMock{createErr: appErrors.Clone(appErrors.ErrReferenceNotFound, "event does not exist")}
	h := NewBookingHandler(mock, true)

	payload, _ := json.Marshal(service.CreateBookingRequest{EventID: "ghost", Email: "jane@example.com"})
	c, w := testContext(t, http.MethodPost, "/bookings", payload)

	h.Create(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandlerListByEvent(t *testing.T) {
	mock := &bookingManagerMock{listResp: &service.EventBookings{
		Event:    &models.Event{ID: "e1", Slug: "go-meetup"},
		Bookings: []models.Booking{{ID: "b1"}},
		Total:    1,
	}}
	h := NewBookingHandler(mock, true)

	c, w := testContext(t, http.MethodGet, "/events/go-meetup/bookings", nil)
	c.Params = gin.Params{{Key: "slug", Value: "go-meetup"}}

	h.ListByEvent(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "go-meetup", mock.lastSlug)
}

func TestBookingHandlerExportDisabled(t *testing.T) {
	mock := &bookingManagerMock{}
	h := NewBookingHandler(mock, false)

	c, w := testContext(t, http.MethodGet, "/events/go-meetup/bookings/export", nil)

	h.Export(c)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, mock.lastSlug)
}

func TestBookingHandlerExportCSV(t *testing.T) {
	mock := &bookingManagerMock{exportResp: &service.ExportResult{
		Content:     []byte("email,booked_at\njane@example.com,2025-03-05\n"),
		Filename:    "go-meetup-attendees.csv",
		ContentType: "text/csv",
	}}
	h := NewBookingHandler(mock, true)

	c, w := testContext(t, http.MethodGet, "/events/go-meetup/bookings/export?format=csv", nil)
	c.Params = gin.Params{{Key: "slug", Value: "go-meetup"}}

	h.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", mock.lastFormat)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "go-meetup-attendees.csv")
	assert.Contains(t, w.Body.String(), "jane@example.com")
}
