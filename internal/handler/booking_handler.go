package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventpulse/eventpulse-api/internal/models"
	"github.com/eventpulse/eventpulse-api/internal/service"
	appErrors "github.com/eventpulse/eventpulse-api/pkg/errors"
	"github.com/eventpulse/eventpulse-api/pkg/response"
)

// BookingManager exposes booking creation and attendee views.
type BookingManager interface {
	Create(ctx context.Context, req service.CreateBookingRequest) (*models.Booking, error)
	ListByEvent(ctx context.Context, slug string) (*service.EventBookings, error)
	ExportByEvent(ctx context.Context, slug, format string) (*service.ExportResult, error)
}

// BookingHandler wires booking services to HTTP routes.
type BookingHandler struct {
	bookings       BookingManager
	exportsEnabled bool
}

// NewBookingHandler constructs a new BookingHandler.
func NewBookingHandler(bookings BookingManager, exportsEnabled bool) *BookingHandler {
	return &BookingHandler{bookings: bookings, exportsEnabled: exportsEnabled}
}

// Create godoc
// @Summary Book a spot for an event
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body service.CreateBookingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}
	booking, err := h.bookings.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}

// ListByEvent godoc
// @Summary List attendees for an event
// @Tags Bookings
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{slug}/bookings [get]
func (h *BookingHandler) ListByEvent(c *gin.Context) {
	result, err := h.bookings.ListByEvent(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Export godoc
// @Summary Export an event's attendee list
// @Tags Bookings
// @Produce text/csv
// @Produce application/pdf
// @Param slug path string true "Event slug"
// @Param format query string false "Export format (csv/pdf)"
// @Success 200 {file} byte
// @Failure 404 {object} response.Envelope
// @Router /events/{slug}/bookings/export [get]
func (h *BookingHandler) Export(c *gin.Context) {
	if !h.exportsEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	result, err := h.bookings.ExportByEvent(c.Request.Context(), c.Param("slug"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
