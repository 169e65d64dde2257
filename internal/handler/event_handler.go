package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eventpulse/eventpulse-api/internal/middleware"
	"github.com/eventpulse/eventpulse-api/internal/models"
	"github.com/eventpulse/eventpulse-api/internal/service"
	appErrors "github.com/eventpulse/eventpulse-api/pkg/errors"
	"github.com/eventpulse/eventpulse-api/pkg/response"
)

// EventReader exposes the read side of the event catalogue.
type EventReader interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, bool, error)
	GetBySlug(ctx context.Context, slug string) (*models.Event, bool, error)
	GetSimilar(ctx context.Context, slug string) []models.Event
}

// EventWriter exposes the write side of the event catalogue.
type EventWriter interface {
	Create(ctx context.Context, req service.CreateEventRequest) (*models.Event, error)
	Update(ctx context.Context, slug string, req service.UpdateEventRequest) (*models.Event, error)
}

// EventHandler wires event services to HTTP routes.
type EventHandler struct {
	reader EventReader
	writer EventWriter
}

// NewEventHandler constructs a new EventHandler.
func NewEventHandler(reader EventReader, writer EventWriter) *EventHandler {
	return &EventHandler{reader: reader, writer: writer}
}

// List godoc
// @Summary List events
// @Tags Events
// @Produce json
// @Param mode query string false "Filter by mode (online/offline/hybrid)"
// @Param tag query string false "Filter by tag"
// @Success 200 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	filter := models.EventFilter{
		Mode: strings.TrimSpace(c.Query("mode")),
		Tag:  strings.TrimSpace(c.Query("tag")),
	}

	events, cacheHit, err := h.reader.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, events, middleware.ExtractMeta(c))
}

// Get godoc
// @Summary Get event detail by slug
// @Tags Events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{slug} [get]
func (h *EventHandler) Get(c *gin.Context) {
	event, cacheHit, err := h.reader.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, event, middleware.ExtractMeta(c))
}

// Similar godoc
// @Summary List events sharing at least one tag with the given event
// @Tags Events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} response.Envelope
// @Router /events/{slug}/similar [get]
func (h *EventHandler) Similar(c *gin.Context) {
	events := h.reader.GetSimilar(c.Request.Context(), c.Param("slug"))
	response.JSON(c, http.StatusOK, events)
}

// Create godoc
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid event payload"))
		return
	}
	event, err := h.writer.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Update godoc
// @Summary Update event by slug
// @Tags Events
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param payload body service.UpdateEventRequest true "Event payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /events/{slug} [put]
func (h *EventHandler) Update(c *gin.Context) {
	var req service.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid event payload"))
		return
	}
	event, err := h.writer.Update(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event)
}
