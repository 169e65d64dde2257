package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eventpulse/eventpulse-api/internal/models"
	"github.com/eventpulse/eventpulse-api/internal/normalize"
	appErrors "github.com/eventpulse/eventpulse-api/pkg/errors"
)

type eventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	FindBySlug(ctx context.Context, slug string) (*models.Event, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
	FindSimilar(ctx context.Context, id string, tags []string) ([]models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
}

// CreateEventRequest represents payload for creating events.
type CreateEventRequest struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=1000"`
	Overview    string   `json:"overview" validate:"required,max=500"`
	Image       string   `json:"image" validate:"required,url"`
	Venue       string   `json:"venue" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	Time        string   `json:"time" validate:"required"`
	Mode        string   `json:"mode" validate:"required,oneof=online offline hybrid"`
	Audience    string   `json:"audience" validate:"required"`
	Agenda      []string `json:"agenda" validate:"required,min=1,dive,required"`
	Organizer   string   `json:"organizer" validate:"required"`
	Tags        []string `json:"tags" validate:"required,min=1,dive,required"`
}

// UpdateEventRequest represents a partial event update. Only fields present
// in the payload are touched; normalization re-runs only for those fields.
type UpdateEventRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Overview    *string  `json:"overview" validate:"omitempty,max=500"`
	Image       *string  `json:"image" validate:"omitempty,url"`
	Venue       *string  `json:"venue" validate:"omitempty"`
	Location    *string  `json:"location" validate:"omitempty"`
	Date        *string  `json:"date" validate:"omitempty"`
	Time        *string  `json:"time" validate:"omitempty"`
	Mode        *string  `json:"mode" validate:"omitempty,oneof=online offline hybrid"`
	Audience    *string  `json:"audience" validate:"omitempty"`
	Agenda      []string `json:"agenda" validate:"omitempty,min=1,dive,required"`
	Organizer   *string  `json:"organizer" validate:"omitempty"`
	Tags        []string `json:"tags" validate:"omitempty,min=1,dive,required"`
}

// EventService orchestrates event operations.
type EventService struct {
	repo      eventRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs an EventService.
func NewEventService(repo eventRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns events matching the filter, served from cache when possible.
// The second return value reports whether the cache was hit.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]models.Event, bool, error) {
	key := listCacheKey(filter)

	var cached []models.Event
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, true, nil
	}

	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	if events == nil {
		events = []models.Event{}
	}

	_ = s.cache.Set(ctx, key, events, 0)
	return events, false, nil
}

// GetBySlug resolves an event by its slug. Blank input is rejected before any
// store access. The second return value reports whether the cache was hit.
func (s *EventService) GetBySlug(ctx context.Context, rawSlug string) (*models.Event, bool, error) {
	slug := strings.ToLower(strings.TrimSpace(rawSlug))
	if slug == "" {
		return nil, false, appErrors.Clone(appErrors.ErrInvalidFormat, "invalid or missing slug parameter")
	}

	key := "events:slug:" + slug
	var cached models.Event
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	event, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch event")
	}

	_ = s.cache.Set(ctx, key, event, 0)
	return event, false, nil
}

// GetSimilar returns all other events sharing at least one tag with the event
// behind the slug. Any failure, including a missing seed event, yields an
// empty slice rather than an error.
func (s *EventService) GetSimilar(ctx context.Context, rawSlug string) []models.Event {
	slug := strings.ToLower(strings.TrimSpace(rawSlug))
	if slug == "" {
		return []models.Event{}
	}

	key := "events:similar:" + slug
	var cached []models.Event
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached
	}

	seed, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("similar events seed lookup failed", zap.String("slug", slug), zap.Error(err))
		}
		return []models.Event{}
	}

	similar, err := s.repo.FindSimilar(ctx, seed.ID, seed.Tags)
	if err != nil {
		s.logger.Warn("similar events lookup failed", zap.String("slug", slug), zap.Error(err))
		return []models.Event{}
	}
	if similar == nil {
		similar = []models.Event{}
	}

	_ = s.cache.Set(ctx, key, similar, 0)
	return similar
}

// Create validates and normalizes the payload, then persists a new event.
// The slug is derived from the title; date and time are stored canonically.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}

	date, err := normalize.Date(req.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := normalize.Time(req.Time)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Slug:        normalize.Slug(req.Title),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Overview:    strings.TrimSpace(req.Overview),
		Image:       strings.TrimSpace(req.Image),
		Venue:       strings.TrimSpace(req.Venue),
		Location:    strings.TrimSpace(req.Location),
		Date:        date,
		Time:        startTime,
		Mode:        req.Mode,
		Audience:    strings.TrimSpace(req.Audience),
		Agenda:      trimAll(req.Agenda),
		Organizer:   strings.TrimSpace(req.Organizer),
		Tags:        trimAll(req.Tags),
	}

	if err := s.repo.Create(ctx, event); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}

	_ = s.cache.Invalidate(ctx, "events:*")
	return event, nil
}

// Update applies a partial update to the event behind the slug. The slug is
// recomputed when the title changes; date/time re-normalize only when their
// raw values are part of the change.
func (s *EventService) Update(ctx context.Context, rawSlug string, req UpdateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}

	event, _, err := s.GetBySlug(ctx, rawSlug)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
		event.Slug = normalize.Slug(*req.Title)
	}
	if req.Description != nil {
		event.Description = strings.TrimSpace(*req.Description)
	}
	if req.Overview != nil {
		event.Overview = strings.TrimSpace(*req.Overview)
	}
	if req.Image != nil {
		event.Image = strings.TrimSpace(*req.Image)
	}
	if req.Venue != nil {
		event.Venue = strings.TrimSpace(*req.Venue)
	}
	if req.Location != nil {
		event.Location = strings.TrimSpace(*req.Location)
	}
	if req.Date != nil {
		date, err := normalize.Date(*req.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	if req.Time != nil {
		startTime, err := normalize.Time(*req.Time)
		if err != nil {
			return nil, err
		}
		event.Time = startTime
	}
	if req.Mode != nil {
		event.Mode = *req.Mode
	}
	if req.Audience != nil {
		event.Audience = strings.TrimSpace(*req.Audience)
	}
	if req.Agenda != nil {
		event.Agenda = trimAll(req.Agenda)
	}
	if req.Organizer != nil {
		event.Organizer = strings.TrimSpace(*req.Organizer)
	}
	if req.Tags != nil {
		event.Tags = trimAll(req.Tags)
	}

	if err := s.repo.Update(ctx, event); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event")
	}

	_ = s.cache.Invalidate(ctx, "events:*")
	return event, nil
}

func listCacheKey(filter models.EventFilter) string {
	return fmt.Sprintf("events:list:mode=%s:tag=%s", filter.Mode, filter.Tag)
}

func trimAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, strings.TrimSpace(v))
	}
	return result
}
