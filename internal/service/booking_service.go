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
	"github.com/eventpulse/eventpulse-api/pkg/export"
)

type bookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	ListByEvent(ctx context.Context, eventID string) ([]models.Booking, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
}

type eventFinder interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
	FindBySlug(ctx context.Context, slug string) (*models.Event, error)
}

// CreateBookingRequest represents payload for creating bookings.
type CreateBookingRequest struct {
	EventID string `json:"event_id" validate:"required"`
	Email   string `json:"email" validate:"required"`
}

// EventBookings bundles an event's attendee list with its count.
type EventBookings struct {
	Event    *models.Event    `json:"event"`
	Bookings []models.Booking `json:"bookings"`
	Total    int              `json:"total"`
}

// ExportResult carries a rendered attendee export.
type ExportResult struct {
	Content     []byte
	Filename    string
	ContentType string
}

// BookingService orchestrates booking operations.
type BookingService struct {
	repo      bookingRepository
	events    eventFinder
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	maxRows   int
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBookingService constructs a BookingService.
func NewBookingService(repo bookingRepository, events eventFinder, maxRows int, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		repo:      repo,
		events:    events,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		maxRows:   maxRows,
		validator: validate,
		logger:    logger,
	}
}

// Create records a booking for an event. The email is lowercased, trimmed
// and checked against the address grammar; the referenced event must exist.
// The storage unique index arbitrates concurrent duplicates, so failure
// leaves the store unchanged.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}

	email, err := normalize.Email(req.Email)
	if err != nil {
		return nil, err
	}

	exists, err := s.events.ExistsByID(ctx, req.EventID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify event")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrReferenceNotFound, fmt.Sprintf("event with ID %s does not exist", req.EventID))
	}

	booking := &models.Booking{
		EventID: req.EventID,
		Email:   email,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create booking")
	}

	s.logger.Info("booking created",
		zap.String("event_id", booking.EventID),
		zap.String("booking_id", booking.ID),
	)
	return booking, nil
}

// ListByEvent returns the attendee list for the event behind the slug.
func (s *BookingService) ListByEvent(ctx context.Context, rawSlug string) (*EventBookings, error) {
	event, err := s.resolveEvent(ctx, rawSlug)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	total, err := s.repo.CountByEvent(ctx, event.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count bookings")
	}

	return &EventBookings{Event: event, Bookings: bookings, Total: total}, nil
}

// ExportByEvent renders the attendee list as CSV or PDF.
func (s *BookingService) ExportByEvent(ctx context.Context, rawSlug, format string) (*ExportResult, error) {
	event, err := s.resolveEvent(ctx, rawSlug)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
	}
	if s.maxRows > 0 && len(bookings) > s.maxRows {
		bookings = bookings[:s.maxRows]
	}

	dataset := export.Dataset{
		Headers: []string{"Email", "Booked At"},
		Rows:    make([]map[string]string, 0, len(bookings)),
	}
	for _, b := range bookings {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Email":     b.Email,
			"Booked At": b.CreatedAt.UTC().Format("2006-01-02 15:04"),
		})
	}

	switch strings.ToLower(format) {
	case "", "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			Content:     content,
			Filename:    fmt.Sprintf("%s-attendees.csv", event.Slug),
			ContentType: "text/csv",
		}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset, fmt.Sprintf("%s attendees", event.Title))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			Content:     content,
			Filename:    fmt.Sprintf("%s-attendees.pdf", event.Slug),
			ContentType: "application/pdf",
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *BookingService) resolveEvent(ctx context.Context, rawSlug string) (*models.Event, error) {
	slug := strings.ToLower(strings.TrimSpace(rawSlug))
	if slug == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidFormat, "invalid or missing slug parameter")
	}

	event, err := s.events.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch event")
	}
	return event, nil
}
