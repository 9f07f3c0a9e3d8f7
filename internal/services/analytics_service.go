package services

import (
	"go.uber.org/zap"

	customerrors "github.com/axellelanca/newsboard/internal/errors"
	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/repository"
)

// AnalyticsService handles the generic tracking endpoint: clients post
// arbitrary typed events (clicks, custom interactions) that land in the
// same append-only log the view pipeline writes to.
type AnalyticsService struct {
	eventRepo repository.EventRepository
	log       *zap.Logger
}

// NewAnalyticsService creates and returns a new instance of AnalyticsService.
func NewAnalyticsService(eventRepo repository.EventRepository, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		eventRepo: eventRepo,
		log:       log,
	}
}

// TrackInput is the sanitized shape of a tracking request.
type TrackInput struct {
	Type      string
	NewsID    *uint
	Path      string
	UserID    *uint
	UserAgent string
	IP        string
}

// Track records one event. The type string is mapped through the closed
// event-kind enumeration: unknown values become "other", an empty type is
// rejected at the boundary.
func (s *AnalyticsService) Track(input TrackInput) (*models.Event, error) {
	kind, ok := models.ParseEventKind(input.Type)
	if !ok {
		return nil, customerrors.ErrEmptyEventType
	}

	var path *string
	if input.Path != "" {
		path = &input.Path
	}
	event := &models.Event{
		Type:      string(kind),
		NewsID:    input.NewsID,
		Path:      path,
		UserID:    input.UserID,
		UserAgent: input.UserAgent,
		IP:        input.IP,
	}
	if err := s.eventRepo.CreateEvent(event); err != nil {
		return nil, err
	}

	s.log.Debug("event tracked", zap.String("type", string(kind)), zap.Uint("id", event.ID))
	return event, nil
}
