package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/repository"
)

// CleanupService is the batch-mode complement to the online view tracker:
// it removes duplicate view events that slipped through the gate, which
// happens when near-simultaneous requests hit different instances. It runs
// outside the request path, from a CLI command or the periodic monitor.
type CleanupService struct {
	eventRepo repository.EventRepository
	window    time.Duration
	log       *zap.Logger
}

// NewCleanupService creates a CleanupService using the same debounce window
// as the online gate.
func NewCleanupService(eventRepo repository.EventRepository, window time.Duration, log *zap.Logger) *CleanupService {
	return &CleanupService{
		eventRepo: eventRepo,
		window:    window,
		log:       log,
	}
}

// SweepDuplicateViews scans all view events ordered by
// (session token, news id, created at) and deletes every row whose
// predecessor shares the same key and falls inside the debounce window.
// Returns the number of rows deleted.
func (s *CleanupService) SweepDuplicateViews() (int64, error) {
	events, err := s.eventRepo.ViewsOrderedByClient()
	if err != nil {
		return 0, err
	}

	ids := duplicateViewIDs(events, s.window)
	if len(ids) == 0 {
		s.log.Info("cleanup: no duplicate views found")
		return 0, nil
	}

	deleted, err := s.eventRepo.DeleteByIDs(ids)
	if err != nil {
		return 0, err
	}
	s.log.Info("cleanup: duplicate views deleted", zap.Int64("count", deleted))
	return deleted, nil
}

// duplicateViewIDs walks rows already sorted by (session token, news id,
// created at, id) and flags every row whose immediate predecessor shares
// the key and is less than `window` older. The predecessor is the previous
// row in scan order even when that row is itself flagged, so a burst of
// views spaced under the window apart collapses to its first event only.
func duplicateViewIDs(events []models.Event, window time.Duration) []uint {
	var ids []uint
	for i := 1; i < len(events); i++ {
		prev := &events[i-1]
		curr := &events[i]
		if sameViewKey(prev, curr) && curr.CreatedAt.Sub(prev.CreatedAt) < window {
			ids = append(ids, curr.ID)
		}
	}
	return ids
}

// sameViewKey reports whether two view events belong to the same
// (session token, news id) dedup bucket.
func sameViewKey(a, b *models.Event) bool {
	if a.SessionToken != b.SessionToken {
		return false
	}
	if a.NewsID == nil || b.NewsID == nil {
		return a.NewsID == nil && b.NewsID == nil
	}
	return *a.NewsID == *b.NewsID
}
