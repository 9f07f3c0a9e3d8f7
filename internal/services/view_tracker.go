// Package services contains the business logic layer for the news backend
package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/axellelanca/newsboard/internal/cache"
	customerrors "github.com/axellelanca/newsboard/internal/errors"
	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/repository"
)

// AnonymousSession is the shared bucket used when a client supplies no
// session token. All anonymous readers debounce against each other, which is
// an accepted approximation.
const AnonymousSession = "anonymous"

// ViewTracker decides whether an article read should be counted as a new
// view. Deduplication is best-effort, two-tier:
//
//  1. an in-process TTL set absorbs the common case (double render, rapid
//     re-fetch) without touching the database;
//  2. a durable event-log check catches duplicates recorded by another
//     instance behind the load balancer.
//
// When neither tier suppresses, the view event and the cached counter are
// written in one transaction.
type ViewTracker struct {
	eventRepo repository.EventRepository
	seen      *cache.ViewCache
	window    time.Duration
	log       *zap.Logger

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewViewTracker creates a ViewTracker with the given debounce window.
func NewViewTracker(eventRepo repository.EventRepository, seen *cache.ViewCache, window time.Duration, log *zap.Logger) *ViewTracker {
	return &ViewTracker{
		eventRepo: eventRepo,
		seen:      seen,
		window:    window,
		log:       log,
		now:       time.Now,
	}
}

// ViewRequest carries the request context the tracker needs to build the
// event row.
type ViewRequest struct {
	NewsID       uint
	SessionToken string
	Path         string
	UserAgent    string
	IP           string
}

// Track runs the dedup decision for one article read and records a view
// event when the read is genuinely new. It returns whether a view was
// recorded. Errors are returned for the caller to log; they must never fail
// the underlying article read.
func (t *ViewTracker) Track(req ViewRequest) (bool, error) {
	if req.NewsID == 0 {
		return false, customerrors.ErrInvalidNewsID
	}
	token := req.SessionToken
	if token == "" {
		token = AnonymousSession
	}

	// Fast path: process-local debounce. The key is added BEFORE any I/O so
	// two near-simultaneous requests cannot both pass this tier.
	key := fmt.Sprintf("%s-%d", token, req.NewsID)
	if !t.seen.Add(key) {
		t.log.Debug("view debounced by cache",
			zap.Uint("news_id", req.NewsID),
			zap.String("session", token))
		return false, nil
	}

	// Slow path: durable check against the event log. Not racing-free across
	// instances either, but the offline cleanup sweep compensates for the
	// residue.
	since := t.now().Add(-t.window)
	exists, err := t.eventRepo.HasRecentView(req.NewsID, token, since)
	if err != nil {
		return false, customerrors.ErrViewRecordingFailed{NewsID: req.NewsID, Reason: err.Error()}
	}
	if exists {
		t.log.Debug("view debounced by event log",
			zap.Uint("news_id", req.NewsID),
			zap.String("session", token))
		return false, nil
	}

	newsID := req.NewsID
	path := req.Path
	event := &models.Event{
		Type:         string(models.EventNewsView),
		NewsID:       &newsID,
		Path:         &path,
		SessionToken: token,
		UserAgent:    req.UserAgent,
		IP:           req.IP,
		CreatedAt:    t.now(),
	}

	if err := t.eventRepo.RecordView(event); err != nil {
		return false, customerrors.ErrViewRecordingFailed{NewsID: req.NewsID, Reason: err.Error()}
	}

	t.log.Debug("view recorded",
		zap.Uint("news_id", req.NewsID),
		zap.String("session", token))
	return true, nil
}
