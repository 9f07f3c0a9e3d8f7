package repository

import (
	"fmt"
	"time"

	"github.com/axellelanca/newsboard/internal/models"
	"gorm.io/gorm"
)

// DayCount is one row of a per-day grouped count query.
// Day carries the calendar date in "2006-01-02" form (SQLite date() output).
type DayCount struct {
	Day   string
	Count int64
}

// TypeCount is one row of a per-type grouped count query.
type TypeCount struct {
	Type  string
	Count int64
}

// NewsViewCount is one row of the per-news view ranking query.
type NewsViewCount struct {
	NewsID uint
	Count  int64
}

// EventRepository est une interface qui définit les méthodes d'accès aux données
type EventRepository interface {
	CreateEvent(event *models.Event) error
	RecordView(event *models.Event) error
	HasRecentView(newsID uint, sessionToken string, since time.Time) (bool, error)
	CountByType(kind models.EventKind) (int64, error)
	CountByDay(kind models.EventKind, from, to time.Time) ([]DayCount, error)
	CountsByTypeSince(since time.Time) ([]TypeCount, error)
	TopNewsByViews(since time.Time, limit int) ([]NewsViewCount, error)
	List(kind models.EventKind, offset, limit int) ([]models.Event, int64, error)
	ViewsOrderedByClient() ([]models.Event, error)
	DeleteByIDs(ids []uint) (int64, error)
}

// GormEventRepository est l'implémentation de l'interface EventRepository utilisant GORM.
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository crée et retourne une nouvelle instance de GormEventRepository.
func NewEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// CreateEvent insère un nouvel enregistrement d'événement dans la base de données.
func (r *GormEventRepository) CreateEvent(event *models.Event) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// RecordView inserts a news_view event and increments the cached views
// counter of the targeted news item in a single transaction. Both writes
// succeed or both are rolled back, so the counter and the log cannot
// diverge.
func (r *GormEventRepository) RecordView(event *models.Event) error {
	if event.NewsID == nil {
		return fmt.Errorf("cannot record view without a news id")
	}
	newsID := *event.NewsID

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		res := tx.Model(&models.News{}).
			Where("id = ?", newsID).
			UpdateColumn("views", gorm.Expr("views + 1"))
		if res.Error != nil {
			return res.Error
		}
		// No matching news row: roll back the event insert too, so the log
		// never carries a view the counter did not see.
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record view for news %d: %w", newsID, err)
	}
	return nil
}

// HasRecentView reports whether a view event for the given (news, client)
// pair exists at or after the given instant. This is the durable half of the
// dedup gate: it also catches duplicates recorded by another instance.
func (r *GormEventRepository) HasRecentView(newsID uint, sessionToken string, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Event{}).
		Where("type = ? AND news_id = ? AND session_token = ? AND created_at >= ?",
			string(models.EventNewsView), newsID, sessionToken, since).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check recent views for news %d: %w", newsID, err)
	}
	return count > 0, nil
}

// CountByType compte le nombre total d'événements pour un type donné.
func (r *GormEventRepository) CountByType(kind models.EventKind) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Event{}).Where("type = ?", string(kind)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count events of type %s: %w", kind, err)
	}
	return count, nil
}

// CountByDay groups events of one kind by calendar day over [from, to).
// Days with no events are absent from the result; the stats service
// zero-fills the series.
func (r *GormEventRepository) CountByDay(kind models.EventKind, from, to time.Time) ([]DayCount, error) {
	var rows []DayCount
	err := r.db.Model(&models.Event{}).
		Select("date(created_at) AS day, count(*) AS count").
		Where("type = ? AND created_at >= ? AND created_at < ?", string(kind), from, to).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count events by day: %w", err)
	}
	return rows, nil
}

// CountsByTypeSince groups all events since the given instant by type.
func (r *GormEventRepository) CountsByTypeSince(since time.Time) ([]TypeCount, error) {
	var rows []TypeCount
	err := r.db.Model(&models.Event{}).
		Select("type, count(*) AS count").
		Where("created_at >= ?", since).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count events by type: %w", err)
	}
	return rows, nil
}

// TopNewsByViews ranks news items by view-event count within the window.
// Ties are broken by news id ascending so repeated calls over the same data
// return identical orderings.
func (r *GormEventRepository) TopNewsByViews(since time.Time, limit int) ([]NewsViewCount, error) {
	var rows []NewsViewCount
	err := r.db.Model(&models.Event{}).
		Select("news_id, count(*) AS count").
		Where("type = ? AND news_id IS NOT NULL AND created_at >= ?", string(models.EventNewsView), since).
		Group("news_id").
		Order("count DESC, news_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank news by views: %w", err)
	}
	return rows, nil
}

// List returns a page of events newest first, optionally filtered by kind,
// along with the total matching row count for pagination.
func (r *GormEventRepository) List(kind models.EventKind, offset, limit int) ([]models.Event, int64, error) {
	query := r.db.Model(&models.Event{})
	if kind != "" {
		query = query.Where("type = ?", string(kind))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	var events []models.Event
	err := query.Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	return events, total, nil
}

// ViewsOrderedByClient returns every view event ordered by
// (session_token, news_id, created_at, id), the scan order the offline
// duplicate sweep relies on.
func (r *GormEventRepository) ViewsOrderedByClient() ([]models.Event, error) {
	var events []models.Event
	err := r.db.
		Where("type = ?", string(models.EventNewsView)).
		Order("session_token ASC, news_id ASC, created_at ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load view events for cleanup: %w", err)
	}
	return events, nil
}

// DeleteByIDs removes the given event rows and returns how many were deleted.
func (r *GormEventRepository) DeleteByIDs(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Where("id IN ?", ids).Delete(&models.Event{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete events: %w", res.Error)
	}
	return res.RowsAffected, nil
}
