package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/repository"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

// AuditService records administrative mutations for traceability and serves
// the paginated audit log listing. Writes go through a buffered channel
// drained by background workers, so audit logging never blocks a mutation.
type AuditService struct {
	eventRepo repository.EventRepository
	newsRepo  repository.NewsRepository
	adminRepo repository.AdminRepository
	entries   chan<- models.AuditEntry
	log       *zap.Logger
}

// NewAuditService creates and returns a new instance of AuditService.
// entries is the channel consumed by the audit worker pool.
func NewAuditService(eventRepo repository.EventRepository, newsRepo repository.NewsRepository, adminRepo repository.AdminRepository, entries chan<- models.AuditEntry, log *zap.Logger) *AuditService {
	return &AuditService{
		eventRepo: eventRepo,
		newsRepo:  newsRepo,
		adminRepo: adminRepo,
		entries:   entries,
		log:       log,
	}
}

// Record queues one audit entry for asynchronous persistence. When the
// buffer is full the entry is dropped with a warning: losing an audit row
// beats stalling the admin request behind it.
func (s *AuditService) Record(entry models.AuditEntry) {
	select {
	case s.entries <- entry:
	default:
		s.log.Warn("audit buffer full, dropping entry",
			zap.String("type", string(entry.Type)),
			zap.String("path", entry.Path))
	}
}

// AuditLogItem is one enriched row of the audit log listing. The stored IP
// is deliberately withheld from API responses.
type AuditLogItem struct {
	ID        uint       `json:"id"`
	Type      string     `json:"type"`
	Path      *string    `json:"path"`
	NewsID    *uint      `json:"newsId"`
	NewsTitle *string    `json:"newsTitle"`
	UserID    *uint      `json:"userId"`
	User      *AuditUser `json:"user"`
	UserAgent string     `json:"userAgent"`
	CreatedAt time.Time  `json:"createdAt"`
}

// AuditUser is the admin projection attached to audit rows.
type AuditUser struct {
	ID   uint   `json:"id"`
	User string `json:"user"`
	Role string `json:"role"`
}

// AuditPage is one page of the audit log listing.
type AuditPage struct {
	Items      []AuditLogItem `json:"items"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int64          `json:"total"`
	TotalPages int64          `json:"totalPages"`
}

// List returns a page of the audit log, newest first, optionally filtered
// by event type, enriched with admin identities and news titles.
func (s *AuditService) List(typeStr string, page, limit int) (*AuditPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultAuditPageSize
	} else if limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}

	var kind models.EventKind
	if typeStr != "" {
		kind = models.ParseEventKindOrDefault(typeStr, models.EventOther)
	}

	events, total, err := s.eventRepo.List(kind, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	// Collect the distinct foreign keys once, then enrich in two lookups.
	userIDs := make([]uint, 0, len(events))
	newsIDs := make([]uint, 0, len(events))
	seenUsers := make(map[uint]bool)
	seenNews := make(map[uint]bool)
	for _, e := range events {
		if e.UserID != nil && !seenUsers[*e.UserID] {
			seenUsers[*e.UserID] = true
			userIDs = append(userIDs, *e.UserID)
		}
		if e.NewsID != nil && !seenNews[*e.NewsID] {
			seenNews[*e.NewsID] = true
			newsIDs = append(newsIDs, *e.NewsID)
		}
	}
	admins, err := s.adminRepo.AdminsByIDs(userIDs)
	if err != nil {
		return nil, err
	}
	titles, err := s.newsRepo.TitlesByIDs(newsIDs)
	if err != nil {
		return nil, err
	}

	items := make([]AuditLogItem, 0, len(events))
	for _, e := range events {
		item := AuditLogItem{
			ID:        e.ID,
			Type:      e.Type,
			Path:      e.Path,
			NewsID:    e.NewsID,
			UserID:    e.UserID,
			UserAgent: e.UserAgent,
			CreatedAt: e.CreatedAt,
		}
		if e.NewsID != nil {
			if title, ok := titles[*e.NewsID]; ok {
				item.NewsTitle = &title
			}
		}
		if e.UserID != nil {
			if admin, ok := admins[*e.UserID]; ok {
				item.User = &AuditUser{ID: admin.ID, User: admin.User, Role: admin.Role}
			}
		}
		items = append(items, item)
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return &AuditPage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
