package models

import "time"

// EventKind is the closed vocabulary of event types the analytics pipeline
// understands. It replaces the free-form strings of earlier iterations so
// aggregation code does not need per-call-site allow-lists.
type EventKind string

const (
	EventNewsView    EventKind = "news_view"
	EventNewsClick   EventKind = "news_click"
	EventAdminLogin  EventKind = "admin_login"
	EventAdminCreate EventKind = "admin_create"
	EventAdminUpdate EventKind = "admin_update"
	EventAdminDelete EventKind = "admin_delete"
	EventOther       EventKind = "other"
)

// knownKinds is the allow-list used when parsing untrusted type strings.
var knownKinds = map[EventKind]bool{
	EventNewsView:    true,
	EventNewsClick:   true,
	EventAdminLogin:  true,
	EventAdminCreate: true,
	EventAdminUpdate: true,
	EventAdminDelete: true,
	EventOther:       true,
}

// ParseEventKind maps an arbitrary type string onto the closed enumeration.
// Unknown non-empty values become EventOther; the empty string is reported
// as invalid so callers can reject it at the boundary.
func ParseEventKind(s string) (EventKind, bool) {
	if s == "" {
		return "", false
	}
	kind := EventKind(s)
	if knownKinds[kind] {
		return kind, true
	}
	return EventOther, true
}

// ParseEventKindOrDefault is the lenient variant used by read-side queries:
// anything outside the allow-list falls back to the given default instead of
// being rejected.
func ParseEventKindOrDefault(s string, def EventKind) EventKind {
	kind := EventKind(s)
	if knownKinds[kind] {
		return kind
	}
	return def
}

// Event is one row of the append-only event log. Rows are created at the
// moment of the triggering action (a view, a click, an admin mutation) and
// are never updated afterwards; the offline cleanup pass is the only thing
// allowed to delete them.
type Event struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Type is the event kind. Stored as a string column so existing rows
	// survive vocabulary changes.
	Type string `gorm:"size:64;not null;index" json:"type"`

	// NewsID links the event to a news item when the action targeted one.
	NewsID *uint `gorm:"index" json:"newsId"`

	// Path is the request path that produced the event, when known.
	Path *string `gorm:"size:255" json:"path"`

	// UserID references the admin who performed the action, for audit rows.
	UserID *uint `gorm:"index" json:"userId"`

	// SessionToken is the client-supplied identity the view dedup gate keys
	// on. The offline cleanup pass keys on the same column so online and
	// batch deduplication share one identity concept.
	SessionToken string `gorm:"size:255;index" json:"sessionToken"`

	// UserAgent stores the raw User-Agent header, for device analytics.
	UserAgent string `gorm:"size:255" json:"userAgent"`

	// IP is recorded for abuse tracing but is withheld from API responses.
	IP string `gorm:"size:64" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

// AuditEntry is the lightweight shape queued to the async audit writer.
// It carries only what is needed to build an Event row later.
type AuditEntry struct {
	Type      EventKind
	UserID    *uint
	NewsID    *uint
	Path      string
	UserAgent string
	IP        string
}
