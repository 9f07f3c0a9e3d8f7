package models

import "time"

// News statuses. Kept as plain strings in the column for portability.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// News represents one article in the database.
type News struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Category string `gorm:"size:100;index" json:"category"`
	Status   string `gorm:"size:20;not null;default:draft;index" json:"status"`

	// Date is the editorial publication date, distinct from CreatedAt.
	Date time.Time `json:"date"`

	// Views is a cached denormalization of news_view events. It may be read
	// directly for display, but authoritative counting (top-N, overview
	// totals) derives from the event log instead.
	Views uint `gorm:"default:0" json:"views"`

	Images []NewsImage `gorm:"foreignKey:NewsID;constraint:OnDelete:CASCADE" json:"images"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// NewsImage is an image attached to an article. ImageData holds a path or a
// data URI; the upload pipeline itself lives outside this service.
type NewsImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	NewsID    uint   `gorm:"index;not null" json:"newsId"`
	ImageData string `gorm:"type:text;not null" json:"imageData"`
	AltText   string `gorm:"size:255" json:"altText"`
}
