package models

import "time"

// Admin is a back-office user. Authentication itself (JWT issuance, guards)
// is handled upstream of this service; the model exists for the overview
// admin count and for enriching audit log listings.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User      string    `gorm:"size:100;uniqueIndex;not null" json:"user"`
	Role      string    `gorm:"size:50;default:editor" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
