package models

import "time"

// AboutSection is a singleton row backing the public about block.
type AboutSection struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Overline string `gorm:"size:255" json:"overline"`
	Title    string `gorm:"size:255" json:"title"`
	Subtitle string `gorm:"type:text" json:"subtitle"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Statistic is one headline figure on the marketing page ("120 cities", ...).
type Statistic struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Label    string `gorm:"size:255;not null" json:"label"`
	Value    string `gorm:"size:100;not null" json:"value"`
	Order    int    `gorm:"column:sort_order;default:0" json:"order"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

// Solution is one product/solution card on the marketing page.
type Solution struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:100" json:"icon"`
	Order       int    `gorm:"column:sort_order;default:0" json:"order"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

// TeamMember is one entry of the public team section.
type TeamMember struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:191;not null" json:"name"`
	Role     string `gorm:"size:191" json:"role"`
	PhotoURL string `gorm:"size:255" json:"photoUrl"`
	Order    int    `gorm:"column:sort_order;default:0" json:"order"`
}

// Partner is one partner logo/link on the public page.
type Partner struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:191;not null" json:"name"`
	LogoURL string `gorm:"size:255" json:"logoUrl"`
	SiteURL string `gorm:"size:255" json:"siteUrl"`
	Order   int    `gorm:"column:sort_order;default:0" json:"order"`
}

// Link is one entry of the public footer/useful-links section.
type Link struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Label string `gorm:"size:191;not null" json:"label"`
	URL   string `gorm:"size:255;not null" json:"url"`
	Order int    `gorm:"column:sort_order;default:0" json:"order"`
}
