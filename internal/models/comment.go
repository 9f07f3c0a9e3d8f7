package models

import "time"

// Comment is one flat row of a per-article comment thread. Root comments
// have a nil ParentID; replies reference an existing comment id. The tree
// shape is reconstructed on read, never stored.
type Comment struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	NewsID   uint  `gorm:"index;not null" json:"newsId"`
	ParentID *uint `gorm:"index" json:"parentId"`

	Author  string `gorm:"size:191;not null" json:"author"`
	Email   string `gorm:"size:191;not null" json:"-"`
	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// CommentNode is one node of the assembled comment forest returned to
// clients: the row's display fields plus its replies in chronological order.
type CommentNode struct {
	ID        uint           `json:"id"`
	Author    string         `json:"author"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	Replies   []*CommentNode `json:"replies"`
}
