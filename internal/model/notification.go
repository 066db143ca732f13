package model

import "time"

// Notification is a bilingual message owned by one user. Rows are
// append-only except for flipping the read flag.
type Notification struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	UserID    uint          `json:"user_id" gorm:"not null;index;index:idx_user_read,priority:1"`
	Content   LocalizedText `json:"content" gorm:"embedded;embeddedPrefix:content_"`
	LinkURL   string        `json:"link_url,omitempty" gorm:"size:500"`
	IsRead    bool          `json:"is_read" gorm:"default:false;not null;index:idx_user_read,priority:2"`
	CreatedAt time.Time     `json:"created_at"`
}
