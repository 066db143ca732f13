package model

import "time"

// Category is static reference data classifying auction items. Categories
// are created by admins and only ever read afterwards.
type Category struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	Name             LocalizedText `json:"name" gorm:"embedded;embeddedPrefix:name_"`
	Slug             LocalizedText `json:"slug" gorm:"embedded;embeddedPrefix:slug_"`
	ParentCategoryID *uint         `json:"parent_category_id,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
