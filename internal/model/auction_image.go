package model

import "time"

// AuctionImage is one photo of a listed item, stored in object storage and
// referenced here by URL and file key. Images are ordered per auction via
// DisplayOrder; there is no reordering endpoint.
type AuctionImage struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	AuctionID    uint          `json:"auction_id" gorm:"not null;index"`
	ImageURL     string        `json:"image_url" gorm:"size:1000;not null"`
	FileKey      string        `json:"file_key" gorm:"size:500;not null"`
	AltText      LocalizedText `json:"alt_text" gorm:"embedded;embeddedPrefix:alt_text_"`
	DisplayOrder int           `json:"display_order" gorm:"not null;default:0"`
	CreatedAt    time.Time     `json:"created_at"`
}
