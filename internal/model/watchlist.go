package model

import "time"

// WatchlistItem joins a user to an auction they follow without bidding.
// Identity is the composite (UserID, AuctionID); the row has no lifecycle
// beyond existing.
type WatchlistItem struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	AuctionID uint      `json:"auction_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Auction *Auction `json:"auction,omitempty" gorm:"foreignKey:AuctionID"`
}

// TableName keeps the original table name for the composite join.
func (WatchlistItem) TableName() string {
	return "watchlist"
}
