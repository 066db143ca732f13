package model

import "time"

// Bid is a single offer on an auction. Bids are immutable once created:
// no update or delete operation exists anywhere in the system. A bidder
// may place any number of bids on the same auction.
type Bid struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuctionID uint      `json:"auction_id" gorm:"not null;index;index:idx_auction_created,priority:1"`
	BidderID  uint      `json:"bidder_id" gorm:"not null;index"`
	BidAmount int64     `json:"bid_amount" gorm:"not null"` // cents
	IsAutoBid bool      `json:"is_auto_bid" gorm:"default:false;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_auction_created,priority:2"`

	// Relations
	Auction *Auction `json:"-" gorm:"foreignKey:AuctionID"`
	Bidder  *User    `json:"-" gorm:"foreignKey:BidderID"`
}
