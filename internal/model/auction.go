package model

import "time"

// AuctionStatus is the lifecycle state of a listing.
type AuctionStatus string

const (
	AuctionStatusDraft           AuctionStatus = "draft"
	AuctionStatusPendingApproval AuctionStatus = "pending_approval"
	AuctionStatusActive          AuctionStatus = "active"
	AuctionStatusEndedNoBids     AuctionStatus = "ended_no_bids"
	AuctionStatusEndedSold       AuctionStatus = "ended_sold"
	AuctionStatusEndedNotSold    AuctionStatus = "ended_not_sold"
	AuctionStatusCancelled       AuctionStatus = "cancelled"
)

// validTransitions enumerates the allowed lifecycle edges. The ended_*
// states and cancelled are terminal.
var validTransitions = map[AuctionStatus][]AuctionStatus{
	AuctionStatusDraft: {
		AuctionStatusPendingApproval,
		AuctionStatusCancelled,
	},
	AuctionStatusPendingApproval: {
		AuctionStatusActive,
		AuctionStatusCancelled,
	},
	AuctionStatusActive: {
		AuctionStatusEndedNoBids,
		AuctionStatusEndedSold,
		AuctionStatusEndedNotSold,
		AuctionStatusCancelled,
	},
}

// CanTransition reports whether moving from one status to another is a
// legal lifecycle edge.
func CanTransition(from, to AuctionStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
func (s AuctionStatus) IsTerminal() bool {
	switch s {
	case AuctionStatusEndedNoBids, AuctionStatusEndedSold, AuctionStatusEndedNotSold, AuctionStatusCancelled:
		return true
	}
	return false
}

// Valid reports whether the string names a known status.
func (s AuctionStatus) Valid() bool {
	switch s {
	case AuctionStatusDraft, AuctionStatusPendingApproval, AuctionStatusActive,
		AuctionStatusEndedNoBids, AuctionStatusEndedSold, AuctionStatusEndedNotSold,
		AuctionStatusCancelled:
		return true
	}
	return false
}

// Auction is the central listing entity. All prices are integer
// minor-currency units (cents). CurrentPrice starts at StartingPrice and
// only moves up, one step per accepted bid.
type Auction struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	SellerID uint `json:"seller_id" gorm:"not null;index"`

	Title         LocalizedText `json:"title" gorm:"embedded;embeddedPrefix:title_"`
	Description   LocalizedText `json:"description" gorm:"embedded;embeddedPrefix:description_"`
	ItemCondition LocalizedText `json:"item_condition" gorm:"embedded;embeddedPrefix:item_condition_"`

	CategoryID uint `json:"category_id" gorm:"not null;index"`
	LocationID uint `json:"location_id" gorm:"not null;index"`

	Status    AuctionStatus `json:"status" gorm:"type:varchar(30);default:'draft';not null;index"`
	StartTime time.Time     `json:"start_time" gorm:"not null"`
	EndTime   time.Time     `json:"end_time" gorm:"not null;index"`

	StartingPrice int64  `json:"starting_price" gorm:"not null"`
	CurrentPrice  int64  `json:"current_price" gorm:"not null"`
	ReservePrice  *int64 `json:"reserve_price,omitempty"`
	BidIncrement  int64  `json:"bid_increment" gorm:"not null;default:100"`

	WinningBidID *uint `json:"winning_bid_id,omitempty"`
	ViewCount    int64 `json:"view_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations. The seller is referenced, not owned.
	Seller   *User          `json:"-" gorm:"foreignKey:SellerID"`
	Category *Category      `json:"-" gorm:"foreignKey:CategoryID"`
	Location *Location      `json:"-" gorm:"foreignKey:LocationID"`
	Images   []AuctionImage `json:"images,omitempty" gorm:"foreignKey:AuctionID"`
	Bids     []Bid          `json:"bids,omitempty" gorm:"foreignKey:AuctionID"`
}

// MinimumBid is the smallest amount the next bid must reach.
func (a *Auction) MinimumBid() int64 {
	return a.CurrentPrice + a.BidIncrement
}

// Expired reports whether the bidding window has closed at the given time.
func (a *Auction) Expired(now time.Time) bool {
	return now.After(a.EndTime)
}
