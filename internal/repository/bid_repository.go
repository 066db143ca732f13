package repository

import (
	"context"

	"gorm.io/gorm"

	"mazad/internal/model"
)

// BidRepository defines bid persistence operations. Bids are append-only;
// no update or delete exists.
type BidRepository interface {
	Create(ctx context.Context, bid *model.Bid) error
	FindByAuction(ctx context.Context, auctionID uint) ([]model.Bid, error)
	FindByBidder(ctx context.Context, bidderID uint) ([]model.Bid, error)
	FindHighest(ctx context.Context, auctionID uint) (*model.Bid, error)
	CountByAuction(ctx context.Context, auctionID uint) (int64, error)
}

type bidRepository struct {
	db *gorm.DB
}

// NewBidRepository creates a new bid repository.
func NewBidRepository(db *gorm.DB) BidRepository {
	return &bidRepository{db: db}
}

// Create creates a new bid record.
func (r *bidRepository) Create(ctx context.Context, bid *model.Bid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

// FindByAuction lists an auction's bids, newest first.
func (r *bidRepository) FindByAuction(ctx context.Context, auctionID uint) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

// FindByBidder lists a user's bids, newest first.
func (r *bidRepository) FindByBidder(ctx context.Context, bidderID uint) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.WithContext(ctx).
		Where("bidder_id = ?", bidderID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

// FindHighest returns the highest bid on an auction, latest wins ties.
// Returns gorm.ErrRecordNotFound when no bids exist.
func (r *bidRepository) FindHighest(ctx context.Context, auctionID uint) (*model.Bid, error) {
	var bid model.Bid
	err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("bid_amount DESC, created_at DESC").
		First(&bid).Error
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// CountByAuction counts the bids on an auction.
func (r *bidRepository) CountByAuction(ctx context.Context, auctionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Bid{}).
		Where("auction_id = ?", auctionID).
		Count(&count).Error
	return count, err
}
