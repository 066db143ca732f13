package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mazad/internal/model"
)

// SearchFilters are the optional, AND-combined auction search filters.
// A nil field leaves that dimension unconstrained. Prices are matched
// against the auction's current price, in cents.
type SearchFilters struct {
	CategoryID *uint
	LocationID *uint
	Status     *model.AuctionStatus
	MinPrice   *int64
	MaxPrice   *int64
}

// AuctionRepository defines auction persistence operations.
type AuctionRepository interface {
	Create(ctx context.Context, auction *model.Auction) error
	FindByID(ctx context.Context, id uint) (*model.Auction, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Auction, error)
	Search(ctx context.Context, filters SearchFilters) ([]model.Auction, error)
	FindActive(ctx context.Context, now time.Time) ([]model.Auction, error)
	FindBySeller(ctx context.Context, sellerID uint) ([]model.Auction, error)
	FindByStatus(ctx context.Context, status model.AuctionStatus) ([]model.Auction, error)
	FindExpiredActive(ctx context.Context, now time.Time, limit int) ([]model.Auction, error)
	IncrementViewCount(ctx context.Context, id uint) error
	UpdateCurrentPrice(ctx context.Context, id uint, price int64) error
	// UpdateStatusFrom flips the status only when the row still holds the
	// expected current status. Returns false when another writer got there
	// first.
	UpdateStatusFrom(ctx context.Context, id uint, from, to model.AuctionStatus) (bool, error)
	// CloseAuction settles an active auction into a terminal ended_* state,
	// optionally recording the winning bid. Compare-and-swap on
	// status = active; returns false if the auction was no longer active.
	CloseAuction(ctx context.Context, id uint, outcome model.AuctionStatus, winningBidID *uint) (bool, error)
	// WithTransaction runs fn with auction and bid repositories bound to
	// one database transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, auctions AuctionRepository, bids BidRepository) error) error
}

type auctionRepository struct {
	db *gorm.DB
}

// NewAuctionRepository creates a new auction repository.
func NewAuctionRepository(db *gorm.DB) AuctionRepository {
	return &auctionRepository{db: db}
}

// Create creates a new auction.
func (r *auctionRepository) Create(ctx context.Context, auction *model.Auction) error {
	return r.db.WithContext(ctx).Create(auction).Error
}

// FindByID finds an auction by ID.
func (r *auctionRepository) FindByID(ctx context.Context, id uint) (*model.Auction, error) {
	var auction model.Auction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&auction).Error; err != nil {
		return nil, err
	}
	return &auction, nil
}

// FindByIDForUpdate finds an auction by ID with a row-level lock. Bid
// placement reads the current price under this lock so two concurrent
// bids cannot both pass the minimum check against stale data.
func (r *auctionRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Auction, error) {
	var auction model.Auction
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&auction).Error; err != nil {
		return nil, err
	}
	return &auction, nil
}

// Search returns auctions matching the filters, newest-created first.
func (r *auctionRepository) Search(ctx context.Context, filters SearchFilters) ([]model.Auction, error) {
	query := r.db.WithContext(ctx).Model(&model.Auction{})
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.LocationID != nil {
		query = query.Where("location_id = ?", *filters.LocationID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.MinPrice != nil {
		query = query.Where("current_price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("current_price <= ?", *filters.MaxPrice)
	}

	var auctions []model.Auction
	if err := query.Order("created_at DESC").Find(&auctions).Error; err != nil {
		return nil, err
	}
	return auctions, nil
}

// FindActive lists auctions that are active and inside their time window,
// soonest-ending first.
func (r *auctionRepository) FindActive(ctx context.Context, now time.Time) ([]model.Auction, error) {
	var auctions []model.Auction
	err := r.db.WithContext(ctx).
		Where("status = ? AND start_time <= ? AND end_time >= ?", model.AuctionStatusActive, now, now).
		Order("end_time ASC").
		Find(&auctions).Error
	if err != nil {
		return nil, err
	}
	return auctions, nil
}

// FindBySeller lists a seller's auctions, newest first.
func (r *auctionRepository) FindBySeller(ctx context.Context, sellerID uint) ([]model.Auction, error) {
	var auctions []model.Auction
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&auctions).Error
	if err != nil {
		return nil, err
	}
	return auctions, nil
}

// FindByStatus lists auctions in a given status, newest first.
func (r *auctionRepository) FindByStatus(ctx context.Context, status model.AuctionStatus) ([]model.Auction, error) {
	var auctions []model.Auction
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&auctions).Error
	if err != nil {
		return nil, err
	}
	return auctions, nil
}

// FindExpiredActive lists active auctions whose end time has passed, for
// the settlement sweeper.
func (r *auctionRepository) FindExpiredActive(ctx context.Context, now time.Time, limit int) ([]model.Auction, error) {
	var auctions []model.Auction
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_time < ?", model.AuctionStatusActive, now).
		Order("end_time ASC").
		Limit(limit).
		Find(&auctions).Error
	if err != nil {
		return nil, err
	}
	return auctions, nil
}

// IncrementViewCount bumps the view counter atomically in the database.
func (r *auctionRepository) IncrementViewCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Auction{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// UpdateCurrentPrice sets the auction's current price.
func (r *auctionRepository) UpdateCurrentPrice(ctx context.Context, id uint, price int64) error {
	return r.db.WithContext(ctx).Model(&model.Auction{}).
		Where("id = ?", id).
		Update("current_price", price).Error
}

// UpdateStatusFrom flips status only when the stored status still matches.
func (r *auctionRepository) UpdateStatusFrom(ctx context.Context, id uint, from, to model.AuctionStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Auction{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CloseAuction settles an active auction into a terminal state.
func (r *auctionRepository) CloseAuction(ctx context.Context, id uint, outcome model.AuctionStatus, winningBidID *uint) (bool, error) {
	updates := map[string]interface{}{"status": outcome}
	if winningBidID != nil {
		updates["winning_bid_id"] = *winningBidID
	}
	res := r.db.WithContext(ctx).Model(&model.Auction{}).
		Where("id = ? AND status = ?", id, model.AuctionStatusActive).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// WithTransaction executes fn inside one database transaction, with both
// repositories rebound to it.
func (r *auctionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, auctions AuctionRepository, bids BidRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &auctionRepository{db: tx}, &bidRepository{db: tx})
	})
}
