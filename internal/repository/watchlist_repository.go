package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mazad/internal/model"
)

// WatchlistRepository defines watchlist persistence operations.
type WatchlistRepository interface {
	// Add inserts the (user, auction) pair; a duplicate add is a no-op.
	Add(ctx context.Context, userID, auctionID uint) error
	Remove(ctx context.Context, userID, auctionID uint) error
	FindByUser(ctx context.Context, userID uint) ([]model.WatchlistItem, error)
	Exists(ctx context.Context, userID, auctionID uint) (bool, error)
}

type watchlistRepository struct {
	db *gorm.DB
}

// NewWatchlistRepository creates a new watchlist repository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) Add(ctx context.Context, userID, auctionID uint) error {
	item := model.WatchlistItem{UserID: userID, AuctionID: auctionID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&item).Error
}

func (r *watchlistRepository) Remove(ctx context.Context, userID, auctionID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND auction_id = ?", userID, auctionID).
		Delete(&model.WatchlistItem{}).Error
}

// FindByUser lists a user's watchlist, most recently added first.
func (r *watchlistRepository) FindByUser(ctx context.Context, userID uint) ([]model.WatchlistItem, error) {
	var items []model.WatchlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *watchlistRepository) Exists(ctx context.Context, userID, auctionID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WatchlistItem{}).
		Where("user_id = ? AND auction_id = ?", userID, auctionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
