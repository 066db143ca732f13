package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mazad/internal/errors"
	"mazad/internal/model"
	"mazad/internal/repository"
)

// WatchlistService manages the auctions a user follows. Add and remove are
// both idempotent: adding twice no-ops, removing a missing entry no-ops.
type WatchlistService interface {
	Add(ctx context.Context, userID, auctionID uint) error
	Remove(ctx context.Context, userID, auctionID uint) error
	GetMy(ctx context.Context, userID uint) ([]model.WatchlistItem, error)
	IsWatching(ctx context.Context, userID, auctionID uint) (bool, error)
}

type watchlistService struct {
	watchlistRepo repository.WatchlistRepository
	auctionRepo   repository.AuctionRepository
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(watchlistRepo repository.WatchlistRepository, auctionRepo repository.AuctionRepository) WatchlistService {
	return &watchlistService{
		watchlistRepo: watchlistRepo,
		auctionRepo:   auctionRepo,
	}
}

func (s *watchlistService) Add(ctx context.Context, userID, auctionID uint) error {
	if _, err := s.auctionRepo.FindByID(ctx, auctionID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrAuctionNotFound
		}
		return fmt.Errorf("load auction: %w", err)
	}
	return s.watchlistRepo.Add(ctx, userID, auctionID)
}

func (s *watchlistService) Remove(ctx context.Context, userID, auctionID uint) error {
	return s.watchlistRepo.Remove(ctx, userID, auctionID)
}

func (s *watchlistService) GetMy(ctx context.Context, userID uint) ([]model.WatchlistItem, error) {
	return s.watchlistRepo.FindByUser(ctx, userID)
}

func (s *watchlistService) IsWatching(ctx context.Context, userID, auctionID uint) (bool, error) {
	return s.watchlistRepo.Exists(ctx, userID, auctionID)
}
