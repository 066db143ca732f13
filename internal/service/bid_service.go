package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mazad/internal/cache"
	"mazad/internal/errors"
	"mazad/internal/model"
	"mazad/internal/repository"
)

// BidService is the bid acceptance engine.
type BidService interface {
	// PlaceBid validates and applies a bid. Preconditions are checked in
	// order: auction exists, auction is active, the time window is open,
	// and the amount reaches currentPrice + bidIncrement. On success the
	// bid row and the new current price are written atomically.
	PlaceBid(ctx context.Context, auctionID, bidderID uint, bidAmount int64) (*model.Bid, error)
	GetMyBids(ctx context.Context, bidderID uint) ([]model.Bid, error)
	GetBidsByAuction(ctx context.Context, auctionID uint) ([]model.Bid, error)
}

type bidService struct {
	auctionRepo    repository.AuctionRepository
	bidRepo        repository.BidRepository
	settlement     SettlementService
	cache          *cache.Client
	enforceReserve bool
}

// NewBidService creates a new bid service. When enforceReserve is set the
// reserve price becomes a hard floor at bid time; by default it only
// matters at settlement.
func NewBidService(
	auctionRepo repository.AuctionRepository,
	bidRepo repository.BidRepository,
	settlement SettlementService,
	cache *cache.Client,
	enforceReserve bool,
) BidService {
	return &bidService{
		auctionRepo:    auctionRepo,
		bidRepo:        bidRepo,
		settlement:     settlement,
		cache:          cache,
		enforceReserve: enforceReserve,
	}
}

// PlaceBid runs the whole acceptance check under a row lock on the auction
// so that at most one bid is ever measured against a given current price.
// Two concurrent bids serialize on the lock; the second one re-reads the
// price the first one wrote.
func (s *bidService) PlaceBid(ctx context.Context, auctionID, bidderID uint, bidAmount int64) (*model.Bid, error) {
	var placed *model.Bid

	err := s.auctionRepo.WithTransaction(ctx, func(ctx context.Context, auctions repository.AuctionRepository, bids repository.BidRepository) error {
		auction, err := auctions.FindByIDForUpdate(ctx, auctionID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAuctionNotFound
			}
			return fmt.Errorf("load auction: %w", err)
		}

		if auction.Status != model.AuctionStatusActive {
			return errors.ErrAuctionNotActive
		}

		// The status is not flipped automatically when the window closes,
		// so this comparison is the backstop against late bids.
		if auction.Expired(time.Now()) {
			return errors.ErrAuctionEnded
		}

		minimum := auction.MinimumBid()
		if s.enforceReserve && auction.ReservePrice != nil && minimum < *auction.ReservePrice {
			minimum = *auction.ReservePrice
		}
		if bidAmount < minimum {
			return &errors.BidTooLowError{Minimum: minimum}
		}

		bid := &model.Bid{
			AuctionID: auctionID,
			BidderID:  bidderID,
			BidAmount: bidAmount,
			IsAutoBid: false,
		}
		if err := bids.Create(ctx, bid); err != nil {
			return fmt.Errorf("create bid: %w", err)
		}

		// The minimum check already guarantees this is the new highest, so
		// the accepted amount becomes the current price unconditionally.
		if err := auctions.UpdateCurrentPrice(ctx, auctionID, bidAmount); err != nil {
			return fmt.Errorf("update current price: %w", err)
		}

		placed = bid
		return nil
	})

	if err != nil {
		// A bid against an expired auction is the natural moment to settle
		// it; best effort, the sweeper catches anything missed.
		if err == errors.ErrAuctionEnded {
			_, _ = s.settlement.Settle(ctx, auctionID)
		}
		return nil, err
	}

	_ = s.cache.Delete(ctx, auctionCacheKey(auctionID))
	return placed, nil
}

// GetMyBids lists the caller's bids, newest first.
func (s *bidService) GetMyBids(ctx context.Context, bidderID uint) ([]model.Bid, error) {
	return s.bidRepo.FindByBidder(ctx, bidderID)
}

// GetBidsByAuction lists an auction's bids, newest first.
func (s *bidService) GetBidsByAuction(ctx context.Context, auctionID uint) ([]model.Bid, error) {
	return s.bidRepo.FindByAuction(ctx, auctionID)
}
