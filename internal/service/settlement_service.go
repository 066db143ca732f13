package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"mazad/internal/cache"
	"mazad/internal/errors"
	"mazad/internal/model"
	"mazad/internal/repository"
)

// sweepBatchSize caps how many expired auctions one sweep tick settles.
const sweepBatchSize = 100

// SettlementService finalizes auctions whose time window has closed. It is
// invoked lazily on reads, after rejected late bids, and by a periodic
// sweeper; all triggers funnel through the same compare-and-swap, so a
// race between them is harmless.
type SettlementService interface {
	// Settle closes an auction if it is active and past its end time.
	// Calling it on an already-terminal or still-running auction is a
	// no-op that returns the current row.
	Settle(ctx context.Context, auctionID uint) (*model.Auction, error)
	// RunSweeper settles expired auctions on a ticker until ctx is done.
	RunSweeper(ctx context.Context, interval time.Duration)
}

type settlementService struct {
	auctionRepo      repository.AuctionRepository
	bidRepo          repository.BidRepository
	notificationRepo repository.NotificationRepository
	cache            *cache.Client
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(
	auctionRepo repository.AuctionRepository,
	bidRepo repository.BidRepository,
	notificationRepo repository.NotificationRepository,
	cache *cache.Client,
) SettlementService {
	return &settlementService{
		auctionRepo:      auctionRepo,
		bidRepo:          bidRepo,
		notificationRepo: notificationRepo,
		cache:            cache,
	}
}

// Settle decides the outcome of an expired active auction:
// no bids at all -> ended_no_bids; a reserve price that current price
// never reached -> ended_not_sold; otherwise ended_sold with the highest
// bid recorded as the winner.
func (s *settlementService) Settle(ctx context.Context, auctionID uint) (*model.Auction, error) {
	auction, err := s.auctionRepo.FindByID(ctx, auctionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("load auction: %w", err)
	}

	if auction.Status != model.AuctionStatusActive || !auction.Expired(time.Now()) {
		return auction, nil
	}

	outcome := model.AuctionStatusEndedSold
	var winningBidID *uint
	var winner *model.Bid

	highest, err := s.bidRepo.FindHighest(ctx, auctionID)
	switch {
	case err == gorm.ErrRecordNotFound:
		outcome = model.AuctionStatusEndedNoBids
	case err != nil:
		return nil, fmt.Errorf("find highest bid: %w", err)
	case auction.ReservePrice != nil && auction.CurrentPrice < *auction.ReservePrice:
		outcome = model.AuctionStatusEndedNotSold
	default:
		winningBidID = &highest.ID
		winner = highest
	}

	flipped, err := s.auctionRepo.CloseAuction(ctx, auctionID, outcome, winningBidID)
	if err != nil {
		return nil, fmt.Errorf("close auction: %w", err)
	}
	if !flipped {
		// Another trigger settled it first; report what they decided.
		return s.auctionRepo.FindByID(ctx, auctionID)
	}

	log.WithFields(log.Fields{
		"auction_id": auctionID,
		"outcome":    outcome,
	}).Info("auction settled")

	if outcome == model.AuctionStatusEndedSold && winner != nil {
		s.notifyOutcome(ctx, auction, winner)
	}
	_ = s.cache.Delete(ctx, auctionCacheKey(auctionID))

	return s.auctionRepo.FindByID(ctx, auctionID)
}

// notifyOutcome appends best-effort winner and seller notifications.
func (s *settlementService) notifyOutcome(ctx context.Context, auction *model.Auction, winner *model.Bid) {
	link := fmt.Sprintf("/auctions/%d", auction.ID)
	notifications := []model.Notification{
		{
			UserID: winner.BidderID,
			Content: model.LocalizedText{
				En: fmt.Sprintf("You won the auction %q with a bid of %d cents", auction.Title.En, winner.BidAmount),
				Ar: fmt.Sprintf("لقد فزت بالمزاد %q بمبلغ %d", auction.Title.Ar, winner.BidAmount),
			},
			LinkURL: link,
		},
		{
			UserID: auction.SellerID,
			Content: model.LocalizedText{
				En: fmt.Sprintf("Your auction %q sold for %d cents", auction.Title.En, winner.BidAmount),
				Ar: fmt.Sprintf("تم بيع مزادك %q بمبلغ %d", auction.Title.Ar, winner.BidAmount),
			},
			LinkURL: link,
		},
	}
	for i := range notifications {
		if err := s.notificationRepo.Create(ctx, &notifications[i]); err != nil {
			log.WithFields(log.Fields{
				"auction_id": auction.ID,
				"user_id":    notifications[i].UserID,
			}).WithError(err).Warn("failed to create settlement notification")
		}
	}
}

// RunSweeper periodically settles expired active auctions. It runs until
// the context is cancelled.
func (s *settlementService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *settlementService) sweep(ctx context.Context) {
	expired, err := s.auctionRepo.FindExpiredActive(ctx, time.Now(), sweepBatchSize)
	if err != nil {
		log.WithError(err).Error("settlement sweep query failed")
		return
	}
	for _, auction := range expired {
		if _, err := s.Settle(ctx, auction.ID); err != nil {
			log.WithFields(log.Fields{"auction_id": auction.ID}).
				WithError(err).Error("settlement failed")
		}
	}
}
