package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mazad/internal/cache"
	"mazad/internal/errors"
	"mazad/internal/model"
	"mazad/internal/repository"
)

const auctionCacheTTL = 30 * time.Second

func auctionCacheKey(id uint) string {
	return fmt.Sprintf("auction:%d", id)
}

// AuctionDetail aggregates everything the detail view needs.
type AuctionDetail struct {
	Auction *model.Auction       `json:"auction"`
	Images  []model.AuctionImage `json:"images"`
	Bids    []model.Bid          `json:"bids"`
}

// CreateAuctionInput carries the seller's listing submission.
type CreateAuctionInput struct {
	SellerID      uint
	Title         model.LocalizedText
	Description   model.LocalizedText
	ItemCondition model.LocalizedText
	CategoryID    uint
	LocationID    uint
	StartTime     time.Time
	EndTime       time.Time
	StartingPrice int64
	ReservePrice  *int64
	BidIncrement  int64
}

// AuctionService handles listing creation, queries and lifecycle
// transitions.
type AuctionService interface {
	Create(ctx context.Context, input CreateAuctionInput) (*model.Auction, error)
	GetDetail(ctx context.Context, id uint) (*AuctionDetail, error)
	Search(ctx context.Context, filters repository.SearchFilters) ([]model.Auction, error)
	GetActive(ctx context.Context) ([]model.Auction, error)
	GetBySeller(ctx context.Context, sellerID uint) ([]model.Auction, error)
	GetByStatus(ctx context.Context, status model.AuctionStatus) ([]model.Auction, error)
	// UpdateStatus applies an admin lifecycle transition, rejecting any
	// edge the state machine does not allow.
	UpdateStatus(ctx context.Context, auctionID uint, status model.AuctionStatus) (*model.Auction, error)
}

type auctionService struct {
	auctionRepo  repository.AuctionRepository
	bidRepo      repository.BidRepository
	imageRepo    repository.ImageRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	settlement   SettlementService
	cache        *cache.Client
}

// NewAuctionService creates a new auction service.
func NewAuctionService(
	auctionRepo repository.AuctionRepository,
	bidRepo repository.BidRepository,
	imageRepo repository.ImageRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	settlement SettlementService,
	cache *cache.Client,
) AuctionService {
	return &auctionService{
		auctionRepo:  auctionRepo,
		bidRepo:      bidRepo,
		imageRepo:    imageRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		settlement:   settlement,
		cache:        cache,
	}
}

// Create validates and stores a new listing. The listing always enters
// review: status is pending_approval and the current price starts at the
// starting price, regardless of what the caller sent.
func (s *auctionService) Create(ctx context.Context, input CreateAuctionInput) (*model.Auction, error) {
	if input.Title.Empty() {
		return nil, &errors.ValidationError{Reason: "title is required in both languages"}
	}
	if input.Description.Empty() {
		return nil, &errors.ValidationError{Reason: "description is required in both languages"}
	}
	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		return nil, &errors.ValidationError{Reason: "start and end time are required"}
	}
	if !input.EndTime.After(input.StartTime) {
		return nil, &errors.ValidationError{Reason: "end time must be after start time"}
	}
	if input.StartingPrice <= 0 {
		return nil, &errors.ValidationError{Reason: "starting price must be positive"}
	}
	if input.BidIncrement < 0 {
		return nil, &errors.ValidationError{Reason: "bid increment must not be negative"}
	}
	if input.BidIncrement == 0 {
		input.BidIncrement = 100
	}
	if input.ReservePrice != nil && *input.ReservePrice < input.StartingPrice {
		return nil, &errors.ValidationError{Reason: "reserve price must not be below starting price"}
	}

	if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("load category: %w", err)
	}
	if _, err := s.locationRepo.FindByID(ctx, input.LocationID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrLocationNotFound
		}
		return nil, fmt.Errorf("load location: %w", err)
	}

	auction := &model.Auction{
		SellerID:      input.SellerID,
		Title:         input.Title,
		Description:   input.Description,
		ItemCondition: input.ItemCondition,
		CategoryID:    input.CategoryID,
		LocationID:    input.LocationID,
		Status:        model.AuctionStatusPendingApproval,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		StartingPrice: input.StartingPrice,
		CurrentPrice:  input.StartingPrice,
		ReservePrice:  input.ReservePrice,
		BidIncrement:  input.BidIncrement,
	}

	if err := s.auctionRepo.Create(ctx, auction); err != nil {
		return nil, fmt.Errorf("create auction: %w", err)
	}
	return auction, nil
}

// GetDetail returns an auction with its images and bids. Every fetch bumps
// the view counter; an expired-but-active auction is settled on the way.
func (s *auctionService) GetDetail(ctx context.Context, id uint) (*AuctionDetail, error) {
	// The counter moves on every fetch, cached or not.
	if err := s.auctionRepo.IncrementViewCount(ctx, id); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}

	if data, _ := s.cache.Get(ctx, auctionCacheKey(id)); data != nil {
		var cached AuctionDetail
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	auction, err := s.auctionRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("load auction: %w", err)
	}

	if auction.Status == model.AuctionStatusActive && auction.Expired(time.Now()) {
		if settled, err := s.settlement.Settle(ctx, id); err == nil {
			auction = settled
		}
	}

	images, err := s.imageRepo.FindByAuction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}
	bids, err := s.bidRepo.FindByAuction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load bids: %w", err)
	}

	detail := &AuctionDetail{Auction: auction, Images: images, Bids: bids}
	if payload, err := json.Marshal(detail); err == nil {
		_ = s.cache.Set(ctx, auctionCacheKey(id), payload, auctionCacheTTL)
	}
	return detail, nil
}

// Search lists auctions matching optional filters, newest first.
func (s *auctionService) Search(ctx context.Context, filters repository.SearchFilters) ([]model.Auction, error) {
	return s.auctionRepo.Search(ctx, filters)
}

// GetActive lists auctions currently open for bidding.
func (s *auctionService) GetActive(ctx context.Context) ([]model.Auction, error) {
	return s.auctionRepo.FindActive(ctx, time.Now())
}

// GetBySeller lists a seller's auctions.
func (s *auctionService) GetBySeller(ctx context.Context, sellerID uint) ([]model.Auction, error) {
	return s.auctionRepo.FindBySeller(ctx, sellerID)
}

// GetByStatus lists auctions in a given status.
func (s *auctionService) GetByStatus(ctx context.Context, status model.AuctionStatus) ([]model.Auction, error) {
	if !status.Valid() {
		return nil, &errors.ValidationError{Reason: "unknown auction status"}
	}
	return s.auctionRepo.FindByStatus(ctx, status)
}

// UpdateStatus applies an admin transition. The flip is guarded by the
// stored status, so two admins racing on the same auction cannot both
// succeed.
func (s *auctionService) UpdateStatus(ctx context.Context, auctionID uint, status model.AuctionStatus) (*model.Auction, error) {
	if !status.Valid() {
		return nil, &errors.ValidationError{Reason: "unknown auction status"}
	}

	auction, err := s.auctionRepo.FindByID(ctx, auctionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("load auction: %w", err)
	}

	if !model.CanTransition(auction.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", errors.ErrInvalidTransition, auction.Status, status)
	}

	flipped, err := s.auctionRepo.UpdateStatusFrom(ctx, auctionID, auction.Status, status)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if !flipped {
		return nil, fmt.Errorf("%w: auction status changed concurrently", errors.ErrInvalidTransition)
	}

	_ = s.cache.Delete(ctx, auctionCacheKey(auctionID))
	return s.auctionRepo.FindByID(ctx, auctionID)
}
