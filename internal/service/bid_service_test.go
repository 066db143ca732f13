package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"mazad/internal/cache"
	"mazad/internal/errors"
	"mazad/internal/model"
)

// The cache client is nil-safe, so unit tests run without redis.
var noCache *cache.Client

func activeAuction(currentPrice, increment int64) *model.Auction {
	return &model.Auction{
		ID:            1,
		SellerID:      10,
		Status:        model.AuctionStatusActive,
		StartTime:     time.Now().Add(-time.Hour),
		EndTime:       time.Now().Add(time.Hour),
		StartingPrice: currentPrice,
		CurrentPrice:  currentPrice,
		BidIncrement:  increment,
	}
}

func TestBidService_PlaceBid(t *testing.T) {
	tests := []struct {
		name            string
		bidAmount       int64
		setupMock       func(*MockAuctionRepository, *MockBidRepository)
		expectedError   error
		expectedMinimum int64
	}{
		{
			name:      "bid at exact minimum accepted",
			bidAmount: 100100,
			setupMock: func(mAuctions *MockAuctionRepository, mBids *MockBidRepository) {
				mAuctions.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(activeAuction(100000, 100), nil)
				mBids.On("Create", mock.Anything, mock.AnythingOfType("*model.Bid")).Return(nil)
				mAuctions.On("UpdateCurrentPrice", mock.Anything, uint(1), int64(100100)).Return(nil)
			},
		},
		{
			name:      "bid above minimum accepted",
			bidAmount: 105000,
			setupMock: func(mAuctions *MockAuctionRepository, mBids *MockBidRepository) {
				mAuctions.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(activeAuction(100000, 100), nil)
				mBids.On("Create", mock.Anything, mock.AnythingOfType("*model.Bid")).Return(nil)
				mAuctions.On("UpdateCurrentPrice", mock.Anything, uint(1), int64(105000)).Return(nil)
			},
		},
		{
			name:      "bid below minimum rejected with required minimum",
			bidAmount: 100050,
			setupMock: func(mAuctions *MockAuctionRepository, mBids *MockBidRepository) {
				mAuctions.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(activeAuction(100000, 100), nil)
			},
			expectedError:   errors.ErrBidTooLow,
			expectedMinimum: 100100,
		},
		{
			name:      "bid equal to current price rejected",
			bidAmount: 100000,
			setupMock: func(mAuctions *MockAuctionRepository, mBids *MockBidRepository) {
				mAuctions.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(activeAuction(100000, 100), nil)
			},
			expectedError:   errors.ErrBidTooLow,
			expectedMinimum: 100100,
		},
		{
			name:      "auction not found",
			bidAmount: 100100,
			setupMock: func(mAuctions *MockAuctionRepository, mBids *MockBidRepository) {
				mAuctions.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrAuctionNotFound,
		},
		{
			name:      "pending approval auction rejects bids",
			bidAmount: 100100,
			setupMock: func(mAuctions *MockAuctionRepository, mBids *MockBidRepository) {
				auction := activeAuction(100000, 100)
				auction.Status = model.AuctionStatusPendingApproval
				mAuctions.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(auction, nil)
			},
			expectedError: errors.ErrAuctionNotActive,
		},
		{
			name:      "cancelled auction rejects bids",
			bidAmount: 100100,
			setupMock: func(mAuctions *MockAuctionRepository, mBids *MockBidRepository) {
				auction := activeAuction(100000, 100)
				auction.Status = model.AuctionStatusCancelled
				mAuctions.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(auction, nil)
			},
			expectedError: errors.ErrAuctionNotActive,
		},
		{
			name:      "sold auction rejects bids",
			bidAmount: 100100,
			setupMock: func(mAuctions *MockAuctionRepository, mBids *MockBidRepository) {
				auction := activeAuction(100000, 100)
				auction.Status = model.AuctionStatusEndedSold
				mAuctions.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(auction, nil)
			},
			expectedError: errors.ErrAuctionNotActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuctions := new(MockAuctionRepository)
			mockBids := new(MockBidRepository)
			mockAuctions.bids = mockBids
			tt.setupMock(mockAuctions, mockBids)

			mockSettlement := new(MockSettlementService)
			service := NewBidService(mockAuctions, mockBids, mockSettlement, noCache, false)

			bid, err := service.PlaceBid(context.Background(), 1, 42, tt.bidAmount)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, bid)
				if tt.expectedMinimum != 0 {
					var tooLow *errors.BidTooLowError
					assert.ErrorAs(t, err, &tooLow)
					assert.Equal(t, tt.expectedMinimum, tooLow.Minimum)
				}
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, bid)
				assert.Equal(t, uint(1), bid.AuctionID)
				assert.Equal(t, uint(42), bid.BidderID)
				assert.Equal(t, tt.bidAmount, bid.BidAmount)
			}

			mockAuctions.AssertExpectations(t)
			mockBids.AssertExpectations(t)
		})
	}
}

func TestBidService_PlaceBid_ExpiredAuctionTriggersSettlement(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockBids := new(MockBidRepository)
	mockAuctions.bids = mockBids

	auction := activeAuction(100000, 100)
	auction.EndTime = time.Now().Add(-time.Minute)
	mockAuctions.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(auction, nil)

	mockSettlement := new(MockSettlementService)
	mockSettlement.On("Settle", mock.Anything, uint(1)).Return(auction, nil)

	service := NewBidService(mockAuctions, mockBids, mockSettlement, noCache, false)

	bid, err := service.PlaceBid(context.Background(), 1, 42, 100100)

	assert.ErrorIs(t, err, errors.ErrAuctionEnded)
	assert.Nil(t, bid)
	mockSettlement.AssertExpectations(t)
	mockAuctions.AssertExpectations(t)
}

func TestBidService_PlaceBid_ReserveEnforcement(t *testing.T) {
	reserve := int64(200000)

	tests := []struct {
		name            string
		enforceReserve  bool
		bidAmount       int64
		wantAccepted    bool
		expectedMinimum int64
	}{
		{
			name:            "reserve enforced raises the minimum",
			enforceReserve:  true,
			bidAmount:       100100,
			wantAccepted:    false,
			expectedMinimum: 200000,
		},
		{
			name:           "reserve enforced accepts at reserve",
			enforceReserve: true,
			bidAmount:      200000,
			wantAccepted:   true,
		},
		{
			name:           "reserve not enforced accepts below reserve",
			enforceReserve: false,
			bidAmount:      100100,
			wantAccepted:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuctions := new(MockAuctionRepository)
			mockBids := new(MockBidRepository)
			mockAuctions.bids = mockBids

			auction := activeAuction(100000, 100)
			auction.ReservePrice = &reserve
			mockAuctions.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(auction, nil)
			if tt.wantAccepted {
				mockBids.On("Create", mock.Anything, mock.AnythingOfType("*model.Bid")).Return(nil)
				mockAuctions.On("UpdateCurrentPrice", mock.Anything, uint(1), tt.bidAmount).Return(nil)
			}

			service := NewBidService(mockAuctions, mockBids, new(MockSettlementService), noCache, tt.enforceReserve)

			bid, err := service.PlaceBid(context.Background(), 1, 42, tt.bidAmount)

			if tt.wantAccepted {
				assert.NoError(t, err)
				assert.NotNil(t, bid)
			} else {
				var tooLow *errors.BidTooLowError
				assert.ErrorAs(t, err, &tooLow)
				assert.Equal(t, tt.expectedMinimum, tooLow.Minimum)
			}

			mockAuctions.AssertExpectations(t)
			mockBids.AssertExpectations(t)
		})
	}
}
