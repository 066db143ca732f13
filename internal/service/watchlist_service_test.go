package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"mazad/internal/errors"
	"mazad/internal/model"
)

func TestWatchlistService_Add(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockWatchlistRepository, *MockAuctionRepository)
		expectedError error
	}{
		{
			name: "adds an existing auction",
			setupMock: func(mWatch *MockWatchlistRepository, mAuc *MockAuctionRepository) {
				mAuc.On("FindByID", mock.Anything, uint(1)).Return(&model.Auction{ID: 1}, nil)
				mWatch.On("Add", mock.Anything, uint(42), uint(1)).Return(nil)
			},
		},
		{
			name: "adding twice is a no-op",
			setupMock: func(mWatch *MockWatchlistRepository, mAuc *MockAuctionRepository) {
				mAuc.On("FindByID", mock.Anything, uint(1)).Return(&model.Auction{ID: 1}, nil)
				// The repository swallows the duplicate.
				mWatch.On("Add", mock.Anything, uint(42), uint(1)).Return(nil)
			},
		},
		{
			name: "unknown auction rejected",
			setupMock: func(mWatch *MockWatchlistRepository, mAuc *MockAuctionRepository) {
				mAuc.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrAuctionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWatchlist := new(MockWatchlistRepository)
			mockAuctions := new(MockAuctionRepository)
			tt.setupMock(mockWatchlist, mockAuctions)

			service := NewWatchlistService(mockWatchlist, mockAuctions)

			err := service.Add(context.Background(), 42, 1)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockWatchlist.AssertExpectations(t)
			mockAuctions.AssertExpectations(t)
		})
	}
}

func TestWatchlistService_Remove(t *testing.T) {
	mockWatchlist := new(MockWatchlistRepository)
	mockAuctions := new(MockAuctionRepository)

	// Removing a missing entry is a no-op; no existence check happens.
	mockWatchlist.On("Remove", mock.Anything, uint(42), uint(1)).Return(nil)

	service := NewWatchlistService(mockWatchlist, mockAuctions)

	assert.NoError(t, service.Remove(context.Background(), 42, 1))
	mockAuctions.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestWatchlistService_IsWatching(t *testing.T) {
	mockWatchlist := new(MockWatchlistRepository)
	mockWatchlist.On("Exists", mock.Anything, uint(42), uint(1)).Return(true, nil)

	service := NewWatchlistService(mockWatchlist, new(MockAuctionRepository))

	watching, err := service.IsWatching(context.Background(), 42, 1)

	assert.NoError(t, err)
	assert.True(t, watching)
}
