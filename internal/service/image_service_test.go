package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"mazad/internal/errors"
	"mazad/internal/model"
)

// MockObjectStore is a mock implementation of storage.ObjectStore.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func validUpload() UploadImageInput {
	return UploadImageInput{
		AuctionID: 1,
		CallerID:  10,
		ImageData: base64.StdEncoding.EncodeToString([]byte("fake image bytes")),
		FileName:  "watch.jpg",
	}
}

func TestImageService_Upload(t *testing.T) {
	sellerAuction := &model.Auction{ID: 1, SellerID: 10}

	tests := []struct {
		name          string
		input         func() UploadImageInput
		setupMock     func(*MockAuctionRepository, *MockImageRepository, *MockObjectStore)
		expectedError error
	}{
		{
			name:  "seller uploads image",
			input: validUpload,
			setupMock: func(mAuc *MockAuctionRepository, mImg *MockImageRepository, mStore *MockObjectStore) {
				mAuc.On("FindByID", mock.Anything, uint(1)).Return(sellerAuction, nil)
				mStore.On("Put", mock.Anything, mock.Anything, []byte("fake image bytes"), "image/jpeg").
					Return("http://localhost:9000/auction-images/key", nil)
				mImg.On("Create", mock.Anything, mock.AnythingOfType("*model.AuctionImage")).Return(nil)
			},
		},
		{
			name: "data URI prefix is stripped",
			input: func() UploadImageInput {
				in := validUpload()
				in.ImageData = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
				in.ContentType = "image/png"
				return in
			},
			setupMock: func(mAuc *MockAuctionRepository, mImg *MockImageRepository, mStore *MockObjectStore) {
				mAuc.On("FindByID", mock.Anything, uint(1)).Return(sellerAuction, nil)
				mStore.On("Put", mock.Anything, mock.Anything, []byte("fake image bytes"), "image/png").
					Return("http://localhost:9000/auction-images/key", nil)
				mImg.On("Create", mock.Anything, mock.AnythingOfType("*model.AuctionImage")).Return(nil)
			},
		},
		{
			name: "admin uploads to someone else's auction",
			input: func() UploadImageInput {
				in := validUpload()
				in.CallerID = 99
				in.CallerAdmin = true
				return in
			},
			setupMock: func(mAuc *MockAuctionRepository, mImg *MockImageRepository, mStore *MockObjectStore) {
				mAuc.On("FindByID", mock.Anything, uint(1)).Return(sellerAuction, nil)
				mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return("http://localhost:9000/auction-images/key", nil)
				mImg.On("Create", mock.Anything, mock.AnythingOfType("*model.AuctionImage")).Return(nil)
			},
		},
		{
			name: "stranger is forbidden",
			input: func() UploadImageInput {
				in := validUpload()
				in.CallerID = 99
				return in
			},
			setupMock: func(mAuc *MockAuctionRepository, mImg *MockImageRepository, mStore *MockObjectStore) {
				mAuc.On("FindByID", mock.Anything, uint(1)).Return(sellerAuction, nil)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name: "invalid base64 rejected",
			input: func() UploadImageInput {
				in := validUpload()
				in.ImageData = "not base64 at all!!!"
				return in
			},
			setupMock: func(mAuc *MockAuctionRepository, mImg *MockImageRepository, mStore *MockObjectStore) {
				mAuc.On("FindByID", mock.Anything, uint(1)).Return(sellerAuction, nil)
			},
			expectedError: errors.ErrValidation,
		},
		{
			name:  "unknown auction",
			input: validUpload,
			setupMock: func(mAuc *MockAuctionRepository, mImg *MockImageRepository, mStore *MockObjectStore) {
				mAuc.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrAuctionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuctions := new(MockAuctionRepository)
			mockImages := new(MockImageRepository)
			mockStore := new(MockObjectStore)
			tt.setupMock(mockAuctions, mockImages, mockStore)

			service := NewImageService(mockAuctions, mockImages, mockStore, noCache)

			image, err := service.Upload(context.Background(), tt.input())

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, image)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, image)
				assert.Equal(t, uint(1), image.AuctionID)
				assert.NotEmpty(t, image.FileKey)
				assert.NotEmpty(t, image.ImageURL)
			}

			mockStore.AssertExpectations(t)
			mockImages.AssertExpectations(t)
		})
	}
}

func TestImageService_Upload_CleansUpOrphanedBlob(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockImages := new(MockImageRepository)
	mockStore := new(MockObjectStore)

	mockAuctions.On("FindByID", mock.Anything, uint(1)).Return(&model.Auction{ID: 1, SellerID: 10}, nil)
	mockStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("http://localhost:9000/auction-images/key", nil)
	mockImages.On("Create", mock.Anything, mock.AnythingOfType("*model.AuctionImage")).Return(assert.AnError)
	mockStore.On("Delete", mock.Anything, mock.Anything).Return(nil)

	service := NewImageService(mockAuctions, mockImages, mockStore, noCache)

	image, err := service.Upload(context.Background(), validUpload())

	assert.Error(t, err)
	assert.Nil(t, image)
	mockStore.AssertExpectations(t)
}

func TestImageService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		callerID      uint
		callerAdmin   bool
		expectedError error
	}{
		{name: "seller deletes own image", callerID: 10},
		{name: "admin deletes any image", callerID: 99, callerAdmin: true},
		{name: "stranger is forbidden", callerID: 99, expectedError: errors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuctions := new(MockAuctionRepository)
			mockImages := new(MockImageRepository)
			mockStore := new(MockObjectStore)

			mockImages.On("FindByID", mock.Anything, uint(5)).Return(&model.AuctionImage{ID: 5, AuctionID: 1, FileKey: "auctions/1/key"}, nil)
			mockAuctions.On("FindByID", mock.Anything, uint(1)).Return(&model.Auction{ID: 1, SellerID: 10}, nil)
			if tt.expectedError == nil {
				mockStore.On("Delete", mock.Anything, "auctions/1/key").Return(nil)
				mockImages.On("Delete", mock.Anything, uint(5)).Return(nil)
			}

			service := NewImageService(mockAuctions, mockImages, mockStore, noCache)

			err := service.Delete(context.Background(), 5, tt.callerID, tt.callerAdmin)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockStore.AssertExpectations(t)
			mockImages.AssertExpectations(t)
		})
	}
}
