package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"mazad/internal/cache"
	"mazad/internal/errors"
	"mazad/internal/model"
	"mazad/internal/repository"
	"mazad/internal/storage"
)

// UploadImageInput carries a base64-encoded image for a listing.
type UploadImageInput struct {
	AuctionID    uint
	CallerID     uint
	CallerAdmin  bool
	ImageData    string // base64, optionally with a data: URI prefix
	FileName     string
	ContentType  string
	AltText      model.LocalizedText
	DisplayOrder int
}

// ImageService handles auction image upload and removal against the blob
// store. Only the auction's seller or an admin may touch its images.
type ImageService interface {
	Upload(ctx context.Context, input UploadImageInput) (*model.AuctionImage, error)
	Delete(ctx context.Context, imageID, callerID uint, callerAdmin bool) error
}

type imageService struct {
	auctionRepo repository.AuctionRepository
	imageRepo   repository.ImageRepository
	store       storage.ObjectStore
	cache       *cache.Client
}

// NewImageService creates a new image service.
func NewImageService(
	auctionRepo repository.AuctionRepository,
	imageRepo repository.ImageRepository,
	store storage.ObjectStore,
	cache *cache.Client,
) ImageService {
	return &imageService{
		auctionRepo: auctionRepo,
		imageRepo:   imageRepo,
		store:       store,
		cache:       cache,
	}
}

// Upload decodes the payload, stores the blob and records the image row.
func (s *imageService) Upload(ctx context.Context, input UploadImageInput) (*model.AuctionImage, error) {
	auction, err := s.auctionRepo.FindByID(ctx, input.AuctionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("load auction: %w", err)
	}
	if auction.SellerID != input.CallerID && !input.CallerAdmin {
		return nil, errors.ErrForbidden
	}

	raw := input.ImageData
	// Accept data: URIs the way browsers produce them.
	if idx := strings.Index(raw, ","); idx >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, &errors.ValidationError{Reason: "image data is not valid base64"}
	}
	if len(data) == 0 {
		return nil, &errors.ValidationError{Reason: "image data is empty"}
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	fileKey := fmt.Sprintf("auctions/%d/%d-%s-%s",
		input.AuctionID, time.Now().UnixMilli(), shortID(), input.FileName)

	url, err := s.store.Put(ctx, fileKey, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	image := &model.AuctionImage{
		AuctionID:    input.AuctionID,
		ImageURL:     url,
		FileKey:      fileKey,
		AltText:      input.AltText,
		DisplayOrder: input.DisplayOrder,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		// The blob is orphaned; clean it up best effort.
		if delErr := s.store.Delete(ctx, fileKey); delErr != nil {
			log.WithFields(log.Fields{"file_key": fileKey}).
				WithError(delErr).Warn("failed to remove orphaned image blob")
		}
		return nil, fmt.Errorf("create image record: %w", err)
	}

	_ = s.cache.Delete(ctx, auctionCacheKey(input.AuctionID))
	return image, nil
}

// Delete removes one image, blob first, then the row.
func (s *imageService) Delete(ctx context.Context, imageID, callerID uint, callerAdmin bool) error {
	image, err := s.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrImageNotFound
		}
		return fmt.Errorf("load image: %w", err)
	}

	auction, err := s.auctionRepo.FindByID(ctx, image.AuctionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrAuctionNotFound
		}
		return fmt.Errorf("load auction: %w", err)
	}
	if auction.SellerID != callerID && !callerAdmin {
		return errors.ErrForbidden
	}

	if err := s.store.Delete(ctx, image.FileKey); err != nil {
		log.WithFields(log.Fields{"file_key": image.FileKey}).
			WithError(err).Warn("failed to delete image blob")
	}
	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return fmt.Errorf("delete image record: %w", err)
	}

	_ = s.cache.Delete(ctx, auctionCacheKey(image.AuctionID))
	return nil
}

func shortID() string {
	return uuid.New().String()[:8]
}
