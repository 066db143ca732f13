package repository

import (
	"context"

	"gorm.io/gorm"

	"mazad/internal/model"
)

// ImageRepository defines auction image persistence operations.
type ImageRepository interface {
	Create(ctx context.Context, image *model.AuctionImage) error
	FindByID(ctx context.Context, id uint) (*model.AuctionImage, error)
	FindByAuction(ctx context.Context, auctionID uint) ([]model.AuctionImage, error)
	Delete(ctx context.Context, id uint) error
}

type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new image repository.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *model.AuctionImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) FindByID(ctx context.Context, id uint) (*model.AuctionImage, error) {
	var image model.AuctionImage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// FindByAuction lists an auction's images in display order.
func (r *imageRepository) FindByAuction(ctx context.Context, auctionID uint) ([]model.AuctionImage, error) {
	var images []model.AuctionImage
	err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("display_order ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.AuctionImage{}, id).Error
}
