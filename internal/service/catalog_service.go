package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mazad/internal/errors"
	"mazad/internal/model"
	"mazad/internal/repository"
)

// CatalogService manages the static reference data: categories and
// locations. Both are created by admins and only read afterwards.
type CatalogService interface {
	CreateCategory(ctx context.Context, name, slug model.LocalizedText, parentID *uint) (*model.Category, error)
	GetCategory(ctx context.Context, id uint) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateLocation(ctx context.Context, city, country, latitude, longitude string) (*model.Location, error)
	ListLocations(ctx context.Context) ([]model.Location, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(categoryRepo repository.CategoryRepository, locationRepo repository.LocationRepository) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
	}
}

func (s *catalogService) CreateCategory(ctx context.Context, name, slug model.LocalizedText, parentID *uint) (*model.Category, error) {
	if name.Empty() || slug.Empty() {
		return nil, &errors.ValidationError{Reason: "category name and slug are required in both languages"}
	}
	if parentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *parentID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrCategoryNotFound
			}
			return nil, fmt.Errorf("load parent category: %w", err)
		}
	}

	category := &model.Category{Name: name, Slug: slug, ParentCategoryID: parentID}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *catalogService) GetCategory(ctx context.Context, id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogService) CreateLocation(ctx context.Context, city, country, latitude, longitude string) (*model.Location, error) {
	if city == "" || country == "" {
		return nil, &errors.ValidationError{Reason: "city and country are required"}
	}

	location := &model.Location{City: city, Country: country, Latitude: latitude, Longitude: longitude}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return location, nil
}

func (s *catalogService) ListLocations(ctx context.Context) ([]model.Location, error) {
	return s.locationRepo.List(ctx)
}
