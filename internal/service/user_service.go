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

const userCacheTTL = 5 * time.Minute

// UpdateProfileInput carries a partial profile update; nil fields are left
// untouched.
type UpdateProfileInput struct {
	Name         *string
	PhoneNumber  *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	PostalCode   *string
	Country      *string
	UserType     *model.UserType
}

// UserService exposes user profile and admin moderation operations.
type UserService interface {
	GetProfile(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserStatus(ctx context.Context, id uint, status model.UserStatus) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetProfile retrieves a user by ID with caching.
func (s *userService) GetProfile(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// UpdateProfile applies the provided fields to the user's own profile.
func (s *userService) UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.AddressLine1 != nil {
		user.AddressLine1 = *input.AddressLine1
	}
	if input.AddressLine2 != nil {
		user.AddressLine2 = *input.AddressLine2
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.PostalCode != nil {
		user.PostalCode = *input.PostalCode
	}
	if input.Country != nil {
		user.Country = *input.Country
	}
	if input.UserType != nil {
		switch *input.UserType {
		case model.UserTypeBuyer, model.UserTypeSeller, model.UserTypeBoth:
			user.UserType = *input.UserType
		default:
			return nil, &errors.ValidationError{Reason: "unknown user type"}
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

// ListUsers returns all users, newest first.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// UpdateUserStatus sets a user's account standing (admin moderation).
func (s *userService) UpdateUserStatus(ctx context.Context, id uint, status model.UserStatus) error {
	switch status {
	case model.UserStatusActive, model.UserStatusSuspended, model.UserStatusPendingVerification:
	default:
		return &errors.ValidationError{Reason: "unknown user status"}
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
