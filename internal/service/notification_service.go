package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mazad/internal/errors"
	"mazad/internal/model"
	"mazad/internal/repository"
)

// NotificationService lets users read their notifications. Creation is
// internal (settlement writes outcome notifications); there is no public
// create operation.
type NotificationService interface {
	GetMy(ctx context.Context, userID uint) ([]model.Notification, error)
	// MarkAsRead flips the read flag; only the owner may do so.
	MarkAsRead(ctx context.Context, notificationID, callerID uint) error
	GetUnreadCount(ctx context.Context, userID uint) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) GetMy(ctx context.Context, userID uint) ([]model.Notification, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, notificationID, callerID uint) error {
	notification, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotificationNotFound
		}
		return fmt.Errorf("load notification: %w", err)
	}
	if notification.UserID != callerID {
		return errors.ErrForbidden
	}
	return s.repo.MarkRead(ctx, notificationID)
}

func (s *notificationService) GetUnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
