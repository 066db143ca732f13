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

func TestNotificationService_MarkAsRead(t *testing.T) {
	tests := []struct {
		name          string
		callerID      uint
		setupMock     func(*MockNotificationRepository)
		expectedError error
	}{
		{
			name:     "owner marks as read",
			callerID: 42,
			setupMock: func(m *MockNotificationRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.Notification{ID: 1, UserID: 42}, nil)
				m.On("MarkRead", mock.Anything, uint(1)).Return(nil)
			},
		},
		{
			name:     "someone else's notification is forbidden",
			callerID: 7,
			setupMock: func(m *MockNotificationRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.Notification{ID: 1, UserID: 42}, nil)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:     "missing notification",
			callerID: 42,
			setupMock: func(m *MockNotificationRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrNotificationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockNotificationRepository)
			tt.setupMock(mockRepo)

			service := NewNotificationService(mockRepo)

			err := service.MarkAsRead(context.Background(), 1, tt.callerID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNotificationService_GetUnreadCount(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	mockRepo.On("CountUnread", mock.Anything, uint(42)).Return(int64(3), nil)

	service := NewNotificationService(mockRepo)

	count, err := service.GetUnreadCount(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
