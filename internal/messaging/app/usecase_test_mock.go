package app

import (
	"context"

	accountdomain "marketplace_service/internal/account/domain"
	"marketplace_service/internal/messaging/domain"

	"github.com/stretchr/testify/mock"
)

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// Create moke create message
func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// FindByParticipant moke all messages for user, newest first
func (m *MockMessageRepository) FindByParticipant(ctx context.Context, userID int64) ([]domain.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// FetchConversationAndMarkRead moke conversation fetch + mark read
func (m *MockMessageRepository) FetchConversationAndMarkRead(ctx context.Context, userID, partnerID int64) ([]domain.Message, error) {
	args := m.Called(ctx, userID, partnerID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// CountUnread moke unread count
func (m *MockMessageRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockUserDirectory Mock UserDirectory
type MockUserDirectory struct {
	mock.Mock
}

// FindUser moke find user by query
func (m *MockUserDirectory) FindUser(ctx context.Context, userQuery *accountdomain.UserQuery) (*accountdomain.User, error) {
	args := m.Called(ctx, userQuery)
	if args.Get(0) != nil {
		return args.Get(0).(*accountdomain.User), args.Error(1)
	}
	return nil, args.Error(1)
}
