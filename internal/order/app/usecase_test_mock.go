package app

import (
	"context"
	"time"

	"marketplace_service/internal/order/domain"

	"github.com/stretchr/testify/mock"
)

// MockOrderRepository Mock OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

// Create moke create order with items
func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// FindBySeller moke seller order listing
func (m *MockOrderRepository) FindBySeller(ctx context.Context, sellerID int64, q *domain.OrderQuery) ([]domain.Order, error) {
	args := m.Called(ctx, sellerID, q)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

// CountBySellerStatus moke order count by status
func (m *MockOrderRepository) CountBySellerStatus(ctx context.Context, sellerID int64, status domain.OrderStatus) (int64, error) {
	args := m.Called(ctx, sellerID, status)
	return args.Get(0).(int64), args.Error(1)
}

// DeliveryStats moke delivery stats
func (m *MockOrderRepository) DeliveryStats(ctx context.Context, sellerID int64) (*domain.DeliveryStats, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.DeliveryStats), args.Error(1)
	}
	return nil, args.Error(1)
}

// DailySales moke daily sales rows
func (m *MockOrderRepository) DailySales(ctx context.Context, sellerID int64, since time.Time) ([]domain.DailySales, error) {
	args := m.Called(ctx, sellerID, since)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.DailySales), args.Error(1)
	}
	return nil, args.Error(1)
}

// SalesStats moke window sales stats
func (m *MockOrderRepository) SalesStats(ctx context.Context, sellerID int64, since time.Time) (*domain.SalesStats, error) {
	args := m.Called(ctx, sellerID, since)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.SalesStats), args.Error(1)
	}
	return nil, args.Error(1)
}

// TopProducts moke top selling products
func (m *MockOrderRepository) TopProducts(ctx context.Context, sellerID int64, since time.Time, limit int) ([]domain.TopProduct, error) {
	args := m.Called(ctx, sellerID, since, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.TopProduct), args.Error(1)
	}
	return nil, args.Error(1)
}

// PaymentStats moke payment stats
func (m *MockOrderRepository) PaymentStats(ctx context.Context, sellerID int64) (*domain.PaymentStats, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.PaymentStats), args.Error(1)
	}
	return nil, args.Error(1)
}

// RecentTransactions moke paid transaction listing
func (m *MockOrderRepository) RecentTransactions(ctx context.Context, sellerID int64, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, sellerID, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}
