package app

import (
	"context"
	"io"
	"time"

	"marketplace_service/internal/catalog/domain"

	"github.com/stretchr/testify/mock"
)

// MockProductRepo Mock ProductRepo
type MockProductRepo struct {
	mock.Mock
}

// AutoMigrate moke migrate schema
func (m *MockProductRepo) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

// Create moke create product
func (m *MockProductRepo) Create(product *domain.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

// Update moke update product
func (m *MockProductRepo) Update(product *domain.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

// GetByID moke find product by id
func (m *MockProductRepo) GetByID(id uint) (*domain.Product, error) {
	args := m.Called(id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetBySellerAndID moke find product owned by seller
func (m *MockProductRepo) GetBySellerAndID(sellerID int64, id uint) (*domain.Product, error) {
	args := m.Called(sellerID, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetBySlug moke find available product by slug
func (m *MockProductRepo) GetBySlug(slug string) (*domain.Product, error) {
	args := m.Called(slug)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

// ListAvailable moke storefront listing
func (m *MockProductRepo) ListAvailable(q *domain.StorefrontQuery) ([]domain.Product, int64, error) {
	args := m.Called(q)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Product), args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

// ListBySeller moke seller dashboard listing
func (m *MockProductRepo) ListBySeller(sellerID int64, q *domain.SellerQuery) ([]domain.Product, int64, error) {
	args := m.Called(sellerID, q)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Product), args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

// BulkDeleteBySeller moke bulk delete
func (m *MockProductRepo) BulkDeleteBySeller(sellerID int64, ids []uint) (int64, error) {
	args := m.Called(sellerID, ids)
	return args.Get(0).(int64), args.Error(1)
}

// StatsBySeller moke stock stats
func (m *MockProductRepo) StatsBySeller(sellerID int64) (*domain.ProductStats, error) {
	args := m.Called(sellerID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ProductStats), args.Error(1)
	}
	return nil, args.Error(1)
}

// Related moke related products
func (m *MockProductRepo) Related(categoryID uint, excludeID uint, limit int) ([]domain.Product, error) {
	args := m.Called(categoryID, excludeID, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

// Reviews moke product reviews
func (m *MockProductRepo) Reviews(productID uint, limit int) ([]domain.ProductReview, error) {
	args := m.Called(productID, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ProductReview), args.Error(1)
	}
	return nil, args.Error(1)
}

// ActiveCategories moke storefront categories
func (m *MockProductRepo) ActiveCategories() ([]domain.Category, error) {
	args := m.Called()
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

// CategoriesBySeller moke seller categories
func (m *MockProductRepo) CategoriesBySeller(sellerID int64) ([]domain.Category, error) {
	args := m.Called(sellerID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetCategoryBySlug moke find category by slug
func (m *MockProductRepo) GetCategoryBySlug(slug string) (*domain.Category, error) {
	args := m.Called(slug)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockImageStore Mock ImageStore
type MockImageStore struct {
	mock.Mock
}

// UploadObject moke upload image
func (m *MockImageStore) UploadObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, objectName, reader, size, contentType)
	return args.Error(0)
}

// PresignGetURL moke presigned download url
func (m *MockImageStore) PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}
