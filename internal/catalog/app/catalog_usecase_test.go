package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace_service/internal/catalog/domain"
	errprocess "marketplace_service/pkg/err"
	"marketplace_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func init() {
	logger.SetNewNop()
}

// 測試商城列表，包含 presigned 圖片連結
func TestCatalogUseCase_StorefrontList(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepo)
	mockImages := new(MockImageStore)

	q := &domain.StorefrontQuery{Page: 1, PageSize: 12, Sort: "newest"}
	products := []domain.Product{
		{Name: "Espresso Maker", Slug: "espresso-maker", Price: 120, MainImageObject: "products/1/main.jpg"},
		{Name: "Milk Frother", Slug: "milk-frother", Price: 35},
	}

	mockRepo.On("ListAvailable", q).Return(products, int64(2), nil)
	mockRepo.On("ActiveCategories").Return([]domain.Category{{Name: "Kitchen", Slug: "kitchen"}}, nil)
	mockImages.On("PresignGetURL", ctx, "products/1/main.jpg", presignExpiry).
		Return("https://minio.local/products/1/main.jpg?sig=abc", nil)

	uc := NewCatalogUseCase(mockRepo, mockImages)
	page, err := uc.StorefrontList(ctx, q)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, "https://minio.local/products/1/main.jpg?sig=abc", page.Products[0].ImageURL)
	assert.Empty(t, page.Products[1].ImageURL)
	assert.Len(t, page.Categories, 1)

	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

// 測試無效分頁參數會被正規化
func TestCatalogUseCase_StorefrontList_NormalizesPaging(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepo)

	q := &domain.StorefrontQuery{Page: -3, PageSize: 0}
	mockRepo.On("ListAvailable", q).Return([]domain.Product{}, int64(0), nil)
	mockRepo.On("ActiveCategories").Return([]domain.Category{}, nil)

	uc := NewCatalogUseCase(mockRepo, nil)
	page, err := uc.StorefrontList(ctx, q)

	assert.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, defaultPageSize, page.PageSize)
}

// 測試商品詳情，slug 不存在回傳 not found
func TestCatalogUseCase_ProductDetail_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepo)

	mockRepo.On("GetBySlug", "ghost-product").Return(nil, gorm.ErrRecordNotFound)

	uc := NewCatalogUseCase(mockRepo, nil)
	view, err := uc.ProductDetail(ctx, "ghost-product")

	assert.Nil(t, view)
	assert.ErrorIs(t, err, errprocess.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

// 測試商品詳情組裝推薦與評論
func TestCatalogUseCase_ProductDetail(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepo)
	mockImages := new(MockImageStore)

	product := &domain.Product{
		Name:            "Espresso Maker",
		Slug:            "espresso-maker",
		CategoryID:      3,
		Price:           120,
		Brand:           "BrewCo",
		SKU:             "PRD-AB12CD34-espresso-maker",
		MainImageObject: "products/1/main.jpg",
	}
	product.ID = 1

	mockRepo.On("GetBySlug", "espresso-maker").Return(product, nil)
	mockRepo.On("Related", uint(3), uint(1), 4).Return([]domain.Product{{Name: "Grinder", Slug: "grinder"}}, nil)
	mockRepo.On("Reviews", uint(1), 10).Return([]domain.ProductReview{
		{UserID: 7, Rating: 5, Title: "Great", Comment: "Works well", CreatedAt: time.Now()},
	}, nil)
	mockImages.On("PresignGetURL", ctx, "products/1/main.jpg", presignExpiry).
		Return("https://minio.local/products/1/main.jpg?sig=abc", nil)

	uc := NewCatalogUseCase(mockRepo, mockImages)
	view, err := uc.ProductDetail(ctx, "espresso-maker")

	assert.NoError(t, err)
	assert.Equal(t, "BrewCo", view.Brand)
	assert.Len(t, view.Related, 1)
	assert.Len(t, view.Reviews, 1)
	assert.Equal(t, 5, view.Reviews[0].Rating)
	assert.Len(t, view.ImageURLs, 1)
}

// 測試新增商品會生成 slug 與 SKU
func TestCatalogUseCase_AddProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepo)

	category := &domain.Category{Name: "Kitchen", Slug: "kitchen"}
	category.ID = 3
	mockRepo.On("GetCategoryBySlug", "kitchen").Return(category, nil)
	mockRepo.On("Create", mock.Anything).Return(nil)

	uc := NewCatalogUseCase(mockRepo, nil)
	product, err := uc.AddProduct(ctx, 42, &domain.ProductInput{
		Name:         "Espresso Maker 3000",
		CategorySlug: "kitchen",
		Price:        120,
		Stock:        5,
	})

	assert.NoError(t, err)
	assert.Equal(t, "espresso-maker-3000", product.Slug)
	assert.Contains(t, product.SKU, "PRD-")
	assert.Contains(t, product.SKU, "espresso-maker-3000")
	assert.True(t, product.IsAvailable)
	assert.Equal(t, int64(42), product.SellerID)
	mockRepo.AssertExpectations(t)
}

// 測試新增商品參數驗證
func TestCatalogUseCase_AddProduct_Validation(t *testing.T) {
	ctx := context.Background()
	uc := NewCatalogUseCase(new(MockProductRepo), nil)

	cases := []*domain.ProductInput{
		{Name: "  ", CategorySlug: "kitchen", Price: 10},
		{Name: "Maker", CategorySlug: "kitchen", Price: -1},
		{Name: "Maker", CategorySlug: "kitchen", Price: 10, DiscountPercentage: 120},
		{Name: "Maker", CategorySlug: "kitchen", Price: 10, Stock: -5},
	}
	for _, input := range cases {
		_, err := uc.AddProduct(ctx, 42, input)
		assert.ErrorIs(t, err, errprocess.ErrValidation)
	}
}

// 測試編輯他人商品回傳 not found
func TestCatalogUseCase_EditProduct_WrongSeller(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepo)

	mockRepo.On("GetBySellerAndID", int64(42), uint(9)).Return(nil, gorm.ErrRecordNotFound)

	uc := NewCatalogUseCase(mockRepo, nil)
	_, err := uc.EditProduct(ctx, 42, 9, &domain.ProductInput{
		Name: "Maker", CategorySlug: "kitchen", Price: 10,
	})

	assert.ErrorIs(t, err, errprocess.ErrNotFound)
}

// 測試上下架切換
func TestCatalogUseCase_ToggleAvailability(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepo)

	product := &domain.Product{IsAvailable: true, SellerID: 42}
	product.ID = 9
	mockRepo.On("GetBySellerAndID", int64(42), uint(9)).Return(product, nil)
	mockRepo.On("Update", mock.Anything).Return(nil)

	uc := NewCatalogUseCase(mockRepo, nil)
	available, err := uc.ToggleAvailability(ctx, 42, 9)

	assert.NoError(t, err)
	assert.False(t, available)
	mockRepo.AssertExpectations(t)
}

// 測試批次刪除，空清單回傳 validation error
func TestCatalogUseCase_BulkDelete(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepo)

	mockRepo.On("BulkDeleteBySeller", int64(42), []uint{1, 2, 3}).Return(int64(2), nil)

	uc := NewCatalogUseCase(mockRepo, nil)

	deleted, err := uc.BulkDelete(ctx, 42, []uint{1, 2, 3})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = uc.BulkDelete(ctx, 42, nil)
	assert.ErrorIs(t, err, errprocess.ErrValidation)
}

// 測試上傳主圖後記錄 object key
func TestCatalogUseCase_AttachMainImage(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepo)
	mockImages := new(MockImageStore)

	product := &domain.Product{SellerID: 42}
	product.ID = 9
	mockRepo.On("GetBySellerAndID", int64(42), uint(9)).Return(product, nil)
	mockImages.On("UploadObject", ctx, mock.Anything, mock.Anything, int64(128), "image/jpeg").Return(nil)
	mockRepo.On("Update", mock.MatchedBy(func(p *domain.Product) bool {
		return p.MainImageObject != ""
	})).Return(nil)

	uc := NewCatalogUseCase(mockRepo, mockImages)
	err := uc.AttachMainImage(ctx, 42, 9, "main.jpg", nil, 128, "image/jpeg")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

// 測試 presign 失敗時列表仍成功，圖片連結留空
func TestCatalogUseCase_PresignFailureDegrades(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepo)
	mockImages := new(MockImageStore)

	q := &domain.StorefrontQuery{Page: 1, PageSize: 12}
	mockRepo.On("ListAvailable", q).Return([]domain.Product{
		{Name: "Maker", Slug: "maker", MainImageObject: "products/1/main.jpg"},
	}, int64(1), nil)
	mockRepo.On("ActiveCategories").Return([]domain.Category{}, nil)
	mockImages.On("PresignGetURL", ctx, "products/1/main.jpg", presignExpiry).
		Return("", errors.New("minio unreachable"))

	uc := NewCatalogUseCase(mockRepo, mockImages)
	page, err := uc.StorefrontList(ctx, q)

	assert.NoError(t, err)
	assert.Empty(t, page.Products[0].ImageURL)
}
