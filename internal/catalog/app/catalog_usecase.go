package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace_service/internal/catalog/domain"
	"marketplace_service/internal/catalog/repository"
	errprocess "marketplace_service/pkg/err"
	"marketplace_service/pkg/logger"
)

const (
	defaultPageSize = 12
	presignExpiry   = 15 * time.Minute
)

// ImageStore 商品圖片的物件儲存 (MinIO)
type ImageStore interface {
	UploadObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// CatalogUseCase 這裡封裝了對外提供的應用服務
type CatalogUseCase interface {
	StorefrontList(ctx context.Context, q *domain.StorefrontQuery) (*domain.StorefrontPage, error)
	ProductDetail(ctx context.Context, slug string) (*domain.ProductDetailView, error)
	SellerProducts(ctx context.Context, sellerID int64, q *domain.SellerQuery) (*domain.SellerProductPage, error)
	AddProduct(ctx context.Context, sellerID int64, input *domain.ProductInput) (*domain.Product, error)
	EditProduct(ctx context.Context, sellerID int64, productID uint, input *domain.ProductInput) (*domain.Product, error)
	ToggleAvailability(ctx context.Context, sellerID int64, productID uint) (bool, error)
	BulkDelete(ctx context.Context, sellerID int64, ids []uint) (int64, error)
	AttachMainImage(ctx context.Context, sellerID int64, productID uint, fileName string, reader io.Reader, size int64, contentType string) error
}

type catalogUseCase struct {
	productRepo repository.ProductRepo
	images      ImageStore
}

// NewCatalogUseCase 建立一個新的 CatalogUseCase
func NewCatalogUseCase(productRepo repository.ProductRepo, images ImageStore) CatalogUseCase {
	return &catalogUseCase{
		productRepo: productRepo,
		images:      images,
	}
}

// StorefrontList 商城商品列表，分類/關鍵字篩選 + 排序 + 分頁
func (c *catalogUseCase) StorefrontList(ctx context.Context, q *domain.StorefrontQuery) (*domain.StorefrontPage, error) {
	normalizePage(&q.Page, &q.PageSize)

	products, total, err := c.productRepo.ListAvailable(q)
	if err != nil {
		return nil, err
	}

	categories, err := c.productRepo.ActiveCategories()
	if err != nil {
		return nil, err
	}

	return &domain.StorefrontPage{
		Products:   c.toCards(ctx, products),
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		Categories: categories,
	}, nil
}

// ProductDetail 商品詳情 + 同分類推薦 + 最新評論
func (c *catalogUseCase) ProductDetail(ctx context.Context, slug string) (*domain.ProductDetailView, error) {
	product, err := c.productRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errprocess.NotFound("product %q", slug)
		}
		return nil, err
	}

	related, err := c.productRepo.Related(product.CategoryID, product.ID, 4)
	if err != nil {
		return nil, err
	}

	reviews, err := c.productRepo.Reviews(product.ID, 10)
	if err != nil {
		return nil, err
	}

	view := &domain.ProductDetailView{
		Product: c.toCard(ctx, product),
		Brand:   product.Brand,
		SKU:     product.SKU,
		Desc:    product.Description,
		Related: c.toCards(ctx, related),
	}

	for _, obj := range []string{product.MainImageObject, product.ImageObject2, product.ImageObject3, product.ImageObject4} {
		if obj == "" {
			continue
		}
		if url := c.presign(ctx, obj); url != "" {
			view.ImageURLs = append(view.ImageURLs, url)
		}
	}

	for _, rv := range reviews {
		view.Reviews = append(view.Reviews, domain.ReviewView{
			UserID:             rv.UserID,
			Rating:             rv.Rating,
			Title:              rv.Title,
			Comment:            rv.Comment,
			IsVerifiedPurchase: rv.IsVerifiedPurchase,
			CreatedAt:          rv.CreatedAt.Format(time.RFC3339),
		})
	}

	return view, nil
}

// SellerProducts 商家儀表板商品列表 + 庫存統計
func (c *catalogUseCase) SellerProducts(ctx context.Context, sellerID int64, q *domain.SellerQuery) (*domain.SellerProductPage, error) {
	normalizePage(&q.Page, &q.PageSize)

	products, total, err := c.productRepo.ListBySeller(sellerID, q)
	if err != nil {
		return nil, err
	}

	stats, err := c.productRepo.StatsBySeller(sellerID)
	if err != nil {
		return nil, err
	}

	categories, err := c.productRepo.CategoriesBySeller(sellerID)
	if err != nil {
		return nil, err
	}

	return &domain.SellerProductPage{
		Products:   c.toCards(ctx, products),
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		Stats:      *stats,
		Categories: categories,
	}, nil
}

// AddProduct 新增商品，slug 與 SKU 為空時自動生成
func (c *catalogUseCase) AddProduct(ctx context.Context, sellerID int64, input *domain.ProductInput) (*domain.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	category, err := c.productRepo.GetCategoryBySlug(input.CategorySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errprocess.NotFound("category %q", input.CategorySlug)
		}
		return nil, err
	}

	slug := domain.Slugify(input.Name)
	product := &domain.Product{
		Name:               input.Name,
		Slug:               slug,
		Description:        input.Description,
		CategoryID:         category.ID,
		Price:              input.Price,
		OriginalPrice:      input.OriginalPrice,
		DiscountPercentage: input.DiscountPercentage,
		Stock:              input.Stock,
		IsAvailable:        true,
		Brand:              input.Brand,
		SKU:                generateSKU(slug),
		SellerID:           sellerID,
	}

	if err := c.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Log.Info(fmt.Sprintf("usecase AddProduct : seller=%d product=%d", sellerID, product.ID))
	return product, nil
}

// EditProduct 編輯商品，僅能編輯自己的商品
func (c *catalogUseCase) EditProduct(ctx context.Context, sellerID int64, productID uint, input *domain.ProductInput) (*domain.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	product, err := c.productRepo.GetBySellerAndID(sellerID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errprocess.NotFound("product %d for seller %d", productID, sellerID)
		}
		return nil, err
	}

	category, err := c.productRepo.GetCategoryBySlug(input.CategorySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errprocess.NotFound("category %q", input.CategorySlug)
		}
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.CategoryID = category.ID
	product.Price = input.Price
	product.OriginalPrice = input.OriginalPrice
	product.DiscountPercentage = input.DiscountPercentage
	product.Stock = input.Stock
	product.Brand = input.Brand

	if err := c.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// ToggleAvailability 上架/下架切換，回傳切換後狀態
func (c *catalogUseCase) ToggleAvailability(ctx context.Context, sellerID int64, productID uint) (bool, error) {
	product, err := c.productRepo.GetBySellerAndID(sellerID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errprocess.NotFound("product %d for seller %d", productID, sellerID)
		}
		return false, err
	}

	product.IsAvailable = !product.IsAvailable
	if err := c.productRepo.Update(product); err != nil {
		return false, err
	}
	return product.IsAvailable, nil
}

// BulkDelete 批次刪除，回傳實際刪除筆數
func (c *catalogUseCase) BulkDelete(ctx context.Context, sellerID int64, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, errprocess.Validation("no products selected for deletion")
	}
	return c.productRepo.BulkDeleteBySeller(sellerID, ids)
}

// AttachMainImage 上傳主圖到 MinIO 並記錄 object key
func (c *catalogUseCase) AttachMainImage(ctx context.Context, sellerID int64, productID uint, fileName string, reader io.Reader, size int64, contentType string) error {
	product, err := c.productRepo.GetBySellerAndID(sellerID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errprocess.NotFound("product %d for seller %d", productID, sellerID)
		}
		return err
	}

	objectName := fmt.Sprintf("products/%d/%s_%s", productID, uuid.New().String()[:8], fileName)
	if err := c.images.UploadObject(ctx, objectName, reader, size, contentType); err != nil {
		return err
	}

	product.MainImageObject = objectName
	return c.productRepo.Update(product)
}

func (c *catalogUseCase) toCard(ctx context.Context, p *domain.Product) domain.ProductCard {
	card := domain.ProductCard{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice(),
		Stock:         p.Stock,
		IsAvailable:   p.IsAvailable,
		Rating:        p.Rating,
		NumReviews:    p.NumReviews,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
	if p.MainImageObject != "" {
		card.ImageURL = c.presign(ctx, p.MainImageObject)
	}
	return card
}

func (c *catalogUseCase) toCards(ctx context.Context, products []domain.Product) []domain.ProductCard {
	cards := make([]domain.ProductCard, 0, len(products))
	for i := range products {
		cards = append(cards, c.toCard(ctx, &products[i]))
	}
	return cards
}

// presign 失敗時只記 log，列表不因圖片連結失敗而中斷
func (c *catalogUseCase) presign(ctx context.Context, objectName string) string {
	if c.images == nil {
		return ""
	}
	url, err := c.images.PresignGetURL(ctx, objectName, presignExpiry)
	if err != nil {
		logger.Log.Errorf("presign err :", err)
		return ""
	}
	return url
}

func validateInput(input *domain.ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return errprocess.Validation("product name is required")
	}
	if input.Price < 0 {
		return errprocess.Validation("price must not be negative")
	}
	if input.DiscountPercentage < 0 || input.DiscountPercentage > 100 {
		return errprocess.Validation("discount percentage must be 0-100")
	}
	if input.Stock < 0 {
		return errprocess.Validation("stock must not be negative")
	}
	return nil
}

func generateSKU(slug string) string {
	if len(slug) > 20 {
		slug = slug[:20]
	}
	return fmt.Sprintf("PRD-%s-%s", strings.ToUpper(uuid.New().String()[:8]), slug)
}

func normalizePage(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 {
		*pageSize = defaultPageSize
	}
}
