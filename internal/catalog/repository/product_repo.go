package repository

import (
	"gorm.io/gorm"

	"marketplace_service/internal/catalog/domain"
)

// ProductRepo definition get catalog info
type ProductRepo interface {
	AutoMigrate() error
	Create(product *domain.Product) error
	Update(product *domain.Product) error
	GetByID(id uint) (*domain.Product, error)
	GetBySellerAndID(sellerID int64, id uint) (*domain.Product, error)
	GetBySlug(slug string) (*domain.Product, error)
	ListAvailable(q *domain.StorefrontQuery) ([]domain.Product, int64, error)
	ListBySeller(sellerID int64, q *domain.SellerQuery) ([]domain.Product, int64, error)
	BulkDeleteBySeller(sellerID int64, ids []uint) (int64, error)
	StatsBySeller(sellerID int64) (*domain.ProductStats, error)
	Related(categoryID uint, excludeID uint, limit int) ([]domain.Product, error)
	Reviews(productID uint, limit int) ([]domain.ProductReview, error)
	ActiveCategories() ([]domain.Category, error)
	CategoriesBySeller(sellerID int64) ([]domain.Category, error)
	GetCategoryBySlug(slug string) (*domain.Category, error)
	// 其他 CRUD ...
}

type productRepo struct {
	db *gorm.DB
}

// NewProductRepo create ProductRepo
func NewProductRepo(db *gorm.DB) ProductRepo {
	return &productRepo{db: db}
}

// AutoMigrate 依模型更新資料表結構 (開發階段使用)
func (r *productRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Category{}, &domain.Product{}, &domain.ProductReview{})
}

func (r *productRepo) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) GetByID(id uint) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBySellerAndID 編輯用，只能取得自己的商品
func (r *productRepo) GetBySellerAndID(sellerID int64, id uint) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.Where("id = ? AND seller_id = ?", id, sellerID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) GetBySlug(slug string) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.Where("slug = ? AND is_available = ?", slug, true).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// storefrontSorts 商城列表允許的排序鍵
var storefrontSorts = map[string]string{
	"price":       "price ASC",
	"-price":      "price DESC",
	"name":        "name ASC",
	"-name":       "name DESC",
	"-rating":     "rating DESC",
	"-created_at": "created_at DESC",
}

func (r *productRepo) ListAvailable(q *domain.StorefrontQuery) ([]domain.Product, int64, error) {
	tx := r.db.Model(&domain.Product{}).Where("is_available = ?", true)

	if q.CategorySlug != "" {
		tx = tx.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", q.CategorySlug)
	}
	if q.Search != "" {
		tx = tx.Where("products.name ILIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := storefrontSorts[q.Sort]
	if !ok {
		order = "created_at DESC"
	}

	var products []domain.Product
	err := tx.Order(order).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&products).Error
	return products, total, err
}

// sellerSorts 商家儀表板允許的排序鍵
var sellerSorts = map[string]string{
	"price_asc":  "price ASC",
	"price_desc": "price DESC",
	"stock_asc":  "stock ASC",
	"stock_desc": "stock DESC",
	"date_asc":   "created_at ASC",
	"date_desc":  "created_at DESC",
}

func (r *productRepo) ListBySeller(sellerID int64, q *domain.SellerQuery) ([]domain.Product, int64, error) {
	tx := r.db.Model(&domain.Product{}).Where("seller_id = ?", sellerID)

	if q.CategorySlug != "" {
		tx = tx.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", q.CategorySlug)
	}

	switch q.StockStatus {
	case domain.StockStatusOut:
		tx = tx.Where("stock = 0")
	case domain.StockStatusLow:
		tx = tx.Where("stock > 0 AND stock <= ?", domain.LowStockThreshold)
	case domain.StockStatusActive:
		tx = tx.Where("is_available = ?", true)
	case domain.StockStatusInactive:
		tx = tx.Where("is_available = ?", false)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := sellerSorts[q.Sort]
	if !ok {
		order = "created_at DESC"
	}

	var products []domain.Product
	err := tx.Order(order).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&products).Error
	return products, total, err
}

// BulkDeleteBySeller 批次刪除，只會刪到自己的商品
func (r *productRepo) BulkDeleteBySeller(sellerID int64, ids []uint) (int64, error) {
	tx := r.db.Where("seller_id = ? AND id IN ?", sellerID, ids).Delete(&domain.Product{})
	return tx.RowsAffected, tx.Error
}

func (r *productRepo) StatsBySeller(sellerID int64) (*domain.ProductStats, error) {
	var stats domain.ProductStats
	base := func() *gorm.DB {
		return r.db.Model(&domain.Product{}).Where("seller_id = ?", sellerID)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_available = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := base().Where("stock > 0 AND stock <= ?", domain.LowStockThreshold).Count(&stats.LowStock).Error; err != nil {
		return nil, err
	}
	if err := base().Where("stock = 0").Count(&stats.OutOfStock).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *productRepo) Related(categoryID uint, excludeID uint, limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("category_id = ? AND is_available = ? AND id <> ?", categoryID, true, excludeID).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) Reviews(productID uint, limit int) ([]domain.ProductReview, error) {
	var reviews []domain.ProductReview
	err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *productRepo) ActiveCategories() ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error
	return categories, err
}

// CategoriesBySeller 該商家有商品的分類，儀表板篩選下拉用
func (r *productRepo) CategoriesBySeller(sellerID int64) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.Distinct("categories.*").
		Joins("JOIN products ON products.category_id = categories.id").
		Where("products.seller_id = ?", sellerID).
		Order("categories.name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *productRepo) GetCategoryBySlug(slug string) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
