package domain

import (
	"regexp"
	"strings"
	"time"
)

// StockStatus 儀表板庫存篩選條件
type StockStatus string

const (
	//StockStatusOut 無庫存
	StockStatusOut StockStatus = "out_of_stock"
	//StockStatusLow 低庫存 (1〜LowStockThreshold)
	StockStatusLow StockStatus = "low_stock"
	//StockStatusActive 上架中
	StockStatusActive StockStatus = "active"
	//StockStatusInactive 下架中
	StockStatusInactive StockStatus = "inactive"
)

// LowStockThreshold 低庫存門檻
const LowStockThreshold = 10

// Category 定義商品分類模型
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:200"`
	Slug        string `gorm:"uniqueIndex;size:200"`
	Description string
	ImageObject string // 存於 MinIO 上的 object key
	IsActive    bool   `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Product 定義商品模型
type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:300"`
	Slug        string `gorm:"uniqueIndex;size:300"`
	Description string
	CategoryID  uint `gorm:"index"`

	// 價格
	Price              float64
	OriginalPrice      *float64
	DiscountPercentage int // 折扣百分比 (0-100)

	// 庫存
	Stock       int
	IsAvailable bool `gorm:"default:true"`

	// 商品細節
	Brand string `gorm:"size:200"`
	SKU   string `gorm:"uniqueIndex;size:100"`

	// 圖片 (MinIO object keys)
	MainImageObject string
	ImageObject2    string
	ImageObject3    string
	ImageObject4    string

	// 評價
	Rating     float64
	NumReviews int

	IsTrending bool
	IsFeatured bool

	SellerID int64 `gorm:"index"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// DiscountPrice 計算折扣後價格
func (p *Product) DiscountPrice() float64 {
	if p.DiscountPercentage > 0 {
		discountAmount := (p.Price * float64(p.DiscountPercentage)) / 100
		return p.Price - discountAmount
	}
	return p.Price
}

// ProductReview 定義商品評論模型
type ProductReview struct {
	ID                 uint  `gorm:"primaryKey"`
	ProductID          uint  `gorm:"index;uniqueIndex:idx_product_user"`
	UserID             int64 `gorm:"uniqueIndex:idx_product_user"`
	Rating             int   // 1..5
	Title              string
	Comment            string
	IsVerifiedPurchase bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ProductStats 商家儀表板的商品統計
type ProductStats struct {
	Total      int64
	Active     int64
	LowStock   int64
	OutOfStock int64
}

// StorefrontQuery 商城列表的查詢條件
type StorefrontQuery struct {
	CategorySlug string
	Search       string
	Sort         string
	Page         int
	PageSize     int
}

// SellerQuery 商家儀表板的查詢條件
type SellerQuery struct {
	CategorySlug string
	StockStatus  StockStatus
	Sort         string
	Page         int
	PageSize     int
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify name 轉成 url slug
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
