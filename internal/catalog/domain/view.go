package domain

// ProductCard usecase storefront list item
type ProductCard struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Price         float64 `json:"price"`
	DiscountPrice float64 `json:"discount_price"`
	Stock         int     `json:"stock"`
	IsAvailable   bool    `json:"is_available"`
	Rating        float64 `json:"rating"`
	NumReviews    int     `json:"num_reviews"`
	ImageURL      string  `json:"image_url,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// StorefrontPage usecase storefront list response
type StorefrontPage struct {
	Products   []ProductCard `json:"products"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Categories []Category    `json:"categories"`
}

// ReviewView usecase product review item
type ReviewView struct {
	UserID             int64  `json:"user_id"`
	Rating             int    `json:"rating"`
	Title              string `json:"title"`
	Comment            string `json:"comment"`
	IsVerifiedPurchase bool   `json:"is_verified_purchase"`
	CreatedAt          string `json:"created_at"`
}

// ProductDetailView usecase product detail response
type ProductDetailView struct {
	Product   ProductCard   `json:"product"`
	Brand     string        `json:"brand"`
	SKU       string        `json:"sku"`
	Desc      string        `json:"description"`
	ImageURLs []string      `json:"image_urls,omitempty"`
	Related   []ProductCard `json:"related"`
	Reviews   []ReviewView  `json:"reviews"`
}

// SellerProductPage usecase seller dashboard product listing
type SellerProductPage struct {
	Products   []ProductCard `json:"products"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Stats      ProductStats  `json:"stats"`
	Categories []Category    `json:"categories"`
}

// ProductInput usecase create/edit product request
type ProductInput struct {
	Name               string
	Description        string
	CategorySlug       string
	Price              float64
	OriginalPrice      *float64
	DiscountPercentage int
	Stock              int
	Brand              string
}
