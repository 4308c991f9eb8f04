package handlers

import (
	"github.com/gofiber/fiber/v2"

	catalogapp "marketplace_service/internal/catalog/app"
	catalogdomain "marketplace_service/internal/catalog/domain"
)

// CatalogHandler 處理商城與商家商品的 HTTP 請求
type CatalogHandler struct {
	Usecase catalogapp.CatalogUseCase
}

// NewCatalogHandler 建立新的 CatalogHandler
func NewCatalogHandler(usecase catalogapp.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{Usecase: usecase}
}

// Storefront 商城商品列表
// @Summary 商城商品列表
// @Tags Store
// @Produce json
// @Param category query string false "分類 slug"
// @Param q query string false "關鍵字"
// @Param sort query string false "排序"
// @Param page query int false "頁碼"
// @Success 200 {object} catalogdomain.StorefrontPage
// @Router /store/products [get]
func (h *CatalogHandler) Storefront(c *fiber.Ctx) error {
	q := &catalogdomain.StorefrontQuery{
		CategorySlug: c.Query("category"),
		Search:       c.Query("q"),
		Sort:         c.Query("sort"),
		Page:         c.QueryInt("page", 1),
		PageSize:     c.QueryInt("page_size", 12),
	}

	page, err := h.Usecase.StorefrontList(c.Context(), q)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(page)
}

// ProductDetail 商品詳情
// @Summary 商品詳情
// @Tags Store
// @Produce json
// @Param slug path string true "商品 slug"
// @Success 200 {object} catalogdomain.ProductDetailView
// @Failure 404 {object} string "商品不存在"
// @Router /store/products/{slug} [get]
func (h *CatalogHandler) ProductDetail(c *fiber.Ctx) error {
	view, err := h.Usecase.ProductDetail(c.Context(), c.Params("slug"))
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(view)
}

// SellerProducts 商家儀表板商品列表
// @Summary 商家儀表板商品列表
// @Tags Sellers
// @Produce json
// @Param category query string false "分類 slug"
// @Param stock_status query string false "庫存狀態"
// @Param sort query string false "排序"
// @Success 200 {object} catalogdomain.SellerProductPage
// @Router /seller/dashboard [get]
func (h *CatalogHandler) SellerProducts(c *fiber.Ctx) error {
	sellerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	q := &catalogdomain.SellerQuery{
		CategorySlug: c.Query("category"),
		StockStatus:  catalogdomain.StockStatus(c.Query("stock_status")),
		Sort:         c.Query("sort"),
		Page:         c.QueryInt("page", 1),
		PageSize:     c.QueryInt("page_size", 20),
	}

	page, err := h.Usecase.SellerProducts(c.Context(), sellerID, q)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(page)
}

// AddProduct 新增商品
// @Summary 新增商品
// @Tags Sellers
// @Accept json
// @Produce json
// @Success 200 {object} string "product created"
// @Failure 400 {object} string "請求錯誤"
// @Router /seller/products [post]
func (h *CatalogHandler) AddProduct(c *fiber.Ctx) error {
	sellerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	input, err := parseProductInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	product, err := h.Usecase.AddProduct(c.Context(), sellerID, input)
	if err != nil {
		return errResponse(c, err)
	}

	// 商品主圖可隨表單一併上傳
	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return errResponse(c, err)
		}
		defer src.Close()
		if err := h.Usecase.AttachMainImage(c.Context(), sellerID, product.ID,
			file.Filename, src, file.Size, file.Header.Get("Content-Type")); err != nil {
			return errResponse(c, err)
		}
	}

	return c.JSON(fiber.Map{"message": "product created", "id": product.ID, "slug": product.Slug, "sku": product.SKU})
}

// EditProduct 編輯商品
// @Summary 編輯商品
// @Tags Sellers
// @Accept json
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} string "product updated"
// @Failure 404 {object} string "商品不存在"
// @Router /seller/products/{id} [put]
func (h *CatalogHandler) EditProduct(c *fiber.Ctx) error {
	sellerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	productID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	input, err := parseProductInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if _, err := h.Usecase.EditProduct(c.Context(), sellerID, uint(productID), input); err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "product updated"})
}

// ToggleProduct 上架/下架切換
// @Summary 上架/下架切換
// @Tags Sellers
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} string "toggled"
// @Router /seller/products/{id}/toggle [post]
func (h *CatalogHandler) ToggleProduct(c *fiber.Ctx) error {
	sellerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	productID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	available, err := h.Usecase.ToggleAvailability(c.Context(), sellerID, uint(productID))
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{"is_available": available})
}

// BulkDeleteProducts 批次刪除商品
// @Summary 批次刪除商品
// @Tags Sellers
// @Accept json
// @Produce json
// @Success 200 {object} string "deleted"
// @Failure 400 {object} string "請求錯誤"
// @Router /seller/products/bulk-delete [post]
func (h *CatalogHandler) BulkDeleteProducts(c *fiber.Ctx) error {
	sellerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	type request struct {
		IDs []uint `json:"ids"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	deleted, err := h.Usecase.BulkDelete(c.Context(), sellerID, req.IDs)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

// parseProductInput 同時吃 JSON body 與 multipart form 欄位
func parseProductInput(c *fiber.Ctx) (*catalogdomain.ProductInput, error) {
	type request struct {
		Name               string   `json:"name" form:"name"`
		Description        string   `json:"description" form:"description"`
		Category           string   `json:"category" form:"category"`
		Price              float64  `json:"price" form:"price"`
		OriginalPrice      *float64 `json:"original_price" form:"original_price"`
		DiscountPercentage int      `json:"discount_percentage" form:"discount_percentage"`
		Stock              int      `json:"stock" form:"stock"`
		Brand              string   `json:"brand" form:"brand"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return nil, err
	}

	return &catalogdomain.ProductInput{
		Name:               req.Name,
		Description:        req.Description,
		CategorySlug:       req.Category,
		Price:              req.Price,
		OriginalPrice:      req.OriginalPrice,
		DiscountPercentage: req.DiscountPercentage,
		Stock:              req.Stock,
		Brand:              req.Brand,
	}, nil
}
