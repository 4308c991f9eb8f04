package handlers

import (
	"github.com/gofiber/fiber/v2"

	orderapp "marketplace_service/internal/order/app"
	orderdomain "marketplace_service/internal/order/domain"
)

// OrderHandler 處理商家訂單 / 配送 / 銷售 / 收款的 HTTP 請求
type OrderHandler struct {
	Usecase orderapp.OrderUseCase
}

// NewOrderHandler 建立新的 OrderHandler
func NewOrderHandler(usecase orderapp.OrderUseCase) *OrderHandler {
	return &OrderHandler{Usecase: usecase}
}

// orderInput 下單請求內容
type orderInput struct {
	SellerID        int64   `json:"seller_id"`
	PaymentMethod   string  `json:"payment_method"`
	ShippingName    string  `json:"shipping_name"`
	ShippingPhone   string  `json:"shipping_phone"`
	ShippingAddress string  `json:"shipping_address"`
	ShippingCity    string  `json:"shipping_city"`
	ShippingFee     float64 `json:"shipping_fee"`
	Tax             float64 `json:"tax"`
	Notes           string  `json:"notes"`
	Items           []struct {
		ProductID   int64   `json:"product_id"`
		ProductName string  `json:"product_name"`
		UnitPrice   float64 `json:"unit_price"`
		Quantity    int     `json:"quantity"`
	} `json:"items"`
}

func (in *orderInput) toOrder(buyerID int64) *orderdomain.Order {
	order := &orderdomain.Order{
		BuyerID:         buyerID,
		SellerID:        in.SellerID,
		PaymentMethod:   orderdomain.PaymentMethod(in.PaymentMethod),
		ShippingFee:     in.ShippingFee,
		Tax:             in.Tax,
		ShippingName:    in.ShippingName,
		ShippingPhone:   in.ShippingPhone,
		ShippingAddress: in.ShippingAddress,
		ShippingCity:    in.ShippingCity,
		Notes:           in.Notes,
	}
	for _, item := range in.Items {
		order.Items = append(order.Items, orderdomain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	return order
}

// PlaceOrder 顧客下單
// @Summary 顧客下單
// @Tags Store
// @Accept json
// @Produce json
// @Param request body object true "seller_id / items / 收件資訊"
// @Success 200 {object} string "order_number / total"
// @Failure 400 {object} string "訂單內容錯誤"
// @Router /store/orders [post]
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	buyerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var in orderInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	order := in.toOrder(buyerID)
	if err := h.Usecase.PlaceOrder(c.Context(), order); err != nil {
		return errResponse(c, err)
	}

	return c.JSON(fiber.Map{"order_number": order.OrderNumber, "total": order.Total})
}

// SellerOrders 商家訂單列表
// @Summary 商家訂單列表
// @Tags Sellers
// @Produce json
// @Param status query string false "訂單狀態"
// @Param limit query int false "筆數上限"
// @Success 200 {object} orderapp.OrdersView
// @Failure 400 {object} string "狀態參數錯誤"
// @Router /seller/orders [get]
func (h *OrderHandler) SellerOrders(c *fiber.Ctx) error {
	sellerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	q := &orderdomain.OrderQuery{
		Status: c.Query("status"),
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}

	view, err := h.Usecase.SellerOrders(c.Context(), sellerID, q)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(view)
}

// Delivery 配送總覽
// @Summary 配送總覽
// @Tags Sellers
// @Produce json
// @Success 200 {object} orderapp.DeliveryView
// @Router /seller/delivery [get]
func (h *OrderHandler) Delivery(c *fiber.Ctx) error {
	sellerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	view, err := h.Usecase.DeliveryOverview(c.Context(), sellerID)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(view)
}

// Sales 銷售分析
// @Summary 銷售分析
// @Tags Sellers
// @Produce json
// @Param days query int false "統計視窗天數 (預設 30)"
// @Success 200 {object} orderapp.SalesView
// @Router /seller/sales [get]
func (h *OrderHandler) Sales(c *fiber.Ctx) error {
	sellerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	view, err := h.Usecase.SalesAnalytics(c.Context(), sellerID, c.QueryInt("days", 0))
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(view)
}

// Payments 收款總覽
// @Summary 收款總覽
// @Tags Sellers
// @Produce json
// @Success 200 {object} orderapp.PaymentsView
// @Router /seller/payments [get]
func (h *OrderHandler) Payments(c *fiber.Ctx) error {
	sellerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	view, err := h.Usecase.PaymentsOverview(c.Context(), sellerID)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(view)
}
