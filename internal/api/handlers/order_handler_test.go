package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	orderapp "marketplace_service/internal/order/app"
	orderdomain "marketplace_service/internal/order/domain"
	errprocess "marketplace_service/pkg/err"
	"marketplace_service/pkg/logger"
	"marketplace_service/pkg/middlewares"
	"marketplace_service/pkg/token"
)

func init() {
	logger.SetNewNop()
}

// mockOrderUseCase moke OrderUseCase
type mockOrderUseCase struct {
	mock.Mock
}

func (m *mockOrderUseCase) PlaceOrder(ctx context.Context, order *orderdomain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderUseCase) SellerOrders(ctx context.Context, sellerID int64, q *orderdomain.OrderQuery) (*orderapp.OrdersView, error) {
	args := m.Called(ctx, sellerID, q)
	if args.Get(0) != nil {
		return args.Get(0).(*orderapp.OrdersView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderUseCase) DeliveryOverview(ctx context.Context, sellerID int64) (*orderapp.DeliveryView, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) != nil {
		return args.Get(0).(*orderapp.DeliveryView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderUseCase) SalesAnalytics(ctx context.Context, sellerID int64, windowDays int) (*orderapp.SalesView, error) {
	args := m.Called(ctx, sellerID, windowDays)
	if args.Get(0) != nil {
		return args.Get(0).(*orderapp.SalesView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderUseCase) PaymentsOverview(ctx context.Context, sellerID int64) (*orderapp.PaymentsView, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) != nil {
		return args.Get(0).(*orderapp.PaymentsView), args.Error(1)
	}
	return nil, args.Error(1)
}

func newPlaceOrderApp(uc orderapp.OrderUseCase) *fiber.App {
	app := fiber.New()
	h := NewOrderHandler(uc)
	app.Post("/store/orders", middlewares.JWTMiddleware(), h.PlaceOrder)
	return app
}

// 測試顧客下單路由：帶 token 下單成功
func TestOrderHandler_PlaceOrder(t *testing.T) {
	uc := new(mockOrderUseCase)
	uc.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(o *orderdomain.Order) bool {
		return o.BuyerID == 7 && o.SellerID == 42 && len(o.Items) == 2
	})).Run(func(args mock.Arguments) {
		o := args.Get(1).(*orderdomain.Order)
		o.OrderNumber = "ORD-AB12CD34"
		o.Total = 287
	}).Return(nil)

	app := newPlaceOrderApp(uc)

	tok, err := token.GenerateJWT("7", "customer", "store_service")
	assert.NoError(t, err)

	body := `{
		"seller_id": 42,
		"payment_method": "cod",
		"shipping_name": "Ali",
		"shipping_city": "Lahore",
		"shipping_fee": 10,
		"tax": 2,
		"items": [
			{"product_id": 1, "product_name": "Espresso Maker", "unit_price": 120, "quantity": 2},
			{"product_id": 2, "product_name": "Milk Frother", "unit_price": 35, "quantity": 1}
		]
	}`

	req := httptest.NewRequest(fiber.MethodPost, "/store/orders?auth="+tok, bytes.NewReader([]byte(body)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var out struct {
		OrderNumber string  `json:"order_number"`
		Total       float64 `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "ORD-AB12CD34", out.OrderNumber)
	assert.Equal(t, float64(287), out.Total)
	uc.AssertExpectations(t)
}

// 測試顧客下單路由：驗證錯誤回 400、缺 token 回 401
func TestOrderHandler_PlaceOrder_Rejections(t *testing.T) {
	uc := new(mockOrderUseCase)
	uc.On("PlaceOrder", mock.Anything, mock.Anything).
		Return(errprocess.Validation("order has no items"))

	app := newPlaceOrderApp(uc)

	tok, err := token.GenerateJWT("7", "customer", "store_service")
	assert.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/store/orders?auth="+tok, bytes.NewReader([]byte(`{"seller_id": 42}`)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// 未帶 token
	req = httptest.NewRequest(fiber.MethodPost, "/store/orders", bytes.NewReader([]byte(`{}`)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
