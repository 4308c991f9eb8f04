package app

import (
	"context"
	"fmt"
	"time"

	"marketplace_service/internal/order/domain"
	"marketplace_service/internal/order/repository"
	errprocess "marketplace_service/pkg/err"
	"marketplace_service/pkg/logger"
)

const (
	// DefaultSalesWindowDays 銷售分析預設區間
	DefaultSalesWindowDays = 30
	recentShippedLimit     = 10
	topProductLimit        = 5
	recentTransactionLimit = 20
)

// OrdersView 訂單列表頁面回應，pending_count 供後台待處理標記使用
type OrdersView struct {
	Orders       []domain.Order `json:"orders"`
	PendingCount int64          `json:"pending_count"`
}

// DeliveryView 配送頁面回應
type DeliveryView struct {
	Stats         domain.DeliveryStats `json:"stats"`
	RecentShipped []domain.Order       `json:"recent_shipped"`
}

// SalesView 銷售分析頁面回應
type SalesView struct {
	WindowDays int                 `json:"window_days"`
	Stats      domain.SalesStats   `json:"stats"`
	Daily      []domain.DailySales `json:"daily"`
	Top        []domain.TopProduct `json:"top_products"`
}

// PaymentsView 收款頁面回應
type PaymentsView struct {
	Stats        domain.PaymentStats  `json:"stats"`
	Transactions []domain.Transaction `json:"transactions"`
}

// OrderUseCase 這裡封裝了對外提供的應用服務
type OrderUseCase interface {
	PlaceOrder(ctx context.Context, order *domain.Order) error
	SellerOrders(ctx context.Context, sellerID int64, q *domain.OrderQuery) (*OrdersView, error)
	DeliveryOverview(ctx context.Context, sellerID int64) (*DeliveryView, error)
	SalesAnalytics(ctx context.Context, sellerID int64, windowDays int) (*SalesView, error)
	PaymentsOverview(ctx context.Context, sellerID int64) (*PaymentsView, error)
}

type orderUseCase struct {
	orderRepo repository.OrderRepository
}

// NewOrderUseCase 建立一個新的 OrderUseCase
func NewOrderUseCase(orderRepo repository.OrderRepository) OrderUseCase {
	return &orderUseCase{orderRepo: orderRepo}
}

// PlaceOrder 建立訂單，金額欄位由項目重新計算
func (o *orderUseCase) PlaceOrder(ctx context.Context, order *domain.Order) error {
	if len(order.Items) == 0 {
		return errprocess.Validation("order has no items")
	}

	var subtotal float64
	for i := range order.Items {
		item := &order.Items[i]
		if item.Quantity < 1 {
			return errprocess.Validation("item quantity must be at least 1")
		}
		item.Subtotal = item.UnitPrice * float64(item.Quantity)
		subtotal += item.Subtotal
	}

	order.OrderNumber = domain.NewOrderNumber()
	order.Subtotal = subtotal
	order.Total = subtotal + order.ShippingFee + order.Tax
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = domain.PaymentPending
	}

	if err := o.orderRepo.Create(ctx, order); err != nil {
		return err
	}

	logger.Log.Info(fmt.Sprintf("usecase PlaceOrder : %s seller=%d total=%.2f",
		order.OrderNumber, order.SellerID, order.Total))
	return nil
}

// SellerOrders 商家訂單列表，可依狀態篩選，附帶待處理訂單數
func (o *orderUseCase) SellerOrders(ctx context.Context, sellerID int64, q *domain.OrderQuery) (*OrdersView, error) {
	if q.Status != "" && !domain.ValidOrderStatus(q.Status) {
		return nil, errprocess.Validation("unknown order status %q", q.Status)
	}

	orders, err := o.orderRepo.FindBySeller(ctx, sellerID, q)
	if err != nil {
		return nil, err
	}

	pending, err := o.orderRepo.CountBySellerStatus(ctx, sellerID, domain.OrderStatusPending)
	if err != nil {
		return nil, err
	}

	return &OrdersView{Orders: orders, PendingCount: pending}, nil
}

// DeliveryOverview 配送統計與最近出貨訂單
func (o *orderUseCase) DeliveryOverview(ctx context.Context, sellerID int64) (*DeliveryView, error) {
	stats, err := o.orderRepo.DeliveryStats(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	shipped, err := o.orderRepo.FindBySeller(ctx, sellerID, &domain.OrderQuery{
		Status: string(domain.OrderStatusShipped),
		Limit:  recentShippedLimit,
	})
	if err != nil {
		return nil, err
	}

	return &DeliveryView{Stats: *stats, RecentShipped: shipped}, nil
}

// SalesAnalytics N 天視窗的銷售分析，windowDays <= 0 時取預設值
func (o *orderUseCase) SalesAnalytics(ctx context.Context, sellerID int64, windowDays int) (*SalesView, error) {
	if windowDays <= 0 {
		windowDays = DefaultSalesWindowDays
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	stats, err := o.orderRepo.SalesStats(ctx, sellerID, since)
	if err != nil {
		return nil, err
	}

	daily, err := o.orderRepo.DailySales(ctx, sellerID, since)
	if err != nil {
		return nil, err
	}

	top, err := o.orderRepo.TopProducts(ctx, sellerID, since, topProductLimit)
	if err != nil {
		return nil, err
	}

	return &SalesView{
		WindowDays: windowDays,
		Stats:      *stats,
		Daily:      daily,
		Top:        top,
	}, nil
}

// PaymentsOverview 收款統計與最近已付款交易
func (o *orderUseCase) PaymentsOverview(ctx context.Context, sellerID int64) (*PaymentsView, error) {
	stats, err := o.orderRepo.PaymentStats(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	txs, err := o.orderRepo.RecentTransactions(ctx, sellerID, recentTransactionLimit)
	if err != nil {
		return nil, err
	}

	return &PaymentsView{Stats: *stats, Transactions: txs}, nil
}
