package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"marketplace_service/pkg"
)

// OrderStatus 訂單狀態
type OrderStatus string

const (
	//OrderStatusPending 待確認
	OrderStatusPending OrderStatus = "pending"
	//OrderStatusConfirmed 已確認
	OrderStatusConfirmed OrderStatus = "confirmed"
	//OrderStatusProcessing 備貨中
	OrderStatusProcessing OrderStatus = "processing"
	//OrderStatusShipped 已出貨
	OrderStatusShipped OrderStatus = "shipped"
	//OrderStatusDelivered 已送達
	OrderStatusDelivered OrderStatus = "delivered"
	//OrderStatusCancelled 已取消
	OrderStatusCancelled OrderStatus = "cancelled"
	//OrderStatusRefunded 已退款
	OrderStatusRefunded OrderStatus = "refunded"
)

// PaymentStatus 付款狀態
type PaymentStatus string

const (
	//PaymentPending 未付款
	PaymentPending PaymentStatus = "pending"
	//PaymentPaid 已付款
	PaymentPaid PaymentStatus = "paid"
	//PaymentFailed 付款失敗
	PaymentFailed PaymentStatus = "failed"
	//PaymentRefunded 已退款
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod 付款方式
type PaymentMethod string

const (
	//PaymentMethodCOD 貨到付款
	PaymentMethodCOD PaymentMethod = "cod"
	//PaymentMethodJazzCash JazzCash
	PaymentMethodJazzCash PaymentMethod = "jazzcash"
	//PaymentMethodEasypaisa Easypaisa
	PaymentMethodEasypaisa PaymentMethod = "easypaisa"
	//PaymentMethodSadapay SadaPay
	PaymentMethodSadapay PaymentMethod = "sadapay"
	//PaymentMethodCard 信用卡
	PaymentMethodCard PaymentMethod = "card"
)

var orderStatuses = []string{
	string(OrderStatusPending), string(OrderStatusConfirmed), string(OrderStatusProcessing),
	string(OrderStatusShipped), string(OrderStatusDelivered), string(OrderStatusCancelled),
	string(OrderStatusRefunded),
}

// ValidOrderStatus 檢查狀態篩選參數是否合法
func ValidOrderStatus(s string) bool {
	return pkg.Contains(orderStatuses, s)
}

// Order 定義訂單模型
type Order struct {
	ID          int64
	OrderNumber string
	BuyerID     int64
	SellerID    int64

	Status        OrderStatus
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod

	// 金額
	Subtotal    float64
	ShippingFee float64
	Tax         float64
	Total       float64

	// 收件資訊
	ShippingName    string
	ShippingPhone   string
	ShippingAddress string
	ShippingCity    string

	Notes          string
	TrackingNumber string

	CreatedAt time.Time
	UpdatedAt time.Time

	Items []OrderItem
}

// OrderItem 訂單項目，下單當下的商品快照
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	UnitPrice   float64
	Quantity    int
	Subtotal    float64
}

// NewOrderNumber 產生訂單編號 ORD-XXXXXXXX
func NewOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// OrderQuery 商家訂單列表查詢條件
type OrderQuery struct {
	Status string
	Limit  int
	Offset int
}

// DeliveryStats 配送統計
type DeliveryStats struct {
	Delivered       int64   `json:"delivered"`
	Shipped         int64   `json:"shipped"`
	PendingShipment int64   `json:"pending_shipment"`
	DeliveryRate    float64 `json:"delivery_rate"`
}

// DailySales 單日銷售彙總
type DailySales struct {
	Day     time.Time `json:"day"`
	Orders  int64     `json:"orders"`
	Revenue float64   `json:"revenue"`
}

// SalesStats 區間銷售統計
type SalesStats struct {
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int64   `json:"order_count"`
	AverageOrder  float64 `json:"average_order"`
	Delivered     int64   `json:"delivered"`
	PendingOrders int64   `json:"pending_orders"`
}

// TopProduct 區間內銷量前幾名的商品
type TopProduct struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitsSold   int64   `json:"units_sold"`
	Revenue     float64 `json:"revenue"`
}

// PaymentStats 收款/撥款統計
type PaymentStats struct {
	PaidTotal    float64 `json:"paid_total"`
	PendingTotal float64 `json:"pending_total"`
	FailedCount  int64   `json:"failed_count"`
	PendingCount int64   `json:"pending_count"`
}

// Transaction 已付款的交易摘要
type Transaction struct {
	OrderNumber   string        `json:"order_number"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaidAt        time.Time     `json:"paid_at"`
}
