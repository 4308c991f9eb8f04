package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"marketplace_service/internal/order/domain"
)

// OrderRepository definition get seller order / sales info
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindBySeller(ctx context.Context, sellerID int64, q *domain.OrderQuery) ([]domain.Order, error)
	CountBySellerStatus(ctx context.Context, sellerID int64, status domain.OrderStatus) (int64, error)
	DeliveryStats(ctx context.Context, sellerID int64) (*domain.DeliveryStats, error)
	DailySales(ctx context.Context, sellerID int64, since time.Time) ([]domain.DailySales, error)
	SalesStats(ctx context.Context, sellerID int64, since time.Time) (*domain.SalesStats, error)
	TopProducts(ctx context.Context, sellerID int64, since time.Time, limit int) ([]domain.TopProduct, error)
	PaymentStats(ctx context.Context, sellerID int64) (*domain.PaymentStats, error)
	RecentTransactions(ctx context.Context, sellerID int64, limit int) ([]domain.Transaction, error)
}

type orderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository create a OrderRepository
func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &orderRepository{db: db}
}

// Create 訂單與項目在同一筆交易內寫入
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO orders
		   (order_number, buyer_id, seller_id, status, payment_status, payment_method,
		    subtotal, shipping_fee, tax, total,
		    shipping_name, shipping_phone, shipping_address, shipping_city, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id, created_at`,
		order.OrderNumber, order.BuyerID, order.SellerID, order.Status, order.PaymentStatus,
		order.PaymentMethod, order.Subtotal, order.ShippingFee, order.Tax, order.Total,
		order.ShippingName, order.ShippingPhone, order.ShippingAddress, order.ShippingCity,
		order.Notes,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			item.OrderID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity, item.Subtotal,
		).Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) FindBySeller(ctx context.Context, sellerID int64, q *domain.OrderQuery) ([]domain.Order, error) {
	queryStr := `SELECT id, order_number, buyer_id, seller_id, status, payment_status, payment_method,
	                    subtotal, shipping_fee, tax, total,
	                    shipping_name, shipping_phone, shipping_address, shipping_city,
	                    notes, tracking_number, created_at, updated_at
	             FROM orders WHERE seller_id = $1`
	params := []interface{}{sellerID}
	paramCount := 2

	if q.Status != "" {
		queryStr += fmt.Sprintf(" AND status = $%d", paramCount)
		params = append(params, q.Status)
		paramCount++
	}

	queryStr += " ORDER BY created_at DESC, id DESC"
	if q.Limit > 0 {
		queryStr += fmt.Sprintf(" LIMIT $%d OFFSET $%d", paramCount, paramCount+1)
		params = append(params, q.Limit, q.Offset)
	}

	rows, err := r.db.Query(ctx, queryStr, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.BuyerID, &o.SellerID, &o.Status,
			&o.PaymentStatus, &o.PaymentMethod, &o.Subtotal, &o.ShippingFee, &o.Tax, &o.Total,
			&o.ShippingName, &o.ShippingPhone, &o.ShippingAddress, &o.ShippingCity,
			&o.Notes, &o.TrackingNumber, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	// 一次撈齊所有項目再回填，避免 N+1 查詢
	ids := make([]int64, 0, len(orders))
	index := make(map[int64]*domain.Order, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID)
		index[orders[i].ID] = &orders[i]
	}

	itemRows, err := r.db.Query(ctx,
		`SELECT id, order_id, product_id, product_name, unit_price, quantity, subtotal
		 FROM order_items WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it domain.OrderItem
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.UnitPrice, &it.Quantity, &it.Subtotal); err != nil {
			return nil, err
		}
		if o, ok := index[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}

	return orders, itemRows.Err()
}

func (r *orderRepository) CountBySellerStatus(ctx context.Context, sellerID int64, status domain.OrderStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM orders WHERE seller_id = $1 AND status = $2",
		sellerID, status).Scan(&count)
	return count, err
}

func (r *orderRepository) DeliveryStats(ctx context.Context, sellerID int64) (*domain.DeliveryStats, error) {
	var s domain.DeliveryStats
	err := r.db.QueryRow(ctx,
		`SELECT
		   COUNT(*) FILTER (WHERE status = 'delivered'),
		   COUNT(*) FILTER (WHERE status = 'shipped'),
		   COUNT(*) FILTER (WHERE status IN ('confirmed', 'processing'))
		 FROM orders WHERE seller_id = $1`, sellerID).
		Scan(&s.Delivered, &s.Shipped, &s.PendingShipment)
	if err != nil {
		return nil, err
	}

	// 配送完成率只計入已出貨以後的訂單
	if completed := s.Delivered + s.Shipped; completed > 0 {
		s.DeliveryRate = float64(s.Delivered) / float64(completed) * 100
	}
	return &s, nil
}

func (r *orderRepository) DailySales(ctx context.Context, sellerID int64, since time.Time) ([]domain.DailySales, error) {
	rows, err := r.db.Query(ctx,
		`SELECT date_trunc('day', created_at) AS day, COUNT(*), COALESCE(SUM(total), 0)
		 FROM orders
		 WHERE seller_id = $1 AND created_at >= $2 AND status NOT IN ('cancelled', 'refunded')
		 GROUP BY day ORDER BY day`, sellerID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []domain.DailySales{}
	for rows.Next() {
		var d domain.DailySales
		if err := rows.Scan(&d.Day, &d.Orders, &d.Revenue); err != nil {
			return nil, err
		}
		sales = append(sales, d)
	}
	return sales, rows.Err()
}

func (r *orderRepository) SalesStats(ctx context.Context, sellerID int64, since time.Time) (*domain.SalesStats, error) {
	var s domain.SalesStats
	err := r.db.QueryRow(ctx,
		`SELECT
		   COALESCE(SUM(total) FILTER (WHERE status NOT IN ('cancelled', 'refunded')), 0),
		   COUNT(*) FILTER (WHERE status NOT IN ('cancelled', 'refunded')),
		   COALESCE(AVG(total) FILTER (WHERE status NOT IN ('cancelled', 'refunded')), 0),
		   COUNT(*) FILTER (WHERE status = 'delivered'),
		   COUNT(*) FILTER (WHERE status = 'pending')
		 FROM orders WHERE seller_id = $1 AND created_at >= $2`, sellerID, since).
		Scan(&s.TotalRevenue, &s.OrderCount, &s.AverageOrder, &s.Delivered, &s.PendingOrders)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *orderRepository) TopProducts(ctx context.Context, sellerID int64, since time.Time, limit int) ([]domain.TopProduct, error) {
	rows, err := r.db.Query(ctx,
		`SELECT i.product_id, i.product_name, SUM(i.quantity), SUM(i.subtotal)
		 FROM order_items i
		 JOIN orders o ON o.id = i.order_id
		 WHERE o.seller_id = $1 AND o.created_at >= $2
		   AND o.status NOT IN ('cancelled', 'refunded')
		 GROUP BY i.product_id, i.product_name
		 ORDER BY SUM(i.quantity) DESC, i.product_id
		 LIMIT $3`, sellerID, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := []domain.TopProduct{}
	for rows.Next() {
		var t domain.TopProduct
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.UnitsSold, &t.Revenue); err != nil {
			return nil, err
		}
		top = append(top, t)
	}
	return top, rows.Err()
}

func (r *orderRepository) PaymentStats(ctx context.Context, sellerID int64) (*domain.PaymentStats, error) {
	var s domain.PaymentStats
	err := r.db.QueryRow(ctx,
		`SELECT
		   COALESCE(SUM(total) FILTER (WHERE payment_status = 'paid'), 0),
		   COALESCE(SUM(total) FILTER (WHERE payment_status = 'pending'), 0),
		   COUNT(*) FILTER (WHERE payment_status = 'failed'),
		   COUNT(*) FILTER (WHERE payment_status = 'pending')
		 FROM orders WHERE seller_id = $1`, sellerID).
		Scan(&s.PaidTotal, &s.PendingTotal, &s.FailedCount, &s.PendingCount)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *orderRepository) RecentTransactions(ctx context.Context, sellerID int64, limit int) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT order_number, total, payment_method, updated_at
		 FROM orders
		 WHERE seller_id = $1 AND payment_status = 'paid'
		 ORDER BY updated_at DESC, id DESC
		 LIMIT $2`, sellerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.OrderNumber, &t.Total, &t.PaymentMethod, &t.PaidAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
