package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetOrderByGatewayReference(ctx context.Context, reference string) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error)
	ListOrders(ctx context.Context, page, size int) ([]*models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, user_id, total_amount, status, gateway_order_id, gateway_transaction_id, created_at, updated_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}

	err := row.Scan(&order.ID, &order.UserID, &order.TotalAmount, &order.Status,
		&order.GatewayOrderID, &order.GatewayTransactionID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return order, nil
}

// CreateOrder inserts the order, its gateway reference and all of its items
// atomically. Either everything lands or nothing does.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return withTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		query := `
			INSERT INTO orders (id, user_id, total_amount, status, gateway_order_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING created_at, updated_at
		`

		err := tx.QueryRowContext(dbCtx, query, order.ID, order.UserID, order.TotalAmount, order.Status, order.GatewayOrderID).Scan(&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return mapPQError("failed to insert order", err)
		}

		itemQuery := `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
		`

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID

			if _, err := tx.ExecContext(dbCtx, itemQuery, item.ID, order.ID, item.ProductID, item.ProductName, item.Quantity, item.Price); err != nil {
				return mapPQError("failed to insert an order item", err)
			}
		}

		return nil
	})
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapPQError("failed to get the order", err)
	}

	if err := r.attachItems(dbCtx, []*models.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) GetOrderByGatewayReference(ctx context.Context, reference string) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE gateway_order_id = $1`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, reference))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapPQError("failed to get the order by gateway reference", err)
	}

	return order, nil
}

// ListOrdersByUser returns the user's orders newest first.
func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, mapPQError("failed to count orders", err)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	orders, err := r.queryOrders(dbCtx, query, userID, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, page, size int) ([]*models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, mapPQError("failed to count orders", err)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	orders, err := r.queryOrders(dbCtx, query, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateOrderStatus is the back-office override. Notification handling never
// goes through here, it uses the guarded update in the transaction repository.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + orderColumns

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapPQError("failed to update order status", err)
	}

	return order, nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*models.Order, error) {

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapPQError("failed to list orders", err)
	}
	defer rows.Close()

	orders := []*models.Order{}

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan the orders: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over orders: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// attachItems loads the items of all orders with a single query.
func (r *orderRepository) attachItems(ctx context.Context, orders []*models.Order) error {

	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	byID := make(map[uuid.UUID]*models.Order, len(orders))

	for i, o := range orders {
		ids[i] = o.ID.String()
		byID[o.ID] = o
		o.Items = []models.OrderItem{}
	}

	query := `
		SELECT id, order_id, product_id, product_name, quantity, price, created_at
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return mapPQError("failed to get the order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem

		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price, &item.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}

		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating over order items: %w", err)
	}

	return nil
}
