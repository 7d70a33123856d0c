package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopkit/storefront-api/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
}

type pgOrderRepo struct{ pool *pgxpool.Pool }

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &pgOrderRepo{pool: pool}
}

// Create persists the order header, its items, and the matching stock
// decrements inside a single transaction. Any failure rolls the whole
// placement back: no order, no items, no decrement survives.
//
// The decrement is conditional (stock_count >= quantity) so that two
// placements racing on the same product cannot oversell: the slower one
// fails here and aborts cleanly.
func (r *pgOrderRepo) Create(ctx context.Context, order *model.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order.ID = uuid.New()
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (id, user_id, status, total_amount, shipping_address, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING created_at, updated_at`,
		order.ID, order.UserID, string(order.Status), order.TotalAmount, order.ShippingAddress,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.ID = uuid.New()
		item.OrderID = order.ID

		ct, err := tx.Exec(ctx,
			`UPDATE products SET stock_count = stock_count - $2, updated_at = NOW()
			 WHERE id = $1 AND stock_count >= $2`,
			item.ProductID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return r.stockFailure(ctx, tx, *item.ProductID)
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (id, order_id, product_id, quantity, price, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING created_at, updated_at`,
			item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price,
		).Scan(&item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// stockFailure distinguishes a vanished product from an insufficient stock
// level so the caller can report which it was.
func (r *pgOrderRepo) stockFailure(ctx context.Context, tx pgx.Tx, productID uuid.UUID) error {
	var name string
	var stock int
	err := tx.QueryRow(ctx,
		`SELECT name, stock_count FROM products WHERE id = $1`, productID,
	).Scan(&name, &stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return &ProductMissingError{ProductID: productID}
	}
	if err != nil {
		return fmt.Errorf("inspect stock: %w", err)
	}
	return &InsufficientStockError{ProductID: productID, ProductName: name, Available: stock}
}

func (r *pgOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order := &model.Order{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, status, total_amount, shipping_address, payment_method_id,
				tracking_number, carrier, estimated_delivery, created_at, updated_at
		 FROM orders WHERE id = $1`, id,
	).Scan(
		&order.ID, &order.UserID, &order.Status, &order.TotalAmount, &order.ShippingAddress,
		&order.PaymentMethodID, &order.TrackingNumber, &order.Carrier,
		&order.EstimatedDelivery, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT oi.id, oi.product_id, COALESCE(p.name, 'Unknown Product'), oi.quantity, oi.price,
				oi.created_at, oi.updated_at
		 FROM order_items oi
		 LEFT JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id = $1
		 ORDER BY oi.created_at`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity,
			&item.Price, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		item.OrderID = order.ID
		order.Items = append(order.Items, item)
	}
	return order, rows.Err()
}

func (r *pgOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status),
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
