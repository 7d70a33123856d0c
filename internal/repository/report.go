package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/shopkit/storefront-api/internal/model"
)

// ReportSnapshot is the raw aggregate set behind the operator dashboard.
// Revenue only counts delivered orders.
type ReportSnapshot struct {
	TotalOrders   int
	RecentOrders  int
	TotalProducts int
	OutOfStock    int
	TotalRevenue  decimal.Decimal
	RecentRevenue decimal.Decimal
	TopProducts   []TopProductRow
	LatestOrders  []model.Order
}

type TopProductRow struct {
	Product    model.Product
	OrderCount int
}

type ReportRepository interface {
	Snapshot(ctx context.Context, since time.Time, topN, latestN int) (*ReportSnapshot, error)
}

type pgReportRepo struct{ pool *pgxpool.Pool }

func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &pgReportRepo{pool: pool}
}

func (r *pgReportRepo) Snapshot(ctx context.Context, since time.Time, topN, latestN int) (*ReportSnapshot, error) {
	s := &ReportSnapshot{}

	counts := []struct {
		query string
		args  []any
		dest  *int
	}{
		{`SELECT COUNT(*) FROM orders`, nil, &s.TotalOrders},
		{`SELECT COUNT(*) FROM orders WHERE created_at >= $1`, []any{since}, &s.RecentOrders},
		{`SELECT COUNT(*) FROM products`, nil, &s.TotalProducts},
		{`SELECT COUNT(*) FROM products WHERE stock_count = 0`, nil, &s.OutOfStock},
	}
	for _, c := range counts {
		if err := r.pool.QueryRow(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("report count: %w", err)
		}
	}

	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = $1`,
		string(model.OrderStatusDelivered),
	).Scan(&s.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("total revenue: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = $1 AND created_at >= $2`,
		string(model.OrderStatusDelivered), since,
	).Scan(&s.RecentRevenue)
	if err != nil {
		return nil, fmt.Errorf("recent revenue: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.name, COUNT(oi.id) AS order_count
		 FROM products p
		 LEFT JOIN order_items oi ON oi.product_id = p.id
		 GROUP BY p.id, p.name
		 ORDER BY order_count DESC, p.name
		 LIMIT $1`, topN,
	)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var row TopProductRow
		if err := rows.Scan(&row.Product.ID, &row.Product.Name, &row.OrderCount); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		s.TopProducts = append(s.TopProducts, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	orderRows, err := r.pool.Query(ctx,
		`SELECT id, status, total_amount, created_at FROM orders
		 ORDER BY created_at DESC LIMIT $1`, latestN,
	)
	if err != nil {
		return nil, fmt.Errorf("latest orders: %w", err)
	}
	defer orderRows.Close()
	for orderRows.Next() {
		var o model.Order
		if err := orderRows.Scan(&o.ID, &o.Status, &o.TotalAmount, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan latest order: %w", err)
		}
		s.LatestOrders = append(s.LatestOrders, o)
	}
	return s, orderRows.Err()
}
