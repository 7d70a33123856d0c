package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/storefront-api/internal/model"
	"github.com/shopkit/storefront-api/internal/repository"
)

type mockReportRepo struct {
	snapshot *repository.ReportSnapshot
	calls    int
}

func (m *mockReportRepo) Snapshot(_ context.Context, _ time.Time, _, _ int) (*repository.ReportSnapshot, error) {
	m.calls++
	return m.snapshot, nil
}

func TestReportService_Dashboard(t *testing.T) {
	productID := uuid.New()
	repo := &mockReportRepo{snapshot: &repository.ReportSnapshot{
		TotalOrders:   12,
		RecentOrders:  3,
		TotalProducts: 40,
		OutOfStock:    2,
		TotalRevenue:  decimal.RequireFromString("1234.00"),
		RecentRevenue: decimal.RequireFromString("99.50"),
		TopProducts: []repository.TopProductRow{
			{Product: model.Product{ID: productID, Name: "Widget"}, OrderCount: 7},
		},
		LatestOrders: []model.Order{
			{ID: uuid.New(), Status: model.OrderStatusDelivered,
				TotalAmount: decimal.NewNullDecimal(decimal.RequireFromString("99.50"))},
		},
	}}
	svc := NewReportService(repo, nil, time.Minute)

	resp, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, resp.TotalOrders)
	assert.Equal(t, 3, resp.RecentOrders)
	assert.Equal(t, 40, resp.TotalProducts)
	assert.Equal(t, 2, resp.OutOfStock)
	assert.True(t, resp.TotalRevenue.Equal(decimal.RequireFromString("1234.00")))
	require.Len(t, resp.TopProducts, 1)
	assert.Equal(t, "Widget", resp.TopProducts[0].Name)
	assert.Equal(t, 7, resp.TopProducts[0].OrderCount)
	require.Len(t, resp.LatestOrders, 1)
	assert.Equal(t, "delivered", resp.LatestOrders[0].Status)
	assert.Equal(t, 1, repo.calls)
}
