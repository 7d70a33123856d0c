package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/storefront-api/internal/dto"
	"github.com/shopkit/storefront-api/internal/model"
	"github.com/shopkit/storefront-api/internal/repository"
)

// mockOrderRepo emulates the repository contract: items and stock decrements
// are applied atomically against the backing product map, and the whole
// placement is rejected when any decrement would go negative.
type mockOrderRepo struct {
	products *mockProductRepo
	orders   map[uuid.UUID]*model.Order
}

func newMockOrderRepo(products *mockProductRepo) *mockOrderRepo {
	return &mockOrderRepo{products: products, orders: make(map[uuid.UUID]*model.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.Order) error {
	for _, item := range order.Items {
		p, ok := m.products.products[*item.ProductID]
		if !ok {
			return &repository.ProductMissingError{ProductID: *item.ProductID}
		}
		if p.StockCount < item.Quantity {
			return &repository.InsufficientStockError{
				ProductID: p.ID, ProductName: p.Name, Available: p.StockCount,
			}
		}
	}
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
		m.products.products[*order.Items[i].ProductID].StockCount -= order.Items[i].Quantity
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	return m.orders[id], nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.OrderStatus) error {
	if o, ok := m.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func newTestOrderService(products *mockProductRepo) (*OrderService, *mockOrderRepo) {
	orders := newMockOrderRepo(products)
	return NewOrderService(orders, products, nil, nil, "http://localhost:8080"), orders
}

func TestOrderService_Place_EmptyLines(t *testing.T) {
	svc, orders := newTestOrderService(newMockProductRepo())

	_, err := svc.Place(context.Background(), nil, dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, ErrNoProducts)
	assert.Empty(t, orders.orders)
}

func TestOrderService_Place_ComputesLineAndTotal(t *testing.T) {
	products := newMockProductRepo()
	p := products.add("Widget", "10.00", 5)
	svc, orders := newTestOrderService(products)

	resp, err := svc.Place(context.Background(), nil, dto.CreateOrderRequest{
		Products: []dto.OrderLineRequest{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Contains(t, resp.Response, "/api/order/"+resp.OrderID.String())

	order := orders.orders[resp.OrderID]
	require.NotNil(t, order)
	require.True(t, order.TotalAmount.Valid)
	assert.True(t, order.TotalAmount.Decimal.Equal(decimal.RequireFromString("20.00")),
		"total = %s", order.TotalAmount.Decimal)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("20.00")),
		"line price = %s", order.Items[0].Price)
	assert.Equal(t, 3, products.products[p.ID].StockCount)
}

func TestOrderService_Place_InsufficientStock(t *testing.T) {
	products := newMockProductRepo()
	p := products.add("Scarce", "10.00", 1)
	svc, orders := newTestOrderService(products)

	_, err := svc.Place(context.Background(), nil, dto.CreateOrderRequest{
		Products: []dto.OrderLineRequest{{ProductID: p.ID, Quantity: 2}},
	})
	var stockErr *repository.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Scarce", stockErr.ProductName)
	assert.Equal(t, 1, stockErr.Available)
	assert.Contains(t, stockErr.Error(), "Scarce")
	assert.Contains(t, stockErr.Error(), "Available: 1")

	assert.Empty(t, orders.orders)
	assert.Equal(t, 1, products.products[p.ID].StockCount)
}

func TestOrderService_Place_UnknownProduct(t *testing.T) {
	svc, orders := newTestOrderService(newMockProductRepo())

	missing := uuid.New()
	_, err := svc.Place(context.Background(), nil, dto.CreateOrderRequest{
		Products: []dto.OrderLineRequest{{ProductID: missing, Quantity: 1}},
	})
	var missingErr *repository.ProductMissingError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, missing, missingErr.ProductID)
	assert.Empty(t, orders.orders)
}

func TestOrderService_GetStatus(t *testing.T) {
	products := newMockProductRepo()
	svc, orders := newTestOrderService(products)

	tracking := "TRK-123"
	carrier := "UPS"
	orderID := uuid.New()
	productID := uuid.New()
	orders.orders[orderID] = &model.Order{
		ID:             orderID,
		Status:         model.OrderStatusShipped,
		TotalAmount:    decimal.NewNullDecimal(decimal.RequireFromString("42.50")),
		TrackingNumber: &tracking,
		Carrier:        &carrier,
		Items: []model.OrderItem{
			{ProductID: &productID, ProductName: "Widget", Quantity: 1, Price: decimal.RequireFromString("42.50")},
		},
		CreatedAt: time.Now(),
	}

	resp, err := svc.GetStatus(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, "shipped", resp.Status)
	assert.Equal(t, "https://tracking.example.com/TRK-123", resp.TrackingInfo.TrackingURL)
	assert.Equal(t, "In Transit", resp.TrackingInfo.CurrentLocation)
	require.Len(t, resp.OrderDetails.Products, 1)
	assert.Equal(t, "Widget", resp.OrderDetails.Products[0].Name)
}

func TestOrderService_GetStatus_NotFound(t *testing.T) {
	svc, _ := newTestOrderService(newMockProductRepo())
	_, err := svc.GetStatus(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_CompletePayment(t *testing.T) {
	products := newMockProductRepo()
	p := products.add("Widget", "10.00", 5)
	svc, orders := newTestOrderService(products)

	resp, err := svc.Place(context.Background(), nil, dto.CreateOrderRequest{
		Products: []dto.OrderLineRequest{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.CompletePayment(context.Background(), resp.OrderID))
	assert.Equal(t, model.OrderStatusConfirmed, orders.orders[resp.OrderID].Status)

	assert.ErrorIs(t, svc.CompletePayment(context.Background(), uuid.New()), ErrOrderNotFound)
}
