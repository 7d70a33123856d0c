package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/shopkit/storefront-api/internal/dto"
	"github.com/shopkit/storefront-api/internal/events"
	"github.com/shopkit/storefront-api/internal/model"
	"github.com/shopkit/storefront-api/internal/repository"
)

var (
	ErrNoProducts    = errors.New("at least one product is required")
	ErrOrderNotFound = errors.New("order not found")
)

const trackingURLTemplate = "https://tracking.example.com/%s"

type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	publisher   *events.Publisher
	redisClient *redis.Client
	baseURL     string
}

func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, publisher *events.Publisher, redisClient *redis.Client, baseURL string) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
		redisClient: redisClient,
		baseURL:     baseURL,
	}
}

// Place validates the requested lines, captures each line price (unit price
// times quantity) and persists order, items and stock decrements atomically.
// On any failure nothing is left behind: the repository rolls the whole
// placement back, stock included.
func (s *OrderService) Place(ctx context.Context, userID *uuid.UUID, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if len(req.Products) == 0 {
		return nil, ErrNoProducts
	}

	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(req.Products))
	for _, line := range req.Products {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve product: %w", err)
		}
		if product == nil {
			return nil, &repository.ProductMissingError{ProductID: line.ProductID}
		}
		if product.StockCount < line.Quantity {
			return nil, &repository.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.StockCount,
			}
		}

		linePrice := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(linePrice)
		productID := line.ProductID
		items = append(items, model.OrderItem{
			ProductID:   &productID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       linePrice,
		})
	}

	order := &model.Order{
		UserID:          userID,
		Status:          model.OrderStatusPending,
		TotalAmount:     decimal.NullDecimal{Decimal: total, Valid: true},
		ShippingAddress: req.ShippingAddress,
		Items:           items,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.OrderPlaced, order)
	invalidateDashboard(ctx, s.redisClient)

	return &dto.CreateOrderResponse{
		OrderID:  order.ID,
		Status:   string(order.Status),
		Response: fmt.Sprintf("Make Payment at %s/api/order/%s", s.baseURL, order.ID),
	}, nil
}

func (s *OrderService) GetStatus(ctx context.Context, orderID uuid.UUID) (*dto.OrderStatusResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	trackingNumber := ""
	if order.TrackingNumber != nil {
		trackingNumber = *order.TrackingNumber
	}

	products := make([]dto.OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		products = append(products, dto.OrderItemView{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return &dto.OrderStatusResponse{
		OrderID: order.ID,
		Status:  string(order.Status),
		TrackingInfo: dto.TrackingInfo{
			Carrier:           order.Carrier,
			TrackingNumber:    order.TrackingNumber,
			TrackingURL:       fmt.Sprintf(trackingURLTemplate, trackingNumber),
			CurrentLocation:   "In Transit",
			EstimatedDelivery: order.EstimatedDelivery,
		},
		OrderDetails: dto.OrderDetails{
			Products:        products,
			TotalAmount:     order.TotalAmount,
			ShippingAddress: order.ShippingAddress,
			OrderDate:       order.CreatedAt,
		},
	}, nil
}

// PaymentView backs the human-facing order page with its payment link.
func (s *OrderService) PaymentView(ctx context.Context, orderID uuid.UUID) (*dto.OrderPaymentView, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return &dto.OrderPaymentView{
		OrderID:     order.ID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		PaymentLink: fmt.Sprintf("%s/pay/%s", s.baseURL, order.ID),
	}, nil
}

// CompletePayment simulates a successful payment: the order moves from
// pending to confirmed and a payment.completed event goes out.
func (s *OrderService) CompletePayment(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return ErrOrderNotFound
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusConfirmed); err != nil {
		return fmt.Errorf("confirm order: %w", err)
	}
	order.Status = model.OrderStatusConfirmed

	s.publisher.Publish(ctx, events.PaymentCompleted, order)
	invalidateDashboard(ctx, s.redisClient)
	return nil
}
