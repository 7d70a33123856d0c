package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopkit/storefront-api/internal/model"
)

// --- Auth ---

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

// --- Catalog ---

type CreateProductRequest struct {
	Name           string          `json:"name" binding:"required"`
	Description    *string         `json:"description"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	Category       string          `json:"category"`
	Thumbnail      *string         `json:"thumbnail" binding:"omitempty,url"`
	StockCount     int             `json:"stock_count" binding:"min=0"`
	Specifications model.Document  `json:"specifications"`
	Images         []string        `json:"images"`
}

type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Price          *decimal.Decimal `json:"price"`
	Category       *string          `json:"category"`
	Thumbnail      *string          `json:"thumbnail"`
	StockCount     *int             `json:"stock_count" binding:"omitempty,min=0"`
	Specifications model.Document   `json:"specifications"`
	Images         []string         `json:"images"`
}

type ListProductsRequest struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	Limit    int    `form:"limit,default=20" binding:"min=1,max=100"`
	Category string `form:"category"`
	Search   string `form:"search"`
	Ordering string `form:"ordering,default=-created_at"`
}

type SearchProductsRequest struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	Limit    int    `form:"limit,default=20" binding:"min=1,max=100"`
	Query    string `form:"q"`
	Category string `form:"category"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
}

type ProductSummary struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Category   string          `json:"category,omitempty"`
	Thumbnail  *string         `json:"thumbnail"`
	InStock    bool            `json:"in_stock"`
	StockCount int             `json:"stock_count"`
}

type ProductListResponse struct {
	Products []ProductSummary `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

type ReviewResponse struct {
	User    string    `json:"user"`
	Rating  int       `json:"rating"`
	Comment *string   `json:"comment"`
	Date    time.Time `json:"date"`
}

type ProductDetailResponse struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Description    *string          `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	Category       string           `json:"category,omitempty"`
	Specifications model.Document   `json:"specifications"`
	Images         []string         `json:"images"`
	StockCount     int              `json:"stock_count"`
	Rating         float64          `json:"rating"`
	Reviews        []ReviewResponse `json:"reviews"`
}

type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment"`
}

// --- Orders ---

type OrderLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Products        []OrderLineRequest `json:"products"`
	ShippingAddress model.Document     `json:"shipping_address"`
}

type CreateOrderResponse struct {
	OrderID  uuid.UUID `json:"order_id"`
	Status   string    `json:"status"`
	Response string    `json:"response"`
}

type TrackingInfo struct {
	Carrier           *string    `json:"carrier"`
	TrackingNumber    *string    `json:"tracking_number"`
	TrackingURL       string     `json:"tracking_url"`
	CurrentLocation   string     `json:"current_location"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

type OrderItemView struct {
	ProductID *uuid.UUID      `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderDetails struct {
	Products        []OrderItemView     `json:"products"`
	TotalAmount     decimal.NullDecimal `json:"total_amount"`
	ShippingAddress model.Document      `json:"shipping_address"`
	OrderDate       time.Time           `json:"order_date"`
}

type OrderStatusResponse struct {
	OrderID      uuid.UUID    `json:"order_id"`
	Status       string       `json:"status"`
	TrackingInfo TrackingInfo `json:"tracking_info"`
	OrderDetails OrderDetails `json:"order_details"`
}

type OrderPaymentView struct {
	OrderID     uuid.UUID           `json:"order_id"`
	Status      string              `json:"status"`
	TotalAmount decimal.NullDecimal `json:"total_amount"`
	PaymentLink string              `json:"payment_link"`
}

// --- Reporting ---

type TopProduct struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	OrderCount int       `json:"order_count"`
}

type RecentOrder struct {
	ID          uuid.UUID           `json:"id"`
	Status      string              `json:"status"`
	TotalAmount decimal.NullDecimal `json:"total_amount"`
	CreatedAt   time.Time           `json:"created_at"`
}

type DashboardResponse struct {
	TotalOrders   int             `json:"total_orders"`
	RecentOrders  int             `json:"recent_orders"`
	TotalProducts int             `json:"total_products"`
	OutOfStock    int             `json:"out_of_stock"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	RecentRevenue decimal.Decimal `json:"recent_revenue"`
	TopProducts   []TopProduct    `json:"top_products"`
	LatestOrders  []RecentOrder   `json:"recent_orders_list"`
}
