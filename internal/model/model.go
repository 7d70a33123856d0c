package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Document is a free-form JSON object column (product specifications,
// order shipping addresses).
type Document map[string]any

type User struct {
	ID        uuid.UUID
	Email     string
	Password  string
	Name      string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID             uuid.UUID
	Name           string
	Description    *string
	Price          decimal.Decimal
	Category       Category
	Thumbnail      *string
	StockCount     int
	Specifications Document
	Images         []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InStock reports whether any units are available for sale.
func (p *Product) InStock() bool {
	return p.StockCount > 0
}

type Review struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    *uuid.UUID
	UserName  string
	Rating    int
	Comment   *string
	CreatedAt time.Time
}

type Order struct {
	ID                uuid.UUID
	UserID            *uuid.UUID
	Status            OrderStatus
	TotalAmount       decimal.NullDecimal
	ShippingAddress   Document
	PaymentMethodID   *string
	TrackingNumber    *string
	Carrier           *string
	EstimatedDelivery *time.Time
	Items             []OrderItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OrderItem captures a line at order time. Price is the line total
// (unit price multiplied by quantity), not the unit price.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   *uuid.UUID
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderEvent struct {
	OrderID uuid.UUID `json:"order_id"`
	Status  string    `json:"status"`
}
