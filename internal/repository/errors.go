package repository

import (
	"fmt"

	"github.com/google/uuid"
)

// InsufficientStockError is returned when a requested quantity exceeds the
// units currently available. It carries enough detail for the API error
// payload to name the product and its remaining stock.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for product %s. Available: %d", e.ProductName, e.Available)
}

// ProductMissingError is returned from order placement when a requested
// product id does not resolve.
type ProductMissingError struct {
	ProductID uuid.UUID
}

func (e *ProductMissingError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}
