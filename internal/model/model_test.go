package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_InStock(t *testing.T) {
	assert.False(t, (&Product{StockCount: 0}).InStock())
	assert.True(t, (&Product{StockCount: 1}).InStock())
	assert.True(t, (&Product{StockCount: 100}).InStock())
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, s.Valid(), "status %q", s)
	}
	assert.False(t, OrderStatus("completed").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestCategory_Valid(t *testing.T) {
	assert.True(t, CategoryElectronics.Valid())
	assert.True(t, CategorySneakers.Valid())
	assert.True(t, Category("").Valid(), "uncategorized is allowed")
	assert.False(t, Category("gadgets").Valid())
}
