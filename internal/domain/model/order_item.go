package model

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

// OrderItem is one product line of an order.
type OrderItem struct {
	ID        string
	ProductID string
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Quantity  int
}

// NewOrderItem validates a line and computes its subtotal.
func NewOrderItem(productID string, quantity int, unitPrice decimal.Decimal) (OrderItem, error) {
	if productID == "" {
		return OrderItem{}, fmt.Errorf("%w: item product ID is required", valueobject.ErrInvalidInput)
	}
	if quantity <= 0 {
		return OrderItem{}, fmt.Errorf("%w: item quantity must be positive", valueobject.ErrInvalidInput)
	}
	if !unitPrice.IsPositive() {
		return OrderItem{}, fmt.Errorf("%w: item unit price must be positive", valueobject.ErrInvalidInput)
	}
	return OrderItem{
		ID:        uuid.New().String(),
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// ItemsTotal sums the subtotals of items.
func ItemsTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}
