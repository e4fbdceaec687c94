package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductStatusActive is the only product status that can be ordered.
const ProductStatusActive = "active"

// Product is the catalogue view needed to reserve stock for an order item.
type Product struct {
	ID            string
	Name          string
	Status        string
	Price         decimal.Decimal
	StockQuantity int
}

// Reserve checks that quantity units can be sold and returns the product with
// its stock reduced.
func (p Product) Reserve(quantity int) (Product, error) {
	if p.Status != ProductStatusActive {
		return p, fmt.Errorf("product %s: %w", p.ID, ErrProductUnavailable)
	}
	if p.StockQuantity < quantity {
		return p, fmt.Errorf("product %s has %d left: %w", p.ID, p.StockQuantity, ErrInsufficientStock)
	}
	next := p
	next.StockQuantity -= quantity
	return next, nil
}
