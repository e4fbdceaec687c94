package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

func TestProductReserve(t *testing.T) {
	p := Product{ID: "p-1", Status: ProductStatusActive, StockQuantity: 5}

	next, err := p.Reserve(5)
	require.NoError(t, err)
	assert.Equal(t, 0, next.StockQuantity)
	assert.Equal(t, 5, p.StockQuantity)

	_, err = p.Reserve(6)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	inactive := Product{ID: "p-2", Status: "discontinued", StockQuantity: 10}
	_, err = inactive.Reserve(1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestCompanyCanOrder(t *testing.T) {
	assert.NoError(t, Company{ID: "c"}.CanOrder())
	assert.ErrorIs(t, Company{ID: "c", IsLocked: true}.CanOrder(), ErrCompanyLocked)
}

func TestNewOrderItem(t *testing.T) {
	it, err := NewOrderItem("p-1", 4, d("12500.50"))
	require.NoError(t, err)
	assert.NotEmpty(t, it.ID)
	assert.True(t, d("50002").Equal(it.Subtotal))

	_, err = NewOrderItem("", 1, d("1"))
	assert.ErrorIs(t, err, valueobject.ErrInvalidInput)
	_, err = NewOrderItem("p-1", 0, d("1"))
	assert.ErrorIs(t, err, valueobject.ErrInvalidInput)
	_, err = NewOrderItem("p-1", 1, d("0"))
	assert.ErrorIs(t, err, valueobject.ErrInvalidInput)
}
