package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is a merchant account that places financed orders. Admins can lock
// an account to stop new orders.
type Company struct {
	CreatedAt time.Time
	ID        string
	Name      string
	IsLocked  bool
}

// CanOrder returns ErrCompanyLocked for locked accounts.
func (c Company) CanOrder() error {
	if c.IsLocked {
		return ErrCompanyLocked
	}
	return nil
}

// CompanySummary is a company with its settled order totals. Orders count as
// settled once paid, shipping or completed.
type CompanySummary struct {
	TotalSpent decimal.Decimal
	Company
	OrderCount int
}
