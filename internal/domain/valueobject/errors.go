package valueobject

import (
	"errors"
	"fmt"
)

// MinInstallmentPeriod is the shortest financing term accepted, in months.
const MinInstallmentPeriod = 3

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrInvalidInput marks caller mistakes; wrap it to add detail.
	ErrInvalidInput = errors.New("invalid input")

	ErrInvalidInstallmentPeriod = fmt.Errorf("%w: installment period must be at least %d months", ErrInvalidInput, MinInstallmentPeriod)

	// ErrRiskTooHigh blocks submission of a very_high risk order.
	ErrRiskTooHigh = errors.New("risk level too high: order not accepted")
)
