package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// AssertDecimal compares a decimal against its string form, ignoring trailing zeros.
func AssertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) bool {
	t.Helper()
	want := decimal.RequireFromString(expected)
	if !want.Equal(actual) {
		return assert.Fail(t, "decimal mismatch: expected "+want.String()+", got "+actual.String(), msgAndArgs...)
	}
	return true
}

// AssertDecimalWithin checks |expected-actual| <= tolerance.
func AssertDecimalWithin(t *testing.T, expected, actual, tolerance decimal.Decimal, msgAndArgs ...any) bool {
	t.Helper()
	if expected.Sub(actual).Abs().GreaterThan(tolerance) {
		return assert.Fail(t, "decimal outside tolerance: expected "+expected.String()+" ± "+tolerance.String()+", got "+actual.String(), msgAndArgs...)
	}
	return true
}
