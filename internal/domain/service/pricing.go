package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

// Contractual rate for a three-month term, by risk level.
var contractBaseRates = map[valueobject.RiskLevel]decimal.Decimal{
	valueobject.RiskLevelLow:      decimal.RequireFromString("0.025"),
	valueobject.RiskLevelMedium:   decimal.RequireFromString("0.035"),
	valueobject.RiskLevelHigh:     decimal.RequireFromString("0.05"),
	valueobject.RiskLevelVeryHigh: decimal.RequireFromString("0.08"),
}

var contractRateStep = decimal.RequireFromString("0.003")

// InterestRateForRiskLevel returns the contractual rate stored on an order, as
// a percentage rounded to two decimals. Unknown levels price as medium.
//
// This table is independent of PreviewInterestRate and is applied after the
// risk level is known.
func InterestRateForRiskLevel(level valueobject.RiskLevel, period int) decimal.Decimal {
	rate, ok := contractBaseRates[level]
	if !ok {
		rate = contractBaseRates[valueobject.RiskLevelMedium]
	}
	if period > valueobject.MinInstallmentPeriod {
		blocks := decimal.NewFromInt(int64(period - valueobject.MinInstallmentPeriod)).Div(termBlockMonths)
		rate = rate.Add(blocks.Mul(contractRateStep))
	}
	return rate.Mul(hundred).Round(2)
}

// MonthlyPaymentAmortized computes the fixed annuity payment
//
//	r       = annualRatePercent / 100 / 12
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// rounded to cents. A zero rate splits the principal evenly. Non-positive
// periods yield zero.
func MonthlyPaymentAmortized(principal, annualRatePercent decimal.Decimal, period int) decimal.Decimal {
	if period <= 0 {
		return decimal.Zero
	}

	monthlyRate := annualRatePercent.InexactFloat64() / 100 / 12
	if monthlyRate == 0 {
		return principal.Div(decimal.NewFromInt(int64(period))).Round(2)
	}

	factor := math.Pow(1+monthlyRate, float64(period))
	payment := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(payment).Round(2)
}
