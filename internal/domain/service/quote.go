package service

import (
	"github.com/shopspring/decimal"

	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

// Quote is the priced outcome of a financing request: the preview assessment
// plus the contractual figures persisted on the order.
type Quote struct {
	Assessment              RiskAssessment
	InterestRate            decimal.Decimal // contractual, percent per year
	MonthlyPayment          decimal.Decimal
	TotalAmountWithInterest decimal.Decimal
	Status                  valueobject.OrderStatus
}

// QuoteOrder validates in, assesses it and prices it with the risk-level rate
// table and the amortized payment. Very-high risk requests return
// ErrRiskTooHigh together with the assessment that caused it.
func QuoteOrder(in RiskInput) (Quote, error) {
	if err := in.Validate(); err != nil {
		return Quote{}, err
	}

	assessment := AssessRisk(in.CustomerIncome, in.OrderAmount, in.InstallmentPeriod)
	if assessment.RiskLevel.Equal(valueobject.RiskLevelVeryHigh) {
		return Quote{Assessment: assessment}, valueobject.ErrRiskTooHigh
	}

	rate := InterestRateForRiskLevel(assessment.RiskLevel, in.InstallmentPeriod)
	monthly := MonthlyPaymentAmortized(in.OrderAmount, rate, in.InstallmentPeriod)

	return Quote{
		Assessment:              assessment,
		InterestRate:            rate,
		MonthlyPayment:          monthly,
		TotalAmountWithInterest: monthly.Mul(decimal.NewFromInt(int64(in.InstallmentPeriod))),
		Status:                  DecideStatus(assessment.RiskScore, assessment.RiskLevel),
	}, nil
}
