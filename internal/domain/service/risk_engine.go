package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Risk engine – debt-to-income scoring of a BNPL request
// ---------------------------------------------------------------------------

// InvalidIncomeMessage is the message carried by the invalid-income sentinel.
const InvalidIncomeMessage = "invalid income"

const (
	longTermMonths  = 12
	extraLongMonths = 18
	termSurcharge   = 5
	maxRiskScore    = 100
)

var (
	previewBaseRate = decimal.RequireFromString("0.035")
	previewRateStep = decimal.RequireFromString("0.005")
	termBlockMonths = decimal.NewFromInt(3)
	hundred         = decimal.NewFromInt(100)
)

// RiskInput is a financing request as received from a merchant.
type RiskInput struct {
	CustomerIncome    decimal.Decimal
	OrderAmount       decimal.Decimal
	InstallmentPeriod int
}

// Validate applies the checks callers must run before AssessRisk.
func (in RiskInput) Validate() error {
	if !in.CustomerIncome.IsPositive() {
		return fmt.Errorf("%w: customer income must be positive", valueobject.ErrInvalidInput)
	}
	if !in.OrderAmount.IsPositive() {
		return fmt.Errorf("%w: order amount must be positive", valueobject.ErrInvalidInput)
	}
	if in.InstallmentPeriod < valueobject.MinInstallmentPeriod {
		return valueobject.ErrInvalidInstallmentPeriod
	}
	return nil
}

// RiskAssessment is the outcome of AssessRisk. Money fields are rounded to
// cents; DebtToIncomeRatio and AdjustedInterestRate are percentages with two
// decimals.
type RiskAssessment struct {
	RiskLevel               valueobject.RiskLevel
	MonthlyPayment          decimal.Decimal
	TotalAmountWithInterest decimal.Decimal
	AdjustedInterestRate    decimal.Decimal
	Message                 string
	DebtToIncomeRatio       float64
	RiskScore               int
}

// IsUnusable reports whether the assessment is the maximal-risk sentinel
// produced for input the engine cannot score.
func (a RiskAssessment) IsUnusable() bool {
	return math.IsInf(a.DebtToIncomeRatio, 1)
}

// AssessRisk scores a request from its monthly debt-to-income ratio using the
// simplified flat-interest preview model. It is pure and safe for concurrent use.
func AssessRisk(income, amount decimal.Decimal, period int) RiskAssessment {
	if !income.IsPositive() {
		return unusable(InvalidIncomeMessage)
	}
	if period <= 0 {
		return unusable("invalid installment period")
	}

	rate := PreviewInterestRate(period)
	total := amount.Add(amount.Mul(rate))
	monthly := total.Div(decimal.NewFromInt(int64(period)))

	ratio := monthly.Div(income).Mul(hundred)

	score := baseScoreForRatio(ratio)
	if period > longTermMonths {
		score += termSurcharge
	}
	if period > extraLongMonths {
		score += termSurcharge
	}
	score = min(maxRiskScore, max(0, score))

	level := valueobject.RiskLevelFromScore(score)

	return RiskAssessment{
		RiskScore:               score,
		RiskLevel:               level,
		DebtToIncomeRatio:       ratio.Round(2).InexactFloat64(),
		MonthlyPayment:          monthly.Round(2),
		TotalAmountWithInterest: total.Round(2),
		AdjustedInterestRate:    rate.Mul(hundred).Round(2),
		Message:                 riskMessage(level, ratio),
	}
}

// PreviewInterestRate is the term-only flat rate of the preview model as a
// fraction: 3.5% for three months plus 0.5 points per further three months,
// pro rata.
func PreviewInterestRate(period int) decimal.Decimal {
	if period <= valueobject.MinInstallmentPeriod {
		return previewBaseRate
	}
	blocks := decimal.NewFromInt(int64(period - valueobject.MinInstallmentPeriod)).Div(termBlockMonths)
	return previewBaseRate.Add(blocks.Mul(previewRateStep))
}

// baseScoreForRatio buckets the unrounded DTI percentage. The bracket level is
// discarded; the final level is derived from the adjusted score.
func baseScoreForRatio(ratio decimal.Decimal) int {
	switch {
	case ratio.LessThanOrEqual(decimal.NewFromInt(10)):
		return 20
	case ratio.LessThanOrEqual(decimal.NewFromInt(20)):
		return 40
	case ratio.LessThanOrEqual(decimal.NewFromInt(30)):
		return 60
	case ratio.LessThanOrEqual(decimal.NewFromInt(40)):
		return 75
	case ratio.LessThanOrEqual(decimal.NewFromInt(50)):
		return 90
	default:
		return 100
	}
}

func riskMessage(level valueobject.RiskLevel, ratio decimal.Decimal) string {
	msg := fmt.Sprintf("%s risk. Debt-to-income ratio: %s%%", level.Label(), ratio.StringFixed(1))
	if level.Equal(valueobject.RiskLevelVeryHigh) {
		msg += ". Not recommended."
	}
	return msg
}

func unusable(message string) RiskAssessment {
	return RiskAssessment{
		RiskScore:         maxRiskScore,
		RiskLevel:         valueobject.RiskLevelVeryHigh,
		DebtToIncomeRatio: math.Inf(1),
		Message:           message,
	}
}
