package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rangdog/hanbin/internal/domain/service"
)

// InstallmentEntry is one monthly payment of a financed order.
type InstallmentEntry struct {
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	Period           int
}

// GenerateInstallmentSchedule splits principal into period fixed payments at
// annualRatePercent, the first due one month after start. Due dates keep the
// start day, clamped to the end of shorter months. The payment is the
// one MonthlyPaymentAmortized returns; the last installment absorbs rounding
// so the balance ends at zero.
func GenerateInstallmentSchedule(
	principal, annualRatePercent decimal.Decimal,
	period int,
	start time.Time,
) []InstallmentEntry {
	if period <= 0 || !principal.IsPositive() {
		return nil
	}

	payment := service.MonthlyPaymentAmortized(principal, annualRatePercent, period)
	monthlyRate := annualRatePercent.Div(decimal.NewFromInt(1200))

	schedule := make([]InstallmentEntry, 0, period)
	remaining := principal

	for n := 1; n <= period; n++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		principalPart := payment.Sub(interest)

		if n == period || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}

		remaining = remaining.Sub(principalPart)

		schedule = append(schedule, InstallmentEntry{
			Period:           n,
			DueDate:          addMonthsClamped(start, n),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}

	return schedule
}

// addMonthsClamped adds months to t, keeping its day of month unless the
// target month is shorter.
func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(t.Day(), lastDay)-1)
}
