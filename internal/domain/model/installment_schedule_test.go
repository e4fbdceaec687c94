package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rangdog/hanbin/internal/domain/service"
	"github.com/Rangdog/hanbin/pkg/testutil"
)

func TestGenerateInstallmentSchedule(t *testing.T) {
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	principal := d("15000000")
	rate := d("4.4")

	sched := GenerateInstallmentSchedule(principal, rate, 12, start)
	require.Len(t, sched, 12)

	payment := service.MonthlyPaymentAmortized(principal, rate, 12)
	paid := decimal.Zero
	for i, e := range sched {
		assert.Equal(t, i+1, e.Period)
		assert.Equal(t, time.Month((1+i)%12+1), e.DueDate.Month(), "one installment per month")
		assert.True(t, e.Principal.Add(e.Interest).Equal(e.Total))
		if i < len(sched)-1 {
			assert.True(t, payment.Equal(e.Total), "installment %d: %s != %s", e.Period, e.Total, payment)
		}
		paid = paid.Add(e.Principal)
	}

	assert.True(t, sched[len(sched)-1].RemainingBalance.IsZero())
	testutil.AssertDecimal(t, "15000000", paid)
	testutil.AssertDecimalWithin(t, payment, sched[len(sched)-1].Total, d("0.10"))
}

func TestGenerateInstallmentSchedule_MonthEndDueDates(t *testing.T) {
	date := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name  string
		start time.Time
		want  []time.Time
	}{
		{
			name:  "31st clamps to shorter months",
			start: date(2026, 1, 31),
			want:  []time.Time{date(2026, 2, 28), date(2026, 3, 31), date(2026, 4, 30)},
		},
		{
			name:  "leap year february",
			start: date(2027, 12, 31),
			want:  []time.Time{date(2028, 1, 31), date(2028, 2, 29), date(2028, 3, 31)},
		},
		{
			name:  "30th in february",
			start: date(2026, 1, 30),
			want:  []time.Time{date(2026, 2, 28), date(2026, 3, 30), date(2026, 4, 30)},
		},
		{
			name:  "mid month is unchanged",
			start: date(2026, 11, 15),
			want:  []time.Time{date(2026, 12, 15), date(2027, 1, 15), date(2027, 2, 15)},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sched := GenerateInstallmentSchedule(d("3000000"), d("3.5"), 3, tc.start)
			require.Len(t, sched, 3)
			for i, e := range sched {
				assert.Equal(t, tc.want[i], e.DueDate, "installment %d", e.Period)
			}
		})
	}
}

func TestGenerateInstallmentSchedule_ZeroRate(t *testing.T) {
	sched := GenerateInstallmentSchedule(d("1000000"), decimal.Zero, 3, time.Now())
	require.Len(t, sched, 3)

	testutil.AssertDecimal(t, "333333.33", sched[0].Total)
	testutil.AssertDecimal(t, "333333.34", sched[2].Total)
	for _, e := range sched {
		assert.True(t, e.Interest.IsZero())
	}
}

func TestGenerateInstallmentSchedule_Degenerate(t *testing.T) {
	assert.Nil(t, GenerateInstallmentSchedule(d("1000000"), d("5"), 0, time.Now()))
	assert.Nil(t, GenerateInstallmentSchedule(decimal.Zero, d("5"), 6, time.Now()))
}
