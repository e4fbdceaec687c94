package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rangdog/hanbin/internal/application/dto"
	"github.com/Rangdog/hanbin/internal/application/usecase"
	"github.com/Rangdog/hanbin/internal/domain/service"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
	"github.com/Rangdog/hanbin/pkg/testutil"
)

func previewRequest(income, amount int64, period int) dto.AssessRiskRequest {
	return dto.AssessRiskRequest{
		CustomerIncome:    decimal.NewFromInt(income),
		OrderAmount:       decimal.NewFromInt(amount),
		InstallmentPeriod: period,
	}
}

func TestAssessRisk_Execute(t *testing.T) {
	t.Run("returns the assessment and caches it", func(t *testing.T) {
		cache := &mockAssessmentCache{}
		recorder := &mockDecisionRecorder{}
		uc := usecase.NewAssessRiskUseCase(cache, recorder, discardLogger())

		resp, err := uc.Execute(context.Background(), previewRequest(20_000_000, 10_000_000, 6))

		require.NoError(t, err)
		assert.Equal(t, 20, resp.RiskScore)
		assert.Equal(t, "low", resp.RiskLevel)
		require.NotNil(t, resp.DebtToIncomeRatio)
		assert.InDelta(t, 8.67, *resp.DebtToIncomeRatio, 1e-9)
		testutil.AssertDecimal(t, "1733333.33", resp.MonthlyPayment)
		testutil.AssertDecimal(t, "10400000", resp.TotalAmountWithInterest)
		testutil.AssertDecimal(t, "4", resp.AdjustedInterestRate)
		assert.Equal(t, "Low risk. Debt-to-income ratio: 8.7%", resp.Message)

		assert.Len(t, cache.stored, 1)
		assert.Equal(t, []string{"low"}, recorder.assessments)
		assert.Zero(t, recorder.cachedHits)
	})

	t.Run("serves repeated requests from cache", func(t *testing.T) {
		cache := &mockAssessmentCache{}
		recorder := &mockDecisionRecorder{}
		uc := usecase.NewAssessRiskUseCase(cache, recorder, discardLogger())

		first, err := uc.Execute(context.Background(), previewRequest(10_000_000, 30_000_000, 9))
		require.NoError(t, err)
		second, err := uc.Execute(context.Background(), previewRequest(10_000_000, 30_000_000, 9))
		require.NoError(t, err)

		assert.Equal(t, first.RiskScore, second.RiskScore)
		assert.Equal(t, "high", second.RiskLevel)
		assert.Equal(t, 1, recorder.cachedHits)
	})

	t.Run("cache failures fall back to computing", func(t *testing.T) {
		cache := &mockAssessmentCache{
			getFunc: func(context.Context, service.RiskInput) (service.RiskAssessment, bool, error) {
				return service.RiskAssessment{}, false, errors.New("connection refused")
			},
			setFunc: func(context.Context, service.RiskInput, service.RiskAssessment) error {
				return errors.New("connection refused")
			},
		}
		uc := usecase.NewAssessRiskUseCase(cache, &mockDecisionRecorder{}, discardLogger())

		resp, err := uc.Execute(context.Background(), previewRequest(20_000_000, 10_000_000, 6))

		require.NoError(t, err)
		assert.Equal(t, "low", resp.RiskLevel)
	})

	t.Run("works without a cache", func(t *testing.T) {
		uc := usecase.NewAssessRiskUseCase(nil, &mockDecisionRecorder{}, discardLogger())

		resp, err := uc.Execute(context.Background(), previewRequest(1_000_000, 10_000_000, 6))

		require.NoError(t, err)
		assert.Equal(t, "very_high", resp.RiskLevel)
		assert.Equal(t, 100, resp.RiskScore)
		assert.Contains(t, resp.Message, "Not recommended.")
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		uc := usecase.NewAssessRiskUseCase(nil, &mockDecisionRecorder{}, discardLogger())

		tests := []struct {
			name string
			req  dto.AssessRiskRequest
			want error
		}{
			{"zero income", previewRequest(0, 10_000_000, 6), valueobject.ErrInvalidInput},
			{"negative amount", previewRequest(20_000_000, -1, 6), valueobject.ErrInvalidInput},
			{"short period", previewRequest(20_000_000, 10_000_000, 2), valueobject.ErrInvalidInstallmentPeriod},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				_, err := uc.Execute(context.Background(), tc.req)
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.want)
				assert.ErrorIs(t, err, valueobject.ErrInvalidInput)
			})
		}
	})
}

func TestQuoteOrder_Execute(t *testing.T) {
	t.Run("prices an acceptable request", func(t *testing.T) {
		recorder := &mockDecisionRecorder{}
		uc := usecase.NewQuoteOrderUseCase(recorder)

		resp, err := uc.Execute(context.Background(), previewRequest(20_000_000, 10_000_000, 6))

		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		testutil.AssertDecimal(t, "2.8", resp.InterestRate)
		assert.True(t, resp.MonthlyPayment.GreaterThan(decimal.NewFromInt(10_000_000).Div(decimal.NewFromInt(6))))
		testutil.AssertDecimal(t, resp.MonthlyPayment.Mul(decimal.NewFromInt(6)).String(), resp.TotalAmountWithInterest)
		assert.Empty(t, recorder.refusals)
	})

	t.Run("refuses very high risk with the assessment", func(t *testing.T) {
		recorder := &mockDecisionRecorder{}
		uc := usecase.NewQuoteOrderUseCase(recorder)

		resp, err := uc.Execute(context.Background(), previewRequest(1_000_000, 10_000_000, 6))

		require.Error(t, err)
		assert.ErrorIs(t, err, valueobject.ErrRiskTooHigh)
		assert.Equal(t, "very_high", resp.Assessment.RiskLevel)
		assert.Equal(t, []string{"very_high"}, recorder.refusals)
	})
}
