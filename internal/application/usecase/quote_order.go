package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rangdog/hanbin/internal/application/dto"
	"github.com/Rangdog/hanbin/internal/domain/port"
	"github.com/Rangdog/hanbin/internal/domain/service"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

// QuoteOrderUseCase prices a financing request without storing anything.
type QuoteOrderUseCase struct {
	recorder port.DecisionRecorder
}

// NewQuoteOrderUseCase wires dependencies.
func NewQuoteOrderUseCase(recorder port.DecisionRecorder) *QuoteOrderUseCase {
	return &QuoteOrderUseCase{recorder: recorder}
}

// Execute returns the quote. A very-high risk request yields
// valueobject.ErrRiskTooHigh alongside the assessment that caused it.
func (uc *QuoteOrderUseCase) Execute(ctx context.Context, req dto.AssessRiskRequest) (dto.QuoteResponse, error) {
	ctx, span := tracer.Start(ctx, "QuoteOrder")
	defer span.End()

	quote, err := service.QuoteOrder(service.RiskInput{
		CustomerIncome:    req.CustomerIncome,
		OrderAmount:       req.OrderAmount,
		InstallmentPeriod: req.InstallmentPeriod,
	})
	if errors.Is(err, valueobject.ErrRiskTooHigh) {
		uc.recorder.RecordRefusal(ctx, quote.Assessment.RiskLevel)
		return toQuoteResponse(quote), fmt.Errorf("quote order: %w", err)
	}
	if err != nil {
		return dto.QuoteResponse{}, fmt.Errorf("quote order: %w", err)
	}

	return toQuoteResponse(quote), nil
}
