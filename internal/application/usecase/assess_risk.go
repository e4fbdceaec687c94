package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Rangdog/hanbin/internal/application/dto"
	"github.com/Rangdog/hanbin/internal/domain/port"
	"github.com/Rangdog/hanbin/internal/domain/service"
)

// AssessRiskUseCase serves the live risk preview. Results are memoised in
// the assessment cache when one is configured; cache failures only degrade
// to recomputation.
type AssessRiskUseCase struct {
	cache    port.AssessmentCache
	recorder port.DecisionRecorder
	logger   *slog.Logger
}

// NewAssessRiskUseCase wires dependencies. cache may be nil.
func NewAssessRiskUseCase(
	cache port.AssessmentCache,
	recorder port.DecisionRecorder,
	logger *slog.Logger,
) *AssessRiskUseCase {
	return &AssessRiskUseCase{cache: cache, recorder: recorder, logger: logger}
}

// Execute validates the request and returns its assessment.
func (uc *AssessRiskUseCase) Execute(ctx context.Context, req dto.AssessRiskRequest) (dto.RiskAssessmentResponse, error) {
	ctx, span := tracer.Start(ctx, "AssessRisk")
	defer span.End()

	in := service.RiskInput{
		CustomerIncome:    req.CustomerIncome,
		OrderAmount:       req.OrderAmount,
		InstallmentPeriod: req.InstallmentPeriod,
	}
	if err := in.Validate(); err != nil {
		return dto.RiskAssessmentResponse{}, fmt.Errorf("validate preview: %w", err)
	}

	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, in)
		switch {
		case err != nil:
			uc.logger.WarnContext(ctx, "assessment cache read failed", "error", err)
		case ok:
			span.SetAttributes(attribute.Bool("cache.hit", true))
			uc.recorder.RecordAssessment(ctx, cached.RiskLevel, true)
			return toAssessmentResponse(cached), nil
		}
	}

	assessment := service.AssessRisk(in.CustomerIncome, in.OrderAmount, in.InstallmentPeriod)
	span.SetAttributes(
		attribute.Int("risk.score", assessment.RiskScore),
		attribute.String("risk.level", assessment.RiskLevel.String()),
	)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, in, assessment); err != nil {
			uc.logger.WarnContext(ctx, "assessment cache write failed", "error", err)
		}
	}

	uc.recorder.RecordAssessment(ctx, assessment.RiskLevel, false)
	return toAssessmentResponse(assessment), nil
}
