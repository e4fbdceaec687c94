package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Rangdog/hanbin/internal/domain/port"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

var _ port.DecisionRecorder = (*DecisionRecorder)(nil)

// DecisionRecorder counts risk assessments and order outcomes with
// OpenTelemetry counters.
type DecisionRecorder struct {
	assessments metric.Int64Counter
	decisions   metric.Int64Counter
	refusals    metric.Int64Counter
}

// NewDecisionRecorder registers the counters on meter.
func NewDecisionRecorder(meter metric.Meter) (*DecisionRecorder, error) {
	assessments, err := meter.Int64Counter("bnpl_risk_assessments_total",
		metric.WithDescription("Risk previews served, by risk level and cache hit."))
	if err != nil {
		return nil, fmt.Errorf("metrics: assessments counter: %w", err)
	}
	decisions, err := meter.Int64Counter("bnpl_order_decisions_total",
		metric.WithDescription("Stored orders by resulting status."))
	if err != nil {
		return nil, fmt.Errorf("metrics: decisions counter: %w", err)
	}
	refusals, err := meter.Int64Counter("bnpl_order_refusals_total",
		metric.WithDescription("Order requests refused before storage, by risk level."))
	if err != nil {
		return nil, fmt.Errorf("metrics: refusals counter: %w", err)
	}

	return &DecisionRecorder{assessments: assessments, decisions: decisions, refusals: refusals}, nil
}

func (r *DecisionRecorder) RecordAssessment(ctx context.Context, level valueobject.RiskLevel, cached bool) {
	r.assessments.Add(ctx, 1, metric.WithAttributes(
		attribute.String("risk_level", level.String()),
		attribute.Bool("cached", cached),
	))
}

func (r *DecisionRecorder) RecordOrderDecision(ctx context.Context, status valueobject.OrderStatus) {
	r.decisions.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status.String())))
}

func (r *DecisionRecorder) RecordRefusal(ctx context.Context, level valueobject.RiskLevel) {
	r.refusals.Add(ctx, 1, metric.WithAttributes(attribute.String("risk_level", level.String())))
}
