package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Rangdog/hanbin/internal/application/dto"
	"github.com/Rangdog/hanbin/internal/domain/model"
	"github.com/Rangdog/hanbin/internal/domain/port"
	"github.com/Rangdog/hanbin/internal/domain/service"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

// RiskRefusedError is returned when an order is refused for very-high risk.
// It unwraps to valueobject.ErrRiskTooHigh and carries the assessment so the
// caller can show the merchant why.
type RiskRefusedError struct {
	Assessment dto.RiskAssessmentResponse
}

func (e *RiskRefusedError) Error() string {
	return fmt.Sprintf("%s (score %d)", valueobject.ErrRiskTooHigh, e.Assessment.RiskScore)
}

func (e *RiskRefusedError) Unwrap() error { return valueobject.ErrRiskTooHigh }

// CreateOrderUseCase orchestrates BNPL order submission: company checks,
// risk assessment, contractual pricing, status decision and persistence.
type CreateOrderUseCase struct {
	orders    port.OrderRepository
	companies port.CompanyRepository
	publisher port.EventPublisher
	recorder  port.DecisionRecorder
	logger    *slog.Logger
}

// NewCreateOrderUseCase wires dependencies.
func NewCreateOrderUseCase(
	orders port.OrderRepository,
	companies port.CompanyRepository,
	publisher port.EventPublisher,
	recorder port.DecisionRecorder,
	logger *slog.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orders:    orders,
		companies: companies,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
	}
}

// Execute creates and stores the order. The response embeds the preview
// assessment next to the persisted contractual figures.
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req dto.CreateOrderRequest) (dto.OrderResponse, error) {
	ctx, span := tracer.Start(ctx, "CreateOrder")
	defer span.End()

	now := time.Now().UTC()

	// 1. The ordering company must exist and be unlocked.
	company, err := uc.companies.FindByID(ctx, req.CompanyID)
	if err != nil {
		return dto.OrderResponse{}, fmt.Errorf("find company: %w", err)
	}
	if err := company.CanOrder(); err != nil {
		return dto.OrderResponse{}, fmt.Errorf("check company: %w", err)
	}

	// 2. Build items; when present they define the amount.
	items := make([]model.OrderItem, 0, len(req.Items))
	for i, it := range req.Items {
		item, err := model.NewOrderItem(it.ProductID, it.Quantity, it.UnitPrice)
		if err != nil {
			return dto.OrderResponse{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	amount := req.Amount
	if len(items) > 0 {
		amount = model.ItemsTotal(items)
	}

	params := model.NewOrderParams{
		CompanyID:         company.ID,
		UserID:            req.UserID,
		Buyer:             req.Buyer,
		InvoiceNumber:     req.InvoiceNumber,
		Amount:            amount,
		CustomerIncome:    req.CustomerIncome,
		InstallmentPeriod: req.InstallmentPeriod,
		Items:             items,
	}
	if err := params.Validate(); err != nil {
		return dto.OrderResponse{}, fmt.Errorf("validate order: %w", err)
	}

	// 3. Assess and price. Very-high risk never reaches the database.
	quote, err := service.QuoteOrder(service.RiskInput{
		CustomerIncome:    req.CustomerIncome,
		OrderAmount:       amount,
		InstallmentPeriod: req.InstallmentPeriod,
	})
	if errors.Is(err, valueobject.ErrRiskTooHigh) {
		uc.recorder.RecordRefusal(ctx, quote.Assessment.RiskLevel)
		return dto.OrderResponse{}, &RiskRefusedError{Assessment: toAssessmentResponse(quote.Assessment)}
	}
	if err != nil {
		return dto.OrderResponse{}, fmt.Errorf("quote order: %w", err)
	}

	// 4. Create the aggregate.
	order, err := model.NewOrder(params, quote, now)
	if err != nil {
		return dto.OrderResponse{}, fmt.Errorf("create order: %w", err)
	}
	span.SetAttributes(
		attribute.String("order.id", order.ID()),
		attribute.String("order.status", order.Status().String()),
	)

	// 5. Persist order, items and stock reservation atomically.
	if err := uc.orders.Create(ctx, order); err != nil {
		return dto.OrderResponse{}, fmt.Errorf("save order: %w", err)
	}

	// 6. Publish after commit. The order is stored either way.
	if err := uc.publisher.Publish(ctx, order.DomainEvents()...); err != nil {
		uc.logger.ErrorContext(ctx, "publish order events failed",
			"order_id", order.ID(), "error", err)
	}
	uc.recorder.RecordOrderDecision(ctx, order.Status())

	uc.logger.InfoContext(ctx, "order created",
		"order_id", order.ID(),
		"company_id", order.CompanyID(),
		"status", order.Status().String(),
		"risk_score", order.RiskScore(),
	)

	resp := toOrderResponse(order)
	assessment := toAssessmentResponse(quote.Assessment)
	resp.RiskAssessment = &assessment
	return resp, nil
}
