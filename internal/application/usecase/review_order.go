package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Rangdog/hanbin/internal/application/dto"
	"github.com/Rangdog/hanbin/internal/domain/model"
	"github.com/Rangdog/hanbin/internal/domain/port"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

// ReviewOrderUseCase applies an admin decision to a pending order.
type ReviewOrderUseCase struct {
	orders    port.OrderRepository
	publisher port.EventPublisher
	recorder  port.DecisionRecorder
	logger    *slog.Logger
}

// NewReviewOrderUseCase wires dependencies.
func NewReviewOrderUseCase(
	orders port.OrderRepository,
	publisher port.EventPublisher,
	recorder port.DecisionRecorder,
	logger *slog.Logger,
) *ReviewOrderUseCase {
	return &ReviewOrderUseCase{orders: orders, publisher: publisher, recorder: recorder, logger: logger}
}

// Execute approves or rejects the order.
func (uc *ReviewOrderUseCase) Execute(ctx context.Context, req dto.ReviewOrderRequest) (dto.OrderResponse, error) {
	ctx, span := tracer.Start(ctx, "ReviewOrder")
	defer span.End()

	now := time.Now().UTC()

	order, err := uc.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		return dto.OrderResponse{}, fmt.Errorf("find order: %w", err)
	}

	var reviewed model.Order
	switch strings.ToLower(strings.TrimSpace(req.Decision)) {
	case dto.DecisionApprove:
		reviewed, err = order.Approve(req.ReviewerID, req.Reason, now)
	case dto.DecisionReject:
		reviewed, err = order.Reject(req.ReviewerID, req.Reason, now)
	default:
		return dto.OrderResponse{}, fmt.Errorf("%w: decision must be %q or %q",
			valueobject.ErrInvalidInput, dto.DecisionApprove, dto.DecisionReject)
	}
	if err != nil {
		return dto.OrderResponse{}, fmt.Errorf("apply decision: %w", err)
	}

	if err := uc.orders.UpdateStatus(ctx, reviewed); err != nil {
		return dto.OrderResponse{}, fmt.Errorf("save review: %w", err)
	}

	if err := uc.publisher.Publish(ctx, reviewed.DomainEvents()...); err != nil {
		uc.logger.ErrorContext(ctx, "publish review events failed",
			"order_id", reviewed.ID(), "error", err)
	}
	uc.recorder.RecordOrderDecision(ctx, reviewed.Status())

	uc.logger.InfoContext(ctx, "order reviewed",
		"order_id", reviewed.ID(),
		"reviewer_id", req.ReviewerID,
		"status", reviewed.Status().String(),
	)

	return toOrderResponse(reviewed), nil
}
