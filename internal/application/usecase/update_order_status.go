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

// UpdateOrderStatusUseCase moves an order through payment, shipping,
// completion or cancellation.
type UpdateOrderStatusUseCase struct {
	orders    port.OrderRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewUpdateOrderStatusUseCase wires dependencies.
func NewUpdateOrderStatusUseCase(
	orders port.OrderRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{orders: orders, publisher: publisher, logger: logger}
}

// Execute applies the transition. Orders of other companies are reported as
// not found unless the caller is an admin.
func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, req dto.UpdateOrderStatusRequest) (dto.OrderResponse, error) {
	ctx, span := tracer.Start(ctx, "UpdateOrderStatus")
	defer span.End()

	to, err := valueobject.NewOrderStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if err != nil {
		return dto.OrderResponse{}, fmt.Errorf("%w: %v", valueobject.ErrInvalidInput, err)
	}

	order, err := uc.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		return dto.OrderResponse{}, fmt.Errorf("find order: %w", err)
	}
	if !req.IsAdmin && !order.BelongsTo(req.CompanyID) {
		return dto.OrderResponse{}, fmt.Errorf("find order: %w", model.ErrOrderNotFound)
	}

	updated, err := order.TransitionTo(to, req.ActorID, req.Reason, time.Now().UTC())
	if err != nil {
		return dto.OrderResponse{}, fmt.Errorf("change status: %w", err)
	}

	if err := uc.orders.UpdateStatus(ctx, updated); err != nil {
		return dto.OrderResponse{}, fmt.Errorf("save status: %w", err)
	}

	if err := uc.publisher.Publish(ctx, updated.DomainEvents()...); err != nil {
		uc.logger.ErrorContext(ctx, "publish status events failed",
			"order_id", updated.ID(), "error", err)
	}

	uc.logger.InfoContext(ctx, "order status changed",
		"order_id", updated.ID(),
		"actor_id", req.ActorID,
		"from", order.Status().String(),
		"to", updated.Status().String(),
	)

	return toOrderResponse(updated), nil
}
