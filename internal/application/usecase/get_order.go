package usecase

import (
	"context"
	"fmt"

	"github.com/Rangdog/hanbin/internal/application/dto"
	"github.com/Rangdog/hanbin/internal/domain/model"
	"github.com/Rangdog/hanbin/internal/domain/port"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// GetOrderUseCase retrieves one order with its repayment schedule.
type GetOrderUseCase struct {
	orders port.OrderRepository
}

// NewGetOrderUseCase wires dependencies.
func NewGetOrderUseCase(orders port.OrderRepository) *GetOrderUseCase {
	return &GetOrderUseCase{orders: orders}
}

// Execute returns the order. Orders of other companies are reported as not
// found unless the caller is an admin.
func (uc *GetOrderUseCase) Execute(ctx context.Context, req dto.GetOrderRequest) (dto.OrderResponse, error) {
	order, err := uc.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		return dto.OrderResponse{}, fmt.Errorf("find order: %w", err)
	}
	if !req.IsAdmin && !order.BelongsTo(req.CompanyID) {
		return dto.OrderResponse{}, fmt.Errorf("find order: %w", model.ErrOrderNotFound)
	}

	resp := toOrderResponse(order)
	resp.Schedule = toScheduleResponse(order.Schedule())
	return resp, nil
}

// ListOrdersUseCase pages through a company's orders.
type ListOrdersUseCase struct {
	orders port.OrderRepository
}

// NewListOrdersUseCase wires dependencies.
func NewListOrdersUseCase(orders port.OrderRepository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orders: orders}
}

// Execute lists orders newest first.
func (uc *ListOrdersUseCase) Execute(ctx context.Context, req dto.ListOrdersRequest) (dto.ListOrdersResponse, error) {
	filter := port.OrderFilter{Limit: req.Limit, Offset: req.Offset}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	filter.Limit = min(filter.Limit, maxPageSize)
	filter.Offset = max(filter.Offset, 0)

	if req.Status != "" {
		status, err := valueobject.NewOrderStatus(req.Status)
		if err != nil {
			return dto.ListOrdersResponse{}, fmt.Errorf("%w: %v", valueobject.ErrInvalidInput, err)
		}
		filter.Status = status
	}

	orders, err := uc.orders.ListByCompany(ctx, req.CompanyID, filter)
	if err != nil {
		return dto.ListOrdersResponse{}, fmt.Errorf("list orders: %w", err)
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return dto.ListOrdersResponse{Orders: out, Limit: filter.Limit, Offset: filter.Offset}, nil
}
