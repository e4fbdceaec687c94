package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Rangdog/hanbin/internal/application/dto"
	"github.com/Rangdog/hanbin/internal/domain/event"
	"github.com/Rangdog/hanbin/internal/domain/model"
	"github.com/Rangdog/hanbin/internal/domain/port"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

// ListCompaniesUseCase pages through merchant companies for admins.
type ListCompaniesUseCase struct {
	companies port.CompanyRepository
}

// NewListCompaniesUseCase wires dependencies.
func NewListCompaniesUseCase(companies port.CompanyRepository) *ListCompaniesUseCase {
	return &ListCompaniesUseCase{companies: companies}
}

// Execute lists companies newest first.
func (uc *ListCompaniesUseCase) Execute(ctx context.Context, req dto.ListCompaniesRequest) (dto.ListCompaniesResponse, error) {
	filter := port.CompanyFilter{
		Locked: req.Locked,
		Search: req.Search,
		Limit:  req.Limit,
		Offset: max(req.Offset, 0),
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	filter.Limit = min(filter.Limit, maxPageSize)

	companies, err := uc.companies.List(ctx, filter)
	if err != nil {
		return dto.ListCompaniesResponse{}, fmt.Errorf("list companies: %w", err)
	}

	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		resp := toCompanyResponse(c.Company)
		resp.OrderCount = c.OrderCount
		resp.TotalSpent = c.TotalSpent
		out = append(out, resp)
	}
	return dto.ListCompaniesResponse{Companies: out, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// SetCompanyLockUseCase locks or unlocks a company. Locked companies cannot
// place new orders; existing orders are unaffected.
type SetCompanyLockUseCase struct {
	companies port.CompanyRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewSetCompanyLockUseCase wires dependencies.
func NewSetCompanyLockUseCase(
	companies port.CompanyRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *SetCompanyLockUseCase {
	return &SetCompanyLockUseCase{companies: companies, publisher: publisher, logger: logger}
}

// Execute stores the lock flag and publishes the change.
func (uc *SetCompanyLockUseCase) Execute(ctx context.Context, req dto.SetCompanyLockRequest) (dto.CompanyResponse, error) {
	ctx, span := tracer.Start(ctx, "SetCompanyLock")
	defer span.End()

	if req.IsLocked == nil {
		return dto.CompanyResponse{}, fmt.Errorf("%w: isLocked must be a boolean", valueobject.ErrInvalidInput)
	}

	company, err := uc.companies.SetLocked(ctx, req.CompanyID, *req.IsLocked)
	if err != nil {
		return dto.CompanyResponse{}, fmt.Errorf("set company lock: %w", err)
	}

	evt := event.NewCompanyLockChanged(company.ID, req.AdminID, company.IsLocked)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.ErrorContext(ctx, "publish company lock event failed",
			"company_id", company.ID, "error", err)
	}

	uc.logger.InfoContext(ctx, "company lock changed",
		"company_id", company.ID,
		"admin_id", req.AdminID,
		"is_locked", company.IsLocked,
	)
	return toCompanyResponse(company), nil
}

// ListCompanyOrdersUseCase lists one company's orders for admins.
type ListCompanyOrdersUseCase struct {
	companies port.CompanyRepository
	list      *ListOrdersUseCase
}

// NewListCompanyOrdersUseCase wires dependencies.
func NewListCompanyOrdersUseCase(companies port.CompanyRepository, orders port.OrderRepository) *ListCompanyOrdersUseCase {
	return &ListCompanyOrdersUseCase{companies: companies, list: NewListOrdersUseCase(orders)}
}

// Execute returns model.ErrCompanyNotFound for unknown companies rather than
// an empty page.
func (uc *ListCompanyOrdersUseCase) Execute(ctx context.Context, req dto.ListOrdersRequest) (dto.ListOrdersResponse, error) {
	if _, err := uc.companies.FindByID(ctx, req.CompanyID); err != nil {
		if errors.Is(err, model.ErrCompanyNotFound) {
			return dto.ListOrdersResponse{}, err
		}
		return dto.ListOrdersResponse{}, fmt.Errorf("find company: %w", err)
	}
	return uc.list.Execute(ctx, req)
}
