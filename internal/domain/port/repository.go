package port

import (
	"context"

	"github.com/Rangdog/hanbin/internal/domain/event"
	"github.com/Rangdog/hanbin/internal/domain/model"
	"github.com/Rangdog/hanbin/internal/domain/service"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// OrderRepository persists and retrieves financed orders.
type OrderRepository interface {
	// Create stores a new order and its items, reserving product stock, in a
	// single transaction. Stock failures wrap model.ErrProductNotFound,
	// model.ErrProductUnavailable or model.ErrInsufficientStock.
	Create(ctx context.Context, order model.Order) error
	// UpdateStatus persists a status change or review decision; it fails with
	// model.ErrConcurrentUpdate if the order changed since it was loaded.
	UpdateStatus(ctx context.Context, order model.Order) error
	FindByID(ctx context.Context, id string) (model.Order, error)
	ListByCompany(ctx context.Context, companyID string, filter OrderFilter) ([]model.Order, error)
}

// OrderFilter narrows ListByCompany. Zero values mean no restriction.
type OrderFilter struct {
	Status valueobject.OrderStatus
	Limit  int
	Offset int
}

// CompanyRepository reads and locks merchant accounts.
type CompanyRepository interface {
	FindByID(ctx context.Context, id string) (model.Company, error)
	List(ctx context.Context, filter CompanyFilter) ([]model.CompanySummary, error)
	// SetLocked stores the lock flag and returns the updated company, or
	// model.ErrCompanyNotFound.
	SetLocked(ctx context.Context, id string, locked bool) (model.Company, error)
}

// CompanyFilter narrows List. Search matches the company name,
// case-insensitively. A nil Locked means locked and unlocked accounts.
type CompanyFilter struct {
	Locked *bool
	Search string
	Limit  int
	Offset int
}

// ---------------------------------------------------------------------------
// Cache port
// ---------------------------------------------------------------------------

// AssessmentCache memoises preview assessments by their input.
type AssessmentCache interface {
	Get(ctx context.Context, in service.RiskInput) (service.RiskAssessment, bool, error)
	Set(ctx context.Context, in service.RiskInput, assessment service.RiskAssessment) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Metrics port
// ---------------------------------------------------------------------------

// DecisionRecorder counts risk outcomes.
type DecisionRecorder interface {
	RecordAssessment(ctx context.Context, level valueobject.RiskLevel, cached bool)
	RecordOrderDecision(ctx context.Context, status valueobject.OrderStatus)
	RecordRefusal(ctx context.Context, level valueobject.RiskLevel)
}
