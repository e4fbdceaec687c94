package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Rangdog/hanbin/internal/domain/event"
	"github.com/Rangdog/hanbin/internal/domain/model"
	"github.com/Rangdog/hanbin/internal/domain/port"
	"github.com/Rangdog/hanbin/internal/domain/service"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

type mockOrderRepository struct {
	createFunc       func(ctx context.Context, order model.Order) error
	updateStatusFunc func(ctx context.Context, order model.Order) error
	findByIDFunc     func(ctx context.Context, id string) (model.Order, error)
	listFunc         func(ctx context.Context, companyID string, filter port.OrderFilter) ([]model.Order, error)
	created          []model.Order
	updated          []model.Order
	lastFilter       port.OrderFilter
}

func (m *mockOrderRepository) Create(ctx context.Context, order model.Order) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, order)
	}
	m.created = append(m.created, order)
	return nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, order model.Order) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, order)
	}
	m.updated = append(m.updated, order)
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id string) (model.Order, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Order{}, model.ErrOrderNotFound
}

func (m *mockOrderRepository) ListByCompany(ctx context.Context, companyID string, filter port.OrderFilter) ([]model.Order, error) {
	m.lastFilter = filter
	if m.listFunc != nil {
		return m.listFunc(ctx, companyID, filter)
	}
	return nil, nil
}

type mockCompanyRepository struct {
	companies  map[string]model.Company
	listFunc   func(ctx context.Context, filter port.CompanyFilter) ([]model.CompanySummary, error)
	lastFilter port.CompanyFilter
}

func (m *mockCompanyRepository) FindByID(_ context.Context, id string) (model.Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return model.Company{}, fmt.Errorf("company %s: %w", id, model.ErrCompanyNotFound)
	}
	return c, nil
}

func (m *mockCompanyRepository) List(ctx context.Context, filter port.CompanyFilter) ([]model.CompanySummary, error) {
	m.lastFilter = filter
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockCompanyRepository) SetLocked(_ context.Context, id string, locked bool) (model.Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return model.Company{}, fmt.Errorf("company %s: %w", id, model.ErrCompanyNotFound)
	}
	c.IsLocked = locked
	m.companies[id] = c
	return c, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockDecisionRecorder struct {
	assessments []string
	cachedHits  int
	decisions   []string
	refusals    []string
}

func (m *mockDecisionRecorder) RecordAssessment(_ context.Context, level valueobject.RiskLevel, cached bool) {
	m.assessments = append(m.assessments, level.String())
	if cached {
		m.cachedHits++
	}
}

func (m *mockDecisionRecorder) RecordOrderDecision(_ context.Context, status valueobject.OrderStatus) {
	m.decisions = append(m.decisions, status.String())
}

func (m *mockDecisionRecorder) RecordRefusal(_ context.Context, level valueobject.RiskLevel) {
	m.refusals = append(m.refusals, level.String())
}

type mockAssessmentCache struct {
	getFunc func(ctx context.Context, in service.RiskInput) (service.RiskAssessment, bool, error)
	setFunc func(ctx context.Context, in service.RiskInput, a service.RiskAssessment) error
	stored  map[service.RiskInput]service.RiskAssessment
}

func (m *mockAssessmentCache) Get(ctx context.Context, in service.RiskInput) (service.RiskAssessment, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, in)
	}
	for k, v := range m.stored {
		if k.CustomerIncome.Equal(in.CustomerIncome) && k.OrderAmount.Equal(in.OrderAmount) &&
			k.InstallmentPeriod == in.InstallmentPeriod {
			return v, true, nil
		}
	}
	return service.RiskAssessment{}, false, nil
}

func (m *mockAssessmentCache) Set(ctx context.Context, in service.RiskInput, a service.RiskAssessment) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, in, a)
	}
	if m.stored == nil {
		m.stored = make(map[service.RiskInput]service.RiskAssessment)
	}
	m.stored[in] = a
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
