package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Rangdog/hanbin/internal/domain/event"
	"github.com/Rangdog/hanbin/internal/domain/service"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
	"github.com/Rangdog/hanbin/pkg/events"
)

// daysPerInstallment converts the installment period into payment terms.
const daysPerInstallment = 30

// ---------------------------------------------------------------------------
// Order aggregate root
// ---------------------------------------------------------------------------

// Order is a BNPL-financed purchase placed by a company. It is immutable:
// transitions return a new copy.
type Order struct {
	id                      string
	companyID               string
	userID                  string
	buyer                   string
	invoiceNumber           string
	amount                  decimal.Decimal
	interestRate            decimal.Decimal
	customerIncome          decimal.Decimal
	monthlyPayment          decimal.Decimal
	totalAmountWithInterest decimal.Decimal
	status                  valueobject.OrderStatus
	riskLevel               valueobject.RiskLevel
	reviewReason            string
	items                   []OrderItem
	createdAt               time.Time
	updatedAt               time.Time
	paymentTerms            int
	installmentPeriod       int
	riskScore               int
	version                 int
	approvedByAdmin         bool
	events                  events.EventCollector
}

// NewOrderParams are the merchant-supplied fields of a new order.
type NewOrderParams struct {
	CompanyID         string
	UserID            string
	Buyer             string
	InvoiceNumber     string
	Amount            decimal.Decimal
	CustomerIncome    decimal.Decimal
	InstallmentPeriod int
	Items             []OrderItem
}

// Validate checks the merchant-supplied fields, before any risk scoring.
func (p NewOrderParams) Validate() error {
	if p.CompanyID == "" {
		return errors.New("company ID is required")
	}
	if strings.TrimSpace(p.Buyer) == "" {
		return fmt.Errorf("%w: buyer is required", valueobject.ErrInvalidInput)
	}
	if strings.TrimSpace(p.InvoiceNumber) == "" {
		return fmt.Errorf("%w: invoice number is required", valueobject.ErrInvalidInput)
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", valueobject.ErrInvalidInput)
	}
	if len(p.Items) > 0 && !ItemsTotal(p.Items).Equal(p.Amount) {
		return fmt.Errorf("%w: amount does not match item subtotals", valueobject.ErrInvalidInput)
	}
	if p.InstallmentPeriod < valueobject.MinInstallmentPeriod {
		return valueobject.ErrInvalidInstallmentPeriod
	}
	return nil
}

// NewOrder builds an order from a quote produced for the same income, amount
// and period. Risk score and level are taken together from the quote.
func NewOrder(p NewOrderParams, quote service.Quote, now time.Time) (Order, error) {
	if err := p.Validate(); err != nil {
		return Order{}, err
	}
	if quote.Status.IsZero() || quote.Assessment.RiskLevel.IsZero() {
		return Order{}, errors.New("order requires a priced quote")
	}

	o := Order{
		id:                      uuid.New().String(),
		companyID:               p.CompanyID,
		userID:                  p.UserID,
		buyer:                   strings.TrimSpace(p.Buyer),
		invoiceNumber:           strings.TrimSpace(p.InvoiceNumber),
		amount:                  p.Amount,
		interestRate:            quote.InterestRate,
		customerIncome:          p.CustomerIncome,
		monthlyPayment:          quote.MonthlyPayment,
		totalAmountWithInterest: quote.TotalAmountWithInterest,
		status:                  quote.Status,
		riskScore:               quote.Assessment.RiskScore,
		riskLevel:               quote.Assessment.RiskLevel,
		items:                   append([]OrderItem(nil), p.Items...),
		paymentTerms:            p.InstallmentPeriod * daysPerInstallment,
		installmentPeriod:       p.InstallmentPeriod,
		approvedByAdmin:         quote.Status.Equal(valueobject.OrderStatusApproved),
		version:                 1,
		createdAt:               now,
		updatedAt:               now,
	}

	o.events.Record(event.NewOrderCreated(o.id, o.companyID, event.OrderCreatedData{
		UserID:                  o.userID,
		Buyer:                   o.buyer,
		InvoiceNumber:           o.invoiceNumber,
		Amount:                  o.amount,
		InterestRate:            o.interestRate,
		MonthlyPayment:          o.monthlyPayment,
		TotalAmountWithInterest: o.totalAmountWithInterest,
		RiskLevel:               o.riskLevel.String(),
		Status:                  o.status.String(),
		InstallmentPeriod:       o.installmentPeriod,
		RiskScore:               o.riskScore,
	}))
	return o, nil
}

// OrderSnapshot is the persisted form of an Order.
type OrderSnapshot struct {
	ID                      string
	CompanyID               string
	UserID                  string
	Buyer                   string
	InvoiceNumber           string
	Amount                  decimal.Decimal
	InterestRate            decimal.Decimal
	CustomerIncome          decimal.Decimal
	MonthlyPayment          decimal.Decimal
	TotalAmountWithInterest decimal.Decimal
	Status                  valueobject.OrderStatus
	RiskLevel               valueobject.RiskLevel
	ReviewReason            string
	Items                   []OrderItem
	CreatedAt               time.Time
	UpdatedAt               time.Time
	PaymentTerms            int
	InstallmentPeriod       int
	RiskScore               int
	Version                 int
	ApprovedByAdmin         bool
}

// ReconstructOrder rebuilds an aggregate from persistence without side-effects.
func ReconstructOrder(s OrderSnapshot) Order {
	return Order{
		id:                      s.ID,
		companyID:               s.CompanyID,
		userID:                  s.UserID,
		buyer:                   s.Buyer,
		invoiceNumber:           s.InvoiceNumber,
		amount:                  s.Amount,
		interestRate:            s.InterestRate,
		customerIncome:          s.CustomerIncome,
		monthlyPayment:          s.MonthlyPayment,
		totalAmountWithInterest: s.TotalAmountWithInterest,
		status:                  s.Status,
		riskLevel:               s.RiskLevel,
		reviewReason:            s.ReviewReason,
		items:                   append([]OrderItem(nil), s.Items...),
		createdAt:               s.CreatedAt,
		updatedAt:               s.UpdatedAt,
		paymentTerms:            s.PaymentTerms,
		installmentPeriod:       s.InstallmentPeriod,
		riskScore:               s.RiskScore,
		version:                 s.Version,
		approvedByAdmin:         s.ApprovedByAdmin,
	}
}

// Snapshot exposes the persisted form of o.
func (o Order) Snapshot() OrderSnapshot {
	return OrderSnapshot{
		ID:                      o.id,
		CompanyID:               o.companyID,
		UserID:                  o.userID,
		Buyer:                   o.buyer,
		InvoiceNumber:           o.invoiceNumber,
		Amount:                  o.amount,
		InterestRate:            o.interestRate,
		CustomerIncome:          o.customerIncome,
		MonthlyPayment:          o.monthlyPayment,
		TotalAmountWithInterest: o.totalAmountWithInterest,
		Status:                  o.status,
		RiskLevel:               o.riskLevel,
		ReviewReason:            o.reviewReason,
		Items:                   o.Items(),
		CreatedAt:               o.createdAt,
		UpdatedAt:               o.updatedAt,
		PaymentTerms:            o.paymentTerms,
		InstallmentPeriod:       o.installmentPeriod,
		RiskScore:               o.riskScore,
		Version:                 o.version,
		ApprovedByAdmin:         o.approvedByAdmin,
	}
}

// ---------------------------------------------------------------------------
// Status changes (each returns a new copy)
// ---------------------------------------------------------------------------

// Approve moves a pending order to approved and marks it admin-approved.
func (o Order) Approve(reviewerID, reason string, now time.Time) (Order, error) {
	next, err := o.review(valueobject.OrderStatusApproved, reason, now)
	if err != nil {
		return o, err
	}
	next.approvedByAdmin = true
	next.events.Record(event.NewOrderApproved(o.id, o.companyID, reviewerID, reason))
	return next, nil
}

// Reject moves a pending order to rejected.
func (o Order) Reject(reviewerID, reason string, now time.Time) (Order, error) {
	next, err := o.review(valueobject.OrderStatusRejected, reason, now)
	if err != nil {
		return o, err
	}
	next.events.Record(event.NewOrderRejected(o.id, o.companyID, reviewerID, reason))
	return next, nil
}

func (o Order) review(to valueobject.OrderStatus, reason string, now time.Time) (Order, error) {
	if !o.status.Equal(valueobject.OrderStatusPending) || !o.status.CanTransitionTo(to) {
		return o, fmt.Errorf("order %s is %s: %w", o.id, o.status, valueobject.ErrInvalidStatusTransition)
	}
	next := o
	next.status = to
	next.reviewReason = strings.TrimSpace(reason)
	next.updatedAt = now
	next.items = o.Items()
	next.events = o.events.Clone()
	return next, nil
}

// TransitionTo moves the order along its fulfilment lifecycle (paid,
// shipping, completed, cancelled). Approval and rejection are review
// decisions and go through Approve and Reject.
func (o Order) TransitionTo(to valueobject.OrderStatus, actorID, reason string, now time.Time) (Order, error) {
	if to.Equal(valueobject.OrderStatusApproved) || to.Equal(valueobject.OrderStatusRejected) {
		return o, fmt.Errorf("order %s: %s requires an admin review: %w",
			o.id, to, valueobject.ErrInvalidStatusTransition)
	}
	if !o.status.CanTransitionTo(to) {
		return o, fmt.Errorf("order %s cannot move from %s to %s: %w",
			o.id, o.status, to, valueobject.ErrInvalidStatusTransition)
	}
	next := o
	next.status = to
	next.updatedAt = now
	next.items = o.Items()
	next.events = o.events.Clone()
	next.events.Record(event.NewOrderStatusChanged(o.id, o.companyID, o.status.String(), to.String(),
		actorID, strings.TrimSpace(reason)))
	return next, nil
}

// Schedule returns the amortization schedule of the contractual terms.
func (o Order) Schedule() []InstallmentEntry {
	return GenerateInstallmentSchedule(o.amount, o.interestRate, o.installmentPeriod, o.createdAt)
}

// BelongsTo reports whether companyID owns the order.
func (o Order) BelongsTo(companyID string) bool { return o.companyID == companyID }

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (o Order) ID() string                               { return o.id }
func (o Order) CompanyID() string                        { return o.companyID }
func (o Order) UserID() string                           { return o.userID }
func (o Order) Buyer() string                            { return o.buyer }
func (o Order) InvoiceNumber() string                    { return o.invoiceNumber }
func (o Order) Amount() decimal.Decimal                  { return o.amount }
func (o Order) InterestRate() decimal.Decimal            { return o.interestRate }
func (o Order) CustomerIncome() decimal.Decimal          { return o.customerIncome }
func (o Order) MonthlyPayment() decimal.Decimal          { return o.monthlyPayment }
func (o Order) TotalAmountWithInterest() decimal.Decimal { return o.totalAmountWithInterest }
func (o Order) Status() valueobject.OrderStatus          { return o.status }
func (o Order) RiskScore() int                           { return o.riskScore }
func (o Order) RiskLevel() valueobject.RiskLevel         { return o.riskLevel }
func (o Order) ReviewReason() string                     { return o.reviewReason }
func (o Order) PaymentTerms() int                        { return o.paymentTerms }
func (o Order) InstallmentPeriod() int                   { return o.installmentPeriod }
func (o Order) ApprovedByAdmin() bool                    { return o.approvedByAdmin }
func (o Order) Version() int                             { return o.version }
func (o Order) CreatedAt() time.Time                     { return o.createdAt }
func (o Order) UpdatedAt() time.Time                     { return o.updatedAt }

// Items returns a copy of the order lines.
func (o Order) Items() []OrderItem {
	return append([]OrderItem(nil), o.items...)
}

// DomainEvents returns the events recorded since the order was loaded.
func (o Order) DomainEvents() []event.DomainEvent { return o.events.Events() }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (o Order) ClearEvents() Order {
	next := o
	next.events = events.EventCollector{}
	return next
}
