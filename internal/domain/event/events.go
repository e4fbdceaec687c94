package event

import (
	"github.com/shopspring/decimal"

	"github.com/Rangdog/hanbin/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	aggregateOrder   = "Order"
	aggregateCompany = "Company"
)

// Event type names, also used as Kafka topics.
const (
	TypeOrderCreated  = "bnpl.order.created"
	TypeOrderApproved = "bnpl.order.approved"
	TypeOrderRejected = "bnpl.order.rejected"

	TypeOrderStatusChanged = "bnpl.order.status_changed"
	TypeCompanyLocked      = "bnpl.company.locked"
	TypeCompanyUnlocked    = "bnpl.company.unlocked"
)

// OrderCreated is raised when a financed order is accepted and stored.
type OrderCreated struct {
	events.BaseEvent
	UserID                  string          `json:"user_id"`
	Buyer                   string          `json:"buyer"`
	InvoiceNumber           string          `json:"invoice_number"`
	Amount                  decimal.Decimal `json:"amount"`
	InterestRate            decimal.Decimal `json:"interest_rate"`
	MonthlyPayment          decimal.Decimal `json:"monthly_payment"`
	TotalAmountWithInterest decimal.Decimal `json:"total_amount_with_interest"`
	RiskLevel               string          `json:"risk_level"`
	Status                  string          `json:"status"`
	InstallmentPeriod       int             `json:"installment_period"`
	RiskScore               int             `json:"risk_score"`
}

// OrderCreatedData carries the payload of OrderCreated.
type OrderCreatedData struct {
	UserID                  string
	Buyer                   string
	InvoiceNumber           string
	Amount                  decimal.Decimal
	InterestRate            decimal.Decimal
	MonthlyPayment          decimal.Decimal
	TotalAmountWithInterest decimal.Decimal
	RiskLevel               string
	Status                  string
	InstallmentPeriod       int
	RiskScore               int
}

func NewOrderCreated(orderID, companyID string, data OrderCreatedData) OrderCreated {
	return OrderCreated{
		BaseEvent:               events.NewBaseEvent(TypeOrderCreated, orderID, aggregateOrder, companyID),
		UserID:                  data.UserID,
		Buyer:                   data.Buyer,
		InvoiceNumber:           data.InvoiceNumber,
		Amount:                  data.Amount,
		InterestRate:            data.InterestRate,
		MonthlyPayment:          data.MonthlyPayment,
		TotalAmountWithInterest: data.TotalAmountWithInterest,
		RiskLevel:               data.RiskLevel,
		Status:                  data.Status,
		InstallmentPeriod:       data.InstallmentPeriod,
		RiskScore:               data.RiskScore,
	}
}

// OrderApproved is raised when an admin approves a pending order.
type OrderApproved struct {
	events.BaseEvent
	ReviewerID string `json:"reviewer_id"`
	Reason     string `json:"reason,omitempty"`
}

func NewOrderApproved(orderID, companyID, reviewerID, reason string) OrderApproved {
	return OrderApproved{
		BaseEvent:  events.NewBaseEvent(TypeOrderApproved, orderID, aggregateOrder, companyID),
		ReviewerID: reviewerID,
		Reason:     reason,
	}
}

// OrderRejected is raised when an admin rejects a pending order.
type OrderRejected struct {
	events.BaseEvent
	ReviewerID string `json:"reviewer_id"`
	Reason     string `json:"reason,omitempty"`
}

func NewOrderRejected(orderID, companyID, reviewerID, reason string) OrderRejected {
	return OrderRejected{
		BaseEvent:  events.NewBaseEvent(TypeOrderRejected, orderID, aggregateOrder, companyID),
		ReviewerID: reviewerID,
		Reason:     reason,
	}
}

// OrderStatusChanged is raised when an order moves along its fulfilment
// lifecycle after the risk decision.
type OrderStatusChanged struct {
	events.BaseEvent
	From    string `json:"from"`
	To      string `json:"to"`
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason,omitempty"`
}

func NewOrderStatusChanged(orderID, companyID, from, to, actorID, reason string) OrderStatusChanged {
	return OrderStatusChanged{
		BaseEvent: events.NewBaseEvent(TypeOrderStatusChanged, orderID, aggregateOrder, companyID),
		From:      from,
		To:        to,
		ActorID:   actorID,
		Reason:    reason,
	}
}

// CompanyLockChanged is raised when an admin locks or unlocks a company.
type CompanyLockChanged struct {
	events.BaseEvent
	AdminID  string `json:"admin_id"`
	IsLocked bool   `json:"is_locked"`
}

func NewCompanyLockChanged(companyID, adminID string, locked bool) CompanyLockChanged {
	eventType := TypeCompanyUnlocked
	if locked {
		eventType = TypeCompanyLocked
	}
	return CompanyLockChanged{
		BaseEvent: events.NewBaseEvent(eventType, companyID, aggregateCompany, companyID),
		AdminID:   adminID,
		IsLocked:  locked,
	}
}
