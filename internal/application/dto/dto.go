package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// JSON field names are camelCase to match the merchant web client.

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// AssessRiskRequest carries the inputs of a live risk preview.
type AssessRiskRequest struct {
	CustomerIncome    decimal.Decimal `json:"customerIncome"`
	OrderAmount       decimal.Decimal `json:"orderAmount"`
	InstallmentPeriod int             `json:"installmentPeriod"`
}

// OrderItemRequest is one product line of a new order.
type OrderItemRequest struct {
	ProductID string          `json:"productId"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// CreateOrderRequest carries a new financed order. CompanyID and UserID come
// from the authenticated caller, never from the body.
type CreateOrderRequest struct {
	CompanyID         string             `json:"-"`
	UserID            string             `json:"-"`
	Buyer             string             `json:"buyer"`
	InvoiceNumber     string             `json:"invoiceNumber"`
	Amount            decimal.Decimal    `json:"amount"`
	CustomerIncome    decimal.Decimal    `json:"customerIncome"`
	Items             []OrderItemRequest `json:"items,omitempty"`
	InstallmentPeriod int                `json:"installmentPeriod"`
}

// GetOrderRequest identifies an order. Admins may read any company's orders.
type GetOrderRequest struct {
	CompanyID string
	OrderID   string
	IsAdmin   bool
}

// ListOrdersRequest selects a page of a company's orders, newest first.
type ListOrdersRequest struct {
	CompanyID string
	Status    string
	Limit     int
	Offset    int
}

// ReviewOrderRequest is an admin decision on a pending order.
type ReviewOrderRequest struct {
	OrderID    string `json:"-"`
	ReviewerID string `json:"-"`
	Decision   string `json:"decision"`
	Reason     string `json:"reason"`
}

// UpdateOrderStatusRequest moves an order along its fulfilment lifecycle.
// Merchants may change their own orders; admins may change any order.
type UpdateOrderStatusRequest struct {
	OrderID   string `json:"-"`
	ActorID   string `json:"-"`
	CompanyID string `json:"-"`
	IsAdmin   bool   `json:"-"`
	Status    string `json:"status"`
	Reason    string `json:"reason"`
}

// ListCompaniesRequest selects a page of merchant companies for admins.
type ListCompaniesRequest struct {
	Locked *bool
	Search string
	Limit  int
	Offset int
}

// SetCompanyLockRequest locks or unlocks a company. IsLocked is required.
type SetCompanyLockRequest struct {
	IsLocked  *bool  `json:"isLocked"`
	CompanyID string `json:"-"`
	AdminID   string `json:"-"`
}

// Review decisions.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// RiskAssessmentResponse is the external representation of a risk assessment.
// DebtToIncomeRatio is null when the income could not be scored.
type RiskAssessmentResponse struct {
	DebtToIncomeRatio       *float64        `json:"debtToIncomeRatio"`
	RiskLevel               string          `json:"riskLevel"`
	Message                 string          `json:"message"`
	MonthlyPayment          decimal.Decimal `json:"monthlyPayment"`
	TotalAmountWithInterest decimal.Decimal `json:"totalAmountWithInterest"`
	AdjustedInterestRate    decimal.Decimal `json:"adjustedInterestRate"`
	RiskScore               int             `json:"riskScore"`
}

// QuoteResponse is a priced order that has not been stored.
type QuoteResponse struct {
	Assessment              RiskAssessmentResponse `json:"riskAssessment"`
	InterestRate            decimal.Decimal        `json:"interestRate"`
	MonthlyPayment          decimal.Decimal        `json:"monthlyPayment"`
	TotalAmountWithInterest decimal.Decimal        `json:"totalAmountWithInterest"`
	Status                  string                 `json:"status"`
}

// OrderItemResponse is one stored order line.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Quantity  int             `json:"quantity"`
}

// InstallmentResponse is one row of an order's repayment schedule.
type InstallmentResponse struct {
	DueDate          time.Time       `json:"dueDate"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	Period           int             `json:"period"`
}

// OrderResponse is the external representation of an order.
type OrderResponse struct {
	CreatedAt               time.Time               `json:"createdAt"`
	UpdatedAt               time.Time               `json:"updatedAt"`
	RiskAssessment          *RiskAssessmentResponse `json:"riskAssessment,omitempty"`
	ID                      string                  `json:"id"`
	CompanyID               string                  `json:"companyId"`
	UserID                  string                  `json:"userId,omitempty"`
	Buyer                   string                  `json:"buyer"`
	InvoiceNumber           string                  `json:"invoiceNumber"`
	Status                  string                  `json:"status"`
	RiskLevel               string                  `json:"riskLevel"`
	ReviewReason            string                  `json:"reviewReason,omitempty"`
	Amount                  decimal.Decimal         `json:"amount"`
	InterestRate            decimal.Decimal         `json:"interestRate"`
	CustomerIncome          decimal.Decimal         `json:"customerIncome"`
	MonthlyPayment          decimal.Decimal         `json:"monthlyPayment"`
	TotalAmountWithInterest decimal.Decimal         `json:"totalAmountWithInterest"`
	Items                   []OrderItemResponse     `json:"items"`
	Schedule                []InstallmentResponse   `json:"schedule,omitempty"`
	PaymentTerms            int                     `json:"paymentTerms"`
	InstallmentPeriod       int                     `json:"installmentPeriod"`
	RiskScore               int                     `json:"riskScore"`
	ApprovedByAdmin         bool                    `json:"approvedByAdmin"`
}

// CompanyResponse is a merchant company as seen by admins. OrderCount and
// TotalSpent cover paid, shipping and completed orders.
type CompanyResponse struct {
	CreatedAt  time.Time       `json:"createdAt"`
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	OrderCount int             `json:"orderCount"`
	IsLocked   bool            `json:"isLocked"`
}

// ListCompaniesResponse wraps a page of companies.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// ListOrdersResponse wraps a page of orders.
type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}
