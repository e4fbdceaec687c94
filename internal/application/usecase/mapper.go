package usecase

import (
	"go.opentelemetry.io/otel"

	"github.com/Rangdog/hanbin/internal/application/dto"
	"github.com/Rangdog/hanbin/internal/domain/model"
	"github.com/Rangdog/hanbin/internal/domain/service"
)

var tracer = otel.Tracer("github.com/Rangdog/hanbin/internal/application/usecase")

func toAssessmentResponse(a service.RiskAssessment) dto.RiskAssessmentResponse {
	resp := dto.RiskAssessmentResponse{
		RiskScore:               a.RiskScore,
		RiskLevel:               a.RiskLevel.String(),
		MonthlyPayment:          a.MonthlyPayment,
		TotalAmountWithInterest: a.TotalAmountWithInterest,
		AdjustedInterestRate:    a.AdjustedInterestRate,
		Message:                 a.Message,
	}
	if !a.IsUnusable() {
		ratio := a.DebtToIncomeRatio
		resp.DebtToIncomeRatio = &ratio
	}
	return resp
}

func toQuoteResponse(q service.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		Assessment:              toAssessmentResponse(q.Assessment),
		InterestRate:            q.InterestRate,
		MonthlyPayment:          q.MonthlyPayment,
		TotalAmountWithInterest: q.TotalAmountWithInterest,
		Status:                  q.Status.String(),
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}

	return dto.OrderResponse{
		ID:                      o.ID(),
		CompanyID:               o.CompanyID(),
		UserID:                  o.UserID(),
		Buyer:                   o.Buyer(),
		InvoiceNumber:           o.InvoiceNumber(),
		Status:                  o.Status().String(),
		RiskLevel:               o.RiskLevel().String(),
		RiskScore:               o.RiskScore(),
		ReviewReason:            o.ReviewReason(),
		Amount:                  o.Amount(),
		InterestRate:            o.InterestRate(),
		CustomerIncome:          o.CustomerIncome(),
		MonthlyPayment:          o.MonthlyPayment(),
		TotalAmountWithInterest: o.TotalAmountWithInterest(),
		PaymentTerms:            o.PaymentTerms(),
		InstallmentPeriod:       o.InstallmentPeriod(),
		ApprovedByAdmin:         o.ApprovedByAdmin(),
		Items:                   items,
		CreatedAt:               o.CreatedAt(),
		UpdatedAt:               o.UpdatedAt(),
	}
}

func toScheduleResponse(entries []model.InstallmentEntry) []dto.InstallmentResponse {
	out := make([]dto.InstallmentResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.InstallmentResponse{
			Period:           e.Period,
			DueDate:          e.DueDate,
			Principal:        e.Principal,
			Interest:         e.Interest,
			Total:            e.Total,
			RemainingBalance: e.RemainingBalance,
		})
	}
	return out
}

func toCompanyResponse(c model.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		IsLocked:  c.IsLocked,
		CreatedAt: c.CreatedAt,
	}
}
