package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/Rangdog/hanbin/internal/application/dto"
	"github.com/Rangdog/hanbin/internal/application/usecase"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

// Compile-time assertion that RiskHandler implements RiskServiceServer.
var _ RiskServiceServer = (*RiskHandler)(nil)

// RiskHandler exposes the risk preview and pricing over gRPC for internal
// callers such as the checkout service.
type RiskHandler struct {
	UnimplementedRiskServiceServer
	assess *usecase.AssessRiskUseCase
	quote  *usecase.QuoteOrderUseCase
	logger *slog.Logger
}

func NewRiskHandler(assess *usecase.AssessRiskUseCase, quote *usecase.QuoteOrderUseCase, logger *slog.Logger) *RiskHandler {
	return &RiskHandler{assess: assess, quote: quote, logger: logger}
}

// AssessRisk returns the preview assessment.
func (h *RiskHandler) AssessRisk(ctx context.Context, req *AssessRiskRequest) (*AssessRiskResponse, error) {
	in, err := parseRiskRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := h.assess.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &AssessRiskResponse{Assessment: toAssessmentMsg(resp)}, nil
}

// QuoteOrder prices a request. Very-high risk yields FailedPrecondition.
func (h *RiskHandler) QuoteOrder(ctx context.Context, req *QuoteOrderRequest) (*QuoteOrderResponse, error) {
	in, err := parseRiskRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := h.quote.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &QuoteOrderResponse{
		Assessment:              toAssessmentMsg(resp.Assessment),
		QuotedAt:                timestamppb.Now(),
		InterestRate:            resp.InterestRate.String(),
		MonthlyPayment:          resp.MonthlyPayment.StringFixed(2),
		TotalAmountWithInterest: resp.TotalAmountWithInterest.StringFixed(2),
		Status:                  resp.Status,
	}, nil
}

func parseRiskRequest(req *AssessRiskRequest) (dto.AssessRiskRequest, error) {
	if req == nil {
		return dto.AssessRiskRequest{}, status.Error(codes.InvalidArgument, "request is required")
	}
	income, err := decimal.NewFromString(req.CustomerIncome)
	if err != nil {
		return dto.AssessRiskRequest{}, status.Errorf(codes.InvalidArgument, "invalid customer_income: %v", err)
	}
	amount, err := decimal.NewFromString(req.OrderAmount)
	if err != nil {
		return dto.AssessRiskRequest{}, status.Errorf(codes.InvalidArgument, "invalid order_amount: %v", err)
	}
	return dto.AssessRiskRequest{
		CustomerIncome:    income,
		OrderAmount:       amount,
		InstallmentPeriod: int(req.InstallmentPeriod),
	}, nil
}

func toAssessmentMsg(a dto.RiskAssessmentResponse) *RiskAssessmentMsg {
	return &RiskAssessmentMsg{
		RiskScore:               int32(a.RiskScore), //nolint:gosec // score is within 0..100
		RiskLevel:               a.RiskLevel,
		DebtToIncomeRatio:       a.DebtToIncomeRatio,
		MonthlyPayment:          a.MonthlyPayment.StringFixed(2),
		TotalAmountWithInterest: a.TotalAmountWithInterest.StringFixed(2),
		AdjustedInterestRate:    a.AdjustedInterestRate.StringFixed(2),
		Message:                 a.Message,
	}
}

func (h *RiskHandler) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, valueobject.ErrRiskTooHigh):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, valueobject.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		h.logger.ErrorContext(ctx, "risk rpc failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
