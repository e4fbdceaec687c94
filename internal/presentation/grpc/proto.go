package grpc

// proto.go defines the gRPC server interface of hanbin.bnpl.v1.RiskService.
// Messages travel with the JSON codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const riskServiceName = "hanbin.bnpl.v1.RiskService"

// Full method names, as seen by interceptors.
const (
	MethodAssessRisk = "/" + riskServiceName + "/AssessRisk"
	MethodQuoteOrder = "/" + riskServiceName + "/QuoteOrder"
)

// RiskServiceServer is the server API for RiskService.
type RiskServiceServer interface {
	AssessRisk(context.Context, *AssessRiskRequest) (*AssessRiskResponse, error)
	QuoteOrder(context.Context, *QuoteOrderRequest) (*QuoteOrderResponse, error)
	mustEmbedUnimplementedRiskServiceServer()
}

// UnimplementedRiskServiceServer provides forward-compatible default implementations.
type UnimplementedRiskServiceServer struct{}

func (UnimplementedRiskServiceServer) AssessRisk(context.Context, *AssessRiskRequest) (*AssessRiskResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessRisk not implemented")
}
func (UnimplementedRiskServiceServer) QuoteOrder(context.Context, *QuoteOrderRequest) (*QuoteOrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method QuoteOrder not implemented")
}
func (UnimplementedRiskServiceServer) mustEmbedUnimplementedRiskServiceServer() {}

// RegisterRiskServiceServer registers srv with the gRPC server.
func RegisterRiskServiceServer(s *grpclib.Server, srv RiskServiceServer) {
	s.RegisterService(&riskServiceDesc, srv)
}

var riskServiceDesc = grpclib.ServiceDesc{
	ServiceName: riskServiceName,
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessRisk", Handler: assessRiskHandler},
		{MethodName: "QuoteOrder", Handler: quoteOrderHandler},
	},
	Streams: []grpclib.StreamDesc{},
}

func assessRiskHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(AssessRiskRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RiskServiceServer).AssessRisk(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodAssessRisk}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RiskServiceServer).AssessRisk(ctx, req.(*AssessRiskRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func quoteOrderHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(QuoteOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RiskServiceServer).QuoteOrder(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodQuoteOrder}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RiskServiceServer).QuoteOrder(ctx, req.(*QuoteOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// AssessRiskRequest carries decimal amounts as strings.
type AssessRiskRequest struct {
	CustomerIncome    string `json:"customer_income"`
	OrderAmount       string `json:"order_amount"`
	InstallmentPeriod int32  `json:"installment_period"`
}

type RiskAssessmentMsg struct {
	DebtToIncomeRatio       *float64 `json:"debt_to_income_ratio"`
	RiskLevel               string   `json:"risk_level"`
	Message                 string   `json:"message"`
	MonthlyPayment          string   `json:"monthly_payment"`
	TotalAmountWithInterest string   `json:"total_amount_with_interest"`
	AdjustedInterestRate    string   `json:"adjusted_interest_rate"`
	RiskScore               int32    `json:"risk_score"`
}

type AssessRiskResponse struct {
	Assessment *RiskAssessmentMsg `json:"assessment"`
}

type QuoteOrderRequest = AssessRiskRequest

type QuoteOrderResponse struct {
	Assessment              *RiskAssessmentMsg     `json:"assessment"`
	QuotedAt                *timestamppb.Timestamp `json:"quoted_at"`
	InterestRate            string                 `json:"interest_rate"`
	MonthlyPayment          string                 `json:"monthly_payment"`
	TotalAmountWithInterest string                 `json:"total_amount_with_interest"`
	Status                  string                 `json:"status"`
}
