package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Rangdog/hanbin/internal/application/dto"
	"github.com/Rangdog/hanbin/internal/application/usecase"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
	"github.com/Rangdog/hanbin/pkg/auth"
)

// OrderHandler serves the merchant order API and the admin review endpoint.
type OrderHandler struct {
	assess *usecase.AssessRiskUseCase
	create *usecase.CreateOrderUseCase
	get    *usecase.GetOrderUseCase
	list   *usecase.ListOrdersUseCase
	review *usecase.ReviewOrderUseCase
	status *usecase.UpdateOrderStatusUseCase
	logger *slog.Logger
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(
	assess *usecase.AssessRiskUseCase,
	create *usecase.CreateOrderUseCase,
	get *usecase.GetOrderUseCase,
	list *usecase.ListOrdersUseCase,
	review *usecase.ReviewOrderUseCase,
	status *usecase.UpdateOrderStatusUseCase,
	logger *slog.Logger,
) *OrderHandler {
	return &OrderHandler{
		assess: assess,
		create: create,
		get:    get,
		list:   list,
		review: review,
		status: status,
		logger: logger,
	}
}

// RegisterRoutes attaches the order API to mux. Every route requires a valid
// token; the preview is rate limited and reviews require the admin role.
func (h *OrderHandler) RegisterRoutes(mux *http.ServeMux, jwtService *auth.JWTService, limiter *RateLimiter) {
	authn := AuthMiddleware(jwtService)

	mux.Handle("POST /api/v1/orders/calculate-risk",
		Chain(http.HandlerFunc(h.CalculateRisk), authn, RateLimitMiddleware(limiter)))
	mux.Handle("POST /api/v1/orders", Chain(http.HandlerFunc(h.CreateOrder), authn))
	mux.Handle("GET /api/v1/orders", Chain(http.HandlerFunc(h.ListOrders), authn))
	mux.Handle("GET /api/v1/orders/{id}", Chain(http.HandlerFunc(h.GetOrder), authn))
	mux.Handle("PATCH /api/v1/orders/{id}/status", Chain(http.HandlerFunc(h.UpdateOrderStatus), authn))
	mux.Handle("POST /api/v1/admin/orders/{id}/review",
		Chain(http.HandlerFunc(h.ReviewOrder), authn, RequireRole(auth.RoleAdmin)))
}

// CalculateRisk returns a live risk preview without storing anything.
func (h *OrderHandler) CalculateRisk(w http.ResponseWriter, r *http.Request) {
	var req dto.AssessRiskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.assess.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateOrder submits a financed order for the caller's company.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req dto.CreateOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.CompanyID = claims.CompanyID.String()
	req.UserID = claims.UserID.String()

	resp, err := h.create.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// ListOrders returns the caller's orders, newest first.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	q := r.URL.Query()
	limit, err := queryInt(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("limit: %v", err))
		return
	}
	offset, err := queryInt(q.Get("offset"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("offset: %v", err))
		return
	}

	resp, err := h.list.Execute(r.Context(), dto.ListOrdersRequest{
		CompanyID: claims.CompanyID.String(),
		Status:    q.Get("status"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetOrder returns one order with its installment schedule.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	resp, err := h.get.Execute(r.Context(), dto.GetOrderRequest{
		CompanyID: claims.CompanyID.String(),
		OrderID:   r.PathValue("id"),
		IsAdmin:   claims.IsAdmin(),
	})
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ReviewOrder applies an admin decision to a pending order.
func (h *OrderHandler) ReviewOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req dto.ReviewOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OrderID = r.PathValue("id")
	req.ReviewerID = claims.UserID.String()

	resp, err := h.review.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateOrderStatus moves an order through payment, shipping, completion or
// cancellation. Owners and admins may change an order.
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OrderID = r.PathValue("id")
	req.ActorID = claims.UserID.String()
	req.CompanyID = claims.CompanyID.String()
	req.IsAdmin = claims.IsAdmin()

	resp, err := h.status.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: not an integer", valueobject.ErrInvalidInput)
	}
	return n, nil
}
