package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Rangdog/hanbin/internal/application/dto"
	"github.com/Rangdog/hanbin/internal/application/usecase"
	"github.com/Rangdog/hanbin/pkg/auth"
)

// CompanyHandler serves admin management of merchant companies.
type CompanyHandler struct {
	list   *usecase.ListCompaniesUseCase
	lock   *usecase.SetCompanyLockUseCase
	orders *usecase.ListCompanyOrdersUseCase
	logger *slog.Logger
}

// NewCompanyHandler creates a CompanyHandler.
func NewCompanyHandler(
	list *usecase.ListCompaniesUseCase,
	lock *usecase.SetCompanyLockUseCase,
	orders *usecase.ListCompanyOrdersUseCase,
	logger *slog.Logger,
) *CompanyHandler {
	return &CompanyHandler{list: list, lock: lock, orders: orders, logger: logger}
}

// RegisterRoutes attaches the admin company API to mux. Every route requires
// the admin role.
func (h *CompanyHandler) RegisterRoutes(mux *http.ServeMux, jwtService *auth.JWTService) {
	admin := []Middleware{AuthMiddleware(jwtService), RequireRole(auth.RoleAdmin)}

	mux.Handle("GET /api/v1/admin/companies", Chain(http.HandlerFunc(h.ListCompanies), admin...))
	mux.Handle("GET /api/v1/admin/companies/{id}/orders", Chain(http.HandlerFunc(h.ListCompanyOrders), admin...))
	mux.Handle("PUT /api/v1/admin/companies/{id}/lock", Chain(http.HandlerFunc(h.SetLock), admin...))
}

// ListCompanies returns companies with their settled order totals. Query
// parameters: search, locked, limit, offset.
func (h *CompanyHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := dto.ListCompaniesRequest{Search: q.Get("search")}

	var err error
	if req.Limit, err = queryInt(q.Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("limit: %v", err))
		return
	}
	if req.Offset, err = queryInt(q.Get("offset")); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("offset: %v", err))
		return
	}
	if raw := q.Get("locked"); raw != "" {
		locked, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "locked: must be true or false")
			return
		}
		req.Locked = &locked
	}

	resp, err := h.list.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListCompanyOrders returns one company's orders, newest first.
func (h *CompanyHandler) ListCompanyOrders(w http.ResponseWriter, r *http.Request) {
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

	resp, err := h.orders.Execute(r.Context(), dto.ListOrdersRequest{
		CompanyID: r.PathValue("id"),
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

// SetLock locks or unlocks a company. Body: {"isLocked": bool}.
func (h *CompanyHandler) SetLock(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req dto.SetCompanyLockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.CompanyID = r.PathValue("id")
	req.AdminID = claims.UserID.String()

	resp, err := h.lock.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
