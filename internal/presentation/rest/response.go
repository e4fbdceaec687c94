package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Rangdog/hanbin/internal/application/dto"
	"github.com/Rangdog/hanbin/internal/application/usecase"
	"github.com/Rangdog/hanbin/internal/domain/model"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// refusalResponse is the 422 body of an order refused for very-high risk.
type refusalResponse struct {
	Error          string                     `json:"error"`
	RiskAssessment dto.RiskAssessmentResponse `json:"riskAssessment"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// statusForError maps domain and application errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, valueobject.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, valueobject.ErrRiskTooHigh):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrOrderNotFound),
		errors.Is(err, model.ErrCompanyNotFound),
		errors.Is(err, model.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrCompanyLocked):
		return http.StatusForbidden
	case errors.Is(err, valueobject.ErrInvalidStatusTransition),
		errors.Is(err, model.ErrConcurrentUpdate),
		errors.Is(err, model.ErrInsufficientStock),
		errors.Is(err, model.ErrProductUnavailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeUseCaseError renders err. Server faults are logged and their detail
// is not exposed.
func writeUseCaseError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var refused *usecase.RiskRefusedError
	if errors.As(err, &refused) {
		writeJSON(w, http.StatusUnprocessableEntity, refusalResponse{
			Error:          refused.Error(),
			RiskAssessment: refused.Assessment,
		})
		return
	}

	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, err.Error())
}
