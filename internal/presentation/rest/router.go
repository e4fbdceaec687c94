package rest

import (
	"log/slog"
	"net/http"

	"github.com/Rangdog/hanbin/pkg/auth"
)

// RouterConfig collects the handlers served over HTTP.
type RouterConfig struct {
	Orders         *OrderHandler
	Companies      *CompanyHandler
	Health         *HealthHandler
	MetricsHandler http.Handler
	JWT            *auth.JWTService
	PreviewLimiter *RateLimiter
	Logger         *slog.Logger
}

// NewRouter builds the HTTP handler: health probes, /metrics, the order API
// and admin company management, all behind request logging.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	cfg.Health.RegisterRoutes(mux)
	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", cfg.MetricsHandler)
	}
	cfg.Orders.RegisterRoutes(mux, cfg.JWT, cfg.PreviewLimiter)
	if cfg.Companies != nil {
		cfg.Companies.RegisterRoutes(mux, cfg.JWT)
	}

	return Chain(mux, LoggingMiddleware(cfg.Logger))
}
