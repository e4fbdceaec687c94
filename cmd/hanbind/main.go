package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rangdog/hanbin/internal/application/usecase"
	"github.com/Rangdog/hanbin/internal/domain/port"
	"github.com/Rangdog/hanbin/internal/infrastructure/cache"
	"github.com/Rangdog/hanbin/internal/infrastructure/config"
	"github.com/Rangdog/hanbin/internal/infrastructure/kafka"
	"github.com/Rangdog/hanbin/internal/infrastructure/metrics"
	pgRepo "github.com/Rangdog/hanbin/internal/infrastructure/postgres"
	grpcPresentation "github.com/Rangdog/hanbin/internal/presentation/grpc"
	"github.com/Rangdog/hanbin/internal/presentation/rest"
	"github.com/Rangdog/hanbin/pkg/auth"
	pkgkafka "github.com/Rangdog/hanbin/pkg/kafka"
	"github.com/Rangdog/hanbin/pkg/observability"
	pkgpostgres "github.com/Rangdog/hanbin/pkg/postgres"
	"github.com/Rangdog/hanbin/pkg/tlsutil"
)

func main() {
	if err := run(); err != nil {
		slog.Error("hanbind exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Money is rendered as JSON numbers for the web client.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting hanbind",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Tracing.
	if cfg.Tracing.Endpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck
	recorder, err := metrics.NewDecisionRecorder(meterProvider.Meter("github.com/Rangdog/hanbin"))
	if err != nil {
		return fmt.Errorf("init decision recorder: %w", err)
	}

	// Database connection and migrations.
	dbCfg := pkgpostgres.Config{
		Host:            cfg.DB.Host,
		Port:            cfg.DB.Port,
		User:            cfg.DB.User,
		Password:        cfg.DB.Password,
		Database:        cfg.DB.Name,
		SSLMode:         cfg.DB.SSLMode,
		ApplicationName: cfg.ServiceName,
		MaxConns:        int32(cfg.DB.MaxConns), //nolint:gosec // small configured value
	}
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(dbCfg.DSN(), cfg.DB.MigrationsPath); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	readiness := map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
	}

	// Preview cache. Redis is optional: previews are recomputed without it.
	var assessmentCache port.AssessmentCache
	if cfg.Redis.PreviewTTL > 0 {
		redisClient, err := cache.NewClient(ctx, cache.ClientConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warn("redis unavailable, preview cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			assessmentCache = cache.NewRedisAssessmentCache(redisClient, cfg.Redis.PreviewTTL)
			readiness["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		}
	}

	// Event publishing.
	var publisher port.EventPublisher = kafka.NewLogPublisher(logger)
	if cfg.Kafka.Enabled {
		producer, err := pkgkafka.NewProducer(pkgkafka.Config{
			Brokers:       cfg.Kafka.Brokers,
			ClientID:      cfg.Kafka.ClientID,
			TLS:           cfg.Kafka.TLS,
			SASLEnabled:   cfg.Kafka.SASLEnabled,
			SASLMechanism: cfg.Kafka.SASLMechanism,
			SASLUsername:  cfg.Kafka.SASLUsername,
			SASLPassword:  cfg.Kafka.SASLPassword,
		})
		if err != nil {
			return fmt.Errorf("create kafka producer: %w", err)
		}
		defer producer.Close()
		publisher = kafka.NewOrderEventPublisher(producer, cfg.Kafka.TopicPrefix, logger)
	}

	// Repositories and use cases.
	orderRepo := pgRepo.NewOrderRepo(pool)
	companyRepo := pgRepo.NewCompanyRepo(pool)

	assessUC := usecase.NewAssessRiskUseCase(assessmentCache, recorder, logger)
	quoteUC := usecase.NewQuoteOrderUseCase(recorder)
	createUC := usecase.NewCreateOrderUseCase(orderRepo, companyRepo, publisher, recorder, logger)
	getUC := usecase.NewGetOrderUseCase(orderRepo)
	listUC := usecase.NewListOrdersUseCase(orderRepo)
	reviewUC := usecase.NewReviewOrderUseCase(orderRepo, publisher, recorder, logger)
	statusUC := usecase.NewUpdateOrderStatusUseCase(orderRepo, publisher, logger)
	listCompaniesUC := usecase.NewListCompaniesUseCase(companyRepo)
	lockUC := usecase.NewSetCompanyLockUseCase(companyRepo, publisher, logger)
	companyOrdersUC := usecase.NewListCompanyOrdersUseCase(companyRepo, orderRepo)

	jwtSvc, err := newJWTService(cfg.JWT)
	if err != nil {
		return fmt.Errorf("init JWT service: %w", err)
	}

	// gRPC server.
	grpcOpts := grpcPresentation.ServerOptions{HealthName: cfg.ServiceName, Reflection: true}
	if cfg.TLS.Enabled {
		creds, err := tlsutil.ServerCredentials(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			return fmt.Errorf("load TLS credentials: %w", err)
		}
		grpcOpts.Creds = creds
	}
	grpcServer := grpcPresentation.NewServer(
		grpcPresentation.NewRiskHandler(assessUC, quoteUC, logger),
		jwtSvc, grpcOpts, logger,
	)

	// HTTP server.
	router := rest.NewRouter(rest.RouterConfig{
		Orders:         rest.NewOrderHandler(assessUC, createUC, getUC, listUC, reviewUC, statusUC, logger),
		Companies:      rest.NewCompanyHandler(listCompaniesUC, lockUC, companyOrdersUC, logger),
		Health:         rest.NewHealthHandler(cfg.ServiceName, readiness, logger),
		MetricsHandler: metricsHandler,
		JWT:            jwtSvc,
		PreviewLimiter: rest.NewRateLimiter(cfg.RateLimit.PreviewPerSecond, cfg.RateLimit.PreviewBurst),
		Logger:         logger,
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("hanbind stopped")
	return serveErr
}

// newJWTService builds a validation JWT service: a public key file when
// configured, otherwise the shared secret.
func newJWTService(cfg config.JWTConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{
		Issuer:     cfg.Issuer,
		Expiration: cfg.Expiration,
	}
	if cfg.PublicKeyPath != "" {
		keyData, err := auth.LoadKeyFromFile(cfg.PublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("load public key: %w", err)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	} else {
		jwtCfg.Secret = cfg.Secret
	}
	return auth.NewJWTService(jwtCfg)
}
