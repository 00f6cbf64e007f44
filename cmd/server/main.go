package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/dairyledger/internal/adapter/http"
	"github.com/iho/dairyledger/internal/adapter/http/handler"
	"github.com/iho/dairyledger/internal/adapter/http/middleware"
	"github.com/iho/dairyledger/internal/adapter/repository/jsonfile"
	redisRepo "github.com/iho/dairyledger/internal/adapter/repository/redis"
	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/infrastructure/auth"
	"github.com/iho/dairyledger/internal/infrastructure/config"
	"github.com/iho/dairyledger/internal/infrastructure/logger"
	"github.com/iho/dairyledger/internal/infrastructure/metrics"
	"github.com/iho/dairyledger/internal/infrastructure/redis"
	"github.com/iho/dairyledger/internal/usecase"
)

const (
	limiterCleanupInterval = time.Minute
	limiterIdleTimeout     = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLog); err != nil {
		appLog.Fatal().Err(err).Msg("server failed")
	}
}

// app is the wired service: the HTTP handler plus what must be closed on exit.
type app struct {
	handler http.Handler
	limiter *middleware.RateLimiter
	redis   *goredis.Client
}

// newApp opens the data directory, seeds the admin account and wires every
// use case and handler. Metrics are registered on reg.
func newApp(ctx context.Context, cfg *config.Config, appLog zerolog.Logger, reg *prometheus.Registry) (*app, error) {
	m := metrics.NewWithRegisterer(reg)
	conv := domain.DefaultDateConverter
	clock := usecase.SystemClock{Location: cfg.Location()}

	// Open the record store
	retrier := jsonfile.NewRetrierWithConfig(appLog, jsonfile.RetrierConfig{
		MaxRetries:      cfg.StoreRetryMax,
		InitialInterval: cfg.StoreRetryInterval,
		MaxElapsedTime:  cfg.StoreRetryMaxWait,
	})
	store, err := jsonfile.Open(cfg.DataDir,
		jsonfile.WithRetrier(retrier),
		jsonfile.WithLogger(appLog),
		jsonfile.WithMetrics(m),
		jsonfile.WithDateConverter(conv),
	)
	if err != nil {
		return nil, fmt.Errorf("open data directory: %w", err)
	}
	appLog.Info().Str("dir", store.Dir()).Msg("opened data directory")

	// Initialize repositories
	customerRepo := jsonfile.NewCustomerRepository(store)
	entryRepo := jsonfile.NewMilkEntryRepository(store)
	paymentRepo := jsonfile.NewPaymentRepository(store)
	rateRepo := jsonfile.NewRateRepository(store)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize use cases
	customerUC := usecase.NewCustomerUseCase(customerRepo, entryRepo, paymentRepo, m)
	milkUC := usecase.NewMilkUseCase(entryRepo, customerRepo, rateRepo, conv, clock, m)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, customerRepo, clock, m)
	rateUC := usecase.NewRateUseCase(rateRepo, customerRepo, clock)
	reportUC := usecase.NewReportUseCase(customerRepo, entryRepo, paymentRepo, rateRepo, conv, clock)
	authUC := usecase.NewAuthUseCase(customerRepo, jwtManager, m)

	if cfg.AdminPassword != "" {
		created, err := authUC.EnsureAdmin(ctx, usecase.EnsureAdminInput{
			ID:       cfg.AdminID,
			Name:     cfg.AdminName,
			Password: cfg.AdminPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("seed admin account: %w", err)
		}
		if created {
			appLog.Info().Str("admin_id", cfg.AdminID).Msg("created admin account")
		}
	}

	a := &app{
		limiter: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m),
	}

	// Connect to Redis when idempotency keys are enabled
	var (
		idempotencyStore usecase.IdempotencyStore
		redisPinger      handler.Pinger
	)
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.redis = client
		idempotencyStore = redisRepo.NewIdempotencyStore(client, m)
		redisPinger = redis.Checker{Client: client}
		appLog.Info().Msg("connected to redis")
	}

	if !cfg.AuthEnabled {
		appLog.Warn().Str("admin_id", cfg.AdminID).Msg("authentication disabled, every request acts as admin")
	}

	a.handler = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		CustomerHandler:  handler.NewCustomerHandler(customerUC),
		MilkHandler:      handler.NewMilkHandler(milkUC),
		PaymentHandler:   handler.NewPaymentHandler(paymentUC),
		RateHandler:      handler.NewRateHandler(rateUC, clock),
		ReportHandler:    handler.NewReportHandler(reportUC),
		CalendarHandler:  handler.NewCalendarHandler(conv, clock),
		AuthHandler:      handler.NewAuthHandler(authUC, cfg.JWTExpiration, cfg.SessionCookieSecure),
		PageHandler:      handler.NewPageHandler(reportUC, authUC, conv, cfg.JWTExpiration, cfg.SessionCookieSecure),
		HealthHandler:    handler.NewHealthHandler(store, redisPinger),
		Verifier:         jwtManager,
		AuthEnabled:      cfg.AuthEnabled,
		AdminID:          cfg.AdminID,
		Logger:           appLog,
		Metrics:          m,
		Gatherer:         reg,
		RateLimiter:      a.limiter,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
	})

	return a, nil
}

// Close releases the Redis connection, if any.
func (a *app) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}

// cleanupLimiters drops idle per-IP limiters until ctx is done.
func (a *app) cleanupLimiters(ctx context.Context, appLog zerolog.Logger) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.limiter.CleanupLimiters(limiterIdleTimeout); n > 0 {
				appLog.Debug().Int("removed", n).Msg("cleaned up idle rate limiters")
			}
		}
	}
}

func run(ctx context.Context, cfg *config.Config, appLog zerolog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a, err := newApp(ctx, cfg, appLog, reg)
	if err != nil {
		return err
	}
	defer a.Close()

	go a.cleanupLimiters(ctx, appLog)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		appLog.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	appLog.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLog.Info().Msg("server stopped")
	return nil
}
