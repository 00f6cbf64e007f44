package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/dairyledger/internal/adapter/http/handler"
	"github.com/iho/dairyledger/internal/adapter/http/middleware"
	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/infrastructure/metrics"
	"github.com/iho/dairyledger/internal/usecase"
)

// LoginPath is where the HTML pages send visitors without a session.
const LoginPath = "/login"

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	CustomerHandler *handler.CustomerHandler
	MilkHandler     *handler.MilkHandler
	PaymentHandler  *handler.PaymentHandler
	RateHandler     *handler.RateHandler
	ReportHandler   *handler.ReportHandler
	CalendarHandler *handler.CalendarHandler
	AuthHandler     *handler.AuthHandler
	PageHandler     *handler.PageHandler
	HealthHandler   *handler.HealthHandler

	// Verifier checks session tokens. Unused when AuthEnabled is false, in
	// which case every request acts as AdminID.
	Verifier    middleware.TokenVerifier
	AuthEnabled bool
	AdminID     string

	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	// RateLimiter throttles the login endpoints. Optional.
	RateLimiter *middleware.RateLimiter

	// IdempotencyStore enables Idempotency-Key handling. Optional.
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	limit := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimiter != nil {
		limit = cfg.RateLimiter.Limit
	}

	authenticate := middleware.AuthMiddleware(cfg.Verifier)
	session := middleware.SessionMiddleware(cfg.Verifier, LoginPath)
	if !cfg.AuthEnabled {
		static := middleware.StaticPrincipal(middleware.Principal{UserID: cfg.AdminID, Role: domain.RoleAdmin})
		authenticate, session = static, static
	}

	admin := middleware.RequireRole(domain.RoleAdmin)
	selfOrAdmin := middleware.RequireSelfOrAdmin("id")

	// HTML pages
	if cfg.PageHandler != nil {
		r.Get("/", cfg.PageHandler.Index)
		r.Get(LoginPath, cfg.PageHandler.LoginForm)
		r.With(limit).Post(LoginPath, cfg.PageHandler.LoginSubmit)

		r.Group(func(r chi.Router) {
			r.Use(session)
			r.With(admin).Get("/dashboard", cfg.PageHandler.Dashboard)
			r.With(selfOrAdmin).Get("/customers/{id}/statement", cfg.PageHandler.Statement)
		})
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.With(limit).Post("/auth/login", cfg.AuthHandler.Login)
		r.Post("/auth/logout", cfg.AuthHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
			}

			r.Get("/auth/me", cfg.AuthHandler.GetCurrentUser)

			// Customers
			r.Route("/customers", func(r chi.Router) {
				r.With(admin).Post("/", cfg.CustomerHandler.Create)
				r.With(admin).Get("/", cfg.CustomerHandler.List)
				r.With(selfOrAdmin).Get("/{id}", cfg.CustomerHandler.Get)
				r.With(admin).Put("/{id}", cfg.CustomerHandler.Update)
				r.With(selfOrAdmin).Get("/{id}/ledger", cfg.CustomerHandler.Ledger)
				r.With(selfOrAdmin).Get("/{id}/statement", cfg.ReportHandler.Statement)
			})

			// Milk entries
			r.Route("/milk", func(r chi.Router) {
				r.Get("/", cfg.MilkHandler.List)
				r.With(admin).Post("/", cfg.MilkHandler.Create)
				r.With(admin).Post("/batch", cfg.MilkHandler.CreateBatch)
				r.With(admin).Put("/{id}", cfg.MilkHandler.Update)
				r.With(admin).Delete("/{id}", cfg.MilkHandler.Delete)
			})

			// Payments
			r.Route("/payments", func(r chi.Router) {
				r.Get("/", cfg.PaymentHandler.List)
				r.With(admin).Post("/", cfg.PaymentHandler.Create)
			})

			// Rates
			r.Route("/rates", func(r chi.Router) {
				r.Use(admin)
				r.Get("/", cfg.RateHandler.List)
				r.Post("/", cfg.RateHandler.Set)
				r.Get("/current", cfg.RateHandler.Current)
			})

			// Calendar
			r.Route("/calendar", func(r chi.Router) {
				r.Get("/bs", cfg.CalendarHandler.ToBS)
				r.Get("/ad", cfg.CalendarHandler.ToAD)
			})

			// Reports
			r.With(admin).Get("/reports/dashboard", cfg.ReportHandler.Dashboard)
		})
	})

	return r
}
