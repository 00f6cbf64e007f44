package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Collection metrics
	EntriesCreated  *prometheus.CounterVec
	LitersCollected *prometheus.CounterVec
	EntriesUpdated  prometheus.Counter
	EntriesDeleted  prometheus.Counter
	RateResolutions *prometheus.CounterVec

	// Payment metrics
	PaymentsCreated prometheus.Counter
	PaymentAmount   prometheus.Histogram

	// Customer metrics
	CustomersCreated prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Store metrics
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec
	StoreErrors     *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all metrics on the default Prometheus registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates all metrics and registers them on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Collection metrics
		EntriesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairyledger_milk_entries_created_total",
				Help: "Total number of milk entries created by shift",
			},
			[]string{"shift"},
		),
		LitersCollected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairyledger_liters_collected_total",
				Help: "Total liters of milk recorded by shift",
			},
			[]string{"shift"},
		),
		EntriesUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "dairyledger_milk_entries_updated_total",
			Help: "Total number of milk entries updated",
		}),
		EntriesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "dairyledger_milk_entries_deleted_total",
			Help: "Total number of milk entries deleted",
		}),
		RateResolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairyledger_rate_resolutions_total",
				Help: "Rate lookups by outcome (explicit, resolved, missing)",
			},
			[]string{"outcome"},
		),

		// Payment metrics
		PaymentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "dairyledger_payments_created_total",
			Help: "Total number of payments recorded",
		}),
		PaymentAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dairyledger_payment_amount",
			Help:    "Payment amounts",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000},
		}),

		// Customer metrics
		CustomersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "dairyledger_customers_created_total",
			Help: "Total number of customers created",
		}),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairyledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dairyledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "dairyledger_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		// Store metrics
		StoreOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairyledger_store_operations_total",
				Help: "Total record store operations",
			},
			[]string{"operation", "file"},
		),
		StoreDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dairyledger_store_duration_seconds",
				Help:    "Record store operation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "file"},
		),
		StoreErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairyledger_store_errors_total",
				Help: "Total record store errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairyledger_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairyledger_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairyledger_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairyledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
