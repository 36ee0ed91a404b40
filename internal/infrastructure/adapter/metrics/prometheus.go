// Package metrics exports ledger telemetry to Prometheus
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
)

const namespace = "credit_exchange"

// PrometheusRecorder implements core.MetricsRecorder
type PrometheusRecorder struct {
	operations      *prometheus.CounterVec
	durations       *prometheus.HistogramVec
	retries         *prometheus.CounterVec
	tokensClaimed   prometheus.Counter
	creditsRedeemed prometheus.Counter
}

// NewPrometheusRecorder registers the ledger collectors with reg
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "operations_total",
			Help:      "Ledger operations by outcome (success or error kind).",
		}, []string{"operation", "outcome"}),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "operation_duration_seconds",
			Help:      "Ledger operation latency including retries.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),
		retries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "retries_total",
			Help:      "Units of work re-run after losing a concurrent race.",
		}, []string{"operation"}),
		tokensClaimed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "tokens_claimed_total",
			Help:      "Inventory items handed out by exchanges.",
		}),
		creditsRedeemed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "keys",
			Name:      "credits_redeemed_total",
			Help:      "Request units credited through key redemption.",
		}),
	}
}

func (r *PrometheusRecorder) ObserveOperation(operation, outcome string, elapsed coreport.Duration) {
	r.operations.WithLabelValues(operation, outcome).Inc()
	r.durations.WithLabelValues(operation).Observe(elapsed.Std().Seconds())
}

func (r *PrometheusRecorder) IncRetry(operation string) {
	r.retries.WithLabelValues(operation).Inc()
}

func (r *PrometheusRecorder) AddTokensClaimed(n int) {
	r.tokensClaimed.Add(float64(n))
}

func (r *PrometheusRecorder) AddCreditsRedeemed(amount int64) {
	r.creditsRedeemed.Add(float64(amount))
}

// NoopRecorder discards all telemetry
type NoopRecorder struct{}

// NewNoopRecorder creates a recorder for tests and disabled metrics
func NewNoopRecorder() coreport.MetricsRecorder { return NoopRecorder{} }

func (NoopRecorder) ObserveOperation(string, string, coreport.Duration) {}
func (NoopRecorder) IncRetry(string)                                   {}
func (NoopRecorder) AddTokensClaimed(int)                              {}
func (NoopRecorder) AddCreditsRedeemed(int64)                          {}
