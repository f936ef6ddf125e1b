package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for recommendation service calls.
type Metrics struct {
	// Request latency against the external recommender
	RequestLatency prometheus.Histogram

	// Request outcomes: "ok", "service_error", "network_error", "superseded"
	RequestOutcome *prometheus.CounterVec

	// Size of returned recommendation sets
	ResultCount prometheus.Histogram
}

// New creates a Metrics instance with all recommender metrics registered.
func New() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "advisor_recommend_request_duration_seconds",
			Help:    "Duration of calls to the external recommendation service",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		RequestOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "advisor_recommend_requests_total",
			Help: "Total recommendation requests by outcome",
		}, []string{"outcome"}),

		ResultCount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "advisor_recommend_result_count",
			Help:    "Number of recommendations returned per successful request",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
	}
}

// ObserveRequestLatency records the duration of a recommender call.
func (m *Metrics) ObserveRequestLatency(d time.Duration) {
	if m != nil {
		m.RequestLatency.Observe(d.Seconds())
	}
}

// IncrementOutcome records a request outcome.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.RequestOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveResultCount records the size of a returned recommendation set.
func (m *Metrics) ObserveResultCount(n int) {
	if m != nil {
		m.ResultCount.Observe(float64(n))
	}
}
