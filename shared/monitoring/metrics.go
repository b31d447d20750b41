package monitoring

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	Validations     *prometheus.CounterVec
	VideoSelections *prometheus.CounterVec
	LLMCalls        *prometheus.CounterVec
	PlansGenerated  *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

var (
	metricsOnce   sync.Once
	sharedMetrics *Metrics
)

// NewMetrics registers the collectors once and returns the shared set.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		sharedMetrics = &Metrics{
			Validations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "wizqo_hobby_validations_total",
					Help: "Hobby validations by deciding tier and outcome",
				},
				[]string{"tier", "valid"},
			),
			VideoSelections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "wizqo_video_selections_total",
					Help: "Video selections by source (search, repeat, fallback)",
				},
				[]string{"source"},
			),
			LLMCalls: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "wizqo_llm_calls_total",
					Help: "LLM calls by purpose and result",
				},
				[]string{"purpose", "result"},
			),
			PlansGenerated: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "wizqo_plans_generated_total",
					Help: "Generated plans by generator",
				},
				[]string{"generator"},
			),
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "wizqo_http_requests_total",
					Help: "HTTP requests by route, method and status",
				},
				[]string{"route", "method", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "wizqo_http_request_duration_seconds",
					Help:    "HTTP request latency",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"route", "method"},
			),
		}
	})
	return sharedMetrics
}
