// Package metrics defines Prometheus metrics for the MWB pricing service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mwb"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPRateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_rate_limited_total",
		Help:      "Total number of API requests rejected by the rate limiter.",
	})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded, 0 otherwise.",
	})
)

// Pricing metrics.
var (
	PriceComputationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_computations_total",
		Help:      "Total number of price recommendations, by fallback level.",
	}, []string{"source_level"})

	PriceComputationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_computation_errors_total",
		Help:      "Total number of failed price recommendations, by reason.",
	}, []string{"reason"})

	PriceComputationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "price_computation_duration_seconds",
		Help:      "Duration of price recommendations in seconds, including reads.",
		Buckets:   prometheus.DefBuckets,
	})

	ConfidenceScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "confidence_score",
		Help:      "Distribution of recommendation confidence scores.",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11), // 0, 0.1, ..., 1.0
	})

	ObservationsFetched = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "observations_fetched",
		Help:      "Number of transaction lines read per recommendation.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 9), // 1 .. 65536
	})

	GuardrailFiresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guardrail_fires_total",
		Help:      "Total number of guardrails that changed a price, by guardrail.",
	}, []string{"guardrail"})
)

// Batch metrics.
var (
	BatchRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_runs_total",
		Help:      "Total number of scheduled batch pricing runs.",
	})

	BatchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_errors_total",
		Help:      "Total number of watch pairs that failed to price in a batch run.",
	})

	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_duration_seconds",
		Help:      "Duration of scheduled batch pricing runs in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	RecommendedPrice = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "recommended_unit_price",
		Help:      "Latest recommended unit price for a watched customer/item pair.",
	}, []string{"watch", "customer_id", "item_id"})

	RecommendedConfidence = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "recommended_confidence_score",
		Help:      "Latest confidence score for a watched customer/item pair.",
	}, []string{"watch", "customer_id", "item_id"})
)
