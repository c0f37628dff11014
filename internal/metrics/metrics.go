package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instructly_http_requests_total",
		Help: "Total HTTP requests by method, path, and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "instructly_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// Classification metrics

	ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instructly_classifications_total",
		Help: "Completed single-topic classifications by tier",
	}, []string{"tier"})

	ClassificationCostUSD = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instructly_classification_cost_usd_total",
		Help: "Accumulated classification cost in USD by tier",
	}, []string{"tier"})

	ProviderRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instructly_provider_retries_total",
		Help: "Model provider calls retried after a first failure",
	})

	UsageLogFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instructly_usage_log_failures_total",
		Help: "Usage records that could not be persisted (swallowed errors)",
	})

	// Cache metrics

	TopicCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instructly_topic_cache_hits_total",
		Help: "Topic cache hits",
	})

	TopicCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instructly_topic_cache_misses_total",
		Help: "Topic cache misses, including expired entries",
	})

	TopicCacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "instructly_topic_cache_entries",
		Help: "Current number of entries in the topic cache",
	})
)
