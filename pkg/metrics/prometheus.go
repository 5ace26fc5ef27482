package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	seriesRequests *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
	lastIndex      *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		seriesRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfoliopulse_series_requests_total",
				Help: "Total number of series requests served",
			},
			[]string{"asset", "freq"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfoliopulse_errors_total",
				Help: "Total number of pipeline errors encountered",
			},
			[]string{"type"},
		),
		cacheEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfoliopulse_cache_events_total",
				Help: "Ingestion cache hits and misses",
			},
			[]string{"result"},
		),
		lastIndex: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "portfoliopulse_last_index_value",
				Help: "Last base-100 index value served for an asset",
			},
			[]string{"asset"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portfoliopulse_operation_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSeriesRequest records a served series request.
func (r *Recorder) RecordSeriesRequest(asset, freq string) {
	r.seriesRequests.WithLabelValues(asset, freq).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCacheHit records an ingestion cache hit.
func (r *Recorder) RecordCacheHit() {
	r.cacheEvents.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records an ingestion cache miss.
func (r *Recorder) RecordCacheMiss() {
	r.cacheEvents.WithLabelValues("miss").Inc()
}

// RecordLastIndex records the last index value served for an asset.
func (r *Recorder) RecordLastIndex(asset string, value float64) {
	r.lastIndex.WithLabelValues(asset).Set(value)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
