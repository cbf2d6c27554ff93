package prometheus

import (
	"strconv"
	"time"

	"greenloop-feed-service/internal/metrics"
)

type PrometheusMetricsProvider struct{}

func NewPrometheusMetricsProvider() metrics.Provider {
	return &PrometheusMetricsProvider{}
}

func (p *PrometheusMetricsProvider) IncrementHTTPRequests(handler, status string) {
	HTTPRequestsTotal.WithLabelValues(handler, status).Inc()
}

func (p *PrometheusMetricsProvider) RecordHTTPRequestDuration(handler, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(handler, status).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementDatabaseQueries(queryType string, success bool) {
	DatabaseQueriesTotal.WithLabelValues(queryType, strconv.FormatBool(success)).Inc()
}

func (p *PrometheusMetricsProvider) RecordDatabaseQueryDuration(queryType string, duration time.Duration) {
	DatabaseQueryDuration.WithLabelValues(queryType).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementCacheHits() {
	CacheHitsTotal.Inc()
}

func (p *PrometheusMetricsProvider) IncrementCacheMisses() {
	CacheMissesTotal.Inc()
}

func (p *PrometheusMetricsProvider) RecordCacheOperationDuration(operation string, duration time.Duration) {
	CacheOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementEventOperations(eventType string, success bool) {
	EventOperationsTotal.WithLabelValues(eventType, strconv.FormatBool(success)).Inc()
}

func (p *PrometheusMetricsProvider) IncrementEventsDropped(reason string) {
	EventsDroppedTotal.WithLabelValues(reason).Inc()
}

func (p *PrometheusMetricsProvider) IncrementFeedRequests(success bool) {
	FeedRequestsTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func (p *PrometheusMetricsProvider) RecordFeedAssemblyDuration(duration time.Duration) {
	FeedAssemblyDuration.Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementStoreFallbacks() {
	StoreFallbacksTotal.Inc()
}

func (p *PrometheusMetricsProvider) IncrementDegradedResponses() {
	DegradedResponsesTotal.Inc()
}

func (p *PrometheusMetricsProvider) SetServiceHealth(healthy bool) {
	if healthy {
		ServiceHealth.Set(1)
	} else {
		ServiceHealth.Set(0)
	}
}
