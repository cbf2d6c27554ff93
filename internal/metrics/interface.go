package metrics

import "time"

//go:generate mockery --name Provider --dir . --output ../../mocks/metrics --outpkg mocks --filename Provider.go
type Provider interface {
	IncrementHTTPRequests(handler, status string)
	RecordHTTPRequestDuration(handler, status string, duration time.Duration)

	IncrementDatabaseQueries(queryType string, success bool)
	RecordDatabaseQueryDuration(queryType string, duration time.Duration)

	IncrementCacheHits()
	IncrementCacheMisses()
	RecordCacheOperationDuration(operation string, duration time.Duration)

	IncrementEventOperations(eventType string, success bool)
	IncrementEventsDropped(reason string)

	IncrementFeedRequests(success bool)
	RecordFeedAssemblyDuration(duration time.Duration)
	IncrementStoreFallbacks()
	IncrementDegradedResponses()

	SetServiceHealth(healthy bool)
}
