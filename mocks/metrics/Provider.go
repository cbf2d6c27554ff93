package mocks

import "time"

// Provider is a no-op metrics provider for tests.
type Provider struct{}

func (Provider) IncrementHTTPRequests(handler, status string)                               {}
func (Provider) RecordHTTPRequestDuration(handler, status string, duration time.Duration)   {}
func (Provider) IncrementDatabaseQueries(queryType string, success bool)                    {}
func (Provider) RecordDatabaseQueryDuration(queryType string, duration time.Duration)       {}
func (Provider) IncrementCacheHits()                                                        {}
func (Provider) IncrementCacheMisses()                                                      {}
func (Provider) RecordCacheOperationDuration(operation string, duration time.Duration)      {}
func (Provider) IncrementEventOperations(eventType string, success bool)                    {}
func (Provider) IncrementEventsDropped(reason string)                                       {}
func (Provider) IncrementFeedRequests(success bool)                                         {}
func (Provider) RecordFeedAssemblyDuration(duration time.Duration)                          {}
func (Provider) IncrementStoreFallbacks()                                                   {}
func (Provider) IncrementDegradedResponses()                                                {}
func (Provider) SetServiceHealth(healthy bool)                                              {}
