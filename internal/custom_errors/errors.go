package custom_errors

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrUserNotFound = errors.New("user not found")

	ErrCacheMiss     = errors.New("cache miss")
	ErrCacheInternal = errors.New("cache operation failed")

	ErrDatabaseQuery = errors.New("database query error")
	ErrDatabaseScan  = errors.New("database scan error")

	ErrMalformedEvent   = errors.New("malformed event payload")
	ErrUnknownEventType = errors.New("unknown event type")

	ErrFeedUnavailable = errors.New("feed temporarily unavailable")
	ErrInvalidCursor   = errors.New("invalid feed cursor")
)
