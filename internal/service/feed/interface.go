package feed_service

import (
	"context"
	"time"

	"greenloop-feed-service/internal/model"
)

//go:generate mockery --name Service --dir . --output ../../../mocks/feed --outpkg mocks --filename FeedService.go
type Service interface {
	// GetFeed returns up to limit posts authored by the user's followees,
	// ordered by createdAt descending (ties by id ascending). The optional
	// before cursor is an exclusive upper bound for pagination. A zero or
	// negative limit selects the configured default.
	GetFeed(ctx context.Context, userID string, limit int, before *time.Time) ([]*model.Post, error)
}
