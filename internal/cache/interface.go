package cache

import (
	"context"
	"time"

	"greenloop-feed-service/internal/model"
)

// RecencyCache ranks the most recent post ids per author and keeps a
// denormalized content snapshot per post id. The ranking is bounded per
// author; content entries live independently of the ranking so a
// ranking-evicted id can still be hydrated from its snapshot.
//
//go:generate mockery --name RecencyCache --dir . --output ../../mocks/cache --outpkg mocks --filename RecencyCache.go
type RecencyCache interface {
	// Put inserts a ranked entry and trims the author's set to the
	// configured bound, dropping the oldest entries.
	Put(ctx context.Context, authorID, postID string, createdAt time.Time) error
	// Remove drops a ranked entry regardless of its rank. Removing an
	// absent entry is a no-op.
	Remove(ctx context.Context, authorID, postID string) error
	// RangeBefore returns up to limit post ids with createdAt strictly
	// before the given cursor (all if before is nil), ordered by createdAt
	// descending.
	RangeBefore(ctx context.Context, authorID string, before *time.Time, limit int) ([]string, error)

	PutContent(ctx context.Context, post *model.Post) error
	// GetContents resolves snapshots for the given ids; missing ids are
	// simply absent from the result.
	GetContents(ctx context.Context, postIDs []string) (map[string]*model.Post, error)
	DeleteContent(ctx context.Context, postID string) error
}

// SocialGraph maintains the followee and follower sets per user. Both
// directions of an edge are updated as one atomic unit. Edge operations are
// idempotent and never fail on unknown users.
//
//go:generate mockery --name SocialGraph --dir . --output ../../mocks/cache --outpkg mocks --filename SocialGraph.go
type SocialGraph interface {
	AddEdge(ctx context.Context, followerID, followeeID string) error
	RemoveEdge(ctx context.Context, followerID, followeeID string) error
	Followees(ctx context.Context, userID string) ([]string, error)
	Followers(ctx context.Context, userID string) ([]string, error)
	// SeedFollowees replaces a user's followee set from the durable follow
	// store, used to warm the graph on a cold read.
	SeedFollowees(ctx context.Context, userID string, followees []string) error
}
