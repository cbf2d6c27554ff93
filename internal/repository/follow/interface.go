package follow_repository

import "context"

// Repository is the durable record of follow edges, the cold-start source
// for the Redis social graph.
//
//go:generate mockery --name Repository --dir . --output ../../../mocks/follow --outpkg mocks --filename FollowRepository.go
type Repository interface {
	// AddEdge records a follow edge. Re-adding an existing edge is a no-op.
	AddEdge(ctx context.Context, followerID, followeeID string) error
	// RemoveEdge deletes a follow edge. Removing an absent edge is a no-op.
	RemoveEdge(ctx context.Context, followerID, followeeID string) error
	FolloweesOf(ctx context.Context, userID string) ([]string, error)
	FollowersOf(ctx context.Context, userID string) ([]string, error)
}
