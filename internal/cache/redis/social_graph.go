package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"greenloop-feed-service/internal/logger"
)

const (
	followeesKeyPrefix = "followees:"
	followersKeyPrefix = "followers:"
)

// SocialGraph stores the follow edges as two Redis sets per user, one per
// direction. Both directions are written in a single transactional pipeline
// so readers never observe a half-applied edge. The followee sets carry a
// TTL so a stale graph is re-seeded from the durable follow store.
type SocialGraph struct {
	client       *Client
	followeesTTL time.Duration
	log          *logger.Logger
}

func NewSocialGraph(client *Client, followeesTTL time.Duration, log *logger.Logger) *SocialGraph {
	return &SocialGraph{
		client:       client,
		followeesTTL: followeesTTL,
		log:          log,
	}
}

func (g *SocialGraph) AddEdge(ctx context.Context, followerID, followeeID string) error {
	pipe := g.client.client.TxPipeline()
	pipe.SAdd(ctx, followeesKey(followerID), followeeID)
	pipe.Expire(ctx, followeesKey(followerID), g.followeesTTL)
	pipe.SAdd(ctx, followersKey(followeeID), followerID)

	if _, err := pipe.Exec(ctx); err != nil {
		g.log.Error("Failed to add graph edge",
			slog.String("follower_id", followerID),
			slog.String("followee_id", followeeID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to add graph edge: %w", err)
	}

	g.log.Debug("Graph edge added",
		slog.String("follower_id", followerID),
		slog.String("followee_id", followeeID))
	return nil
}

func (g *SocialGraph) RemoveEdge(ctx context.Context, followerID, followeeID string) error {
	pipe := g.client.client.TxPipeline()
	pipe.SRem(ctx, followeesKey(followerID), followeeID)
	pipe.SRem(ctx, followersKey(followeeID), followerID)

	if _, err := pipe.Exec(ctx); err != nil {
		g.log.Error("Failed to remove graph edge",
			slog.String("follower_id", followerID),
			slog.String("followee_id", followeeID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to remove graph edge: %w", err)
	}

	g.log.Debug("Graph edge removed",
		slog.String("follower_id", followerID),
		slog.String("followee_id", followeeID))
	return nil
}

func (g *SocialGraph) Followees(ctx context.Context, userID string) ([]string, error) {
	members, err := g.client.client.SMembers(ctx, followeesKey(userID)).Result()
	if err != nil {
		g.log.Error("Failed to get followees",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get followees: %w", err)
	}
	return members, nil
}

func (g *SocialGraph) Followers(ctx context.Context, userID string) ([]string, error) {
	members, err := g.client.client.SMembers(ctx, followersKey(userID)).Result()
	if err != nil {
		g.log.Error("Failed to get followers",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}
	return members, nil
}

func (g *SocialGraph) SeedFollowees(ctx context.Context, userID string, followees []string) error {
	key := followeesKey(userID)

	pipe := g.client.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(followees) > 0 {
		members := make([]interface{}, 0, len(followees))
		for _, f := range followees {
			members = append(members, f)
		}
		pipe.SAdd(ctx, key, members...)
		pipe.Expire(ctx, key, g.followeesTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		g.log.Error("Failed to seed followees",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to seed followees: %w", err)
	}

	g.log.Debug("Followees seeded",
		slog.String("user_id", userID),
		slog.Int("count", len(followees)))
	return nil
}

func followeesKey(userID string) string {
	return followeesKeyPrefix + userID
}

func followersKey(userID string) string {
	return followersKeyPrefix + userID
}
