package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"greenloop-feed-service/internal/logger"
	"greenloop-feed-service/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	recencyKeyPrefix = "recent_posts:"
	contentKeyPrefix = "post_content:"
	contentTTL       = 30 * time.Minute
)

// RecencyCache keeps a per-author sorted set of post ids scored by creation
// time, trimmed to a fixed bound on every insert, plus a string keyspace of
// JSON content snapshots.
type RecencyCache struct {
	client *Client
	size   int
	log    *logger.Logger
}

func NewRecencyCache(client *Client, size int, log *logger.Logger) *RecencyCache {
	return &RecencyCache{
		client: client,
		size:   size,
		log:    log,
	}
}

func (r *RecencyCache) Put(ctx context.Context, authorID, postID string, createdAt time.Time) error {
	key := recencyKey(authorID)

	pipe := r.client.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(createdAt.UnixMilli()),
		Member: postID,
	})
	// Entries sharing a score order by member lexicographically, so the trim
	// and the reverse range break millisecond ties by raw id order rather
	// than the read side's ascending-id rule. The assembler re-sorts every
	// page, so this only shows at the retention boundary.
	pipe.ZRemRangeByRank(ctx, key, 0, int64(-(r.size + 1)))

	if _, err := pipe.Exec(ctx); err != nil {
		r.log.Error("Failed to put recency entry",
			slog.String("author_id", authorID),
			slog.String("post_id", postID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to put recency entry: %w", err)
	}

	r.log.Debug("Recency entry cached",
		slog.String("author_id", authorID),
		slog.String("post_id", postID))
	return nil
}

func (r *RecencyCache) Remove(ctx context.Context, authorID, postID string) error {
	if err := r.client.client.ZRem(ctx, recencyKey(authorID), postID).Err(); err != nil {
		r.log.Error("Failed to remove recency entry",
			slog.String("author_id", authorID),
			slog.String("post_id", postID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to remove recency entry: %w", err)
	}
	return nil
}

func (r *RecencyCache) RangeBefore(ctx context.Context, authorID string, before *time.Time, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	key := recencyKey(authorID)

	var ids []string
	var err error
	if before == nil {
		ids, err = r.client.client.ZRevRange(ctx, key, 0, int64(limit-1)).Result()
	} else {
		// Exclusive upper bound on the score.
		max := "(" + strconv.FormatInt(before.UnixMilli(), 10)
		ids, err = r.client.client.ZRevRangeByScore(ctx, key, &redis.ZRangeBy{
			Min:   "-inf",
			Max:   max,
			Count: int64(limit),
		}).Result()
	}
	if err != nil {
		r.log.Error("Failed to range recency entries",
			slog.String("author_id", authorID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to range recency entries: %w", err)
	}

	return ids, nil
}

func (r *RecencyCache) PutContent(ctx context.Context, post *model.Post) error {
	if post == nil {
		return fmt.Errorf("post cannot be nil")
	}

	if err := r.client.Set(ctx, contentKey(post.ID), post, contentTTL); err != nil {
		return fmt.Errorf("failed to set content snapshot: %w", err)
	}
	return nil
}

func (r *RecencyCache) GetContents(ctx context.Context, postIDs []string) (map[string]*model.Post, error) {
	if len(postIDs) == 0 {
		return make(map[string]*model.Post), nil
	}

	keys := make([]string, 0, len(postIDs))
	for _, id := range postIDs {
		keys = append(keys, contentKey(id))
	}

	raw, err := r.client.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to get content snapshots: %w", err)
	}

	result := make(map[string]*model.Post, len(raw))
	for key, val := range raw {
		var post model.Post
		if err := json.Unmarshal([]byte(val), &post); err != nil {
			r.log.Warn("Failed to unmarshal content snapshot",
				slog.String("key", key),
				slog.String("error", err.Error()))
			continue
		}
		result[post.ID] = &post
	}

	return result, nil
}

func (r *RecencyCache) DeleteContent(ctx context.Context, postID string) error {
	if err := r.client.Delete(ctx, contentKey(postID)); err != nil {
		return fmt.Errorf("failed to delete content snapshot: %w", err)
	}
	return nil
}

func recencyKey(authorID string) string {
	return recencyKeyPrefix + authorID
}

func contentKey(postID string) string {
	return contentKeyPrefix + postID
}
