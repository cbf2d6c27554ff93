package feed_service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"greenloop-feed-service/internal/cache"
	"greenloop-feed-service/internal/config"
	"greenloop-feed-service/internal/custom_errors"
	"greenloop-feed-service/internal/logger"
	"greenloop-feed-service/internal/metrics"
	"greenloop-feed-service/internal/model"
	follow_repository "greenloop-feed-service/internal/repository/follow"
	post_repository "greenloop-feed-service/internal/repository/post"
)

// FeedService assembles feeds at read time by merging each followee's
// recency cache entries and falling back to the durable post store when the
// cache cannot fill the page. Store results are written back into the cache
// to warm it for subsequent requests.
type FeedService struct {
	posts   post_repository.Repository
	follows follow_repository.Repository
	cache   cache.RecencyCache
	graph   cache.SocialGraph
	cfg     config.Feed
	log     *logger.Logger
	metrics metrics.Provider
}

func NewFeedService(
	posts post_repository.Repository,
	follows follow_repository.Repository,
	recencyCache cache.RecencyCache,
	graph cache.SocialGraph,
	cfg config.Feed,
	log *logger.Logger,
	metricsProvider metrics.Provider,
) *FeedService {
	return &FeedService{
		posts:   posts,
		follows: follows,
		cache:   recencyCache,
		graph:   graph,
		cfg:     cfg,
		log:     log,
		metrics: metricsProvider,
	}
}

func (s *FeedService) GetFeed(ctx context.Context, userID string, limit int, before *time.Time) ([]*model.Post, error) {
	start := time.Now()

	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	followees, err := s.resolveFollowees(ctx, userID)
	if err != nil {
		s.metrics.IncrementFeedRequests(false)
		return nil, err
	}
	if len(followees) == 0 {
		s.log.Debug("User has no followees", slog.String("user_id", userID))
		s.metrics.IncrementFeedRequests(true)
		return []*model.Post{}, nil
	}

	combined := s.collectFromCache(ctx, followees, before, limit)

	if len(combined) < limit {
		s.metrics.IncrementStoreFallbacks()

		storeCtx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
		stored, storeErr := s.posts.ListByAuthors(storeCtx, followees, before, limit)
		cancel()

		if storeErr != nil {
			if len(combined) == 0 {
				s.log.Error("Post store unavailable and cache is empty",
					slog.String("user_id", userID),
					slog.String("error", storeErr.Error()))
				s.metrics.IncrementFeedRequests(false)
				return nil, custom_errors.ErrFeedUnavailable
			}
			// Cache-only degradation: serve what we have rather than fail.
			s.log.Warn("Post store unavailable, serving cache-only feed",
				slog.String("user_id", userID),
				slog.Int("cached", len(combined)),
				slog.String("error", storeErr.Error()))
			s.metrics.IncrementDegradedResponses()
		} else {
			for _, post := range stored {
				if _, seen := combined[post.ID]; seen {
					continue
				}
				combined[post.ID] = post
				s.warmCache(ctx, post)
			}
		}
	}

	page := make([]*model.Post, 0, len(combined))
	for _, post := range combined {
		page = append(page, post)
	}
	sort.Slice(page, func(i, j int) bool {
		if !page[i].CreatedAt.Equal(page[j].CreatedAt) {
			return page[i].CreatedAt.After(page[j].CreatedAt)
		}
		return page[i].ID < page[j].ID
	})
	if limit < len(page) {
		page = page[:limit]
	}

	s.metrics.IncrementFeedRequests(true)
	s.metrics.RecordFeedAssemblyDuration(time.Since(start))
	return page, nil
}

// resolveFollowees reads the followee set from the graph cache and falls
// back to the durable follow store on a cold or unavailable cache, seeding
// the cache for the next read.
func (s *FeedService) resolveFollowees(ctx context.Context, userID string) ([]string, error) {
	followees, err := s.graph.Followees(ctx, userID)
	if err != nil {
		s.log.Warn("Social graph cache unavailable, falling back to follow store",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
	}
	if len(followees) > 0 {
		return followees, nil
	}

	stored, storeErr := s.follows.FolloweesOf(ctx, userID)
	if storeErr != nil {
		s.log.Error("Failed to resolve followees from follow store",
			slog.String("user_id", userID),
			slog.String("error", storeErr.Error()))
		return nil, custom_errors.ErrFeedUnavailable
	}

	if len(stored) > 0 {
		if seedErr := s.graph.SeedFollowees(ctx, userID, stored); seedErr != nil {
			s.log.Warn("Failed to seed followees cache",
				slog.String("user_id", userID),
				slog.String("error", seedErr.Error()))
		}
	}

	return stored, nil
}

// collectFromCache fans out over the followees, gathers their recent post
// ids, and hydrates snapshots. Per-followee failures are tolerated: the
// merge continues with whatever was read successfully.
func (s *FeedService) collectFromCache(ctx context.Context, followees []string, before *time.Time, limit int) map[string]*model.Post {
	var (
		mu  sync.Mutex
		ids []string
	)
	seen := make(map[string]struct{})

	rangeStart := time.Now()
	var wg sync.WaitGroup
	for _, followee := range followees {
		wg.Add(1)
		go func(followee string) {
			defer wg.Done()

			followeeIDs, err := s.cache.RangeBefore(ctx, followee, before, limit)
			if err != nil {
				s.log.Warn("Failed to read recency cache for followee",
					slog.String("followee_id", followee),
					slog.String("error", err.Error()))
				return
			}

			mu.Lock()
			for _, id := range followeeIDs {
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
			mu.Unlock()
		}(followee)
	}
	wg.Wait()
	s.metrics.RecordCacheOperationDuration("range_before", time.Since(rangeStart))

	combined := make(map[string]*model.Post, len(ids))
	if len(ids) == 0 {
		s.metrics.IncrementCacheMisses()
		return combined
	}

	hydrateStart := time.Now()
	snapshots, err := s.cache.GetContents(ctx, ids)
	s.metrics.RecordCacheOperationDuration("get_contents", time.Since(hydrateStart))
	if err != nil {
		s.log.Warn("Failed to hydrate content snapshots", slog.String("error", err.Error()))
		s.metrics.IncrementCacheMisses()
		return combined
	}
	for id, post := range snapshots {
		combined[id] = post
	}

	// Ranked ids whose snapshot expired are hydrated from the store.
	var missing []string
	for _, id := range ids {
		if _, ok := combined[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		storeCtx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
		posts, storeErr := s.posts.GetByIDs(storeCtx, missing)
		cancel()
		if storeErr != nil {
			s.log.Warn("Failed to hydrate evicted snapshots from store",
				slog.Int("missing", len(missing)),
				slog.String("error", storeErr.Error()))
		} else {
			for _, post := range posts {
				combined[post.ID] = post
				if cacheErr := s.cache.PutContent(ctx, post); cacheErr != nil {
					s.log.Warn("Failed to re-cache content snapshot",
						slog.String("post_id", post.ID),
						slog.String("error", cacheErr.Error()))
				}
			}
		}
	}

	if len(combined) > 0 {
		s.metrics.IncrementCacheHits()
	} else {
		s.metrics.IncrementCacheMisses()
	}
	return combined
}

// warmCache writes a store-fetched post back into the recency cache.
// Failures are logged and ignored: warming must never fail the request.
func (s *FeedService) warmCache(ctx context.Context, post *model.Post) {
	if err := s.cache.Put(ctx, post.AuthorID, post.ID, post.CreatedAt); err != nil {
		s.log.Warn("Failed to warm recency cache",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()))
		return
	}
	if err := s.cache.PutContent(ctx, post); err != nil {
		s.log.Warn("Failed to warm content snapshot",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()))
	}
}
