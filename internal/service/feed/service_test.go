package feed_service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	cache_memory "greenloop-feed-service/internal/cache/memory"
	"greenloop-feed-service/internal/config"
	"greenloop-feed-service/internal/custom_errors"
	"greenloop-feed-service/internal/logger"
	"greenloop-feed-service/internal/model"
	follow_memory "greenloop-feed-service/internal/repository/follow/memory"
	post_memory "greenloop-feed-service/internal/repository/post/memory"
	feed_service "greenloop-feed-service/internal/service/feed"
	cache_mocks "greenloop-feed-service/mocks/cache"
	follow_mocks "greenloop-feed-service/mocks/follow"
	metrics_mocks "greenloop-feed-service/mocks/metrics"
	post_mocks "greenloop-feed-service/mocks/post"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var feedCfg = config.Feed{
	CacheSize:    50,
	DefaultLimit: 50,
	MaxLimit:     100,
	StoreTimeout: time.Second,
	FolloweesTTL: 24 * time.Hour,
}

type fixture struct {
	posts   *post_memory.PostRepository
	follows *follow_memory.FollowRepository
	cache   *cache_memory.RecencyCache
	graph   *cache_memory.SocialGraph
	service *feed_service.FeedService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.New("test")
	f := &fixture{
		posts:   post_memory.NewPostRepository(log),
		follows: follow_memory.NewFollowRepository(log),
		cache:   cache_memory.NewRecencyCache(feedCfg.CacheSize),
		graph:   cache_memory.NewSocialGraph(),
	}
	f.service = feed_service.NewFeedService(f.posts, f.follows, f.cache, f.graph, feedCfg, log, metrics_mocks.Provider{})
	return f
}

func (f *fixture) follow(t *testing.T, followerID, followeeID string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.follows.AddEdge(ctx, followerID, followeeID))
	require.NoError(t, f.graph.AddEdge(ctx, followerID, followeeID))
}

// createPost publishes a post everywhere a live write would land: the
// durable store, the recency ranking, and the content snapshots.
func (f *fixture) createPost(t *testing.T, id, authorID string, createdAt time.Time) *model.Post {
	t.Helper()
	ctx := context.Background()
	post := &model.Post{
		ID:         id,
		AuthorID:   authorID,
		AuthorName: "author-" + authorID,
		Content:    "content of " + id,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	inserted, err := f.posts.Upsert(ctx, post)
	require.NoError(t, err)
	require.True(t, inserted)
	require.NoError(t, f.cache.Put(ctx, authorID, id, createdAt))
	require.NoError(t, f.cache.PutContent(ctx, post))
	return post
}

func postIDs(posts []*model.Post) []string {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

var feedBase = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestGetFeed_NoFollowees(t *testing.T) {
	f := newFixture(t)

	page, err := f.service.GetFeed(context.Background(), "loner", 10, nil)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestGetFeed_NewestFirst(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "u2", "u1")

	for i := 1; i <= 60; i++ {
		f.createPost(t, fmt.Sprintf("p%02d", i), "u1", feedBase.Add(time.Duration(i)*time.Minute))
	}

	page, err := f.service.GetFeed(context.Background(), "u2", 10, nil)
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, []string{"p60", "p59", "p58", "p57", "p56", "p55", "p54", "p53", "p52", "p51"}, postIDs(page))
}

func TestGetFeed_CursorPagination(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "u2", "u1")

	for i := 1; i <= 30; i++ {
		f.createPost(t, fmt.Sprintf("p%02d", i), "u1", feedBase.Add(time.Duration(i)*time.Minute))
	}

	ctx := context.Background()
	first, err := f.service.GetFeed(ctx, "u2", 10, nil)
	require.NoError(t, err)
	require.Len(t, first, 10)

	cursor := first[len(first)-1].CreatedAt
	second, err := f.service.GetFeed(ctx, "u2", 10, &cursor)
	require.NoError(t, err)
	require.Len(t, second, 10)

	assert.Equal(t, "p20", second[0].ID)
	assert.Equal(t, "p11", second[9].ID)

	// Pages share no ids.
	seen := make(map[string]struct{})
	for _, p := range first {
		seen[p.ID] = struct{}{}
	}
	for _, p := range second {
		_, dup := seen[p.ID]
		assert.False(t, dup, "post %s appears on both pages", p.ID)
	}
}

func TestGetFeed_MergesAcrossFollowees(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "reader", "u1")
	f.follow(t, "reader", "u2")

	f.createPost(t, "a1", "u1", feedBase.Add(1*time.Minute))
	f.createPost(t, "b1", "u2", feedBase.Add(2*time.Minute))
	f.createPost(t, "a2", "u1", feedBase.Add(3*time.Minute))
	f.createPost(t, "c1", "u3", feedBase.Add(4*time.Minute))

	page, err := f.service.GetFeed(context.Background(), "reader", 10, nil)
	require.NoError(t, err)
	// Only followed authors contribute.
	assert.Equal(t, []string{"a2", "b1", "a1"}, postIDs(page))
}

func TestGetFeed_TimestampTiesOrderByID(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "reader", "u1")
	f.follow(t, "reader", "u2")

	ts := feedBase.Add(time.Hour)
	f.createPost(t, "b", "u1", ts)
	f.createPost(t, "a", "u2", ts)
	f.createPost(t, "c", "u1", ts)

	page, err := f.service.GetFeed(context.Background(), "reader", 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, postIDs(page))
}

func TestGetFeed_StoreBackfillWarmsCache(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "u2", "u1")
	ctx := context.Background()

	// Older posts exist only in the durable store.
	for i := 1; i <= 4; i++ {
		post := &model.Post{
			ID:        fmt.Sprintf("old%d", i),
			AuthorID:  "u1",
			Content:   "archived",
			CreatedAt: feedBase.Add(time.Duration(i) * time.Minute),
			UpdatedAt: feedBase.Add(time.Duration(i) * time.Minute),
		}
		inserted, err := f.posts.Upsert(ctx, post)
		require.NoError(t, err)
		require.True(t, inserted)
	}
	f.createPost(t, "fresh", "u1", feedBase.Add(time.Hour))

	page, err := f.service.GetFeed(ctx, "u2", 5, nil)
	require.NoError(t, err)
	require.Len(t, page, 5)
	assert.Equal(t, "fresh", page[0].ID)
	assert.Equal(t, []string{"fresh", "old4", "old3", "old2", "old1"}, postIDs(page))

	// Backfilled posts were written through into the recency cache.
	assert.Equal(t, 5, f.cache.Len("u1"))
}

func TestGetFeed_DedupesCacheAndStore(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "u2", "u1")

	// The post is both cached and durable, as after normal ingestion.
	f.createPost(t, "p1", "u1", feedBase)

	page, err := f.service.GetFeed(context.Background(), "u2", 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, postIDs(page))
}

func TestGetFeed_EvictedSnapshotHydratedFromStore(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "u2", "u1")
	ctx := context.Background()

	post := f.createPost(t, "p1", "u1", feedBase)
	// Simulate snapshot TTL expiry while the ranking entry survives.
	require.NoError(t, f.cache.DeleteContent(ctx, "p1"))

	page, err := f.service.GetFeed(ctx, "u2", 10, nil)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, post.Content, page[0].Content)

	// The snapshot was re-cached during hydration.
	contents, err := f.cache.GetContents(ctx, []string{"p1"})
	require.NoError(t, err)
	assert.Len(t, contents, 1)
}

func TestGetFeed_UnfollowExcludesAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.follow(t, "u2", "u1")
	f.follow(t, "u2", "u3")

	f.createPost(t, "p1", "u1", feedBase.Add(time.Minute))
	f.createPost(t, "p2", "u3", feedBase.Add(2*time.Minute))

	require.NoError(t, f.follows.RemoveEdge(ctx, "u2", "u1"))
	require.NoError(t, f.graph.RemoveEdge(ctx, "u2", "u1"))

	page, err := f.service.GetFeed(ctx, "u2", 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, postIDs(page))

	// Re-following brings the author back without duplicates.
	f.follow(t, "u2", "u1")
	page, err = f.service.GetFeed(ctx, "u2", 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, postIDs(page))
}

func TestGetFeed_ColdGraphFallsBackToFollowStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Durable edge exists but the graph cache is cold.
	require.NoError(t, f.follows.AddEdge(ctx, "u2", "u1"))
	f.createPost(t, "p1", "u1", feedBase)

	page, err := f.service.GetFeed(ctx, "u2", 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, postIDs(page))

	// The graph cache was seeded for the next read.
	followees, err := f.graph.Followees(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, followees)
}

func TestGetFeed_StoreDownServesCachedPosts(t *testing.T) {
	log := logger.New("test")
	cache := cache_memory.NewRecencyCache(feedCfg.CacheSize)
	graph := cache_memory.NewSocialGraph()
	follows := follow_memory.NewFollowRepository(log)
	posts := new(post_mocks.Repository)
	posts.On("ListByAuthors", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	service := feed_service.NewFeedService(posts, follows, cache, graph, feedCfg, log, metrics_mocks.Provider{})

	ctx := context.Background()
	require.NoError(t, graph.AddEdge(ctx, "u2", "u1"))
	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("p%d", i)
		createdAt := feedBase.Add(time.Duration(i) * time.Minute)
		require.NoError(t, cache.Put(ctx, "u1", id, createdAt))
		require.NoError(t, cache.PutContent(ctx, &model.Post{ID: id, AuthorID: "u1", Content: id, CreatedAt: createdAt}))
	}

	page, err := service.GetFeed(ctx, "u2", 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"p5", "p4", "p3", "p2", "p1"}, postIDs(page))
}

func TestGetFeed_StoreDownEmptyCacheFails(t *testing.T) {
	log := logger.New("test")
	cache := cache_memory.NewRecencyCache(feedCfg.CacheSize)
	graph := cache_memory.NewSocialGraph()
	follows := follow_memory.NewFollowRepository(log)
	posts := new(post_mocks.Repository)
	posts.On("ListByAuthors", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	service := feed_service.NewFeedService(posts, follows, cache, graph, feedCfg, log, metrics_mocks.Provider{})

	ctx := context.Background()
	require.NoError(t, graph.AddEdge(ctx, "u2", "u1"))

	_, err := service.GetFeed(ctx, "u2", 10, nil)
	assert.ErrorIs(t, err, custom_errors.ErrFeedUnavailable)
}

func TestGetFeed_GraphCacheDownFallsBackToFollowStore(t *testing.T) {
	log := logger.New("test")
	ctx := context.Background()

	graph := new(cache_mocks.SocialGraph)
	graph.On("Followees", mock.Anything, "u2").Return(nil, errors.New("redis down"))
	graph.On("SeedFollowees", mock.Anything, "u2", []string{"u1"}).Return(nil)

	follows := new(follow_mocks.Repository)
	follows.On("FolloweesOf", mock.Anything, "u2").Return([]string{"u1"}, nil)

	cache := cache_memory.NewRecencyCache(feedCfg.CacheSize)
	posts := post_memory.NewPostRepository(log)
	post := &model.Post{ID: "p1", AuthorID: "u1", Content: "hello", CreatedAt: feedBase, UpdatedAt: feedBase}
	inserted, err := posts.Upsert(ctx, post)
	require.NoError(t, err)
	require.True(t, inserted)
	require.NoError(t, cache.Put(ctx, "u1", "p1", feedBase))
	require.NoError(t, cache.PutContent(ctx, post))

	service := feed_service.NewFeedService(posts, follows, cache, graph, feedCfg, log, metrics_mocks.Provider{})

	page, err := service.GetFeed(ctx, "u2", 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, postIDs(page))
	graph.AssertExpectations(t)
	follows.AssertExpectations(t)
}

func TestGetFeed_GraphAndFollowStoreDownFails(t *testing.T) {
	log := logger.New("test")

	graph := new(cache_mocks.SocialGraph)
	graph.On("Followees", mock.Anything, "u2").Return(nil, errors.New("redis down"))

	follows := new(follow_mocks.Repository)
	follows.On("FolloweesOf", mock.Anything, "u2").Return(nil, custom_errors.ErrDatabaseQuery)

	service := feed_service.NewFeedService(
		post_memory.NewPostRepository(log),
		follows,
		cache_memory.NewRecencyCache(feedCfg.CacheSize),
		graph,
		feedCfg,
		log,
		metrics_mocks.Provider{},
	)

	_, err := service.GetFeed(context.Background(), "u2", 10, nil)
	assert.ErrorIs(t, err, custom_errors.ErrFeedUnavailable)
}

func TestGetFeed_RecencyCacheDownServedFromStore(t *testing.T) {
	log := logger.New("test")
	ctx := context.Background()

	cache := new(cache_mocks.RecencyCache)
	cache.On("RangeBefore", mock.Anything, "u1", (*time.Time)(nil), 10).
		Return(nil, errors.New("redis down"))
	cache.On("Put", mock.Anything, "u1", "p1", mock.Anything).
		Return(errors.New("redis down"))

	graph := cache_memory.NewSocialGraph()
	require.NoError(t, graph.AddEdge(ctx, "u2", "u1"))

	posts := post_memory.NewPostRepository(log)
	inserted, err := posts.Upsert(ctx, &model.Post{ID: "p1", AuthorID: "u1", Content: "hello", CreatedAt: feedBase, UpdatedAt: feedBase})
	require.NoError(t, err)
	require.True(t, inserted)

	service := feed_service.NewFeedService(posts, follow_memory.NewFollowRepository(log), cache, graph, feedCfg, log, metrics_mocks.Provider{})

	page, err := service.GetFeed(ctx, "u2", 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, postIDs(page))
	cache.AssertExpectations(t)
}

func TestGetFeed_LimitClamping(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "u2", "u1")

	for i := 1; i <= 120; i++ {
		f.createPost(t, fmt.Sprintf("p%03d", i), "u1", feedBase.Add(time.Duration(i)*time.Second))
	}

	// Zero falls back to the default page size.
	page, err := f.service.GetFeed(context.Background(), "u2", 0, nil)
	require.NoError(t, err)
	assert.Len(t, page, feedCfg.DefaultLimit)

	// Oversized requests are capped.
	page, err = f.service.GetFeed(context.Background(), "u2", 500, nil)
	require.NoError(t, err)
	assert.Len(t, page, feedCfg.MaxLimit)
}
