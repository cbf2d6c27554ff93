package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"greenloop-feed-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestRecencyCache_BoundedEviction(t *testing.T) {
	cache := NewRecencyCache(50)
	ctx := context.Background()

	for i := 1; i <= 60; i++ {
		err := cache.Put(ctx, "u1", fmt.Sprintf("p%02d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	assert.Equal(t, 50, cache.Len("u1"))

	ids, err := cache.RangeBefore(ctx, "u1", nil, 60)
	require.NoError(t, err)
	require.Len(t, ids, 50)

	// The 50 most recent survive: p11..p60, newest first.
	assert.Equal(t, "p60", ids[0])
	assert.Equal(t, "p11", ids[49])
	for _, id := range ids {
		assert.NotContains(t, []string{"p01", "p02", "p03", "p04", "p05", "p06", "p07", "p08", "p09", "p10"}, id)
	}
}

func TestRecencyCache_RangeBefore(t *testing.T) {
	cache := NewRecencyCache(50)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, cache.Put(ctx, "u1", fmt.Sprintf("p%d", i), base.Add(time.Duration(i)*time.Minute)))
	}

	tests := []struct {
		name   string
		before *time.Time
		limit  int
		want   []string
	}{
		{
			name:  "no cursor returns newest first",
			limit: 10,
			want:  []string{"p5", "p4", "p3", "p2", "p1"},
		},
		{
			name:  "limit truncates",
			limit: 2,
			want:  []string{"p5", "p4"},
		},
		{
			name:   "cursor is exclusive",
			before: timePtr(base.Add(3 * time.Minute)),
			limit:  10,
			want:   []string{"p2", "p1"},
		},
		{
			name:   "cursor before everything",
			before: timePtr(base),
			limit:  10,
			want:   []string{},
		},
		{
			name:  "zero limit",
			limit: 0,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cache.RangeBefore(ctx, "u1", tt.before, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, append([]string{}, got...))
		})
	}
}

func TestRecencyCache_TimestampCollision(t *testing.T) {
	cache := NewRecencyCache(3)
	ctx := context.Background()

	ts := base.Add(time.Hour)
	require.NoError(t, cache.Put(ctx, "u1", "b", ts))
	require.NoError(t, cache.Put(ctx, "u1", "d", ts))
	require.NoError(t, cache.Put(ctx, "u1", "a", ts))
	require.NoError(t, cache.Put(ctx, "u1", "c", ts))

	ids, err := cache.RangeBefore(ctx, "u1", nil, 10)
	require.NoError(t, err)
	// Equal timestamps order ascending by id; the largest id was trimmed.
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestRecencyCache_RemoveAndReput(t *testing.T) {
	cache := NewRecencyCache(50)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "u1", "p1", base))
	require.NoError(t, cache.Put(ctx, "u1", "p2", base.Add(time.Minute)))

	// Re-put of the same id must not duplicate the entry.
	require.NoError(t, cache.Put(ctx, "u1", "p1", base))
	assert.Equal(t, 2, cache.Len("u1"))

	require.NoError(t, cache.Remove(ctx, "u1", "p1"))
	ids, err := cache.RangeBefore(ctx, "u1", nil, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, ids)

	// Removing an absent id is a no-op.
	require.NoError(t, cache.Remove(ctx, "u1", "missing"))
}

func TestRecencyCache_AuthorsAreIndependent(t *testing.T) {
	cache := NewRecencyCache(2)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "u1", "a1", base))
	require.NoError(t, cache.Put(ctx, "u2", "b1", base))
	require.NoError(t, cache.Put(ctx, "u2", "b2", base.Add(time.Minute)))
	require.NoError(t, cache.Put(ctx, "u2", "b3", base.Add(2*time.Minute)))

	assert.Equal(t, 1, cache.Len("u1"))
	assert.Equal(t, 2, cache.Len("u2"))
}

func TestRecencyCache_Content(t *testing.T) {
	cache := NewRecencyCache(50)
	ctx := context.Background()

	post := &model.Post{ID: "p1", AuthorID: "u1", Content: "hello", CreatedAt: base}
	require.NoError(t, cache.PutContent(ctx, post))

	contents, err := cache.GetContents(ctx, []string{"p1", "p2"})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "hello", contents["p1"].Content)

	// Snapshots are copies, mutating the result must not leak back.
	contents["p1"].Content = "mutated"
	contents, err = cache.GetContents(ctx, []string{"p1"})
	require.NoError(t, err)
	assert.Equal(t, "hello", contents["p1"].Content)

	require.NoError(t, cache.DeleteContent(ctx, "p1"))
	contents, err = cache.GetContents(ctx, []string{"p1"})
	require.NoError(t, err)
	assert.Empty(t, contents)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
