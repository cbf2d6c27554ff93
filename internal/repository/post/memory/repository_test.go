package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"greenloop-feed-service/internal/custom_errors"
	"greenloop-feed-service/internal/logger"
	"greenloop-feed-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo() *PostRepository {
	return NewPostRepository(logger.New("test"))
}

func mustUpsert(t *testing.T, repo *PostRepository, post *model.Post) {
	t.Helper()
	inserted, err := repo.Upsert(context.Background(), post)
	require.NoError(t, err)
	require.True(t, inserted)
}

func makePost(id, authorID string, createdAt time.Time) *model.Post {
	return &model.Post{
		ID:         id,
		AuthorID:   authorID,
		AuthorName: "author-" + authorID,
		Content:    "content of " + id,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestPostRepository_UpsertIdempotent(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	post := makePost("p1", "u1", createdAt)
	inserted, err := repo.Upsert(ctx, post)
	require.NoError(t, err)
	assert.True(t, inserted)

	// A redelivered create with different content must not clobber the row.
	dup := makePost("p1", "u1", createdAt)
	dup.Content = "redelivered"
	inserted, err = repo.Upsert(ctx, dup)
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "content of p1", got.Content)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	repo := newRepo()

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

func TestPostRepository_UpdateContent(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := createdAt.Add(time.Hour)

	mustUpsert(t, repo, makePost("p1", "u1", createdAt))

	updated, err := repo.UpdateContent(ctx, "p1", "edited", modifiedAt)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.True(t, updated.UpdatedAt.Equal(modifiedAt))
	assert.True(t, updated.CreatedAt.Equal(createdAt))

	_, err = repo.UpdateContent(ctx, "missing", "edited", modifiedAt)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

func TestPostRepository_Delete(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	mustUpsert(t, repo, makePost("p1", "u1", time.Now().UTC()))
	require.NoError(t, repo.Delete(ctx, "p1"))

	_, err := repo.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)

	err = repo.Delete(ctx, "p1")
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

func TestPostRepository_GetByIDs(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mustUpsert(t, repo, makePost("p1", "u1", createdAt))
	mustUpsert(t, repo, makePost("p2", "u1", createdAt))

	posts, err := repo.GetByIDs(ctx, []string{"p1", "missing", "p2"})
	require.NoError(t, err)
	require.Len(t, posts, 2)
}

func TestPostRepository_ListByAuthors(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 1; i <= 5; i++ {
		mustUpsert(t, repo, makePost(fmt.Sprintf("a%d", i), "u1", base.Add(time.Duration(i)*time.Minute)))
	}
	mustUpsert(t, repo, makePost("b1", "u2", base.Add(10*time.Minute)))
	mustUpsert(t, repo, makePost("c1", "u3", base.Add(20*time.Minute)))

	t.Run("newest first across authors", func(t *testing.T) {
		posts, err := repo.ListByAuthors(ctx, []string{"u1", "u2"}, nil, 10)
		require.NoError(t, err)
		require.Len(t, posts, 6)
		assert.Equal(t, "b1", posts[0].ID)
		assert.Equal(t, "a5", posts[1].ID)
		assert.Equal(t, "a1", posts[5].ID)
	})

	t.Run("limit truncates", func(t *testing.T) {
		posts, err := repo.ListByAuthors(ctx, []string{"u1"}, nil, 2)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "a5", posts[0].ID)
		assert.Equal(t, "a4", posts[1].ID)
	})

	t.Run("cursor is exclusive", func(t *testing.T) {
		before := base.Add(3 * time.Minute)
		posts, err := repo.ListByAuthors(ctx, []string{"u1"}, &before, 10)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "a2", posts[0].ID)
		assert.Equal(t, "a1", posts[1].ID)
	})

	t.Run("equal timestamps order by id", func(t *testing.T) {
		ts := base.Add(time.Hour)
		mustUpsert(t, repo, makePost("t2", "u4", ts))
		mustUpsert(t, repo, makePost("t1", "u4", ts))

		posts, err := repo.ListByAuthors(ctx, []string{"u4"}, nil, 10)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "t1", posts[0].ID)
		assert.Equal(t, "t2", posts[1].ID)
	})

	t.Run("no authors yields nothing", func(t *testing.T) {
		posts, err := repo.ListByAuthors(ctx, nil, nil, 10)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}
