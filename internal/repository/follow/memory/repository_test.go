package memory

import (
	"context"
	"testing"

	"greenloop-feed-service/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_AddRemove(t *testing.T) {
	repo := NewFollowRepository(logger.New("test"))
	ctx := context.Background()

	require.NoError(t, repo.AddEdge(ctx, "u2", "u1"))
	require.NoError(t, repo.AddEdge(ctx, "u2", "u1"))
	require.NoError(t, repo.AddEdge(ctx, "u3", "u1"))

	followees, err := repo.FolloweesOf(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, followees)

	followers, err := repo.FollowersOf(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2", "u3"}, followers)

	require.NoError(t, repo.RemoveEdge(ctx, "u2", "u1"))
	require.NoError(t, repo.RemoveEdge(ctx, "u2", "u1"))

	followees, err = repo.FolloweesOf(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, followees)

	followers, err = repo.FollowersOf(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u3"}, followers)
}
