package memory

import (
	"context"
	"sort"
	"sync"

	"greenloop-feed-service/internal/logger"
)

type FollowRepository struct {
	log       *logger.Logger
	mu        sync.RWMutex
	followees map[string]map[string]struct{}
	followers map[string]map[string]struct{}
}

func NewFollowRepository(log *logger.Logger) *FollowRepository {
	return &FollowRepository{
		log:       log,
		followees: make(map[string]map[string]struct{}),
		followers: make(map[string]map[string]struct{}),
	}
}

func (f *FollowRepository) AddEdge(ctx context.Context, followerID, followeeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.followees[followerID] == nil {
		f.followees[followerID] = make(map[string]struct{})
	}
	if f.followers[followeeID] == nil {
		f.followers[followeeID] = make(map[string]struct{})
	}
	f.followees[followerID][followeeID] = struct{}{}
	f.followers[followeeID][followerID] = struct{}{}
	return nil
}

func (f *FollowRepository) RemoveEdge(ctx context.Context, followerID, followeeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.followees[followerID], followeeID)
	delete(f.followers[followeeID], followerID)
	return nil
}

func (f *FollowRepository) FolloweesOf(ctx context.Context, userID string) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return sortedKeys(f.followees[userID]), nil
}

func (f *FollowRepository) FollowersOf(ctx context.Context, userID string) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return sortedKeys(f.followers[userID]), nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
