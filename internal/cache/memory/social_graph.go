package memory

import (
	"context"
	"sort"
	"sync"
)

// SocialGraph is the in-process social graph index. A single lock covers
// both edge directions, so an edge is always observed fully applied or not
// at all.
type SocialGraph struct {
	mu        sync.RWMutex
	followees map[string]map[string]struct{}
	followers map[string]map[string]struct{}
}

func NewSocialGraph() *SocialGraph {
	return &SocialGraph{
		followees: make(map[string]map[string]struct{}),
		followers: make(map[string]map[string]struct{}),
	}
}

func (g *SocialGraph) AddEdge(ctx context.Context, followerID, followeeID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.followees[followerID] == nil {
		g.followees[followerID] = make(map[string]struct{})
	}
	if g.followers[followeeID] == nil {
		g.followers[followeeID] = make(map[string]struct{})
	}
	g.followees[followerID][followeeID] = struct{}{}
	g.followers[followeeID][followerID] = struct{}{}
	return nil
}

func (g *SocialGraph) RemoveEdge(ctx context.Context, followerID, followeeID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.followees[followerID], followeeID)
	delete(g.followers[followeeID], followerID)
	return nil
}

func (g *SocialGraph) Followees(ctx context.Context, userID string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedMembers(g.followees[userID]), nil
}

func (g *SocialGraph) Followers(ctx context.Context, userID string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedMembers(g.followers[userID]), nil
}

func (g *SocialGraph) SeedFollowees(ctx context.Context, userID string, followees []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for followee := range g.followees[userID] {
		delete(g.followers[followee], userID)
	}

	set := make(map[string]struct{}, len(followees))
	for _, followee := range followees {
		set[followee] = struct{}{}
		if g.followers[followee] == nil {
			g.followers[followee] = make(map[string]struct{})
		}
		g.followers[followee][userID] = struct{}{}
	}
	g.followees[userID] = set
	return nil
}

func sortedMembers(set map[string]struct{}) []string {
	members := make([]string, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	sort.Strings(members)
	return members
}
