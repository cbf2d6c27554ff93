package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"greenloop-feed-service/internal/model"
)

type rankedEntry struct {
	postID    string
	createdAt time.Time
}

type authorRanking struct {
	mu sync.Mutex
	// Ordered by createdAt descending, ties by postID ascending. Trimming
	// drops from the tail, so among colliding timestamps the largest ids
	// go first.
	entries []rankedEntry
}

// RecencyCache is the in-process implementation of the recency cache, used
// in tests and single-node deployments. Mutations on one author take only
// that author's lock.
type RecencyCache struct {
	size int

	mu      sync.RWMutex
	authors map[string]*authorRanking

	contentMu sync.RWMutex
	content   map[string]*model.Post
}

func NewRecencyCache(size int) *RecencyCache {
	return &RecencyCache{
		size:    size,
		authors: make(map[string]*authorRanking),
		content: make(map[string]*model.Post),
	}
}

func (r *RecencyCache) ranking(authorID string) *authorRanking {
	r.mu.RLock()
	ranking, ok := r.authors[authorID]
	r.mu.RUnlock()
	if ok {
		return ranking
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ranking, ok = r.authors[authorID]; !ok {
		ranking = &authorRanking{}
		r.authors[authorID] = ranking
	}
	return ranking
}

func rankedBefore(a, b rankedEntry) bool {
	if !a.createdAt.Equal(b.createdAt) {
		return a.createdAt.After(b.createdAt)
	}
	return a.postID < b.postID
}

func (r *RecencyCache) Put(ctx context.Context, authorID, postID string, createdAt time.Time) error {
	ranking := r.ranking(authorID)

	ranking.mu.Lock()
	defer ranking.mu.Unlock()

	// A re-put of an existing id replaces its entry.
	for i, e := range ranking.entries {
		if e.postID == postID {
			ranking.entries = append(ranking.entries[:i], ranking.entries[i+1:]...)
			break
		}
	}

	entry := rankedEntry{postID: postID, createdAt: createdAt}
	idx := sort.Search(len(ranking.entries), func(i int) bool {
		return rankedBefore(entry, ranking.entries[i])
	})
	ranking.entries = append(ranking.entries, rankedEntry{})
	copy(ranking.entries[idx+1:], ranking.entries[idx:])
	ranking.entries[idx] = entry

	if len(ranking.entries) > r.size {
		ranking.entries = ranking.entries[:r.size]
	}

	return nil
}

func (r *RecencyCache) Remove(ctx context.Context, authorID, postID string) error {
	ranking := r.ranking(authorID)

	ranking.mu.Lock()
	defer ranking.mu.Unlock()

	for i, e := range ranking.entries {
		if e.postID == postID {
			ranking.entries = append(ranking.entries[:i], ranking.entries[i+1:]...)
			break
		}
	}
	return nil
}

func (r *RecencyCache) RangeBefore(ctx context.Context, authorID string, before *time.Time, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	ranking := r.ranking(authorID)

	ranking.mu.Lock()
	defer ranking.mu.Unlock()

	ids := make([]string, 0, limit)
	for _, e := range ranking.entries {
		if before != nil && !e.createdAt.Before(*before) {
			continue
		}
		ids = append(ids, e.postID)
		if len(ids) == limit {
			break
		}
	}
	return ids, nil
}

func (r *RecencyCache) PutContent(ctx context.Context, post *model.Post) error {
	r.contentMu.Lock()
	defer r.contentMu.Unlock()

	snapshot := *post
	r.content[post.ID] = &snapshot
	return nil
}

func (r *RecencyCache) GetContents(ctx context.Context, postIDs []string) (map[string]*model.Post, error) {
	r.contentMu.RLock()
	defer r.contentMu.RUnlock()

	result := make(map[string]*model.Post, len(postIDs))
	for _, id := range postIDs {
		if post, ok := r.content[id]; ok {
			snapshot := *post
			result[id] = &snapshot
		}
	}
	return result, nil
}

func (r *RecencyCache) DeleteContent(ctx context.Context, postID string) error {
	r.contentMu.Lock()
	defer r.contentMu.Unlock()

	delete(r.content, postID)
	return nil
}

// Len reports the number of ranked entries held for an author.
func (r *RecencyCache) Len(authorID string) int {
	ranking := r.ranking(authorID)

	ranking.mu.Lock()
	defer ranking.mu.Unlock()
	return len(ranking.entries)
}
