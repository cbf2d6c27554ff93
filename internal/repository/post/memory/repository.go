package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"greenloop-feed-service/internal/custom_errors"
	"greenloop-feed-service/internal/logger"
	"greenloop-feed-service/internal/model"
)

type PostRepository struct {
	log   *logger.Logger
	mu    sync.RWMutex
	posts map[string]*model.Post
}

func NewPostRepository(log *logger.Logger) *PostRepository {
	return &PostRepository{
		log:   log,
		posts: make(map[string]*model.Post),
	}
}

func (p *PostRepository) Upsert(ctx context.Context, post *model.Post) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.posts[post.ID]; exists {
		return false, nil
	}

	stored := *post
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = stored.CreatedAt
	}
	p.posts[post.ID] = &stored
	return true, nil
}

func (p *PostRepository) UpdateContent(ctx context.Context, postID, content string, modifiedAt time.Time) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[postID]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	post.Content = content
	post.UpdatedAt = modifiedAt

	result := *post
	return &result, nil
}

func (p *PostRepository) Delete(ctx context.Context, postID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.posts[postID]; !exists {
		return custom_errors.ErrPostNotFound
	}

	delete(p.posts, postID)
	return nil
}

func (p *PostRepository) GetByID(ctx context.Context, postID string) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[postID]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	result := *post
	return &result, nil
}

func (p *PostRepository) GetByIDs(ctx context.Context, postIDs []string) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var result []*model.Post
	for _, id := range postIDs {
		if post, exists := p.posts[id]; exists {
			postCopy := *post
			result = append(result, &postCopy)
		}
	}
	return result, nil
}

func (p *PostRepository) ListByAuthors(ctx context.Context, authorIDs []string, before *time.Time, limit int) ([]*model.Post, error) {
	if len(authorIDs) == 0 || limit <= 0 {
		return nil, nil
	}

	authors := make(map[string]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = struct{}{}
	}

	p.mu.RLock()
	var result []*model.Post
	for _, post := range p.posts {
		if _, ok := authors[post.AuthorID]; !ok {
			continue
		}
		if before != nil && !post.CreatedAt.Before(*before) {
			continue
		}
		postCopy := *post
		result = append(result, &postCopy)
	}
	p.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}
