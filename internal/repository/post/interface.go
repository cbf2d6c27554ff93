package post_repository

import (
	"context"
	"time"

	"greenloop-feed-service/internal/model"
)

//go:generate mockery --name Repository --dir . --output ../../../mocks/post --outpkg mocks --filename PostRepository.go
type Repository interface {
	// Upsert inserts a post by id and reports whether a row was written.
	// Re-delivering the same id is a no-op, never a duplicate row.
	Upsert(ctx context.Context, post *model.Post) (bool, error)
	// UpdateContent rewrites the content of an existing post and returns
	// the updated row. Returns ErrPostNotFound for unknown ids.
	UpdateContent(ctx context.Context, postID, content string, modifiedAt time.Time) (*model.Post, error)
	// Delete removes a post by id. Returns ErrPostNotFound for unknown ids.
	Delete(ctx context.Context, postID string) error
	GetByID(ctx context.Context, postID string) (*model.Post, error)
	GetByIDs(ctx context.Context, postIDs []string) ([]*model.Post, error)
	// ListByAuthors returns up to limit posts by the given authors with
	// createdAt strictly before the cursor (all if before is nil), ordered
	// by createdAt descending, ties by id ascending.
	ListByAuthors(ctx context.Context, authorIDs []string, before *time.Time, limit int) ([]*model.Post, error)
}
