package post_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"greenloop-feed-service/internal/custom_errors"
	"greenloop-feed-service/internal/logger"
	"greenloop-feed-service/internal/metrics"
	"greenloop-feed-service/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PgDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostRepository struct {
	log     *logger.Logger
	db      PgDB
	metrics metrics.Provider
}

func NewPostRepository(db PgDB, log *logger.Logger, metricsProvider metrics.Provider) *PostRepository {
	return &PostRepository{db: db, log: log, metrics: metricsProvider}
}

const postColumns = `id, author_id, author_name, content, created_at, updated_at`

func (p *PostRepository) Upsert(ctx context.Context, post *model.Post) (bool, error) {
	start := time.Now()

	updatedAt := post.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = post.CreatedAt
	}

	args := pgx.NamedArgs{
		"id":          post.ID,
		"author_id":   post.AuthorID,
		"author_name": post.AuthorName,
		"content":     post.Content,
		"created_at":  post.CreatedAt,
		"updated_at":  updatedAt,
	}

	query := `
		INSERT INTO posts (id, author_id, author_name, content, created_at, updated_at)
		VALUES (@id, @author_id, @author_name, @content, @created_at, @updated_at)
		ON CONFLICT (id) DO NOTHING`

	tag, err := p.db.Exec(ctx, query, args)
	if err != nil {
		p.log.Error("Error upserting post", slog.String("post_id", post.ID), slog.String("error", err.Error()))
		p.metrics.IncrementDatabaseQueries("post_upsert", false)
		p.metrics.RecordDatabaseQueryDuration("post_upsert", time.Since(start))
		return false, custom_errors.ErrDatabaseQuery
	}

	p.metrics.IncrementDatabaseQueries("post_upsert", true)
	p.metrics.RecordDatabaseQueryDuration("post_upsert", time.Since(start))
	return tag.RowsAffected() == 1, nil
}

func (p *PostRepository) UpdateContent(ctx context.Context, postID, content string, modifiedAt time.Time) (*model.Post, error) {
	start := time.Now()

	args := pgx.NamedArgs{
		"id":         postID,
		"content":    content,
		"updated_at": modifiedAt,
	}

	query := `UPDATE posts SET content = @content, updated_at = @updated_at
				WHERE id = @id
				RETURNING ` + postColumns

	var updated model.Post
	err := p.db.QueryRow(ctx, query, args).Scan(
		&updated.ID,
		&updated.AuthorID,
		&updated.AuthorName,
		&updated.Content,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		p.metrics.IncrementDatabaseQueries("post_update_content", false)
		p.metrics.RecordDatabaseQueryDuration("post_update_content", time.Since(start))
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found during UpdateContent", slog.String("post_id", postID))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error updating post content", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.metrics.IncrementDatabaseQueries("post_update_content", true)
	p.metrics.RecordDatabaseQueryDuration("post_update_content", time.Since(start))
	return &updated, nil
}

func (p *PostRepository) Delete(ctx context.Context, postID string) error {
	start := time.Now()
	args := pgx.NamedArgs{"id": postID}

	tag, err := p.db.Exec(ctx, `DELETE FROM posts WHERE id = @id`, args)
	if err != nil {
		p.log.Error("Error deleting post", slog.String("post_id", postID), slog.String("error", err.Error()))
		p.metrics.IncrementDatabaseQueries("post_delete", false)
		p.metrics.RecordDatabaseQueryDuration("post_delete", time.Since(start))
		return custom_errors.ErrDatabaseQuery
	}

	p.metrics.IncrementDatabaseQueries("post_delete", true)
	p.metrics.RecordDatabaseQueryDuration("post_delete", time.Since(start))

	if tag.RowsAffected() == 0 {
		p.log.Debug("Post not found during Delete", slog.String("post_id", postID))
		return custom_errors.ErrPostNotFound
	}

	return nil
}

func (p *PostRepository) GetByID(ctx context.Context, postID string) (*model.Post, error) {
	start := time.Now()
	args := pgx.NamedArgs{"id": postID}
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = @id`

	post := &model.Post{}
	err := p.db.QueryRow(ctx, query, args).Scan(
		&post.ID,
		&post.AuthorID,
		&post.AuthorName,
		&post.Content,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		p.metrics.IncrementDatabaseQueries("post_get_by_id", false)
		p.metrics.RecordDatabaseQueryDuration("post_get_by_id", time.Since(start))
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id", slog.String("post_id", postID))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by id", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.metrics.IncrementDatabaseQueries("post_get_by_id", true)
	p.metrics.RecordDatabaseQueryDuration("post_get_by_id", time.Since(start))
	return post, nil
}

func (p *PostRepository) GetByIDs(ctx context.Context, postIDs []string) ([]*model.Post, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	start := time.Now()
	args := pgx.NamedArgs{"ids": postIDs}
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = ANY(@ids)`

	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.log.Error("Error getting posts by ids", slog.String("error", err.Error()))
		p.metrics.IncrementDatabaseQueries("post_get_by_ids", false)
		p.metrics.RecordDatabaseQueryDuration("post_get_by_ids", time.Since(start))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	posts, err := p.scanPosts(rows, "GetByIDs")
	p.metrics.IncrementDatabaseQueries("post_get_by_ids", err == nil)
	p.metrics.RecordDatabaseQueryDuration("post_get_by_ids", time.Since(start))
	return posts, err
}

func (p *PostRepository) ListByAuthors(ctx context.Context, authorIDs []string, before *time.Time, limit int) ([]*model.Post, error) {
	if len(authorIDs) == 0 || limit <= 0 {
		return nil, nil
	}

	start := time.Now()
	args := pgx.NamedArgs{
		"author_ids": authorIDs,
		"limit":      limit,
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id = ANY(@author_ids)`
	if before != nil {
		query += ` AND created_at < @before`
		args["before"] = *before
	}
	query += ` ORDER BY created_at DESC, id ASC LIMIT @limit`

	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.log.Error("Error listing posts by authors", slog.String("error", err.Error()))
		p.metrics.IncrementDatabaseQueries("post_list_by_authors", false)
		p.metrics.RecordDatabaseQueryDuration("post_list_by_authors", time.Since(start))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	posts, err := p.scanPosts(rows, "ListByAuthors")
	p.metrics.IncrementDatabaseQueries("post_list_by_authors", err == nil)
	p.metrics.RecordDatabaseQueryDuration("post_list_by_authors", time.Since(start))
	return posts, err
}

func (p *PostRepository) scanPosts(rows pgx.Rows, op string) ([]*model.Post, error) {
	var posts []*model.Post
	for rows.Next() {
		var post model.Post
		err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.AuthorName,
			&post.Content,
			&post.CreatedAt,
			&post.UpdatedAt,
		)
		if err != nil {
			p.log.Error("Error scanning post", slog.String("op", op), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		p.log.Error("Error iterating rows", slog.String("op", op), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return posts, nil
}
