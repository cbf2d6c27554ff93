package follow_repository_postgres

import (
	"context"
	"log/slog"
	"time"

	"greenloop-feed-service/internal/custom_errors"
	"greenloop-feed-service/internal/logger"
	"greenloop-feed-service/internal/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PgDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type FollowRepository struct {
	log     *logger.Logger
	db      PgDB
	metrics metrics.Provider
}

func NewFollowRepository(db PgDB, log *logger.Logger, metricsProvider metrics.Provider) *FollowRepository {
	return &FollowRepository{db: db, log: log, metrics: metricsProvider}
}

func (f *FollowRepository) AddEdge(ctx context.Context, followerID, followeeID string) error {
	start := time.Now()
	args := pgx.NamedArgs{
		"follower_id": followerID,
		"followee_id": followeeID,
	}

	query := `
		INSERT INTO follows (follower_id, followee_id)
		VALUES (@follower_id, @followee_id)
		ON CONFLICT (follower_id, followee_id) DO NOTHING`

	if _, err := f.db.Exec(ctx, query, args); err != nil {
		f.log.Error("Error adding follow edge",
			slog.String("follower_id", followerID),
			slog.String("followee_id", followeeID),
			slog.String("error", err.Error()))
		f.metrics.IncrementDatabaseQueries("follow_add_edge", false)
		f.metrics.RecordDatabaseQueryDuration("follow_add_edge", time.Since(start))
		return custom_errors.ErrDatabaseQuery
	}

	f.metrics.IncrementDatabaseQueries("follow_add_edge", true)
	f.metrics.RecordDatabaseQueryDuration("follow_add_edge", time.Since(start))
	return nil
}

func (f *FollowRepository) RemoveEdge(ctx context.Context, followerID, followeeID string) error {
	start := time.Now()
	args := pgx.NamedArgs{
		"follower_id": followerID,
		"followee_id": followeeID,
	}

	query := `DELETE FROM follows WHERE follower_id = @follower_id AND followee_id = @followee_id`

	if _, err := f.db.Exec(ctx, query, args); err != nil {
		f.log.Error("Error removing follow edge",
			slog.String("follower_id", followerID),
			slog.String("followee_id", followeeID),
			slog.String("error", err.Error()))
		f.metrics.IncrementDatabaseQueries("follow_remove_edge", false)
		f.metrics.RecordDatabaseQueryDuration("follow_remove_edge", time.Since(start))
		return custom_errors.ErrDatabaseQuery
	}

	f.metrics.IncrementDatabaseQueries("follow_remove_edge", true)
	f.metrics.RecordDatabaseQueryDuration("follow_remove_edge", time.Since(start))
	return nil
}

func (f *FollowRepository) FolloweesOf(ctx context.Context, userID string) ([]string, error) {
	args := pgx.NamedArgs{"user_id": userID}
	query := `SELECT followee_id FROM follows WHERE follower_id = @user_id ORDER BY followee_id`

	return f.queryIDs(ctx, query, args, "follow_followees_of")
}

func (f *FollowRepository) FollowersOf(ctx context.Context, userID string) ([]string, error) {
	args := pgx.NamedArgs{"user_id": userID}
	query := `SELECT follower_id FROM follows WHERE followee_id = @user_id ORDER BY follower_id`

	return f.queryIDs(ctx, query, args, "follow_followers_of")
}

func (f *FollowRepository) queryIDs(ctx context.Context, query string, args pgx.NamedArgs, op string) ([]string, error) {
	start := time.Now()

	rows, err := f.db.Query(ctx, query, args)
	if err != nil {
		f.log.Error("Error querying follow edges", slog.String("op", op), slog.String("error", err.Error()))
		f.metrics.IncrementDatabaseQueries(op, false)
		f.metrics.RecordDatabaseQueryDuration(op, time.Since(start))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			f.log.Error("Error scanning follow edge", slog.String("op", op), slog.String("error", err.Error()))
			f.metrics.IncrementDatabaseQueries(op, false)
			f.metrics.RecordDatabaseQueryDuration(op, time.Since(start))
			return nil, custom_errors.ErrDatabaseScan
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		f.log.Error("Error iterating follow edges", slog.String("op", op), slog.String("error", err.Error()))
		f.metrics.IncrementDatabaseQueries(op, false)
		f.metrics.RecordDatabaseQueryDuration(op, time.Since(start))
		return nil, custom_errors.ErrDatabaseQuery
	}

	f.metrics.IncrementDatabaseQueries(op, true)
	f.metrics.RecordDatabaseQueryDuration(op, time.Since(start))
	return ids, nil
}
