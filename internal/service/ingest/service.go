package ingest_service

import (
	"context"
	"errors"
	"log/slog"

	"greenloop-feed-service/internal/cache"
	"greenloop-feed-service/internal/custom_errors"
	"greenloop-feed-service/internal/logger"
	"greenloop-feed-service/internal/metrics"
	"greenloop-feed-service/internal/model"
	follow_repository "greenloop-feed-service/internal/repository/follow"
	post_repository "greenloop-feed-service/internal/repository/post"

	"github.com/go-playground/validator/v10"
)

// Service applies inbound post and follow lifecycle events to the durable
// stores and caches. Every handler is idempotent: the transport delivers
// at-least-once and gives no ordering guarantee across topics, so a
// missing target is treated as a benign no-op. A non-nil return marks the
// event for redelivery; malformed or unknown events are dropped.
type Service struct {
	posts    post_repository.Repository
	follows  follow_repository.Repository
	cache    cache.RecencyCache
	graph    cache.SocialGraph
	validate *validator.Validate
	log      *logger.Logger
	metrics  metrics.Provider
}

func NewService(
	posts post_repository.Repository,
	follows follow_repository.Repository,
	recencyCache cache.RecencyCache,
	graph cache.SocialGraph,
	log *logger.Logger,
	metricsProvider metrics.Provider,
) *Service {
	return &Service{
		posts:    posts,
		follows:  follows,
		cache:    recencyCache,
		graph:    graph,
		validate: validator.New(),
		log:      log,
		metrics:  metricsProvider,
	}
}

func (s *Service) HandleMessage(ctx context.Context, raw []byte) error {
	event, err := s.parseEvent(raw)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrUnknownEventType):
			s.log.Debug("Ignoring event of unknown type", slog.String("error", err.Error()))
			s.metrics.IncrementEventsDropped("unknown_type")
		default:
			s.log.Warn("Dropping malformed event", slog.String("error", err.Error()))
			s.metrics.IncrementEventsDropped("malformed")
		}
		return nil
	}

	var handleErr error
	switch e := event.(type) {
	case model.PostCreatedEvent:
		handleErr = s.handlePostCreated(ctx, e)
	case model.PostUpdatedEvent:
		handleErr = s.handlePostUpdated(ctx, e)
	case model.PostDeletedEvent:
		handleErr = s.handlePostDeleted(ctx, e)
	case model.UserFollowedEvent:
		handleErr = s.handleUserFollowed(ctx, e)
	case model.UserUnfollowedEvent:
		handleErr = s.handleUserUnfollowed(ctx, e)
	}

	s.metrics.IncrementEventOperations(event.Kind(), handleErr == nil)
	return handleErr
}

func (s *Service) handlePostCreated(ctx context.Context, e model.PostCreatedEvent) error {
	post := &model.Post{
		ID:         e.PostID,
		AuthorID:   e.AuthorID,
		AuthorName: e.AuthorName,
		Content:    e.Content,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.CreatedAt,
	}

	inserted, err := s.posts.Upsert(ctx, post)
	if err != nil {
		s.log.Error("Failed to persist created post",
			slog.String("post_id", e.PostID),
			slog.String("error", err.Error()))
		return err
	}
	if !inserted {
		// A redelivered create must not clobber a snapshot a later update
		// already refreshed.
		s.log.Debug("Post already exists, skipping cache refresh",
			slog.String("post_id", e.PostID))
		return nil
	}

	// The store is the authoritative fallback, so cache failures only
	// cost latency on the next read.
	if err := s.cache.Put(ctx, e.AuthorID, e.PostID, e.CreatedAt); err != nil {
		s.log.Warn("Failed to cache created post",
			slog.String("post_id", e.PostID),
			slog.String("error", err.Error()))
		return nil
	}
	if err := s.cache.PutContent(ctx, post); err != nil {
		s.log.Warn("Failed to cache content snapshot",
			slog.String("post_id", e.PostID),
			slog.String("error", err.Error()))
	}

	s.log.Debug("Post created",
		slog.String("post_id", e.PostID),
		slog.String("author_id", e.AuthorID))
	return nil
}

func (s *Service) handlePostUpdated(ctx context.Context, e model.PostUpdatedEvent) error {
	updated, err := s.posts.UpdateContent(ctx, e.PostID, e.Content, e.ModifiedAt)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			// Update may arrive before its create; skip rather than fail.
			s.log.Warn("Update for unknown post, skipping",
				slog.String("post_id", e.PostID))
			return nil
		}
		s.log.Error("Failed to update post",
			slog.String("post_id", e.PostID),
			slog.String("error", err.Error()))
		return err
	}

	if err := s.cache.PutContent(ctx, updated); err != nil {
		s.log.Warn("Failed to refresh content snapshot",
			slog.String("post_id", e.PostID),
			slog.String("error", err.Error()))
	}

	s.log.Debug("Post updated", slog.String("post_id", e.PostID))
	return nil
}

func (s *Service) handlePostDeleted(ctx context.Context, e model.PostDeletedEvent) error {
	// Cache removal comes first: the delete must not be acknowledged while
	// the id is still served from the cache.
	if err := s.cache.Remove(ctx, e.AuthorID, e.PostID); err != nil {
		s.log.Error("Failed to remove recency entry for deleted post",
			slog.String("post_id", e.PostID),
			slog.String("error", err.Error()))
		return err
	}
	if err := s.cache.DeleteContent(ctx, e.PostID); err != nil {
		s.log.Error("Failed to remove content snapshot for deleted post",
			slog.String("post_id", e.PostID),
			slog.String("error", err.Error()))
		return err
	}

	if err := s.posts.Delete(ctx, e.PostID); err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			// Delete may arrive before its create; nothing to do.
			s.log.Debug("Delete for unknown post", slog.String("post_id", e.PostID))
			return nil
		}
		s.log.Error("Failed to delete post from store",
			slog.String("post_id", e.PostID),
			slog.String("error", err.Error()))
		return err
	}

	s.log.Debug("Post deleted", slog.String("post_id", e.PostID))
	return nil
}

func (s *Service) handleUserFollowed(ctx context.Context, e model.UserFollowedEvent) error {
	if err := s.follows.AddEdge(ctx, e.FollowerID, e.FolloweeID); err != nil {
		s.log.Error("Failed to persist follow edge",
			slog.String("follower_id", e.FollowerID),
			slog.String("followee_id", e.FolloweeID),
			slog.String("error", err.Error()))
		return err
	}
	if err := s.graph.AddEdge(ctx, e.FollowerID, e.FolloweeID); err != nil {
		s.log.Error("Failed to add graph edge",
			slog.String("follower_id", e.FollowerID),
			slog.String("followee_id", e.FolloweeID),
			slog.String("error", err.Error()))
		return err
	}

	// Historic posts are not copied anywhere: the feed is computed from
	// the graph at read time, so the new followee's posts appear on the
	// follower's next request.
	s.log.Debug("User followed",
		slog.String("follower_id", e.FollowerID),
		slog.String("followee_id", e.FolloweeID))
	return nil
}

func (s *Service) handleUserUnfollowed(ctx context.Context, e model.UserUnfollowedEvent) error {
	if err := s.follows.RemoveEdge(ctx, e.FollowerID, e.FolloweeID); err != nil {
		s.log.Error("Failed to remove follow edge",
			slog.String("follower_id", e.FollowerID),
			slog.String("followee_id", e.FolloweeID),
			slog.String("error", err.Error()))
		return err
	}
	if err := s.graph.RemoveEdge(ctx, e.FollowerID, e.FolloweeID); err != nil {
		s.log.Error("Failed to remove graph edge",
			slog.String("follower_id", e.FollowerID),
			slog.String("followee_id", e.FolloweeID),
			slog.String("error", err.Error()))
		return err
	}

	s.log.Debug("User unfollowed",
		slog.String("follower_id", e.FollowerID),
		slog.String("followee_id", e.FolloweeID))
	return nil
}
