package delivery_http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"greenloop-feed-service/internal/custom_errors"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGetFeed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		statusLabel := strconv.Itoa(status)
		s.metrics.IncrementHTTPRequests("get_feed", statusLabel)
		s.metrics.RecordHTTPRequestDuration("get_feed", statusLabel, time.Since(start))
	}()

	userID := chi.URLParam(r, "userID")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			status = http.StatusBadRequest
			s.errorResponse(w, status, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	var before *time.Time
	if raw := r.URL.Query().Get("olderThan"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			status = http.StatusBadRequest
			s.errorResponse(w, status, custom_errors.ErrInvalidCursor.Error())
			return
		}
		before = &parsed
	}

	posts, err := s.feed.GetFeed(r.Context(), userID, limit, before)
	if err != nil {
		if errors.Is(err, custom_errors.ErrFeedUnavailable) {
			status = http.StatusServiceUnavailable
			s.errorResponse(w, status, custom_errors.ErrFeedUnavailable.Error())
			return
		}
		s.log.Error("Failed to get feed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		status = http.StatusInternalServerError
		s.errorResponse(w, status, "internal error")
		return
	}

	s.jsonResponse(w, status, posts)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for _, pinger := range s.readiness {
		if err := pinger.Ping(ctx); err != nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "not ready")
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
