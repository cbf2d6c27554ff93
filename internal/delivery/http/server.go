package delivery_http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"greenloop-feed-service/internal/logger"
	"greenloop-feed-service/internal/metrics"
	feed_service "greenloop-feed-service/internal/service/feed"

	"github.com/go-chi/chi/v5"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	feed      feed_service.Service
	server    *http.Server
	address   string
	port      int
	readiness []Pinger
	log       *logger.Logger
	metrics   metrics.Provider
}

func NewServer(
	feed feed_service.Service,
	address string,
	port int,
	log *logger.Logger,
	metricsProvider metrics.Provider,
	readiness ...Pinger,
) *Server {
	return &Server{
		feed:      feed,
		address:   address,
		port:      port,
		readiness: readiness,
		log:       log,
		metrics:   metricsProvider,
	}
}

func (s *Server) routes() *chi.Mux {
	router := chi.NewRouter()
	router.Get("/api/feed/{userID}", s.handleGetFeed)
	router.Get("/healthz", s.handleHealthz)
	return router
}

func (s *Server) Run() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.address, s.port),
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	s.log.Info("Starting HTTP server", slog.Int("port", s.port))
	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode response", slog.String("error", err.Error()))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, errorResponse{Error: message})
}
