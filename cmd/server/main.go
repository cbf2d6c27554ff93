package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	redis_cache "greenloop-feed-service/internal/cache/redis"
	"greenloop-feed-service/internal/config"
	delivery_http "greenloop-feed-service/internal/delivery/http"
	delivery_kafka "greenloop-feed-service/internal/delivery/kafka"
	metrics_server "greenloop-feed-service/internal/delivery/metrics"
	"greenloop-feed-service/internal/logger"
	prometheus_metrics "greenloop-feed-service/internal/metrics/prometheus"
	follow_postgres "greenloop-feed-service/internal/repository/follow/postgres"
	post_postgres "greenloop-feed-service/internal/repository/post/postgres"
	feed_service "greenloop-feed-service/internal/service/feed"
	ingest_service "greenloop-feed-service/internal/service/ingest"
)

func main() {
	cfg := config.MustLoad()
	ctx := context.Background()
	log := logger.New(cfg.Env)

	migrateDSN := fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DbName)
	migrator, err := migrate.New("file://"+cfg.Database.MigrationsPath, migrateDSN)
	if err != nil {
		log.Error("Failed to create migrator", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if sourceErr, dbErr := migrator.Close(); sourceErr != nil || dbErr != nil {
		log.Warn("Failed to close migrator")
	}

	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DbName)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	log.Info("Connecting to Redis",
		slog.String("address", cfg.Redis.Address),
		slog.Int("port", cfg.Redis.Port),
		slog.Int("db", cfg.Redis.DB))
	redisClient, err := redis_cache.NewClient(cfg.Redis, log)
	if err != nil {
		log.Error("Failed to create Redis client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
		}
	}()

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()
	metrics.SetServiceHealth(true)

	recencyCache := redis_cache.NewRecencyCache(redisClient, cfg.Feed.CacheSize, log)
	socialGraph := redis_cache.NewSocialGraph(redisClient, cfg.Feed.FolloweesTTL, log)

	postRepo := post_postgres.NewPostRepository(pool, log, metrics)
	followRepo := follow_postgres.NewFollowRepository(pool, log, metrics)

	feedService := feed_service.NewFeedService(postRepo, followRepo, recencyCache, socialGraph, cfg.Feed, log, metrics)
	ingestService := ingest_service.NewService(postRepo, followRepo, recencyCache, socialGraph, log, metrics)

	postConsumer := delivery_kafka.NewConsumer(cfg.Kafka, cfg.Kafka.PostTopic, ingestService, log)
	userConsumer := delivery_kafka.NewConsumer(cfg.Kafka, cfg.Kafka.UserTopic, ingestService, log)

	httpServer := delivery_http.NewServer(feedService, cfg.HTTPServer.Address, cfg.HTTPServer.Port, log, metrics, redisClient, pool)
	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	consumerCtx, stopConsumers := context.WithCancel(ctx)
	defer stopConsumers()

	done := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	go func() {
		if err := postConsumer.Run(consumerCtx); err != nil {
			log.Error("Post consumer error", slog.String("error", err.Error()))
		}
	}()

	go func() {
		if err := userConsumer.Run(consumerCtx); err != nil {
			log.Error("User consumer error", slog.String("error", err.Error()))
		}
	}()

	<-quit
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	stopConsumers()
	if err := postConsumer.Close(); err != nil {
		log.Error("Post consumer close error", slog.String("error", err.Error()))
	}
	if err := userConsumer.Close(); err != nil {
		log.Error("User consumer close error", slog.String("error", err.Error()))
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-done
	<-metricsDone

	log.Info("Server exited")
}
