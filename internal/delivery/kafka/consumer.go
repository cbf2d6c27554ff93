package delivery_kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"greenloop-feed-service/internal/config"
	"greenloop-feed-service/internal/logger"

	"github.com/segmentio/kafka-go"
)

const (
	retryInitialBackoff = time.Second
	retryMaxBackoff     = 30 * time.Second
)

// MessageHandler applies one raw event payload. A non-nil error means the
// failure is transient and the message must be redelivered; handlers are
// responsible for dropping events that can never succeed.
type MessageHandler interface {
	HandleMessage(ctx context.Context, raw []byte) error
}

// messageReader is the part of kafka.Reader the consumer loop uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer drains a single topic within the service's consumer group and
// hands each message to the ingest handler. A failing message is retried in
// place with backoff and is never fetched past: committing a later offset
// would silently discard the failed event after a rebalance.
type Consumer struct {
	reader  messageReader
	handler MessageHandler
	topic   string
	backoff time.Duration
	log     *logger.Logger
}

func NewConsumer(cfg config.Kafka, topic string, handler MessageHandler, log *logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	return &Consumer{
		reader:  reader,
		handler: handler,
		topic:   topic,
		backoff: retryInitialBackoff,
		log:     log,
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info("Starting consumer", slog.String("topic", c.topic))

	for {
		message, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			c.log.Error("Failed to fetch message",
				slog.String("topic", c.topic),
				slog.String("error", err.Error()))
			return err
		}

		if err := c.handleWithRetry(ctx, message); err != nil {
			return nil
		}

		if err := c.reader.CommitMessages(ctx, message); err != nil {
			c.log.Error("Failed to commit message",
				slog.String("topic", c.topic),
				slog.Int64("offset", message.Offset),
				slog.String("error", err.Error()))
		}
	}
}

// handleWithRetry applies one message until the handler succeeds or the
// context ends. Returns a non-nil error only on context cancellation.
func (c *Consumer) handleWithRetry(ctx context.Context, message kafka.Message) error {
	backoff := c.backoff

	for {
		err := c.handler.HandleMessage(ctx, message.Value)
		if err == nil {
			return nil
		}

		c.log.Error("Failed to handle message, retrying",
			slog.String("topic", c.topic),
			slog.Int64("offset", message.Offset),
			slog.Duration("backoff", backoff),
			slog.String("error", err.Error()))

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
		if backoff > retryMaxBackoff {
			backoff = retryMaxBackoff
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
