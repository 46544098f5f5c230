package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageHandler func(ctx context.Context, key, value []byte) error

// EventHandler receives decoded store events
type EventHandler func(ctx context.Context, event store.Event) error

type Consumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

func NewConsumer(brokers []string, topic, groupID string, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{
		reader: reader,
		logger: logger.Named("kafka_consumer").With(zap.String("topic", topic), zap.String("group", groupID)),
	}
}

// Consume reads messages until ctx is cancelled. Handler errors are logged
// and the message is skipped.
func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Warn("read message failed", zap.Error(err))
				continue
			}

			if err := handler(ctx, msg.Key, msg.Value); err != nil {
				c.logger.Error("handle message failed",
					zap.ByteString("key", msg.Key),
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
			}
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

// DecodeEvents adapts an EventHandler to a MessageHandler
func DecodeEvents(handler EventHandler) MessageHandler {
	return func(ctx context.Context, key, value []byte) error {
		var event store.Event
		if err := json.Unmarshal(value, &event); err != nil {
			return fmt.Errorf("failed to decode event: %w", err)
		}
		return handler(ctx, event)
	}
}
