package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/fpv-storefront/internal/config"
	"github.com/example/fpv-storefront/internal/email"
	"github.com/example/fpv-storefront/internal/infrastructure/kafka"
	"github.com/example/fpv-storefront/internal/logger"
	"github.com/example/fpv-storefront/internal/notification"
	"go.uber.org/zap"
)

// dedicated group so every order is mailed once regardless of projector offsets
const consumerGroup = "email-notifier"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "notifier: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.KafkaEnabled() {
		return errors.New("KAFKA_BROKERS is required")
	}

	log, err := logger.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting notifier",
		zap.Strings("kafka_brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic),
		zap.String("group", consumerGroup),
		zap.String("smtp", cfg.SMTPHost+":"+cfg.SMTPPort),
		zap.String("from", cfg.SMTPFrom),
	)

	handler := notification.NewHandler(email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom), log)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, consumerGroup, log)
	defer consumer.Close()

	if err := consumer.Consume(ctx, kafka.DecodeEvents(handler.HandleEvent)); err != nil && ctx.Err() == nil {
		return fmt.Errorf("consume: %w", err)
	}
	log.Info("notifier stopped")
	return nil
}
