package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/fpv-storefront/internal/config"
	"github.com/example/fpv-storefront/internal/infrastructure/kafka"
	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"github.com/example/fpv-storefront/internal/logger"
	"github.com/example/fpv-storefront/internal/projection"
	"go.uber.org/zap"
)

const consumerGroup = "projector"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "projector: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.KafkaEnabled() || cfg.DatabaseURL == "" {
		return errors.New("KAFKA_BROKERS and DATABASE_URL are required")
	}

	log, err := logger.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting projector",
		zap.Strings("kafka_brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic),
		zap.String("group", consumerGroup),
	)

	db, err := store.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	readStore := store.NewPostgresReadStore(db, log)
	if err := readStore.EnsureSchema(); err != nil {
		return fmt.Errorf("read store schema: %w", err)
	}
	projector := projection.NewProjector(readStore, log)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, consumerGroup, log)
	defer consumer.Close()

	if err := consumer.Consume(ctx, kafka.DecodeEvents(projector.HandleEvent)); err != nil && ctx.Err() == nil {
		return fmt.Errorf("consume: %w", err)
	}
	log.Info("projector stopped")
	return nil
}
