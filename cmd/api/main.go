package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/example/fpv-storefront/internal/api"
	"github.com/example/fpv-storefront/internal/auth"
	"github.com/example/fpv-storefront/internal/command"
	"github.com/example/fpv-storefront/internal/config"
	"github.com/example/fpv-storefront/internal/domain/order"
	"github.com/example/fpv-storefront/internal/infrastructure/kafka"
	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"github.com/example/fpv-storefront/internal/logger"
	"github.com/example/fpv-storefront/internal/projection"
	"github.com/example/fpv-storefront/internal/query"
	"github.com/example/fpv-storefront/internal/session"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting api",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("slot_backend", cfg.SlotBackend),
		zap.Bool("postgres", cfg.DatabaseURL != ""),
		zap.Strings("kafka_brokers", cfg.KafkaBrokers),
		zap.String("kafka_topic", cfg.KafkaTopic),
	)

	// Shopper slots
	slots, closeSlots, err := openSlotStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open slot store: %w", err)
	}
	defer closeSlots()

	// Event and read stores
	var producer *kafka.Producer
	if cfg.KafkaEnabled() {
		producer = kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		defer producer.Close()
	}

	var (
		eventStore store.EventStoreInterface
		readStore  store.ReadStoreInterface
		projector  *projection.Projector
	)
	if cfg.DatabaseURL != "" {
		db, err := store.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer db.Close()

		pgRead := store.NewPostgresReadStore(db, log)
		if err := pgRead.EnsureSchema(); err != nil {
			return fmt.Errorf("read store schema: %w", err)
		}
		readStore = pgRead
		projector = projection.NewProjector(readStore, log)

		pgEvents := store.NewPostgresEventStore(db, publisherFor(producer, projector), log)
		if err := pgEvents.EnsureSchema(); err != nil {
			return fmt.Errorf("event store schema: %w", err)
		}
		eventStore = pgEvents
		log.Info("using postgres event and read stores")
	} else {
		readStore = store.NewReadStore()
		projector = projection.NewProjector(readStore, log)
		eventStore = store.NewEventStore(publisherFor(producer, projector))
		log.Warn("DATABASE_URL not set, orders are kept in memory")
	}

	// Rebuild read models from the event store
	projector.Replay(ctx, eventStore.GetAllEvents())

	var wg sync.WaitGroup
	if producer != nil {
		consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, log)
		defer consumer.Close()

		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info("starting kafka consumer (async projection)", zap.String("group", cfg.KafkaGroupID))
			if err := consumer.Consume(ctx, kafka.DecodeEvents(projector.HandleEvent)); err != nil && ctx.Err() == nil {
				log.Error("projection consumer stopped", zap.Error(err))
			}
		}()
	}

	// Sessions
	sessions := session.NewManager(slots, log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		sessions.RunSweeper(ctx, time.Minute, cfg.SessionIdleTimeout)
	}()

	// Handlers
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.SessionTokenTTL, cfg.AdminTokenTTL)
	admin := auth.AdminAccount{Email: cfg.AdminEmail, PasswordHash: cfg.AdminPasswordHash}
	if admin.PasswordHash == "" {
		log.Warn("ADMIN_PASSWORD_HASH not set, admin login disabled")
	}

	cmdHandler := command.NewHandler(sessions, order.NewService(eventStore, log), log)
	queryHandler := query.NewHandler(sessions, readStore)
	router := api.NewRouter(
		api.NewHandlers(cmdHandler, queryHandler, log),
		api.NewAuthHandlers(jwtService, admin, sessions, log),
		jwtService,
		log,
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		log.Error("http server failed", zap.Error(err))
		stop()
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}

	wg.Wait()
	return nil
}

// publisherFor sends stored events to Kafka when configured. Without Kafka
// the projector consumes them in-process.
func publisherFor(producer *kafka.Producer, projector *projection.Projector) store.Publisher {
	if producer != nil {
		return producer
	}
	return projector
}
