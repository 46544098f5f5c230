package main

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/example/fpv-storefront/internal/config"
	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// openSlotStore builds the shopper slot backend selected by SLOT_BACKEND.
// The returned func releases its connections.
func openSlotStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.SlotStore, func(), error) {
	switch cfg.SlotBackend {
	case config.SlotBackendMemory:
		log.Warn("using in-memory slots, carts are lost on restart")
		return store.NewMemorySlotStore(), func() {}, nil

	case config.SlotBackendSQLite:
		s, err := store.OpenSQLiteSlotStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using sqlite slots", zap.String("path", cfg.SQLitePath))
		return s, func() {
			if err := s.Close(); err != nil {
				log.Warn("close sqlite slots", zap.Error(err))
			}
		}, nil

	case config.SlotBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		s, err := store.NewRedisSlotStore(ctx, rdb, "fpv", cfg.SlotTTL)
		if err != nil {
			_ = rdb.Close()
			return nil, nil, err
		}
		log.Info("using redis slots", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.SlotTTL))
		return s, func() { _ = rdb.Close() }, nil

	case config.SlotBackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, nil, fmt.Errorf("load aws config: %w", err)
		}
		log.Info("using dynamodb slots", zap.String("table", cfg.DynamoDBTable), zap.String("region", cfg.AWSRegion))
		return store.NewDynamoSlotStore(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBTable), func() {}, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownSlotBackend, cfg.SlotBackend)
}
