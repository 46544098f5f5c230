package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSlotStore persists slots as redis string values so several API
// instances can serve the same shopper
type RedisSlotStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisSlotStore pings the client and returns a store. A zero ttl keeps values forever.
func NewRedisSlotStore(ctx context.Context, rdb *redis.Client, prefix string, ttl time.Duration) (*RedisSlotStore, error) {
	if rdb == nil {
		return nil, errors.New("redis client must be non-nil")
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisSlotStore{rdb: rdb, prefix: prefix, ttl: ttl}, nil
}

// Slot returns the slot for namespace/key
func (s *RedisSlotStore) Slot(namespace, key string) Slot {
	redisKey := s.key(namespace, key)
	return SlotFunc{
		LoadFunc: func(ctx context.Context) ([]byte, error) {
			data, err := s.rdb.Get(ctx, redisKey).Bytes()
			if errors.Is(err, redis.Nil) {
				return nil, ErrSlotEmpty
			}
			if err != nil {
				return nil, fmt.Errorf("failed to load slot %s: %w", redisKey, err)
			}
			return data, nil
		},
		SaveFunc: func(ctx context.Context, data []byte) error {
			if err := s.rdb.Set(ctx, redisKey, data, s.ttl).Err(); err != nil {
				return fmt.Errorf("failed to save slot %s: %w", redisKey, err)
			}
			return nil
		},
	}
}

func (s *RedisSlotStore) key(namespace, key string) string {
	if s.prefix == "" {
		return slotID(namespace, key)
	}
	return s.prefix + ":" + slotID(namespace, key)
}
