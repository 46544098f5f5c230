package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "HTTP_ADDR", "SLOT_BACKEND", "KAFKA_BROKERS", "SESSION_IDLE_TIMEOUT", "REDIS_DB"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, SlotBackendSQLite, cfg.SlotBackend)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.KafkaEnabled())
	assert.False(t, cfg.Development())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("SLOT_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SLOT_TTL", "1h")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.Development())
	assert.Equal(t, SlotBackendRedis, cfg.SlotBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, time.Hour, cfg.SlotTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
}

func TestFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("REDIS_DB", "")
	t.Setenv("SESSION_IDLE_TIMEOUT", "soon")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := &Config{JWTSecret: strings.Repeat("s", 32), SlotBackend: SlotBackendMemory}
	assert.NoError(t, valid.Validate())

	short := &Config{JWTSecret: "short", SlotBackend: SlotBackendMemory}
	assert.ErrorIs(t, short.Validate(), ErrJWTSecretTooShort)

	unknown := &Config{JWTSecret: strings.Repeat("s", 32), SlotBackend: "etcd"}
	assert.ErrorIs(t, unknown.Validate(), ErrUnknownSlotBackend)
}
