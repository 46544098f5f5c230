// Package config loads process configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Slot backends
const (
	SlotBackendMemory   = "memory"
	SlotBackendSQLite   = "sqlite"
	SlotBackendRedis    = "redis"
	SlotBackendDynamoDB = "dynamodb"
)

const minJWTSecretLength = 32

var (
	ErrJWTSecretTooShort  = errors.New("JWT_SECRET must be at least 32 characters long")
	ErrUnknownSlotBackend = errors.New("unknown SLOT_BACKEND")
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPAddr string

	SlotBackend   string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SlotTTL       time.Duration
	DynamoDBTable string
	AWSRegion     string

	DatabaseURL  string
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	JWTSecret          string
	SessionTokenTTL    time.Duration
	AdminTokenTTL      time.Duration
	AdminEmail         string
	AdminPasswordHash  string
	SessionIdleTimeout time.Duration

	SMTPHost string
	SMTPPort string
	SMTPFrom string
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	slotTTL, err := getEnvDuration("SLOT_TTL", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := getEnvDuration("SESSION_TOKEN_TTL", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}
	adminTTL, err := getEnvDuration("ADMIN_TOKEN_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	idle, err := getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	return &Config{
		AppEnv:   getEnv("APP_ENV", "prod"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		SlotBackend:   getEnv("SLOT_BACKEND", SlotBackendSQLite),
		SQLitePath:    getEnv("SQLITE_PATH", "fpv-storefront.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		SlotTTL:       slotTTL,
		DynamoDBTable: getEnv("DYNAMODB_TABLE", "fpv-slots"),
		AWSRegion:     getEnv("AWS_REGION", "eu-central-1"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "fpv-orders"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "api-projector"),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		SessionTokenTTL:    sessionTTL,
		AdminTokenTTL:      adminTTL,
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		SessionIdleTimeout: idle,

		SMTPHost: getEnv("SMTP_HOST", "localhost"),
		SMTPPort: getEnv("SMTP_PORT", "1025"),
		SMTPFrom: getEnv("SMTP_FROM", "noreply@example.com"),
	}, nil
}

// Validate checks the settings the API cannot run without.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < minJWTSecretLength {
		return ErrJWTSecretTooShort
	}
	switch c.SlotBackend {
	case SlotBackendMemory, SlotBackendSQLite, SlotBackendRedis, SlotBackendDynamoDB:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSlotBackend, c.SlotBackend)
	}
	return nil
}

// Development reports whether APP_ENV selects development mode.
func (c *Config) Development() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development"
}

// KafkaEnabled reports whether brokers are configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
