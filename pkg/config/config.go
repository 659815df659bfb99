package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// DefaultActorID is used for commands issued from the local CLI when
// GYM_ACTOR_ID is not set.
const DefaultActorID = "00000000-0000-0000-0000-000000000001"

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string
	ActorID   uuid.UUID

	// Database
	DatabaseURL    string
	DatabaseDriver string
	SQLitePath     string
	LocalMode      bool

	// Redis. Empty keeps locks in process.
	RedisURL string
	LockTTL  time.Duration
	LockWait time.Duration

	// RabbitMQ. Empty publishes to the in-process bus.
	RabbitMQURL string

	// Outbox
	OutboxPollInterval     time.Duration
	OutboxBatchSize        int
	OutboxMaxRetries       int
	OutboxStatsInterval    time.Duration
	OutboxRetentionDays    int
	OutboxCleanupInterval  time.Duration
	OutboxProcessorEnabled bool

	// Publisher circuit breaker
	PublisherBreakerThreshold uint32
	PublisherBreakerTimeout   time.Duration

	// Worker
	WorkerHealthAddr string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	actorID, err := uuid.Parse(getEnv("GYM_ACTOR_ID", DefaultActorID))
	if err != nil {
		return nil, fmt.Errorf("invalid GYM_ACTOR_ID: %w", err)
	}

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", ""),
		ActorID:   actorID,

		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DatabaseDriver: strings.ToLower(getEnv("DATABASE_DRIVER", "")),
		SQLitePath:     getEnv("SQLITE_PATH", ""),

		RedisURL: getEnv("REDIS_URL", ""),
		LockTTL:  getDurationEnv("LOCK_TTL", 10*time.Second),
		LockWait: getDurationEnv("LOCK_WAIT", 5*time.Second),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		OutboxPollInterval:     getDurationEnv("OUTBOX_POLL_INTERVAL", 100*time.Millisecond),
		OutboxBatchSize:        getIntEnv("OUTBOX_BATCH_SIZE", 100),
		OutboxMaxRetries:       getIntEnv("OUTBOX_MAX_RETRIES", 5),
		OutboxStatsInterval:    getDurationEnv("OUTBOX_STATS_INTERVAL", 30*time.Second),
		OutboxRetentionDays:    getIntEnv("OUTBOX_RETENTION_DAYS", 14),
		OutboxCleanupInterval:  getDurationEnv("OUTBOX_CLEANUP_INTERVAL", 24*time.Hour),
		OutboxProcessorEnabled: getBoolEnv("OUTBOX_PROCESSOR_ENABLED", true),

		PublisherBreakerThreshold: uint32(max(getIntEnv("PUBLISHER_BREAKER_THRESHOLD", 5), 1)),
		PublisherBreakerTimeout:   getDurationEnv("PUBLISHER_BREAKER_TIMEOUT", 30*time.Second),

		WorkerHealthAddr: getEnv("WORKER_HEALTH_ADDR", "0.0.0.0:8081"),
	}

	// Without a server database the app runs against a local sqlite file.
	switch cfg.DatabaseDriver {
	case "sqlite":
		cfg.LocalMode = true
	case "postgres":
		cfg.LocalMode = false
	case "":
		cfg.LocalMode = cfg.DatabaseURL == ""
		if cfg.LocalMode {
			cfg.DatabaseDriver = "sqlite"
		}
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// OutboxRetention converts OutboxRetentionDays to a duration. Zero or less
// keeps published messages forever.
func (c *Config) OutboxRetention() time.Duration {
	if c.OutboxRetentionDays <= 0 {
		return 0
	}
	return time.Duration(c.OutboxRetentionDays) * 24 * time.Hour
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getDurationEnv falls back to defaultValue for unparsable and non-positive
// values; every duration Load reads drives a ticker or a timeout.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
