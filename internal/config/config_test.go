package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadMemoryDriverSkipsDatabase(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://broker:5672/")

	cfg := Load()
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "amqp://broker:5672/", cfg.RabbitURL)
	assert.Empty(t, cfg.DBHost)
	assert.False(t, cfg.Migrate)
}

func TestLoadMySQLDriver(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("DB_USER", "venue")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "venue_booking")
	t.Setenv("DB_MIGRATE", "yes")

	cfg := Load()
	assert.Equal(t, DriverMySQL, cfg.StoreDriver)
	assert.Equal(t, "venue_booking", cfg.DBName)
	assert.True(t, cfg.Migrate)
}

func TestRateLimitNormalize(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL)

	booking := cfg.WithCapacity(cfg.BookingCapacity, "booking")
	assert.Equal(t, 10, booking.Capacity)
	assert.Equal(t, "rl:booking", booking.Prefix)
}

func TestCacheConfigMethods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head,")
	t.Setenv("CACHE_ENABLED", "off")

	cfg := LoadCacheConfig()
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "cache", cfg.Prefix)
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_TLS", "1")
	t.Setenv("REDIS_DB", "2")

	cfg := LoadRedisConfig()
	assert.Equal(t, RedisConfig{Addr: "redis:6380", DB: 2, TLS: true}, cfg)
}

func TestLoadConsumerDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("BOOKING_LOG_PATH", "")
	t.Setenv("RABBITMQ_URL", "amqp://mq:5672/")
	t.Setenv("EVENTS_ENABLED", "")

	cfg := LoadConsumer()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "logs/booking.log", cfg.LogPath)
	assert.Equal(t, "amqp://mq:5672/", cfg.RabbitURL)
}
