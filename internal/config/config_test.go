package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_PORT", "5000")
	t.Setenv("DB_USER", "hotel")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "hotel")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()
	assert.Equal(t, 1440, cfg.AccessTTLMin)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 24*time.Hour, cfg.BasketTTL)
	assert.True(t, cfg.DBMigrate)
	assert.False(t, cfg.QueueEnabled)
	assert.True(t, cfg.IsDevelopment())
}

func TestRabbitURLPrecedence(t *testing.T) {
	t.Setenv("AMQP_URL", "amqp://b")
	assert.Equal(t, "amqp://b", rabbitURL())
	t.Setenv("RABBITMQ_URL", "amqp://a")
	assert.Equal(t, "amqp://a", rabbitURL())
}

func TestEnvHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")
	assert.Equal(t, 7, envInt("X_INT", 7))
	assert.True(t, envBool("X_BOOL", true))
	assert.Equal(t, time.Minute, envDur("X_DUR", time.Minute))

	t.Setenv("X_BOOL", "OFF")
	assert.False(t, envBool("X_BOOL", true))
}

func TestCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.True(t, cfg.Cacheable("/api/rooms/3"))
	assert.True(t, cfg.Cacheable("/api/events"))
	assert.False(t, cfg.Cacheable("/api/basket/my-basket"))
}

func TestRateLimitNormalization(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 10*time.Second, cfg.TTL)

	auth := cfg.ForAuth()
	assert.Equal(t, 10, auth.Capacity)
	assert.Equal(t, "hotel:rl:auth", auth.Prefix)
}

func TestGatewayConfigTrimsBackendSlash(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://api:5000/")
	assert.Equal(t, "http://api:5000", LoadGatewayConfig().BackendURL)
}
