package redis

import (
	"context"
	"fmt"
	"time"

	"alliance-bank/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewClient creates the Redis client shared by transfer sessions, ingestion
// run locks and rate limit counters, and verifies connectivity.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:       cfg.Addr(),
		Password:   cfg.Password,
		DB:         cfg.DB,
		ClientName: "alliance-bank",
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Msg("Redis ready for sessions, locks and rate limits")

	return client, nil
}

const healthKey = "health:write"

// HealthCheck implements ports.HealthChecker. It writes a short-lived key
// because sessions and run locks need a writable primary; a read-only
// replica answers PING but breaks both.
type HealthCheck struct {
	client *goredis.Client
}

// NewHealthCheck creates a Redis health checker.
func NewHealthCheck(client *goredis.Client) *HealthCheck {
	return &HealthCheck{client: client}
}

// Ping reports an error when Redis is unreachable or refuses writes.
func (h *HealthCheck) Ping(ctx context.Context) error {
	return h.client.Set(ctx, healthKey, "1", 10*time.Second).Err()
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "redis"
}
