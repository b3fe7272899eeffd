package healthcheck

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/secretnick/secretnick/internal/application/appcore"
)

// RedisChecker checks connectivity to Redis.
type RedisChecker struct {
	client      *redis.Client
	pingTimeout time.Duration
}

// RedisOption configures RedisChecker.
type RedisOption func(*RedisChecker)

// WithRedisPingTimeout sets the ping timeout.
func WithRedisPingTimeout(timeout time.Duration) RedisOption {
	return func(c *RedisChecker) {
		c.pingTimeout = timeout
	}
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client, opts ...RedisOption) *RedisChecker {
	c := &RedisChecker{
		client:      client,
		pingTimeout: defaultPingTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name returns the name of this health checker.
func (c *RedisChecker) Name() string {
	return "redis"
}

// Check pings the Redis server.
func (c *RedisChecker) Check(ctx context.Context) appcore.HealthStatus {
	pingCtx, cancel := context.WithTimeout(ctx, c.pingTimeout)
	defer cancel()

	now := time.Now()
	if err := c.client.Ping(pingCtx).Err(); err != nil {
		return appcore.HealthStatus{
			Healthy:   false,
			Message:   err.Error(),
			CheckedAt: now,
		}
	}

	return appcore.HealthStatus{
		Healthy:   true,
		CheckedAt: now,
	}
}

var _ appcore.HealthChecker = (*RedisChecker)(nil)
