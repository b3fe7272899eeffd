// Package healthcheck provides health check implementations for the worker's dependencies.
package healthcheck

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/secretnick/secretnick/internal/application/appcore"
)

const defaultPingTimeout = 2 * time.Second

// MongoDBChecker checks connectivity to MongoDB.
type MongoDBChecker struct {
	client      *mongo.Client
	pingTimeout time.Duration
}

// MongoDBOption configures MongoDBChecker.
type MongoDBOption func(*MongoDBChecker)

// WithMongoPingTimeout sets the ping timeout.
func WithMongoPingTimeout(timeout time.Duration) MongoDBOption {
	return func(c *MongoDBChecker) {
		c.pingTimeout = timeout
	}
}

// NewMongoDBChecker creates a new MongoDB health checker.
func NewMongoDBChecker(client *mongo.Client, opts ...MongoDBOption) *MongoDBChecker {
	c := &MongoDBChecker{
		client:      client,
		pingTimeout: defaultPingTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name returns the name of this health checker.
func (c *MongoDBChecker) Name() string {
	return "mongodb"
}

// Check pings the MongoDB deployment.
func (c *MongoDBChecker) Check(ctx context.Context) appcore.HealthStatus {
	pingCtx, cancel := context.WithTimeout(ctx, c.pingTimeout)
	defer cancel()

	now := time.Now()
	if err := c.client.Ping(pingCtx, nil); err != nil {
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

var _ appcore.HealthChecker = (*MongoDBChecker)(nil)
