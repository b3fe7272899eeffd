// Package main provides the room activity worker entry point.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/secretnick/secretnick/internal/application/appcore"
	"github.com/secretnick/secretnick/internal/config"
	"github.com/secretnick/secretnick/internal/infrastructure/eventbus"
	"github.com/secretnick/secretnick/internal/infrastructure/healthcheck"
	inframongo "github.com/secretnick/secretnick/internal/infrastructure/mongodb"
	"github.com/secretnick/secretnick/internal/worker"
)

const redisPingTimeout = 5 * time.Second

//nolint:funlen // Main function handles startup orchestration and is readable as-is
func main() {
	cfg, err := config.Load()
	if err != nil {
		//nolint:sloglint // No context available before logger setup
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := setupLogger(cfg)

	logger.Info("starting secretnick worker service",
		slog.String("environment", cfg.App.Environment),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	mongoClient, err := connectMongoDB(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect to MongoDB", slog.String("error", err.Error()))
		cancel()
		os.Exit(1) //nolint:gocritic // cancel() called before exit
	}
	defer func() {
		if disconnectErr := mongoClient.Disconnect(context.Background()); disconnectErr != nil {
			logger.Error("failed to disconnect from MongoDB", slog.String("error", disconnectErr.Error()))
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	if indexErr := inframongo.EnsureIndexes(ctx, db); indexErr != nil {
		logger.Error("failed to create indexes", slog.String("error", indexErr.Error()))
		os.Exit(1)
	}

	checkers := []appcore.HealthChecker{healthcheck.NewMongoDBChecker(mongoClient)}
	recorder := worker.NewActivityRecorder(db, logger)

	var busDone chan struct{}

	if strings.EqualFold(cfg.EventBus.Type, "redis") {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		defer func() {
			if closeErr := redisClient.Close(); closeErr != nil {
				logger.Error("failed to close Redis", slog.String("error", closeErr.Error()))
			}
		}()

		pingCtx, pingCancel := context.WithTimeout(ctx, redisPingTimeout)
		if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
			pingCancel()
			logger.Error("failed to connect to Redis", slog.String("error", pingErr.Error()))
			os.Exit(1)
		}
		pingCancel()

		logger.InfoContext(ctx, "connected to Redis", slog.String("addr", cfg.Redis.Addr))

		checkers = append(checkers, healthcheck.NewRedisChecker(redisClient))

		bus := eventbus.NewRedisEventBus(
			redisClient,
			eventbus.WithLogger(logger),
			eventbus.WithChannelPrefix(cfg.EventBus.RedisChannelPrefix),
		)

		if regErr := recorder.Register(bus); regErr != nil {
			logger.Error("failed to register activity recorder", slog.String("error", regErr.Error()))
			os.Exit(1)
		}

		busDone = make(chan struct{})
		go func() {
			defer close(busDone)
			if runErr := bus.Start(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
				logger.Error("event bus error", slog.String("error", runErr.Error()))
			}
		}()

		defer func() {
			if shutdownErr := bus.Shutdown(); shutdownErr != nil {
				logger.Error("failed to shut down event bus", slog.String("error", shutdownErr.Error()))
			}
		}()
	} else {
		// In-memory mode only records events published in this process;
		// useful for development without Redis.
		bus := eventbus.NewInMemoryEventBus(logger)
		if regErr := recorder.Register(bus); regErr != nil {
			logger.Error("failed to register activity recorder", slog.String("error", regErr.Error()))
			os.Exit(1)
		}
		logger.InfoContext(ctx, "event bus running in-memory")
	}

	runHealthLoop(ctx, cfg.Worker.HealthCheckInterval, checkers, logger)

	if busDone != nil {
		select {
		case <-busDone:
		case <-time.After(cfg.Worker.ShutdownTimeout):
			logger.Warn("event bus did not stop within shutdown timeout")
		}
	}

	logger.Info("worker service shutdown complete")
}

// runHealthLoop periodically checks dependencies and logs failures.
// It blocks until the context is cancelled.
func runHealthLoop(
	ctx context.Context,
	interval time.Duration,
	checkers []appcore.HealthChecker,
	logger *slog.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, checker := range checkers {
				status := checker.Check(ctx)
				if !status.Healthy {
					logger.WarnContext(ctx, "dependency unhealthy",
						slog.String("checker", checker.Name()),
						slog.String("message", status.Message),
					)
				}
			}
		}
	}
}

// setupLogger creates and configures the structured logger based on configuration.
func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	level := parseLogLevel(cfg.Log.Level)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.IsDevelopment(),
	}

	switch cfg.Log.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// connectMongoDB establishes a connection to MongoDB.
func connectMongoDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mongo.Client, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.MongoDB.URI).
		SetMaxPoolSize(cfg.MongoDB.MaxPoolSize)

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, cfg.MongoDB.Timeout)
	defer pingCancel()

	if pingErr := client.Ping(pingCtx, nil); pingErr != nil {
		return nil, pingErr
	}

	logger.InfoContext(ctx, "connected to MongoDB",
		slog.String("database", cfg.MongoDB.Database),
	)

	return client, nil
}

// handleShutdown listens for OS signals and cancels the context.
func handleShutdown(cancel context.CancelFunc, logger *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-quit
	logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	cancel()
}
