package app

import (
	"context"

	"leave-tracker/internal/bootstrap"
	"leave-tracker/internal/config"
	"leave-tracker/internal/middleware"
	"leave-tracker/internal/shared/connection"
	"leave-tracker/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// App holds the process-wide resources created by BuildApp.
type App struct {
	Store *store.Adapter
	Redis *redis.Client
	Kafka *kafkago.Writer
}

// BuildApp wires infrastructure, modules and routes onto router. Redis and
// Kafka are optional: when unset or unreachable the features that use them
// are switched off. The store is never dialed here; the first request picks
// the backend.
func BuildApp(cfg *config.Config, router *gin.Engine) (*App, error) {
	log := zap.L().Named("app")

	a := &App{
		Store: store.New(store.Config{
			MongoURI:      cfg.MongoURI,
			MongoDatabase: cfg.MongoDatabase,
			Postgres:      cfg.Postgres(),
			Timeout:       cfg.StoreTimeout,
		}, store.WithLogger(zap.L())),
	}

	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.RedisMaxRetries, retryBackoff)
		if err != nil {
			log.Warn("redis unavailable, cache and idempotency disabled", zap.Error(err))
		} else {
			a.Redis = rdb
		}
	}

	if cfg.KafkaBroker != "" {
		writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.KafkaMaxRetries, retryBackoff)
		if err != nil {
			log.Warn("kafka unavailable, lifecycle events disabled", zap.Error(err))
		} else {
			a.Kafka = writer
		}
	}

	router.Use(
		gin.Recovery(),
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
		middleware.StorageMode(a.Store),
	)

	if err := registerModules(router, cfg, a); err != nil {
		return nil, err
	}
	return a, nil
}

type closerFunc func(ctx context.Context) error

func (f closerFunc) Close(ctx context.Context) error { return f(ctx) }

// Closers lists what the server must release on shutdown, store last.
func (a *App) Closers() []bootstrap.Closer {
	var out []bootstrap.Closer
	if a.Kafka != nil {
		out = append(out, closerFunc(func(context.Context) error { return a.Kafka.Close() }))
	}
	if a.Redis != nil {
		out = append(out, closerFunc(func(context.Context) error { return a.Redis.Close() }))
	}
	return append(out, a.Store)
}
