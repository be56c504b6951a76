package redis

import (
	"SMMBoard/internal/api/config"
	"SMMBoard/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

// Rdb nil when redis is disabled; helpers then behave as a cache miss / uncontended lock
var Rdb *redis.Client

// InitRedis connects the shared client
func InitRedis(cfg config.RedisConfig) error {
	if !cfg.Enable {
		log.Warn("Redis disabled, metrics cache and cross-instance ingest lock are off")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,

		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})
	rdb.AddHook(logger.NewRedisLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return err
	}

	Rdb = rdb
	return nil
}

// Close releases the client if one was opened
func Close() {
	if Rdb == nil {
		return
	}
	if err := Rdb.Close(); err != nil {
		log.Error("Redis close failed", "err", err)
	}
}
