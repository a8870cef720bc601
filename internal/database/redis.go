package database

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/smartchef/smartchef/config"
)

const redisDialTimeout = 5 * time.Second

// RedisOptions resolves the client options for the relay cache. REDIS_URL wins
// over the host/port pair.
func RedisOptions(cfg *config.Config, logger *zap.Logger) (*redis.Options, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.RedisURL == "" {
		return &redis.Options{
			Addr:        net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			DialTimeout: redisDialTimeout,
		}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		// the URL may carry a password, so only the error is logged
		logger.Warn("rejecting redis url", zap.Error(err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opts.DialTimeout = redisDialTimeout
	return opts, nil
}

// NewRedisClient connects to redis and verifies the connection with a ping.
func NewRedisClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts, err := RedisOptions(cfg, logger)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		logger.Warn("redis ping failed", zap.String("addr", opts.Addr), zap.Error(err))
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	logger.Info("connected to redis", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return client, nil
}
