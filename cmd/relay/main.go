package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/smartchef/smartchef/config"
	"github.com/smartchef/smartchef/internal/api"
	"github.com/smartchef/smartchef/internal/database"
	"github.com/smartchef/smartchef/internal/logger"
	"github.com/smartchef/smartchef/internal/metrics"
	"github.com/smartchef/smartchef/internal/middleware"
	"github.com/smartchef/smartchef/internal/router"
	"github.com/smartchef/smartchef/internal/server"
	"github.com/smartchef/smartchef/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: !cfg.Env.IsProduction(),
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := cfg.ValidateRelay(); err != nil {
		zlog.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.Env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	collector := metrics.NewMetricsCollector()

	// Redis backs the details cache and the rate limiter; both degrade without it
	var redisClient *redis.Client
	var cache service.DetailsCache
	checks := map[string]api.Pinger{}
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(context.Background(), cfg, zlog)
		if err != nil {
			zlog.Warn("redis unavailable, continuing without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cache = database.NewRedisDetailsCache(redisClient, cfg.DetailsCacheTTL)
			checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		}
	}

	llmService := service.NewLLMService(cfg, cache, collector, zlog)
	engine := router.SetupRouter(router.Deps{
		Relay:       api.NewRelayHandler(llmService, zlog),
		Health:      api.NewHealthHandler(checks),
		RateLimiter: middleware.NewRelayRateLimiter(redisClient, cfg.RateLimitPerMinute, collector, zlog),
		Metrics:     collector,
		Logger:      zlog,
	})

	srv := server.New(cfg, engine, zlog)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		zlog.Info("received signal", zap.String("signal", sig.String()))
	}

	// Gracefully shutdown the server
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server shutdown error", zap.Error(err))
	}
	zlog.Info("server stopped")
}
