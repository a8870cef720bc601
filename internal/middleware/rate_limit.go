package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/smartchef/smartchef/internal/metrics"
	"github.com/smartchef/smartchef/internal/types"
)

// RateLimitMessage is the body returned with 429
const RateLimitMessage = "Rate limit exceeded. Please try again later."

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window; zero disables limiting
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimiter enforces a fixed window per client in Redis. Without Redis, or
// when Redis fails, it falls back to an in-process token bucket per client.
type RateLimiter struct {
	redis   *redis.Client
	config  RateLimitConfig
	memory  *memoryLimiter
	metrics *metrics.MetricsCollector
	logger  *zap.Logger
}

// NewRateLimiter creates a new rate limiter instance. redisClient may be nil.
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, collector *metrics.MetricsCollector, logger *zap.Logger) *RateLimiter {
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rate_limit:relay"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{
		redis:   redisClient,
		config:  config,
		memory:  newMemoryLimiter(config),
		metrics: collector,
		logger:  logger,
	}
}

// NewRelayRateLimiter limits relay calls to perMinute per client IP
func NewRelayRateLimiter(redisClient *redis.Client, perMinute int, collector *metrics.MetricsCollector, logger *zap.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Minute,
		Limit:     perMinute,
		KeyPrefix: "rate_limit:relay",
	}, collector, logger)
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting per client IP
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.config.Limit <= 0 {
			c.Next()
			return
		}

		allowed, remaining, resetTime := rl.IsAllowed(c.Request.Context(), c.ClientIP())

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			rl.metrics.RateLimited()
			retry := int(time.Until(resetTime).Seconds())
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, types.ErrorResponse{Error: RateLimitMessage})
			return
		}

		c.Next()
	}
}

// IsAllowed checks if a request from the given client is allowed
// Returns: allowed, remaining requests, reset time
func (rl *RateLimiter) IsAllowed(ctx context.Context, clientID string) (bool, int, time.Time) {
	if rl.redis != nil {
		allowed, remaining, reset, err := rl.redisAllowed(ctx, clientID)
		if err == nil {
			return allowed, remaining, reset
		}
		rl.logger.Warn("rate limit check failed, using in-memory limiter", zap.Error(err))
	}
	return rl.memory.allow(clientID, time.Now())
}

func (rl *RateLimiter) redisAllowed(ctx context.Context, clientID string) (bool, int, time.Time, error) {
	now := time.Now()
	windowStart := now.Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, clientID, windowStart.Unix())

	// Use Redis pipeline for atomic operations
	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}

// memoryLimiter keeps one token bucket per client, refilled evenly over the window.
type memoryLimiter struct {
	mu      sync.Mutex
	every   rate.Limit
	burst   int
	window  time.Duration
	clients map[string]*memoryClient
}

type memoryClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// maxTrackedClients bounds the map before idle clients are swept
const maxTrackedClients = 10000

func newMemoryLimiter(config RateLimitConfig) *memoryLimiter {
	limit := config.Limit
	if limit <= 0 {
		limit = 1
	}
	return &memoryLimiter{
		every:   rate.Every(config.Window / time.Duration(limit)),
		burst:   limit,
		window:  config.Window,
		clients: make(map[string]*memoryClient),
	}
}

func (m *memoryLimiter) allow(clientID string, now time.Time) (bool, int, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.clients) >= maxTrackedClients {
		m.sweep(now)
	}

	client, ok := m.clients[clientID]
	if !ok {
		client = &memoryClient{limiter: rate.NewLimiter(m.every, m.burst)}
		m.clients[clientID] = client
	}
	client.lastSeen = now

	allowed := client.limiter.AllowN(now, 1)
	remaining := int(client.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining, now.Add(m.window)
}

func (m *memoryLimiter) sweep(now time.Time) {
	for id, client := range m.clients {
		if now.Sub(client.lastSeen) > m.window {
			delete(m.clients, id)
		}
	}
}
