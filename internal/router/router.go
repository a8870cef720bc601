package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartchef/smartchef/internal/api"
	"github.com/smartchef/smartchef/internal/metrics"
	"github.com/smartchef/smartchef/internal/middleware"
)

// Deps are the handlers and collaborators the relay router wires together
type Deps struct {
	Relay       *api.RelayHandler
	Health      *api.HealthHandler
	RateLimiter *middleware.RateLimiter
	Metrics     *metrics.MetricsCollector
	Logger      *zap.Logger
}

// SetupRouter configures the relay routes. CORS runs globally so that preflight
// requests to any path, matched or not, answer 204.
func SetupRouter(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.RequestLogger(logger),
	)
	if deps.Metrics != nil {
		router.Use(deps.Metrics.HTTPMiddleware())
	}

	// CORS middleware
	router.Use(middleware.CORS())

	if deps.Health != nil {
		router.GET("/health", deps.Health.HealthCheck)
	}
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	relay := router.Group("")
	if deps.RateLimiter != nil {
		relay.Use(deps.RateLimiter.RateLimitMiddleware())
	}
	deps.Relay.RegisterRoutes(relay)

	return router
}
