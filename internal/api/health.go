package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything whose liveness the health check reports, such as redis.
type Pinger func(ctx context.Context) error

// HealthHandler reports relay liveness. Optional dependencies are reported
// but never fail the check.
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler creates a health handler over the named dependency checks
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// HealthCheck returns the health status of the relay
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	body := gin.H{"status": "ok"}

	if len(h.checks) > 0 {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		deps := make(map[string]string, len(h.checks))
		for name, ping := range h.checks {
			if err := ping(ctx); err != nil {
				deps[name] = "unavailable"
				continue
			}
			deps[name] = "ok"
		}
		body["dependencies"] = deps
	}

	c.JSON(http.StatusOK, body)
}
