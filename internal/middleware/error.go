package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartchef/smartchef/internal/types"
)

// Recovery turns a handler panic into a 500 JSON error response.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(RequestIDKey)))
		c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Internal Server Error"})
	})
}
