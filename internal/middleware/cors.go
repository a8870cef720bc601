package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	allowOrigin  = "*"
	allowHeaders = "authorization, x-client-info, apikey, content-type"
	allowMethods = "GET, POST, OPTIONS"
)

// CORS sets permissive CORS headers on every response, errors included, and
// answers preflight requests with 204.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Headers", allowHeaders)
		c.Writer.Header().Set("Access-Control-Allow-Methods", allowMethods)

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
