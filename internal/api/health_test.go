package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthCheckDependencies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHealthHandler(map[string]Pinger{
		"redis": func(ctx context.Context) error { return errors.New("down") },
	})
	router.GET("/health", h.HealthCheck)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","dependencies":{"redis":"unavailable"}}`, w.Body.String())
}
