package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartchef/smartchef/config"
)

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	cfg := &config.Config{ServerHost: "localhost", ServerPort: "8080", GatewayTimeout: 5 * time.Second}
	server := New(cfg, router, nil)
	require.NotNil(t, server)
	assert.Equal(t, "localhost:8080", server.http.Addr)
	assert.Equal(t, 15*time.Second, server.http.WriteTimeout)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStartAndShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{ServerHost: "127.0.0.1", ServerPort: "0"}
	server := New(cfg, gin.New(), nil)

	errChan := make(chan error, 1)
	go func() { errChan <- server.Start() }()

	// give ListenAndServe a moment to bind
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
