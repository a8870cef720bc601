package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartchef/smartchef/config"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New creates a new server instance serving router on the configured address
func New(cfg *config.Config, router *gin.Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	writeTimeout := cfg.GatewayTimeout + 10*time.Second
	if cfg.GatewayTimeout <= 0 {
		writeTimeout = 70 * time.Second
	}

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.RelayAddr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// Start serves until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("starting relay server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}
