// Package server exposes the progression engine over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/utsavratan/gestureflow/pkg/engine"
)

// Config holds HTTP server settings.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns default server settings.
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server wraps the gin router and underlying http.Server.
type Server struct {
	cfg         Config
	engine      *engine.Engine
	logger      *slog.Logger
	http        *http.Server
	healthCheck func() error
}

// Option configures a Server.
type Option func(*Server)

// WithHealthCheck makes /healthz report the backing store's health. When
// unset the endpoint only reports process liveness.
func WithHealthCheck(fn func() error) Option {
	return func(s *Server) {
		s.healthCheck = fn
	}
}

// New creates a Server with all routes registered.
func New(cfg Config, eng *engine.Engine, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		engine: eng,
		logger: logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	s.registerRoutes(router)

	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", s.handleHealth)

	v1 := router.Group("/v1")
	{
		v1.POST("/activities", s.handlePostActivity)
		v1.GET("/achievements/:achievementID", s.handleGetAchievement)
		v1.GET("/users/:userID/achievements", s.handleGetAchievements)
		v1.GET("/users/:userID/level", s.handleGetLevel)
		v1.PUT("/users/:userID/friends", s.handlePutFriendCount)
	}
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start begins serving and blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
