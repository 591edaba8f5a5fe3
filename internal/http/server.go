// Package http provides the HTTP servers: the chat API served by Gin and a
// separate Prometheus metrics server.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	authHTTP "github.com/loomchat/chatvault/internal/auth/http"
	authUseCase "github.com/loomchat/chatvault/internal/auth/usecase"
	chatHTTP "github.com/loomchat/chatvault/internal/chat/http"
	"github.com/loomchat/chatvault/internal/config"
	"github.com/loomchat/chatvault/internal/metrics"
)

// Server represents the chat API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// ServerDeps bundles the handlers and optional middleware dependencies the
// router needs.
type ServerDeps struct {
	ChatHandler   *chatHTTP.ChatHandler
	ClientUseCase authUseCase.ClientUseCase
	MeterProvider *metrics.Provider
}

// NewServer creates the API server and assembles its routes.
func NewServer(cfg *config.Config, deps ServerDeps, logger *slog.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if deps.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(deps.MeterProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	// Health and readiness endpoints stay outside authentication.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	v1 := router.Group("/v1")

	if cfg.AuthEnabled {
		v1.Use(authHTTP.AuthenticationMiddleware(deps.ClientUseCase, logger))
		if cfg.RateLimitEnabled {
			v1.Use(authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger))
		}
	}

	chats := v1.Group("/chats")
	{
		chats.POST("", deps.ChatHandler.CreateHandler)
		chats.GET("", deps.ChatHandler.ListHandler)
		chats.GET("/:chat_id", deps.ChatHandler.GetHandler)
		chats.PUT("/:chat_id/title", deps.ChatHandler.UpdateTitleHandler)
		chats.DELETE("/:chat_id", deps.ChatHandler.DeleteHandler)
		chats.POST("/:chat_id/messages", deps.ChatHandler.AppendMessageHandler)
		chats.GET("/:chat_id/messages", deps.ChatHandler.ListMessagesHandler)
	}

	return &Server{
		router: router,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// GetHandler returns the underlying http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. Blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
