// Package http provides the API server, the metrics server and their shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	auditHTTP "github.com/allisson/credentials/internal/audit/http"
	auditUseCase "github.com/allisson/credentials/internal/audit/usecase"
	authHTTP "github.com/allisson/credentials/internal/auth/http"
	authUseCase "github.com/allisson/credentials/internal/auth/usecase"
	"github.com/allisson/credentials/internal/config"
	credentialHTTP "github.com/allisson/credentials/internal/credential/http"
	"github.com/allisson/credentials/internal/metrics"
	permissionHTTP "github.com/allisson/credentials/internal/permission/http"
)

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new API server. SetupRouter must be called before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port),
	}
}

// newHTTPServer returns a listener configuration shared by the API and metrics servers.
func newHTTPServer(host string, port int) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// RouterDependencies groups the handlers and use cases mounted on the API router.
// MeterProvider may be nil when metrics are disabled.
type RouterDependencies struct {
	CredentialHandler *credentialHTTP.CredentialHandler
	PermissionHandler *permissionHTTP.PermissionHandler
	ClientUseCase     authUseCase.ClientUseCase
	AuditRecorder     auditUseCase.AuditRecorder
	MeterProvider     metric.MeterProvider
}

// SetupRouter builds the gin engine.
//
// Every /api request is audited, including the ones rejected by authentication or the
// rate limiter, so the audit middleware runs before both.
func (s *Server) SetupRouter(ctx context.Context, cfg *config.Config, deps RouterDependencies) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if deps.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(deps.MeterProvider, cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api")
	api.Use(auditHTTP.AuditMiddleware(deps.AuditRecorder, s.logger))
	api.Use(authHTTP.AuthenticationMiddleware(deps.ClientUseCase, s.logger))
	if cfg.RateLimitEnabled {
		api.Use(authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	v1 := api.Group("/v1")
	{
		v1.PUT("/data", deps.CredentialHandler.SetHandler)
		v1.POST("/data", deps.CredentialHandler.GenerateHandler)
		v1.GET("/data", deps.CredentialHandler.GetHandler)
		v1.GET("/data/:id", deps.CredentialHandler.GetByIDHandler)
		v1.POST("/regenerate", deps.CredentialHandler.RegenerateHandler)
	}

	v2 := api.Group("/v2")
	{
		v2.POST("/permissions", deps.PermissionHandler.CreateHandler)
		v2.GET("/permissions", deps.PermissionHandler.ListHandler)
		v2.DELETE("/permissions/:id", deps.PermissionHandler.DeleteHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

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

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
