// Package app provides the dependency injection container that assembles the credential
// service. Components are created lazily on first access and cached.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	auditService "github.com/allisson/credentials/internal/audit/service"
	auditUseCase "github.com/allisson/credentials/internal/audit/usecase"
	authService "github.com/allisson/credentials/internal/auth/service"
	authUseCase "github.com/allisson/credentials/internal/auth/usecase"
	"github.com/allisson/credentials/internal/config"
	credentialHTTP "github.com/allisson/credentials/internal/credential/http"
	credentialUseCase "github.com/allisson/credentials/internal/credential/usecase"
	cryptoService "github.com/allisson/credentials/internal/crypto/service"
	cryptoUseCase "github.com/allisson/credentials/internal/crypto/usecase"
	"github.com/allisson/credentials/internal/database"
	"github.com/allisson/credentials/internal/http"
	"github.com/allisson/credentials/internal/metrics"
	permissionHTTP "github.com/allisson/credentials/internal/permission/http"
	permissionUseCase "github.com/allisson/credentials/internal/permission/usecase"
)

// Container holds all application dependencies and provides methods to access them.
type Container struct {
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Crypto
	aeadManager      cryptoService.AEADManager
	kmsService       cryptoService.KMSService
	keyRegistry      *cryptoService.KeyRegistry
	encryptor        *cryptoService.Encryptor
	canaryRepository cryptoUseCase.CanaryRepository
	canaryUseCase    cryptoUseCase.CanaryUseCase

	// Credential
	credentialRepository credentialRepository
	credentialUseCase    credentialUseCase.CredentialUseCase
	rotationUseCase      credentialUseCase.RotationUseCase
	credentialHandler    *credentialHTTP.CredentialHandler

	// Permission
	permissionRepository permissionUseCase.PermissionRepository
	permissionUseCase    permissionUseCase.PermissionUseCase
	permissionIndex      permissionUseCase.PermissionIndex
	permissionHandler    *permissionHTTP.PermissionHandler

	// Audit
	auditRepository   auditUseCase.AuditRepository
	auditSigner       auditService.AuditSigner
	securityEventsLog auditService.SecurityEventsLog
	auditRecorder     auditUseCase.AuditRecorder

	// Auth
	secretService    authService.SecretService
	clientRepository authUseCase.ClientRepository
	clientUseCase    authUseCase.ClientUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                       sync.Mutex
	loggerInit               sync.Once
	dbInit                   sync.Once
	txManagerInit            sync.Once
	metricsProviderInit      sync.Once
	businessMetricsInit      sync.Once
	aeadManagerInit          sync.Once
	kmsServiceInit           sync.Once
	keyRegistryInit          sync.Once
	encryptorInit            sync.Once
	canaryRepositoryInit     sync.Once
	canaryUseCaseInit        sync.Once
	credentialRepositoryInit sync.Once
	credentialUseCaseInit    sync.Once
	rotationUseCaseInit      sync.Once
	credentialHandlerInit    sync.Once
	permissionRepositoryInit sync.Once
	permissionUseCaseInit    sync.Once
	permissionIndexInit      sync.Once
	permissionHandlerInit    sync.Once
	auditRepositoryInit      sync.Once
	auditSignerInit          sync.Once
	securityEventsLogInit    sync.Once
	auditRecorderInit        sync.Once
	secretServiceInit        sync.Once
	clientRepositoryInit     sync.Once
	clientUseCaseInit        sync.Once
	httpServerInit           sync.Once
	metricsServerInit        sync.Once

	errorsMu   sync.Mutex
	initErrors map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// resolve returns *slot, building it with build on first use. A build error is kept
// under name and returned by every later call, so a component is never built twice.
func resolve[T any](c *Container, once *sync.Once, name string, slot *T, build func() (T, error)) (T, error) {
	once.Do(func() {
		value, err := build()
		if err != nil {
			c.errorsMu.Lock()
			c.initErrors[name] = err
			c.errorsMu.Unlock()
			return
		}
		*slot = value
	})

	c.errorsMu.Lock()
	err := c.initErrors[name]
	c.errorsMu.Unlock()
	if err != nil {
		var zero T
		return zero, err
	}
	return *slot, nil
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	return resolve(c, &c.dbInit, "db", &c.db, c.initDB)
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	return resolve(c, &c.txManagerInit, "txManager", &c.txManager, c.initTxManager)
}

// MetricsProvider returns the OpenTelemetry meter provider. It is nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	return resolve(c, &c.metricsProviderInit, "metricsProvider", &c.metricsProvider, c.initMetricsProvider)
}

// BusinessMetrics returns the business metrics recorder, a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	return resolve(c, &c.businessMetricsInit, "businessMetrics", &c.businessMetrics, c.initBusinessMetrics)
}

// HTTPServer returns the API server with its router configured.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	return resolve(c, &c.httpServerInit, "httpServer", &c.httpServer, func() (*http.Server, error) {
		return c.initHTTPServer(ctx)
	})
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	return resolve(c, &c.metricsServerInit, "metricsServer", &c.metricsServer, c.initMetricsServer)
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if closer, ok := c.securityEventsLog.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("security events log close: %w", err))
		}
	}

	if c.keyRegistry != nil {
		c.keyRegistry.Close()
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(shutdownErrors...))
	}

	return nil
}

// initLogger creates a JSON logger at the configured level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

// initHTTPServer creates the API server and mounts every handler.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	credentialHandler, err := c.CredentialHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential handler for http server: %w", err)
	}

	permissionHandler, err := c.PermissionHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission handler for http server: %w", err)
	}

	clientUseCase, err := c.ClientUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get client use case for http server: %w", err)
	}

	auditRecorder, err := c.AuditRecorder()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit recorder for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	deps := http.RouterDependencies{
		CredentialHandler: credentialHandler,
		PermissionHandler: permissionHandler,
		ClientUseCase:     clientUseCase,
		AuditRecorder:     auditRecorder,
	}
	if provider != nil {
		deps.MeterProvider = provider.MeterProvider()
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(ctx, c.config, deps)

	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
