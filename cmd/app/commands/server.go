package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/allisson/credentials/internal/app"
	"github.com/allisson/credentials/internal/config"
	cryptoUseCase "github.com/allisson/credentials/internal/crypto/usecase"
)

// RunServer starts the HTTP server with graceful shutdown support.
// Encryption keys are checked against their canaries before the listener opens
// when CanaryVerifyOnStartup is set. Blocks until SIGINT/SIGTERM or a fatal server
// error, then stops both servers within DBConnMaxLifetime.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer closeContainer(container, logger)

	if cfg.CanaryVerifyOnStartup {
		canaryUseCase, err := container.CanaryUseCase()
		if err != nil {
			return fmt.Errorf("failed to initialize canary use case: %w", err)
		}
		if err := verifyKeysOnStartup(ctx, canaryUseCase, cfg.ActiveEncryptionKeyID, logger); err != nil {
			return err
		}
	}

	server, err := container.HTTPServer(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serverErr := make(chan error, 2)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErr <- fmt.Errorf("api server error: %w", err)
		}
	}()

	if metricsServer != nil {
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				serverErr <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	var shutdownErrors []error

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		logger.Error("server error, initiating shutdown", slog.Any("error", err))
		shutdownErrors = append(shutdownErrors, err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.DBConnMaxLifetime)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		shutdownErrors = append(shutdownErrors, fmt.Errorf("api server shutdown: %w", err))
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// verifyKeysOnStartup runs the canary check. Unusable keys are logged and left out of
// service. The server refuses to start only when the active key is unusable, since
// every write would fail.
func verifyKeysOnStartup(
	ctx context.Context,
	canaryUseCase cryptoUseCase.CanaryUseCase,
	activeKeyID string,
	logger *slog.Logger,
) error {
	report, err := canaryUseCase.Verify(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify encryption keys: %w", err)
	}

	if !report.Healthy() {
		logger.Warn("encryption keys failed canary verification",
			slog.Any("unusable", report.Unusable),
		)
		if slices.Contains(report.Unusable, activeKeyID) {
			return fmt.Errorf("active encryption key %s failed canary verification", activeKeyID)
		}
	}

	logger.Info("encryption keys verified",
		slog.Int("verified", len(report.Verified)),
		slog.Int("created", len(report.Created)),
		slog.Int("unusable", len(report.Unusable)),
	)
	return nil
}
