package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	credentialUseCase "github.com/allisson/credentials/internal/credential/usecase"
)

// RunRotateCredentials re-encrypts every credential version that is not under the
// active encryption key. Versions that fail are counted and left for the next run.
func RunRotateCredentials(
	ctx context.Context,
	rotationUseCase credentialUseCase.RotationUseCase,
	logger *slog.Logger,
	writer io.Writer,
	batchSize, concurrency int,
	format string,
) error {
	if batchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}

	logger.Info("rotating credentials",
		slog.Int("batch_size", batchSize),
		slog.Int("concurrency", concurrency),
	)

	report, err := rotationUseCase.RotateAll(ctx, batchSize, concurrency)
	if err != nil {
		return fmt.Errorf("failed to rotate credentials: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, report); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Rotated: %d\n", report.Rotated)
		_, _ = fmt.Fprintf(writer, "Failed:  %d\n", report.Failed)
	}

	logger.Info("credential rotation completed",
		slog.Int("rotated", report.Rotated),
		slog.Int("failed", report.Failed),
	)

	if report.Failed > 0 {
		return fmt.Errorf("%d credential version(s) could not be rotated", report.Failed)
	}
	return nil
}
