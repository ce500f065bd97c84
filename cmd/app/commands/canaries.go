package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	cryptoUseCase "github.com/allisson/credentials/internal/crypto/usecase"
)

// RunVerifyCanaries round-trips the canary of every configured encryption key and
// prints which keys are usable. Keys without a canary get one. Returns an error when
// any key is unusable so the command exits non-zero.
func RunVerifyCanaries(
	ctx context.Context,
	canaryUseCase cryptoUseCase.CanaryUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("verifying encryption key canaries")

	report, err := canaryUseCase.Verify(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify canaries: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"verified": nonNil(report.Verified),
			"created":  nonNil(report.Created),
			"unusable": nonNil(report.Unusable),
			"passed":   report.Healthy(),
		}); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Encryption Key Canary Verification\n")
		_, _ = fmt.Fprintf(writer, "==================================\n\n")
		_, _ = fmt.Fprintf(writer, "Verified:  %s\n", joinOrNone(report.Verified))
		_, _ = fmt.Fprintf(writer, "Created:   %s\n", joinOrNone(report.Created))
		_, _ = fmt.Fprintf(writer, "Unusable:  %s\n\n", joinOrNone(report.Unusable))
		if report.Healthy() {
			_, _ = fmt.Fprintf(writer, "Status: PASSED\n")
		} else {
			_, _ = fmt.Fprintf(writer, "Status: FAILED\n")
		}
	}

	logger.Info("canary verification completed",
		slog.Int("verified", len(report.Verified)),
		slog.Int("created", len(report.Created)),
		slog.Int("unusable", len(report.Unusable)),
	)

	if !report.Healthy() {
		return fmt.Errorf("canary verification failed for key(s): %s", strings.Join(report.Unusable, ", "))
	}
	return nil
}

// RunPruneCanaries deletes canaries of keys that are no longer configured.
func RunPruneCanaries(
	ctx context.Context,
	canaryUseCase cryptoUseCase.CanaryUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	count, err := canaryUseCase.Prune(ctx)
	if err != nil {
		return fmt.Errorf("failed to prune canaries: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{"deleted_count": count}); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Deleted %d canary record(s) of retired keys\n", count)
	}

	logger.Info("canaries pruned", slog.Int("deleted_count", count))
	return nil
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
