package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
	"github.com/allisson/credentials/internal/metrics"
)

type canaryUseCaseWithMetrics struct {
	next    CanaryUseCase
	metrics metrics.BusinessMetrics
}

// NewCanaryUseCaseWithMetrics wraps a CanaryUseCase with business metrics.
func NewCanaryUseCaseWithMetrics(useCase CanaryUseCase, m metrics.BusinessMetrics) CanaryUseCase {
	return &canaryUseCaseWithMetrics{next: useCase, metrics: m}
}

func (c *canaryUseCaseWithMetrics) Verify(ctx context.Context) (*cryptoDomain.CanaryReport, error) {
	start := time.Now()
	report, err := c.next.Verify(ctx)
	metrics.Observe(ctx, c.metrics, "crypto", "verify_canaries", start, err)
	return report, err
}

func (c *canaryUseCaseWithMetrics) Prune(ctx context.Context) (int, error) {
	start := time.Now()
	count, err := c.next.Prune(ctx)
	metrics.Observe(ctx, c.metrics, "crypto", "prune_canaries", start, err)
	return count, err
}
