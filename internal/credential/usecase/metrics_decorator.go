package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	"github.com/allisson/credentials/internal/metrics"
)

const metricsDomain = "credentials"

type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(useCase CredentialUseCase, m metrics.BusinessMetrics) CredentialUseCase {
	return &credentialUseCaseWithMetrics{next: useCase, metrics: m}
}

func (c *credentialUseCaseWithMetrics) Set(
	ctx context.Context,
	input *credentialDomain.SetInput,
) (credentialDomain.CredentialVersion, error) {
	start := time.Now()
	version, err := c.next.Set(ctx, input)
	metrics.Observe(ctx, c.metrics, metricsDomain, "credential_set", start, err)
	return version, err
}

func (c *credentialUseCaseWithMetrics) Generate(
	ctx context.Context,
	input *credentialDomain.GenerateInput,
) (credentialDomain.CredentialVersion, error) {
	start := time.Now()
	version, err := c.next.Generate(ctx, input)
	metrics.Observe(ctx, c.metrics, metricsDomain, "credential_generate", start, err)
	return version, err
}

func (c *credentialUseCaseWithMetrics) Regenerate(
	ctx context.Context,
	name string,
) (credentialDomain.CredentialVersion, error) {
	start := time.Now()
	version, err := c.next.Regenerate(ctx, name)
	metrics.Observe(ctx, c.metrics, metricsDomain, "credential_regenerate", start, err)
	return version, err
}

func (c *credentialUseCaseWithMetrics) GetByName(
	ctx context.Context,
	name string,
	current bool,
	versions int,
) ([]credentialDomain.CredentialVersion, error) {
	start := time.Now()
	result, err := c.next.GetByName(ctx, name, current, versions)
	metrics.Observe(ctx, c.metrics, metricsDomain, "credential_get", start, err)
	return result, err
}

func (c *credentialUseCaseWithMetrics) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (credentialDomain.CredentialVersion, error) {
	start := time.Now()
	version, err := c.next.GetByID(ctx, id)
	metrics.Observe(ctx, c.metrics, metricsDomain, "credential_get_by_id", start, err)
	return version, err
}

type rotationUseCaseWithMetrics struct {
	next    RotationUseCase
	metrics metrics.BusinessMetrics
}

// NewRotationUseCaseWithMetrics wraps a RotationUseCase with metrics recording.
func NewRotationUseCaseWithMetrics(useCase RotationUseCase, m metrics.BusinessMetrics) RotationUseCase {
	return &rotationUseCaseWithMetrics{next: useCase, metrics: m}
}

func (r *rotationUseCaseWithMetrics) RotateAll(
	ctx context.Context,
	batchSize, concurrency int,
) (*credentialDomain.RotationReport, error) {
	start := time.Now()
	report, err := r.next.RotateAll(ctx, batchSize, concurrency)
	metrics.Observe(ctx, r.metrics, metricsDomain, "credential_rotate_all", start, err)
	return report, err
}
