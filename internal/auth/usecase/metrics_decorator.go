package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credentials/internal/auth/domain"
	"github.com/allisson/credentials/internal/metrics"
)

const metricsDomain = "auth"

type clientUseCaseWithMetrics struct {
	next    ClientUseCase
	metrics metrics.BusinessMetrics
}

// NewClientUseCaseWithMetrics wraps a ClientUseCase with metrics recording.
func NewClientUseCaseWithMetrics(useCase ClientUseCase, m metrics.BusinessMetrics) ClientUseCase {
	return &clientUseCaseWithMetrics{next: useCase, metrics: m}
}

func (c *clientUseCaseWithMetrics) Create(
	ctx context.Context,
	input *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	start := time.Now()
	output, err := c.next.Create(ctx, input)
	metrics.Observe(ctx, c.metrics, metricsDomain, "client_create", start, err)
	return output, err
}

func (c *clientUseCaseWithMetrics) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	start := time.Now()
	client, err := c.next.Get(ctx, clientID)
	metrics.Observe(ctx, c.metrics, metricsDomain, "client_get", start, err)
	return client, err
}

func (c *clientUseCaseWithMetrics) Deactivate(ctx context.Context, clientID uuid.UUID) error {
	start := time.Now()
	err := c.next.Deactivate(ctx, clientID)
	metrics.Observe(ctx, c.metrics, metricsDomain, "client_deactivate", start, err)
	return err
}

func (c *clientUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	clientID uuid.UUID,
	secret string,
) (*authDomain.Client, error) {
	start := time.Now()
	client, err := c.next.Authenticate(ctx, clientID, secret)
	metrics.Observe(ctx, c.metrics, metricsDomain, "client_authenticate", start, err)
	return client, err
}
