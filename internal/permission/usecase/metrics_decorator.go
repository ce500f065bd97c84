package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	"github.com/allisson/credentials/internal/metrics"
	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
)

const metricsDomain = "permissions"

type permissionUseCaseWithMetrics struct {
	next    PermissionUseCase
	metrics metrics.BusinessMetrics
}

// NewPermissionUseCaseWithMetrics wraps a PermissionUseCase with metrics recording.
func NewPermissionUseCaseWithMetrics(useCase PermissionUseCase, m metrics.BusinessMetrics) PermissionUseCase {
	return &permissionUseCaseWithMetrics{next: useCase, metrics: m}
}

func (p *permissionUseCaseWithMetrics) Grant(
	ctx context.Context,
	input *permissionDomain.GrantInput,
) (*permissionDomain.Permission, error) {
	start := time.Now()
	permission, err := p.next.Grant(ctx, input)
	metrics.Observe(ctx, p.metrics, metricsDomain, "permission_grant", start, err)
	return permission, err
}

func (p *permissionUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*permissionDomain.Permission, error) {
	start := time.Now()
	permission, err := p.next.Get(ctx, id)
	metrics.Observe(ctx, p.metrics, metricsDomain, "permission_get", start, err)
	return permission, err
}

func (p *permissionUseCaseWithMetrics) ListForActor(
	ctx context.Context,
	actor string,
) ([]*permissionDomain.Permission, error) {
	start := time.Now()
	permissions, err := p.next.ListForActor(ctx, actor)
	metrics.Observe(ctx, p.metrics, metricsDomain, "permission_list", start, err)
	return permissions, err
}

func (p *permissionUseCaseWithMetrics) Revoke(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := p.next.Revoke(ctx, id)
	metrics.Observe(ctx, p.metrics, metricsDomain, "permission_revoke", start, err)
	return err
}

// HasPermission is called on every request and is not recorded.
func (p *permissionUseCaseWithMetrics) HasPermission(
	ctx context.Context,
	actor, name string,
	op permissionDomain.Operation,
) (bool, error) {
	return p.next.HasPermission(ctx, actor, name, op)
}

type permissionIndexWithMetrics struct {
	next    PermissionIndex
	metrics metrics.BusinessMetrics
}

// NewPermissionIndexWithMetrics wraps a PermissionIndex with metrics recording.
func NewPermissionIndexWithMetrics(index PermissionIndex, m metrics.BusinessMetrics) PermissionIndex {
	return &permissionIndexWithMetrics{next: index, metrics: m}
}

func (p *permissionIndexWithMetrics) FindByPath(
	ctx context.Context,
	prefix, actor string,
	expiresWithinDays *int,
) ([]*credentialDomain.CredentialVersionData, error) {
	start := time.Now()
	result, err := p.next.FindByPath(ctx, prefix, actor, expiresWithinDays)
	metrics.Observe(ctx, p.metrics, metricsDomain, "find_by_path", start, err)
	return result, err
}

func (p *permissionIndexWithMetrics) FindByNameLike(
	ctx context.Context,
	pattern, actor string,
	expiresWithinDays *int,
) ([]*credentialDomain.CredentialVersionData, error) {
	start := time.Now()
	result, err := p.next.FindByNameLike(ctx, pattern, actor, expiresWithinDays)
	metrics.Observe(ctx, p.metrics, metricsDomain, "find_by_name_like", start, err)
	return result, err
}
