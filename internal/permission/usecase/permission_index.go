package usecase

import (
	"context"
	"time"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	apperrors "github.com/allisson/credentials/internal/errors"
	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
)

type permissionIndex struct {
	permissionRepo PermissionRepository
	finder         CredentialFinder
	now            func() time.Time
}

// FindByPath returns the current versions under prefix, aligned on segment boundaries,
// that the actor holds read on.
func (p *permissionIndex) FindByPath(
	ctx context.Context,
	prefix, actor string,
	expiresWithinDays *int,
) ([]*credentialDomain.CredentialVersionData, error) {
	prefix = permissionDomain.NormalizePathPrefix(prefix)

	candidates, err := p.finder.FindAllCurrentByNamePrefix(ctx, prefix)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to find credentials by path")
	}

	return p.filter(ctx, actor, candidates, expiresWithinDays, func(name string) bool {
		return permissionDomain.MatchesPath(prefix, name)
	})
}

// FindByNameLike returns the current versions whose name contains pattern that the
// actor holds read on.
func (p *permissionIndex) FindByNameLike(
	ctx context.Context,
	pattern, actor string,
	expiresWithinDays *int,
) ([]*credentialDomain.CredentialVersionData, error) {
	candidates, err := p.finder.FindAllCurrentByNameLike(ctx, pattern)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to find credentials by name")
	}

	return p.filter(ctx, actor, candidates, expiresWithinDays, func(name string) bool {
		return permissionDomain.MatchesNameLike(pattern, name)
	})
}

func (p *permissionIndex) filter(
	ctx context.Context,
	actor string,
	candidates []*credentialDomain.CredentialVersionData,
	expiresWithinDays *int,
	matches func(name string) bool,
) ([]*credentialDomain.CredentialVersionData, error) {
	if len(candidates) == 0 {
		return []*credentialDomain.CredentialVersionData{}, nil
	}

	permissions, err := p.permissionRepo.FindByActor(ctx, actor)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to find permissions")
	}

	now := p.now()
	result := make([]*credentialDomain.CredentialVersionData, 0, len(candidates))
	for _, candidate := range candidates {
		if !matches(candidate.Name) {
			continue
		}
		if !permissionDomain.AnyAllows(permissions, candidate.Name, permissionDomain.OperationRead) {
			continue
		}
		if expiresWithinDays != nil &&
			!credentialDomain.ExpiresWithin(candidate.ExpiryDate, now, *expiresWithinDays) {
			continue
		}
		result = append(result, candidate)
	}

	permissionDomain.SortNewestFirst(result)
	return result, nil
}

// NewPermissionIndex creates a PermissionIndex.
func NewPermissionIndex(permissionRepo PermissionRepository, finder CredentialFinder) PermissionIndex {
	return &permissionIndex{
		permissionRepo: permissionRepo,
		finder:         finder,
		now:            func() time.Time { return time.Now().UTC() },
	}
}
