// Package usecase evaluates permission grants and searches the credential namespace
// on behalf of an actor.
package usecase

import (
	"context"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
)

// PermissionRepository persists permission grants.
type PermissionRepository interface {
	Create(ctx context.Context, permission *permissionDomain.Permission) error
	// Update stores the operations of an existing grant.
	Update(ctx context.Context, permission *permissionDomain.Permission) error
	FindByID(ctx context.Context, id uuid.UUID) (*permissionDomain.Permission, error)
	FindByActor(ctx context.Context, actor string) ([]*permissionDomain.Permission, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CredentialFinder returns current credential versions by name. Matching in the store
// is a coarse filter; results are re-checked in memory.
type CredentialFinder interface {
	FindAllCurrentByNamePrefix(ctx context.Context, prefix string) ([]*credentialDomain.CredentialVersionData, error)
	FindAllCurrentByNameLike(ctx context.Context, pattern string) ([]*credentialDomain.CredentialVersionData, error)
}

// PermissionIndex searches the current credential versions an actor may see, newest first.
// A non-nil expiresWithinDays keeps only versions expiring within that many days.
type PermissionIndex interface {
	FindByPath(
		ctx context.Context,
		prefix, actor string,
		expiresWithinDays *int,
	) ([]*credentialDomain.CredentialVersionData, error)
	FindByNameLike(
		ctx context.Context,
		pattern, actor string,
		expiresWithinDays *int,
	) ([]*credentialDomain.CredentialVersionData, error)
}

// PermissionUseCase manages permission grants.
type PermissionUseCase interface {
	// Grant adds operations on a path for an actor, merging with an existing grant on
	// the same path.
	Grant(ctx context.Context, input *permissionDomain.GrantInput) (*permissionDomain.Permission, error)
	Get(ctx context.Context, id uuid.UUID) (*permissionDomain.Permission, error)
	ListForActor(ctx context.Context, actor string) ([]*permissionDomain.Permission, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	// HasPermission reports whether any grant of actor allows op on name.
	HasPermission(ctx context.Context, actor, name string, op permissionDomain.Operation) (bool, error)
}
