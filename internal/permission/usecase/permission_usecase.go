package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	"github.com/allisson/credentials/internal/database"
	apperrors "github.com/allisson/credentials/internal/errors"
	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
)

type permissionUseCase struct {
	txManager      database.TxManager
	permissionRepo PermissionRepository
}

func (p *permissionUseCase) Grant(
	ctx context.Context,
	input *permissionDomain.GrantInput,
) (*permissionDomain.Permission, error) {
	if len(input.Operations) == 0 {
		return nil, permissionDomain.ErrMissingOperations
	}
	if input.Path == "" || strings.Contains(strings.TrimSuffix(input.Path, "/*"), "*") {
		return nil, permissionDomain.ErrInvalidPath
	}
	path := credentialDomain.NormalizeName(input.Path)

	var granted *permissionDomain.Permission
	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		existing, err := p.permissionRepo.FindByActor(ctx, input.Actor)
		if err != nil {
			return apperrors.Wrap(err, "failed to find permissions")
		}

		for _, permission := range existing {
			if !strings.EqualFold(permission.Path, path) {
				continue
			}
			if permission.MergeOperations(input.Operations) {
				if err := p.permissionRepo.Update(ctx, permission); err != nil {
					return apperrors.Wrap(err, "failed to update permission")
				}
			}
			granted = permission
			return nil
		}

		permission := &permissionDomain.Permission{
			ID:        uuid.Must(uuid.NewV7()),
			Actor:     input.Actor,
			Path:      path,
			CreatedAt: time.Now().UTC(),
		}
		permission.MergeOperations(input.Operations)
		if err := p.permissionRepo.Create(ctx, permission); err != nil {
			return apperrors.Wrap(err, "failed to create permission")
		}
		granted = permission
		return nil
	})
	if err != nil {
		return nil, err
	}
	return granted, nil
}

func (p *permissionUseCase) Get(ctx context.Context, id uuid.UUID) (*permissionDomain.Permission, error) {
	return p.permissionRepo.FindByID(ctx, id)
}

func (p *permissionUseCase) ListForActor(ctx context.Context, actor string) ([]*permissionDomain.Permission, error) {
	return p.permissionRepo.FindByActor(ctx, actor)
}

func (p *permissionUseCase) Revoke(ctx context.Context, id uuid.UUID) error {
	return p.permissionRepo.Delete(ctx, id)
}

func (p *permissionUseCase) HasPermission(
	ctx context.Context,
	actor, name string,
	op permissionDomain.Operation,
) (bool, error) {
	if actor == "" {
		return false, nil
	}
	permissions, err := p.permissionRepo.FindByActor(ctx, actor)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to find permissions")
	}
	return permissionDomain.AnyAllows(permissions, credentialDomain.NormalizeName(name), op), nil
}

// NewPermissionUseCase creates a PermissionUseCase.
func NewPermissionUseCase(txManager database.TxManager, permissionRepo PermissionRepository) PermissionUseCase {
	return &permissionUseCase{txManager: txManager, permissionRepo: permissionRepo}
}
