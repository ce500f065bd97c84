package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	databaseMocks "github.com/allisson/credentials/internal/database/mocks"
	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
	"github.com/allisson/credentials/internal/permission/usecase/mocks"
)

func newPermissionUseCase() (PermissionUseCase, *mocks.MockPermissionRepository) {
	txManager := &databaseMocks.MockTxManager{}
	txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	repo := &mocks.MockPermissionRepository{}
	return NewPermissionUseCase(txManager, repo), repo
}

func TestPermissionUseCase_Grant(t *testing.T) {
	ctx := context.Background()
	read := permissionDomain.OperationRead
	write := permissionDomain.OperationWrite

	t.Run("creates a new grant with a normalized path", func(t *testing.T) {
		useCase, repo := newPermissionUseCase()

		repo.On("FindByActor", mock.Anything, "alice").Return([]*permissionDomain.Permission{}, nil).Once()
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *permissionDomain.Permission) bool {
			return p.Actor == "alice" && p.Path == "/team/*" && len(p.Operations) == 1 && p.ID != uuid.Nil
		})).Return(nil).Once()

		granted, err := useCase.Grant(ctx, &permissionDomain.GrantInput{
			Actor:      "alice",
			Path:       "team/*",
			Operations: []permissionDomain.Operation{read, read},
		})
		require.NoError(t, err)
		assert.Equal(t, []permissionDomain.Operation{read}, granted.Operations)
		repo.AssertExpectations(t)
	})

	t.Run("merges into an existing grant", func(t *testing.T) {
		useCase, repo := newPermissionUseCase()
		existing := &permissionDomain.Permission{
			ID:         uuid.Must(uuid.NewV7()),
			Actor:      "alice",
			Path:       "/team/*",
			Operations: []permissionDomain.Operation{read},
		}

		repo.On("FindByActor", mock.Anything, "alice").Return([]*permissionDomain.Permission{existing}, nil).Once()
		repo.On("Update", mock.Anything, existing).Return(nil).Once()

		granted, err := useCase.Grant(ctx, &permissionDomain.GrantInput{
			Actor:      "alice",
			Path:       "/TEAM/*",
			Operations: []permissionDomain.Operation{write},
		})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, granted.ID)
		assert.Equal(t, []permissionDomain.Operation{read, write}, granted.Operations)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unchanged grant is not updated", func(t *testing.T) {
		useCase, repo := newPermissionUseCase()
		existing := &permissionDomain.Permission{Actor: "alice", Path: "/db", Operations: []permissionDomain.Operation{read}}

		repo.On("FindByActor", mock.Anything, "alice").Return([]*permissionDomain.Permission{existing}, nil).Once()

		_, err := useCase.Grant(ctx, &permissionDomain.GrantInput{
			Actor:      "alice",
			Path:       "/db",
			Operations: []permissionDomain.Operation{read},
		})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("validation", func(t *testing.T) {
		useCase, _ := newPermissionUseCase()

		_, err := useCase.Grant(ctx, &permissionDomain.GrantInput{Actor: "alice", Path: "/db"})
		assert.ErrorIs(t, err, permissionDomain.ErrMissingOperations)

		_, err = useCase.Grant(ctx, &permissionDomain.GrantInput{
			Actor:      "alice",
			Path:       "/a/*/b",
			Operations: []permissionDomain.Operation{read},
		})
		assert.ErrorIs(t, err, permissionDomain.ErrInvalidPath)
	})

	t.Run("repository error", func(t *testing.T) {
		useCase, repo := newPermissionUseCase()

		repo.On("FindByActor", mock.Anything, "alice").Return([]*permissionDomain.Permission{}, nil).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()

		_, err := useCase.Grant(ctx, &permissionDomain.GrantInput{
			Actor:      "alice",
			Path:       "/db",
			Operations: []permissionDomain.Operation{read},
		})
		assert.ErrorContains(t, err, "failed to create permission: boom")
	})
}

func TestPermissionUseCase_HasPermission(t *testing.T) {
	ctx := context.Background()

	t.Run("any matching grant allows", func(t *testing.T) {
		useCase, repo := newPermissionUseCase()

		repo.On("FindByActor", ctx, "alice").Return([]*permissionDomain.Permission{
			{Path: "/team/db", Operations: []permissionDomain.Operation{permissionDomain.OperationRead}},
			{Path: "/team/*", Operations: []permissionDomain.Operation{permissionDomain.OperationWrite}},
		}, nil)

		allowed, err := useCase.HasPermission(ctx, "alice", "team/db", permissionDomain.OperationWrite)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = useCase.HasPermission(ctx, "alice", "/other", permissionDomain.OperationRead)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("anonymous actor has no permissions", func(t *testing.T) {
		useCase, repo := newPermissionUseCase()

		allowed, err := useCase.HasPermission(ctx, "", "/team/db", permissionDomain.OperationRead)
		require.NoError(t, err)
		assert.False(t, allowed)
		repo.AssertNotCalled(t, "FindByActor", mock.Anything, mock.Anything)
	})

	t.Run("repository error", func(t *testing.T) {
		useCase, repo := newPermissionUseCase()

		repo.On("FindByActor", ctx, "alice").Return(nil, errors.New("boom")).Once()

		_, err := useCase.HasPermission(ctx, "alice", "/db", permissionDomain.OperationRead)
		assert.Error(t, err)
	})
}

func TestPermissionUseCase_Revoke(t *testing.T) {
	ctx := context.Background()
	useCase, repo := newPermissionUseCase()
	id := uuid.Must(uuid.NewV7())

	repo.On("Delete", ctx, id).Return(permissionDomain.ErrPermissionNotFound).Once()

	assert.ErrorIs(t, useCase.Revoke(ctx, id), permissionDomain.ErrPermissionNotFound)
}
