// Package mocks provides testify mocks for the permission use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
)

// MockPermissionRepository is a mock PermissionRepository.
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) Create(ctx context.Context, permission *permissionDomain.Permission) error {
	args := m.Called(ctx, permission)
	return args.Error(0)
}

func (m *MockPermissionRepository) Update(ctx context.Context, permission *permissionDomain.Permission) error {
	args := m.Called(ctx, permission)
	return args.Error(0)
}

func (m *MockPermissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*permissionDomain.Permission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permissionDomain.Permission), args.Error(1)
}

func (m *MockPermissionRepository) FindByActor(
	ctx context.Context,
	actor string,
) ([]*permissionDomain.Permission, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*permissionDomain.Permission), args.Error(1)
}

func (m *MockPermissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCredentialFinder is a mock CredentialFinder.
type MockCredentialFinder struct {
	mock.Mock
}

func (m *MockCredentialFinder) FindAllCurrentByNamePrefix(
	ctx context.Context,
	prefix string,
) ([]*credentialDomain.CredentialVersionData, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.CredentialVersionData), args.Error(1)
}

func (m *MockCredentialFinder) FindAllCurrentByNameLike(
	ctx context.Context,
	pattern string,
) ([]*credentialDomain.CredentialVersionData, error) {
	args := m.Called(ctx, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.CredentialVersionData), args.Error(1)
}

// MockPermissionIndex is a mock PermissionIndex.
type MockPermissionIndex struct {
	mock.Mock
}

func (m *MockPermissionIndex) FindByPath(
	ctx context.Context,
	prefix, actor string,
	expiresWithinDays *int,
) ([]*credentialDomain.CredentialVersionData, error) {
	args := m.Called(ctx, prefix, actor, expiresWithinDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.CredentialVersionData), args.Error(1)
}

func (m *MockPermissionIndex) FindByNameLike(
	ctx context.Context,
	pattern, actor string,
	expiresWithinDays *int,
) ([]*credentialDomain.CredentialVersionData, error) {
	args := m.Called(ctx, pattern, actor, expiresWithinDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.CredentialVersionData), args.Error(1)
}

// MockPermissionUseCase is a mock PermissionUseCase.
type MockPermissionUseCase struct {
	mock.Mock
}

func (m *MockPermissionUseCase) Grant(
	ctx context.Context,
	input *permissionDomain.GrantInput,
) (*permissionDomain.Permission, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permissionDomain.Permission), args.Error(1)
}

func (m *MockPermissionUseCase) Get(ctx context.Context, id uuid.UUID) (*permissionDomain.Permission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permissionDomain.Permission), args.Error(1)
}

func (m *MockPermissionUseCase) ListForActor(
	ctx context.Context,
	actor string,
) ([]*permissionDomain.Permission, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*permissionDomain.Permission), args.Error(1)
}

func (m *MockPermissionUseCase) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPermissionUseCase) HasPermission(
	ctx context.Context,
	actor, name string,
	op permissionDomain.Operation,
) (bool, error) {
	args := m.Called(ctx, actor, name, op)
	return args.Bool(0), args.Error(1)
}
