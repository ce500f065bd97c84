// Package mocks provides testify mocks for the credential use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

// MockCredentialRepository is a mock CredentialRepository.
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) Save(ctx context.Context, version *credentialDomain.CredentialVersionData) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockCredentialRepository) FindMostRecent(
	ctx context.Context,
	name string,
) (*credentialDomain.CredentialVersionData, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.CredentialVersionData), args.Error(1)
}

func (m *MockCredentialRepository) FindAllVersions(
	ctx context.Context,
	name string,
	limit int,
) ([]*credentialDomain.CredentialVersionData, error) {
	args := m.Called(ctx, name, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.CredentialVersionData), args.Error(1)
}

func (m *MockCredentialRepository) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*credentialDomain.CredentialVersionData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.CredentialVersionData), args.Error(1)
}

func (m *MockCredentialRepository) FindNotEncryptedByKey(
	ctx context.Context,
	keyID string,
	afterID uuid.UUID,
	limit int,
) ([]*credentialDomain.CredentialVersionData, error) {
	args := m.Called(ctx, keyID, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.CredentialVersionData), args.Error(1)
}

func (m *MockCredentialRepository) UpdateEncryption(
	ctx context.Context,
	version *credentialDomain.CredentialVersionData,
) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

// MockEncryptor is a mock Encryptor.
type MockEncryptor struct {
	mock.Mock
}

func (m *MockEncryptor) Encrypt(plaintext string) (*cryptoDomain.EncryptedValue, error) {
	args := m.Called(plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.EncryptedValue), args.Error(1)
}

func (m *MockEncryptor) Decrypt(value *cryptoDomain.EncryptedValue) (string, error) {
	args := m.Called(value)
	return args.String(0), args.Error(1)
}

func (m *MockEncryptor) ActiveKeyID() string {
	args := m.Called()
	return args.String(0)
}

// MockCredentialUseCase is a mock CredentialUseCase.
type MockCredentialUseCase struct {
	mock.Mock
}

func (m *MockCredentialUseCase) Set(
	ctx context.Context,
	input *credentialDomain.SetInput,
) (credentialDomain.CredentialVersion, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(credentialDomain.CredentialVersion), args.Error(1)
}

func (m *MockCredentialUseCase) Generate(
	ctx context.Context,
	input *credentialDomain.GenerateInput,
) (credentialDomain.CredentialVersion, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(credentialDomain.CredentialVersion), args.Error(1)
}

func (m *MockCredentialUseCase) Regenerate(ctx context.Context, name string) (credentialDomain.CredentialVersion, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(credentialDomain.CredentialVersion), args.Error(1)
}

func (m *MockCredentialUseCase) GetByName(
	ctx context.Context,
	name string,
	current bool,
	versions int,
) ([]credentialDomain.CredentialVersion, error) {
	args := m.Called(ctx, name, current, versions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]credentialDomain.CredentialVersion), args.Error(1)
}

func (m *MockCredentialUseCase) GetByID(ctx context.Context, id uuid.UUID) (credentialDomain.CredentialVersion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(credentialDomain.CredentialVersion), args.Error(1)
}

// MockRotationUseCase is a mock RotationUseCase.
type MockRotationUseCase struct {
	mock.Mock
}

func (m *MockRotationUseCase) RotateAll(
	ctx context.Context,
	batchSize, concurrency int,
) (*credentialDomain.RotationReport, error) {
	args := m.Called(ctx, batchSize, concurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.RotationReport), args.Error(1)
}
