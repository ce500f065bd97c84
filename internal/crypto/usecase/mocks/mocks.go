// Package mocks provides testify mocks for the crypto use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
)

// MockCanaryRepository is a mock CanaryRepository.
type MockCanaryRepository struct {
	mock.Mock
}

func (m *MockCanaryRepository) Save(ctx context.Context, canary *cryptoDomain.Canary) error {
	args := m.Called(ctx, canary)
	return args.Error(0)
}

func (m *MockCanaryRepository) FindAll(ctx context.Context) ([]*cryptoDomain.Canary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cryptoDomain.Canary), args.Error(1)
}

func (m *MockCanaryRepository) Delete(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// MockCanaryUseCase is a mock CanaryUseCase.
type MockCanaryUseCase struct {
	mock.Mock
}

func (m *MockCanaryUseCase) Verify(ctx context.Context) (*cryptoDomain.CanaryReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.CanaryReport), args.Error(1)
}

func (m *MockCanaryUseCase) Prune(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
