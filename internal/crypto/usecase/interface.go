// Package usecase orchestrates key canary verification.
package usecase

import (
	"context"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
)

// CanaryRepository persists key canaries.
type CanaryRepository interface {
	Save(ctx context.Context, canary *cryptoDomain.Canary) error
	FindAll(ctx context.Context) ([]*cryptoDomain.Canary, error)
	Delete(ctx context.Context, ids []uuid.UUID) error
}

// CanaryUseCase verifies that every configured key still decrypts its canary.
type CanaryUseCase interface {
	// Verify checks each registered key. Keys that fail are marked unusable; the others
	// stay available. Only repository failures are returned as errors.
	Verify(ctx context.Context) (*cryptoDomain.CanaryReport, error)

	// Prune deletes canaries of keys that are no longer configured and returns how many.
	Prune(ctx context.Context) (int, error)
}
