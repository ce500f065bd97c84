// Package usecase orchestrates credential storage, generation, retrieval and bulk
// re-encryption under the active key.
package usecase

import (
	"context"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

// Encryptor is the credential domain encryptor plus the id of the active key.
type Encryptor interface {
	credentialDomain.Encryptor
	ActiveKeyID() string
}

// CredentialRepository persists credential versions.
type CredentialRepository interface {
	Save(ctx context.Context, version *credentialDomain.CredentialVersionData) error
	FindMostRecent(ctx context.Context, name string) (*credentialDomain.CredentialVersionData, error)
	// FindAllVersions returns up to limit versions newest first. A limit of 0 returns all.
	FindAllVersions(ctx context.Context, name string, limit int) ([]*credentialDomain.CredentialVersionData, error)
	FindByID(ctx context.Context, id uuid.UUID) (*credentialDomain.CredentialVersionData, error)
	// FindNotEncryptedByKey returns up to limit versions with any field encrypted under a
	// key other than keyID, ordered by id and starting after afterID.
	FindNotEncryptedByKey(
		ctx context.Context,
		keyID string,
		afterID uuid.UUID,
		limit int,
	) ([]*credentialDomain.CredentialVersionData, error)
	UpdateEncryption(ctx context.Context, version *credentialDomain.CredentialVersionData) error
}

// CredentialUseCase manages credential versions.
type CredentialUseCase interface {
	// Set stores value as the new current version of name.
	Set(ctx context.Context, input *credentialDomain.SetInput) (credentialDomain.CredentialVersion, error)
	// Generate stores a generated value as the new current version of name. Without
	// Overwrite an existing version generated with matching parameters is returned as is.
	Generate(
		ctx context.Context,
		input *credentialDomain.GenerateInput,
	) (credentialDomain.CredentialVersion, error)
	// Regenerate generates a new version with the parameters of the current one.
	Regenerate(ctx context.Context, name string) (credentialDomain.CredentialVersion, error)
	// GetByName returns the current version when current is set, otherwise up to
	// versions versions (all when 0), newest first.
	GetByName(
		ctx context.Context,
		name string,
		current bool,
		versions int,
	) ([]credentialDomain.CredentialVersion, error)
	GetByID(ctx context.Context, id uuid.UUID) (credentialDomain.CredentialVersion, error)
}

// RotationUseCase re-encrypts stored versions under the active key.
type RotationUseCase interface {
	RotateAll(ctx context.Context, batchSize, concurrency int) (*credentialDomain.RotationReport, error)
}
