// Package usecase manages API clients and authenticates their requests.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credentials/internal/auth/domain"
)

// ClientRepository persists API clients.
type ClientRepository interface {
	Create(ctx context.Context, client *authDomain.Client) error
	// Update stores the name and active flag of a client.
	Update(ctx context.Context, client *authDomain.Client) error
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)
	GetByActor(ctx context.Context, actor string) (*authDomain.Client, error)
}

// ClientUseCase manages API clients.
type ClientUseCase interface {
	// Create registers a client and returns its plaintext secret once.
	Create(ctx context.Context, input *authDomain.CreateClientInput) (*authDomain.CreateClientOutput, error)
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)
	// Deactivate prevents a client from authenticating while keeping its record.
	Deactivate(ctx context.Context, clientID uuid.UUID) error
	// Authenticate returns the client when secret matches. Unknown ids and wrong
	// secrets both fail with ErrInvalidClientCredentials.
	Authenticate(ctx context.Context, clientID uuid.UUID, secret string) (*authDomain.Client, error)
}
