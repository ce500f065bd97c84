package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credentials/internal/auth/domain"
	authService "github.com/allisson/credentials/internal/auth/service"
	"github.com/allisson/credentials/internal/database"
	apperrors "github.com/allisson/credentials/internal/errors"
)

type clientUseCase struct {
	txManager     database.TxManager
	clientRepo    ClientRepository
	secretService authService.SecretService
}

func (c *clientUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	plainSecret, hashedSecret, err := c.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	client := &authDomain.Client{
		ID:         uuid.Must(uuid.NewV7()),
		Actor:      input.ActorOrDefault(),
		Name:       input.Name,
		SecretHash: hashedSecret,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}

	err = c.txManager.WithTx(ctx, func(ctx context.Context) error {
		_, err := c.clientRepo.GetByActor(ctx, client.Actor)
		if err == nil {
			return authDomain.ErrClientAlreadyExists
		}
		if !apperrors.Is(err, authDomain.ErrClientNotFound) {
			return err
		}
		return c.clientRepo.Create(ctx, client)
	})
	if err != nil {
		return nil, err
	}

	return &authDomain.CreateClientOutput{
		ID:          client.ID,
		Actor:       client.Actor,
		PlainSecret: plainSecret,
	}, nil
}

func (c *clientUseCase) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	return c.clientRepo.Get(ctx, clientID)
}

func (c *clientUseCase) Deactivate(ctx context.Context, clientID uuid.UUID) error {
	return c.txManager.WithTx(ctx, func(ctx context.Context) error {
		client, err := c.clientRepo.Get(ctx, clientID)
		if err != nil {
			return err
		}
		client.IsActive = false
		return c.clientRepo.Update(ctx, client)
	})
}

func (c *clientUseCase) Authenticate(
	ctx context.Context,
	clientID uuid.UUID,
	secret string,
) (*authDomain.Client, error) {
	client, err := c.clientRepo.Get(ctx, clientID)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrClientNotFound) {
			return nil, authDomain.ErrInvalidClientCredentials
		}
		return nil, err
	}

	if !c.secretService.CompareSecret(secret, client.SecretHash) {
		return nil, authDomain.ErrInvalidClientCredentials
	}
	if !client.IsActive {
		return nil, authDomain.ErrClientInactive
	}
	return client, nil
}

// NewClientUseCase creates a ClientUseCase.
func NewClientUseCase(
	txManager database.TxManager,
	clientRepo ClientRepository,
	secretService authService.SecretService,
) ClientUseCase {
	return &clientUseCase{
		txManager:     txManager,
		clientRepo:    clientRepo,
		secretService: secretService,
	}
}
