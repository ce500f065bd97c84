package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credentials/internal/auth/domain"
	"github.com/allisson/credentials/internal/database"
	apperrors "github.com/allisson/credentials/internal/errors"
)

// MySQLClientRepository implements client persistence for MySQL. Ids are stored as
// BINARY(16).
type MySQLClientRepository struct {
	db *sql.DB
}

// Create inserts a new client.
func (m *MySQLClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	querier := database.GetTx(ctx, m.db)

	id, err := client.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `INSERT INTO clients (id, actor, name, secret, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		client.Actor,
		client.Name,
		client.SecretHash,
		client.IsActive,
		client.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create client")
	}
	return nil
}

// Update stores the name and active flag of a client.
func (m *MySQLClientRepository) Update(ctx context.Context, client *authDomain.Client) error {
	querier := database.GetTx(ctx, m.db)

	id, err := client.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `UPDATE clients SET name = ?, is_active = ? WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, client.Name, client.IsActive, id); err != nil {
		return apperrors.Wrap(err, "failed to update client")
	}
	return nil
}

// Get returns the client with clientID.
func (m *MySQLClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	id, err := clientID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `SELECT id, actor, name, secret, is_active, created_at FROM clients WHERE id = ?`
	return m.getOne(ctx, query, id)
}

// GetByActor returns the client authenticating as actor.
func (m *MySQLClientRepository) GetByActor(ctx context.Context, actor string) (*authDomain.Client, error) {
	query := `SELECT id, actor, name, secret, is_active, created_at FROM clients WHERE actor = ?`
	return m.getOne(ctx, query, actor)
}

func (m *MySQLClientRepository) getOne(ctx context.Context, query string, arg any) (*authDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)

	var client authDomain.Client
	var id []byte
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&id,
		&client.Actor,
		&client.Name,
		&client.SecretHash,
		&client.IsActive,
		&client.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get client")
	}

	if err := client.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}
	return &client, nil
}

// NewMySQLClientRepository creates a MySQL client repository.
func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db}
}
