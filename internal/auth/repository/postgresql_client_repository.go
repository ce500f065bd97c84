// Package repository implements API client persistence for PostgreSQL and MySQL.
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

// PostgreSQLClientRepository implements client persistence for PostgreSQL.
type PostgreSQLClientRepository struct {
	db *sql.DB
}

// Create inserts a new client.
func (p *PostgreSQLClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO clients (id, actor, name, secret, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		client.ID,
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
func (p *PostgreSQLClientRepository) Update(ctx context.Context, client *authDomain.Client) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE clients SET name = $1, is_active = $2 WHERE id = $3`

	if _, err := querier.ExecContext(ctx, query, client.Name, client.IsActive, client.ID); err != nil {
		return apperrors.Wrap(err, "failed to update client")
	}
	return nil
}

// Get returns the client with clientID.
func (p *PostgreSQLClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	query := `SELECT id, actor, name, secret, is_active, created_at FROM clients WHERE id = $1`
	return p.getOne(ctx, query, clientID)
}

// GetByActor returns the client authenticating as actor.
func (p *PostgreSQLClientRepository) GetByActor(ctx context.Context, actor string) (*authDomain.Client, error) {
	query := `SELECT id, actor, name, secret, is_active, created_at FROM clients WHERE actor = $1`
	return p.getOne(ctx, query, actor)
}

func (p *PostgreSQLClientRepository) getOne(ctx context.Context, query string, arg any) (*authDomain.Client, error) {
	querier := database.GetTx(ctx, p.db)

	var client authDomain.Client
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&client.ID,
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
	return &client, nil
}

// NewPostgreSQLClientRepository creates a PostgreSQL client repository.
func NewPostgreSQLClientRepository(db *sql.DB) *PostgreSQLClientRepository {
	return &PostgreSQLClientRepository{db: db}
}
