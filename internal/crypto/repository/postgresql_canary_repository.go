// Package repository implements canary persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
	"github.com/allisson/credentials/internal/database"
	apperrors "github.com/allisson/credentials/internal/errors"
)

// PostgreSQLCanaryRepository implements canary persistence for PostgreSQL.
type PostgreSQLCanaryRepository struct {
	db *sql.DB
}

// Save inserts a canary. An existing canary for the same key is kept.
func (p *PostgreSQLCanaryRepository) Save(ctx context.Context, canary *cryptoDomain.Canary) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO encryption_key_canaries (id, key_id, encrypted_value, nonce, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (key_id) DO NOTHING`

	_, err := querier.ExecContext(
		ctx,
		query,
		canary.ID,
		canary.KeyID,
		canary.EncryptedValue.Ciphertext,
		canary.EncryptedValue.Nonce,
		canary.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to save canary")
	}
	return nil
}

// FindAll returns every stored canary ordered by key id.
func (p *PostgreSQLCanaryRepository) FindAll(ctx context.Context) ([]*cryptoDomain.Canary, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, key_id, encrypted_value, nonce, created_at
			  FROM encryption_key_canaries
			  ORDER BY key_id`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list canaries")
	}
	defer func() {
		_ = rows.Close()
	}()

	canaries := []*cryptoDomain.Canary{}
	for rows.Next() {
		canary := &cryptoDomain.Canary{EncryptedValue: &cryptoDomain.EncryptedValue{}}
		if err := rows.Scan(
			&canary.ID,
			&canary.KeyID,
			&canary.EncryptedValue.Ciphertext,
			&canary.EncryptedValue.Nonce,
			&canary.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan canary")
		}
		canary.EncryptedValue.KeyID = canary.KeyID
		canaries = append(canaries, canary)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate canaries")
	}

	return canaries, nil
}

// Delete removes the canaries with the given ids.
func (p *PostgreSQLCanaryRepository) Delete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM encryption_key_canaries WHERE id = ANY($1::uuid[])`

	if _, err := querier.ExecContext(ctx, query, pq.Array(uuidStrings(ids))); err != nil {
		return apperrors.Wrap(err, "failed to delete canaries")
	}
	return nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// NewPostgreSQLCanaryRepository creates a new PostgreSQL canary repository.
func NewPostgreSQLCanaryRepository(db *sql.DB) *PostgreSQLCanaryRepository {
	return &PostgreSQLCanaryRepository{db: db}
}
