package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
	"github.com/allisson/credentials/internal/database"
	apperrors "github.com/allisson/credentials/internal/errors"
)

// MySQLCanaryRepository implements canary persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLCanaryRepository struct {
	db *sql.DB
}

func (m *MySQLCanaryRepository) Save(ctx context.Context, canary *cryptoDomain.Canary) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT IGNORE INTO encryption_key_canaries (id, key_id, encrypted_value, nonce, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := canary.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal canary id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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

func (m *MySQLCanaryRepository) FindAll(ctx context.Context) ([]*cryptoDomain.Canary, error) {
	querier := database.GetTx(ctx, m.db)

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
		var idBytes []byte
		canary := &cryptoDomain.Canary{EncryptedValue: &cryptoDomain.EncryptedValue{}}
		if err := rows.Scan(
			&idBytes,
			&canary.KeyID,
			&canary.EncryptedValue.Ciphertext,
			&canary.EncryptedValue.Nonce,
			&canary.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan canary")
		}
		if err := canary.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal canary id")
		}
		canary.EncryptedValue.KeyID = canary.KeyID
		canaries = append(canaries, canary)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate canaries")
	}

	return canaries, nil
}

func (m *MySQLCanaryRepository) Delete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	querier := database.GetTx(ctx, m.db)

	args := make([]any, len(ids))
	for i, id := range ids {
		b, err := id.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal canary id")
		}
		args[i] = b
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := `DELETE FROM encryption_key_canaries WHERE id IN (` + placeholders + `)`

	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, "failed to delete canaries")
	}
	return nil
}

// NewMySQLCanaryRepository creates a new MySQL canary repository.
func NewMySQLCanaryRepository(db *sql.DB) *MySQLCanaryRepository {
	return &MySQLCanaryRepository{db: db}
}
