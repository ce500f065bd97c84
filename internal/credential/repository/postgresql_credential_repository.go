package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	"github.com/allisson/credentials/internal/database"
	apperrors "github.com/allisson/credentials/internal/errors"
)

const postgresCurrentVersion = `v.id = (
	SELECT v2.id FROM credential_versions v2
	WHERE v2.credential_id = v.credential_id
	ORDER BY v2.created_at DESC, v2.id DESC
	LIMIT 1
)`

// PostgreSQLCredentialRepository implements credential version persistence for PostgreSQL.
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

// Save inserts a version, creating the credential row for its name when needed.
// data.CredentialID is set from the credential row.
func (p *PostgreSQLCredentialRepository) Save(
	ctx context.Context,
	data *credentialDomain.CredentialVersionData,
) error {
	querier := database.GetTx(ctx, p.db)

	_, err := querier.ExecContext(
		ctx,
		`INSERT INTO credentials (id, name, created_at) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`,
		uuid.Must(uuid.NewV7()),
		data.Name,
		data.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create credential")
	}

	var credentialID uuid.UUID
	err = querier.QueryRowContext(ctx, `SELECT id FROM credentials WHERE name = $1`, data.Name).Scan(&credentialID)
	if err != nil {
		return apperrors.Wrap(err, "failed to get credential id")
	}
	data.CredentialID = credentialID

	query := `INSERT INTO credential_versions (id, credential_id, type, created_at,
				key_id, encrypted_value, nonce, parameters_key_id, encrypted_parameters, parameters_nonce,
				username, salt, public_key, ca, certificate, expiry_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	args := []any{data.ID, data.CredentialID, string(data.Type), data.CreatedAt}
	args = append(args, encryptionArgs(data)...)
	args = append(args, cleartextArgs(data)...)

	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, "failed to create credential version")
	}
	return nil
}

// FindMostRecent returns the current version of name.
func (p *PostgreSQLCredentialRepository) FindMostRecent(
	ctx context.Context,
	name string,
) (*credentialDomain.CredentialVersionData, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + versionColumns + `
			  FROM credential_versions v JOIN credentials c ON c.id = v.credential_id
			  WHERE c.name = $1
			  ORDER BY v.created_at DESC, v.id DESC
			  LIMIT 1`

	data, err := p.scanVersion(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, credentialDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get most recent credential version")
	}
	return data, nil
}

// FindAllVersions returns up to limit versions of name, newest first. A limit of 0
// returns every version.
func (p *PostgreSQLCredentialRepository) FindAllVersions(
	ctx context.Context,
	name string,
	limit int,
) ([]*credentialDomain.CredentialVersionData, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + versionColumns + `
			  FROM credential_versions v JOIN credentials c ON c.id = v.credential_id
			  WHERE c.name = $1
			  ORDER BY v.created_at DESC, v.id DESC`
	args := []any{name}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	return p.queryVersions(ctx, querier, "failed to list credential versions", query, args...)
}

// FindByID returns the version with id.
func (p *PostgreSQLCredentialRepository) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*credentialDomain.CredentialVersionData, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + versionColumns + `
			  FROM credential_versions v JOIN credentials c ON c.id = v.credential_id
			  WHERE v.id = $1`

	data, err := p.scanVersion(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, credentialDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential version")
	}
	return data, nil
}

// FindAllCurrentByNamePrefix returns the current version of every name starting with
// prefix, compared case-insensitively, newest first.
func (p *PostgreSQLCredentialRepository) FindAllCurrentByNamePrefix(
	ctx context.Context,
	prefix string,
) ([]*credentialDomain.CredentialVersionData, error) {
	return p.findCurrentByPattern(ctx, prefixPattern(prefix))
}

// FindAllCurrentByNameLike returns the current version of every name containing
// pattern, compared case-insensitively, newest first.
func (p *PostgreSQLCredentialRepository) FindAllCurrentByNameLike(
	ctx context.Context,
	pattern string,
) ([]*credentialDomain.CredentialVersionData, error) {
	return p.findCurrentByPattern(ctx, containsPattern(pattern))
}

func (p *PostgreSQLCredentialRepository) findCurrentByPattern(
	ctx context.Context,
	pattern string,
) ([]*credentialDomain.CredentialVersionData, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + versionColumns + `
			  FROM credential_versions v JOIN credentials c ON c.id = v.credential_id
			  WHERE lower(c.name) LIKE $1 AND ` + postgresCurrentVersion + `
			  ORDER BY v.created_at DESC, v.id DESC`

	return p.queryVersions(ctx, querier, "failed to search credentials", query, pattern)
}

// FindNotEncryptedByKey returns up to limit versions with a field encrypted under a key
// other than keyID, ordered by id and starting after afterID.
func (p *PostgreSQLCredentialRepository) FindNotEncryptedByKey(
	ctx context.Context,
	keyID string,
	afterID uuid.UUID,
	limit int,
) ([]*credentialDomain.CredentialVersionData, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + versionColumns + `
			  FROM credential_versions v JOIN credentials c ON c.id = v.credential_id
			  WHERE (v.key_id <> $1 OR (v.parameters_key_id IS NOT NULL AND v.parameters_key_id <> $1))
				AND v.id > $2
			  ORDER BY v.id
			  LIMIT $3`

	return p.queryVersions(ctx, querier, "failed to list versions to rotate", query, keyID, afterID, limit)
}

// UpdateEncryption stores the re-encrypted fields of a version.
func (p *PostgreSQLCredentialRepository) UpdateEncryption(
	ctx context.Context,
	data *credentialDomain.CredentialVersionData,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE credential_versions
			  SET key_id = $1, encrypted_value = $2, nonce = $3,
				  parameters_key_id = $4, encrypted_parameters = $5, parameters_nonce = $6
			  WHERE id = $7`

	args := append(encryptionArgs(data), data.ID)
	result, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential version encryption")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return credentialDomain.ErrCredentialNotFound
	}
	return nil
}

func (p *PostgreSQLCredentialRepository) scanVersion(row rowScanner) (*credentialDomain.CredentialVersionData, error) {
	var r versionRow
	dest := append([]any{&r.data.ID, &r.data.CredentialID}, r.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return r.toData(), nil
}

func (p *PostgreSQLCredentialRepository) queryVersions(
	ctx context.Context,
	querier database.Querier,
	message string,
	query string,
	args ...any,
) ([]*credentialDomain.CredentialVersionData, error) {
	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, message)
	}
	defer func() {
		_ = rows.Close()
	}()

	versions := []*credentialDomain.CredentialVersionData{}
	for rows.Next() {
		data, err := p.scanVersion(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan credential version")
		}
		versions = append(versions, data)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, message)
	}
	return versions, nil
}

// NewPostgreSQLCredentialRepository creates a PostgreSQL credential repository.
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db}
}
