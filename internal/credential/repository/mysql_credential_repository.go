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

const mysqlCurrentVersion = `v.id = (
	SELECT v2.id FROM credential_versions v2
	WHERE v2.credential_id = v.credential_id
	ORDER BY v2.created_at DESC, v2.id DESC
	LIMIT 1
)`

// MySQLCredentialRepository implements credential version persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLCredentialRepository struct {
	db *sql.DB
}

// Save inserts a version, creating the credential row for its name when needed.
// data.CredentialID is set from the credential row.
func (m *MySQLCredentialRepository) Save(ctx context.Context, data *credentialDomain.CredentialVersionData) error {
	querier := database.GetTx(ctx, m.db)

	newCredentialID, err := uuid.Must(uuid.NewV7()).MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}
	_, err = querier.ExecContext(
		ctx,
		`INSERT IGNORE INTO credentials (id, name, created_at) VALUES (?, ?, ?)`,
		newCredentialID,
		data.Name,
		data.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create credential")
	}

	var credentialIDBytes []byte
	err = querier.QueryRowContext(ctx, `SELECT id FROM credentials WHERE name = ?`, data.Name).
		Scan(&credentialIDBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to get credential id")
	}
	if err := data.CredentialID.UnmarshalBinary(credentialIDBytes); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal credential id")
	}

	id, err := data.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential version id")
	}

	query := `INSERT INTO credential_versions (id, credential_id, type, created_at,
				key_id, encrypted_value, nonce, parameters_key_id, encrypted_parameters, parameters_nonce,
				username, salt, public_key, ca, certificate, expiry_date)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	args := []any{id, credentialIDBytes, string(data.Type), data.CreatedAt}
	args = append(args, encryptionArgs(data)...)
	args = append(args, cleartextArgs(data)...)

	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, "failed to create credential version")
	}
	return nil
}

// FindMostRecent returns the current version of name.
func (m *MySQLCredentialRepository) FindMostRecent(
	ctx context.Context,
	name string,
) (*credentialDomain.CredentialVersionData, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + versionColumns + `
			  FROM credential_versions v JOIN credentials c ON c.id = v.credential_id
			  WHERE c.name = ?
			  ORDER BY v.created_at DESC, v.id DESC
			  LIMIT 1`

	data, err := m.scanVersion(querier.QueryRowContext(ctx, query, name))
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
func (m *MySQLCredentialRepository) FindAllVersions(
	ctx context.Context,
	name string,
	limit int,
) ([]*credentialDomain.CredentialVersionData, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + versionColumns + `
			  FROM credential_versions v JOIN credentials c ON c.id = v.credential_id
			  WHERE c.name = ?
			  ORDER BY v.created_at DESC, v.id DESC`
	args := []any{name}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	return m.queryVersions(ctx, querier, "failed to list credential versions", query, args...)
}

// FindByID returns the version with id.
func (m *MySQLCredentialRepository) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*credentialDomain.CredentialVersionData, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal credential version id")
	}

	query := `SELECT ` + versionColumns + `
			  FROM credential_versions v JOIN credentials c ON c.id = v.credential_id
			  WHERE v.id = ?`

	data, err := m.scanVersion(querier.QueryRowContext(ctx, query, idBytes))
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
func (m *MySQLCredentialRepository) FindAllCurrentByNamePrefix(
	ctx context.Context,
	prefix string,
) ([]*credentialDomain.CredentialVersionData, error) {
	return m.findCurrentByPattern(ctx, prefixPattern(prefix))
}

// FindAllCurrentByNameLike returns the current version of every name containing
// pattern, compared case-insensitively, newest first.
func (m *MySQLCredentialRepository) FindAllCurrentByNameLike(
	ctx context.Context,
	pattern string,
) ([]*credentialDomain.CredentialVersionData, error) {
	return m.findCurrentByPattern(ctx, containsPattern(pattern))
}

func (m *MySQLCredentialRepository) findCurrentByPattern(
	ctx context.Context,
	pattern string,
) ([]*credentialDomain.CredentialVersionData, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + versionColumns + `
			  FROM credential_versions v JOIN credentials c ON c.id = v.credential_id
			  WHERE lower(c.name) LIKE ? AND ` + mysqlCurrentVersion + `
			  ORDER BY v.created_at DESC, v.id DESC`

	return m.queryVersions(ctx, querier, "failed to search credentials", query, pattern)
}

// FindNotEncryptedByKey returns up to limit versions with a field encrypted under a key
// other than keyID, ordered by id and starting after afterID.
func (m *MySQLCredentialRepository) FindNotEncryptedByKey(
	ctx context.Context,
	keyID string,
	afterID uuid.UUID,
	limit int,
) ([]*credentialDomain.CredentialVersionData, error) {
	querier := database.GetTx(ctx, m.db)

	afterIDBytes, err := afterID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal credential version id")
	}

	query := `SELECT ` + versionColumns + `
			  FROM credential_versions v JOIN credentials c ON c.id = v.credential_id
			  WHERE (v.key_id <> ? OR (v.parameters_key_id IS NOT NULL AND v.parameters_key_id <> ?))
				AND v.id > ?
			  ORDER BY v.id
			  LIMIT ?`

	return m.queryVersions(
		ctx, querier, "failed to list versions to rotate", query, keyID, keyID, afterIDBytes, limit,
	)
}

// UpdateEncryption stores the re-encrypted fields of a version.
func (m *MySQLCredentialRepository) UpdateEncryption(
	ctx context.Context,
	data *credentialDomain.CredentialVersionData,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := data.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential version id")
	}

	query := `UPDATE credential_versions
			  SET key_id = ?, encrypted_value = ?, nonce = ?,
				  parameters_key_id = ?, encrypted_parameters = ?, parameters_nonce = ?
			  WHERE id = ?`

	args := append(encryptionArgs(data), id)
	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, "failed to update credential version encryption")
	}
	return nil
}

func (m *MySQLCredentialRepository) scanVersion(row rowScanner) (*credentialDomain.CredentialVersionData, error) {
	var r versionRow
	var idBytes, credentialIDBytes []byte
	dest := append([]any{&idBytes, &credentialIDBytes}, r.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := r.data.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal credential version id")
	}
	if err := r.data.CredentialID.UnmarshalBinary(credentialIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal credential id")
	}
	return r.toData(), nil
}

func (m *MySQLCredentialRepository) queryVersions(
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
		data, err := m.scanVersion(rows)
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

// NewMySQLCredentialRepository creates a MySQL credential repository.
func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{db: db}
}
