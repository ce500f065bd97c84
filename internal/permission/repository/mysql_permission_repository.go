package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/credentials/internal/database"
	apperrors "github.com/allisson/credentials/internal/errors"
	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
)

// MySQLPermissionRepository implements permission persistence for MySQL. Ids are
// stored as BINARY(16).
type MySQLPermissionRepository struct {
	db *sql.DB
}

// Create inserts a new grant.
func (m *MySQLPermissionRepository) Create(ctx context.Context, permission *permissionDomain.Permission) error {
	querier := database.GetTx(ctx, m.db)

	id, err := permission.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal permission id")
	}

	query := `INSERT INTO permissions (id, actor, path, operations, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		permission.Actor,
		permission.Path,
		permissionDomain.FormatOperations(permission.Operations),
		permission.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create permission")
	}
	return nil
}

// Update stores the operations of a grant.
func (m *MySQLPermissionRepository) Update(ctx context.Context, permission *permissionDomain.Permission) error {
	querier := database.GetTx(ctx, m.db)

	id, err := permission.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal permission id")
	}

	_, err = querier.ExecContext(
		ctx,
		`UPDATE permissions SET operations = ? WHERE id = ?`,
		permissionDomain.FormatOperations(permission.Operations),
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update permission")
	}
	return nil
}

// FindByID returns the grant with id.
func (m *MySQLPermissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*permissionDomain.Permission, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal permission id")
	}

	query := `SELECT id, actor, path, operations, created_at FROM permissions WHERE id = ?`

	permission, err := m.scanPermission(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, permissionDomain.ErrPermissionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get permission")
	}
	return permission, nil
}

// FindByActor returns every grant of actor, oldest first.
func (m *MySQLPermissionRepository) FindByActor(
	ctx context.Context,
	actor string,
) ([]*permissionDomain.Permission, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, actor, path, operations, created_at FROM permissions
			  WHERE actor = ? ORDER BY created_at, id`

	rows, err := querier.QueryContext(ctx, query, actor)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list permissions")
	}
	defer func() {
		_ = rows.Close()
	}()

	permissions := []*permissionDomain.Permission{}
	for rows.Next() {
		permission, err := m.scanPermission(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan permission")
		}
		permissions = append(permissions, permission)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list permissions")
	}
	return permissions, nil
}

// Delete removes a grant.
func (m *MySQLPermissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal permission id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM permissions WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete permission")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return permissionDomain.ErrPermissionNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (m *MySQLPermissionRepository) scanPermission(row rowScanner) (*permissionDomain.Permission, error) {
	var permission permissionDomain.Permission
	var idBytes []byte
	var operations string
	if err := row.Scan(&idBytes, &permission.Actor, &permission.Path, &operations, &permission.CreatedAt); err != nil {
		return nil, err
	}
	if err := permission.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal permission id")
	}
	ops, err := permissionDomain.ParseOperations(operations)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse permission operations")
	}
	permission.Operations = ops
	return &permission, nil
}

// NewMySQLPermissionRepository creates a MySQL permission repository.
func NewMySQLPermissionRepository(db *sql.DB) *MySQLPermissionRepository {
	return &MySQLPermissionRepository{db: db}
}
