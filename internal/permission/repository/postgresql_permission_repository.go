// Package repository implements permission grant persistence for PostgreSQL and MySQL.
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

// PostgreSQLPermissionRepository implements permission persistence for PostgreSQL.
type PostgreSQLPermissionRepository struct {
	db *sql.DB
}

// Create inserts a new grant.
func (p *PostgreSQLPermissionRepository) Create(ctx context.Context, permission *permissionDomain.Permission) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO permissions (id, actor, path, operations, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		permission.ID,
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
func (p *PostgreSQLPermissionRepository) Update(ctx context.Context, permission *permissionDomain.Permission) error {
	querier := database.GetTx(ctx, p.db)

	_, err := querier.ExecContext(
		ctx,
		`UPDATE permissions SET operations = $1 WHERE id = $2`,
		permissionDomain.FormatOperations(permission.Operations),
		permission.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update permission")
	}
	return nil
}

// FindByID returns the grant with id.
func (p *PostgreSQLPermissionRepository) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*permissionDomain.Permission, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, actor, path, operations, created_at FROM permissions WHERE id = $1`

	var permission permissionDomain.Permission
	var operations string
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&permission.ID,
		&permission.Actor,
		&permission.Path,
		&operations,
		&permission.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, permissionDomain.ErrPermissionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get permission")
	}

	if permission.Operations, err = permissionDomain.ParseOperations(operations); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse permission operations")
	}
	return &permission, nil
}

// FindByActor returns every grant of actor, oldest first.
func (p *PostgreSQLPermissionRepository) FindByActor(
	ctx context.Context,
	actor string,
) ([]*permissionDomain.Permission, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, actor, path, operations, created_at FROM permissions
			  WHERE actor = $1 ORDER BY created_at, id`

	rows, err := querier.QueryContext(ctx, query, actor)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list permissions")
	}
	defer func() {
		_ = rows.Close()
	}()

	permissions := []*permissionDomain.Permission{}
	for rows.Next() {
		var permission permissionDomain.Permission
		var operations string
		if err := rows.Scan(
			&permission.ID,
			&permission.Actor,
			&permission.Path,
			&operations,
			&permission.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan permission")
		}
		if permission.Operations, err = permissionDomain.ParseOperations(operations); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse permission operations")
		}
		permissions = append(permissions, &permission)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list permissions")
	}
	return permissions, nil
}

// Delete removes a grant.
func (p *PostgreSQLPermissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM permissions WHERE id = $1`, id)
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

// NewPostgreSQLPermissionRepository creates a PostgreSQL permission repository.
func NewPostgreSQLPermissionRepository(db *sql.DB) *PostgreSQLPermissionRepository {
	return &PostgreSQLPermissionRepository{db: db}
}
