package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
)

func newPermission() *permissionDomain.Permission {
	return &permissionDomain.Permission{
		ID:    uuid.Must(uuid.NewV7()),
		Actor: "alice",
		Path:  "/team/*",
		Operations: []permissionDomain.Operation{
			permissionDomain.OperationRead,
			permissionDomain.OperationWrite,
		},
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPostgreSQLPermissionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		permission := newPermission()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO permissions")).
			WithArgs(permission.ID, "alice", "/team/*", "read,write", permission.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, NewPostgreSQLPermissionRepository(db).Create(ctx, permission))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("INSERT INTO permissions").WillReturnError(errors.New("duplicate"))

		err = NewPostgreSQLPermissionRepository(db).Create(ctx, newPermission())
		assert.ErrorContains(t, err, "failed to create permission: duplicate")
	})

	t.Run("find by actor", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		permission := newPermission()
		rows := sqlmock.NewRows([]string{"id", "actor", "path", "operations", "created_at"}).
			AddRow(permission.ID.String(), "alice", "/team/*", "read,write", permission.CreatedAt)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE actor = $1")).WithArgs("alice").WillReturnRows(rows)

		permissions, err := NewPostgreSQLPermissionRepository(db).FindByActor(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, permissions, 1)
		assert.Equal(t, permission, permissions[0])
	})

	t.Run("find by actor with unknown operation", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		rows := sqlmock.NewRows([]string{"id", "actor", "path", "operations", "created_at"}).
			AddRow(uuid.Must(uuid.NewV7()).String(), "alice", "/db", "read,admin", time.Now())
		mock.ExpectQuery("SELECT").WillReturnRows(rows)

		_, err = NewPostgreSQLPermissionRepository(db).FindByActor(ctx, "alice")
		assert.ErrorIs(t, err, permissionDomain.ErrInvalidOperation)
	})

	t.Run("find by id not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err = NewPostgreSQLPermissionRepository(db).FindByID(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, permissionDomain.ErrPermissionNotFound)
	})

	t.Run("update", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		permission := newPermission()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE permissions SET operations = $1 WHERE id = $2")).
			WithArgs("read,write", permission.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewPostgreSQLPermissionRepository(db).Update(ctx, permission))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("DELETE FROM permissions").WillReturnResult(sqlmock.NewResult(0, 0))

		err = NewPostgreSQLPermissionRepository(db).Delete(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, permissionDomain.ErrPermissionNotFound)
	})
}

func TestMySQLPermissionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		permission := newPermission()
		id, err := permission.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO permissions")).
			WithArgs(id, "alice", "/team/*", "read,write", permission.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, NewMySQLPermissionRepository(db).Create(ctx, permission))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("find by id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		permission := newPermission()
		id, err := permission.ID.MarshalBinary()
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"id", "actor", "path", "operations", "created_at"}).
			AddRow(id, "alice", "/team/*", "read,write", permission.CreatedAt)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ?")).WithArgs(id).WillReturnRows(rows)

		found, err := NewMySQLPermissionRepository(db).FindByID(ctx, permission.ID)
		require.NoError(t, err)
		assert.Equal(t, permission, found)
	})

	t.Run("find by actor error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("SELECT").WillReturnError(errors.New("boom"))

		_, err = NewMySQLPermissionRepository(db).FindByActor(ctx, "alice")
		assert.ErrorContains(t, err, "failed to list permissions: boom")
	})

	t.Run("delete", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		permission := newPermission()
		id, err := permission.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM permissions WHERE id = ?")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewMySQLPermissionRepository(db).Delete(ctx, permission.ID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
