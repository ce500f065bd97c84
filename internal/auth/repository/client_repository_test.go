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

	authDomain "github.com/allisson/credentials/internal/auth/domain"
)

var clientColumns = []string{"id", "actor", "name", "secret", "is_active", "created_at"}

func newClient() *authDomain.Client {
	return &authDomain.Client{
		ID:         uuid.Must(uuid.NewV7()),
		Actor:      "client:deployer",
		Name:       "deployer",
		SecretHash: "$argon2id$hash",
		IsActive:   true,
		CreatedAt:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPostgreSQLClientRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		client := newClient()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO clients")).
			WithArgs(client.ID, client.Actor, client.Name, client.SecretHash, true, client.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, NewPostgreSQLClientRepository(db).Create(ctx, client))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get by actor", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		client := newClient()
		rows := sqlmock.NewRows(clientColumns).AddRow(
			client.ID.String(), client.Actor, client.Name, client.SecretHash, true, client.CreatedAt,
		)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE actor = $1")).WithArgs(client.Actor).WillReturnRows(rows)

		found, err := NewPostgreSQLClientRepository(db).GetByActor(ctx, client.Actor)
		require.NoError(t, err)
		assert.Equal(t, client, found)
	})

	t.Run("get not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(clientColumns))

		_, err = NewPostgreSQLClientRepository(db).Get(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, authDomain.ErrClientNotFound)
	})

	t.Run("update error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("UPDATE clients").WillReturnError(errors.New("boom"))

		err = NewPostgreSQLClientRepository(db).Update(ctx, newClient())
		assert.ErrorContains(t, err, "failed to update client: boom")
	})
}

func TestMySQLClientRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		client := newClient()
		id, err := client.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO clients")).
			WithArgs(id, client.Actor, client.Name, client.SecretHash, true, client.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, NewMySQLClientRepository(db).Create(ctx, client))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		client := newClient()
		id, err := client.ID.MarshalBinary()
		require.NoError(t, err)

		rows := sqlmock.NewRows(clientColumns).AddRow(
			id, client.Actor, client.Name, client.SecretHash, true, client.CreatedAt,
		)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ?")).WithArgs(id).WillReturnRows(rows)

		found, err := NewMySQLClientRepository(db).Get(ctx, client.ID)
		require.NoError(t, err)
		assert.Equal(t, client, found)
	})

	t.Run("update", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		client := newClient()
		client.IsActive = false
		id, err := client.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE clients SET name = ?, is_active = ? WHERE id = ?")).
			WithArgs(client.Name, false, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewMySQLClientRepository(db).Update(ctx, client))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
