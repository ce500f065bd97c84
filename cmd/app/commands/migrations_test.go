package commands

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsSourceURL(t *testing.T) {
	url, err := migrationsSourceURL("postgres")
	require.NoError(t, err)
	assert.Equal(t, "file://migrations/postgresql", url)

	url, err = migrationsSourceURL("mysql")
	require.NoError(t, err)
	assert.Equal(t, "file://migrations/mysql", url)

	_, err = migrationsSourceURL("sqlite3")
	assert.EqualError(t, err, `unsupported database driver "sqlite3"`)
}

func TestRunMigrations(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("unsupported driver fails before opening a connection", func(t *testing.T) {
		err := RunMigrations(logger, "sqlite3", "file:credentials.db")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})

	t.Run("unreachable source", func(t *testing.T) {
		// The working directory of this test has no migrations directory.
		err := RunMigrations(logger, "postgres", "postgres://localhost:1/credentials?sslmode=disable")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create migrate instance")
	})
}
