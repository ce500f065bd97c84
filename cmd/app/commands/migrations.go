package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/credentials/internal/database"
)

// migrationDirs maps DB_DRIVER to the directory holding its schema migrations.
var migrationDirs = map[string]string{
	database.DriverPostgres: "postgresql",
	database.DriverMySQL:    "mysql",
}

// migrationsSourceURL returns the golang-migrate source for dbDriver.
func migrationsSourceURL(dbDriver string) (string, error) {
	dir, ok := migrationDirs[dbDriver]
	if !ok {
		return "", fmt.Errorf("unsupported database driver %q", dbDriver)
	}
	return "file://migrations/" + dir, nil
}

// RunMigrations applies every pending migration for the configured driver.
func RunMigrations(logger *slog.Logger, dbDriver, dbConnectionString string) error {
	logger.Info("running database migrations", slog.String("driver", dbDriver))

	migrationsPath, err := migrationsSourceURL(dbDriver)
	if err != nil {
		return err
	}

	m, err := migrate.New(migrationsPath, dbConnectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
