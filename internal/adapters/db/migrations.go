// internal/adapters/db/migrations.go
package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies all pending schema migrations from the embedded
// migration files. An up-to-date schema is not an error.
func RunMigrations(ctx context.Context, databaseURL string, logger *slog.Logger) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil || dbErr != nil {
			logger.WarnContext(ctx, "failed to close migrator",
				slog.Any("source_err", sourceErr),
				slog.Any("db_err", dbErr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.InfoContext(ctx, "no migrations to run")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		logger.WarnContext(ctx, "failed to read migration version", slog.Any("err", err))
		return nil
	}
	logger.InfoContext(ctx, "migrations completed",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty))

	return nil
}
