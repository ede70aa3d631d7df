package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	rows "github.com/gartstein/biztime/internal/biztime/db/models"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate brings the schema up to date. Postgres runs the embedded SQL
// migrations; other dialects fall back to gorm AutoMigrate.
func (r *Repository) Migrate() error {
	if r.Dialect() != "postgres" {
		if err := r.db.AutoMigrate(rows.All()...); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		return nil
	}
	if r.cfg == nil {
		return errors.New("migrate: repository has no connection settings")
	}
	return runSQLMigrations(r.cfg.URL())
}

func runSQLMigrations(databaseURL string) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrate: load source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("migrate: init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: up: %w", err)
	}
	return nil
}
