package sqlite

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/lanternsec/keygate/internal/auth/store/drivers/sqlite/migrations"
)

// ApplyMigrations brings the schema up to date. Running against an
// already-current database is a no-op.
func (s *Store) ApplyMigrations() error {
	src, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	drv, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return fmt.Errorf("migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
