package store

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"github.com/prometheus/common/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the database schema up to date using the migrations embedded
// in the binary
func Migrate(db *sql.DB, logger log.Logger) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "failed to open embedded migrations")
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return errors.Wrap(err, "failed to create postgres migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return errors.Wrap(err, "failed to create migrate instance")
	}

	err = m.Up()
	if err == migrate.ErrNoChange {
		logger.Info("No migrations to apply")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "migration up failed")
	}

	version, dirty, err := m.Version()
	if err != nil {
		return errors.Wrap(err, "failed to get migration version")
	}

	logger.With("version", version).With("dirty", dirty).Info("Migrations completed")
	return nil
}
