package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"mesa-campaigns/db/migrations"
)

// ErrDirty is returned when a previous migration run was interrupted and
// the schema needs manual repair.
var ErrDirty = errors.New("database is in dirty state")

// MigrationResult describes one Migrate call.
type MigrationResult struct {
	From uint
	To   uint
}

// Changed reports whether any migration was applied.
func (r MigrationResult) Changed() bool {
	return r.From != r.To
}

// Migrate brings the campaign schema at addr to migrations.Version.
func Migrate(addr string) (MigrationResult, error) {
	res := MigrationResult{To: migrations.Version}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return res, fmt.Errorf("open migrations: %w", err)
	}
	defer src.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", src, addr)
	if err != nil {
		return res, fmt.Errorf("init migrate: %w", err)
	}
	defer mg.Close()

	current, dirty, err := mg.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
	case err != nil:
		return res, fmt.Errorf("read schema version: %w", err)
	case dirty:
		return res, fmt.Errorf("%w at version %d", ErrDirty, current)
	default:
		res.From = current
	}

	if err = mg.Migrate(migrations.Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return res, fmt.Errorf("migrate %d -> %d: %w", res.From, res.To, err)
	}
	return res, nil
}
