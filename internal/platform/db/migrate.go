package db

import (
	"context"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate runs all embedded SQL migrations against the database at dsn.
// goose needs a database/sql handle, so it opens its own connection through
// the pgx stdlib driver instead of borrowing the pool.
func Migrate(ctx context.Context, dsn string, migrations fs.FS) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("platform/db: set dialect: %w", err)
	}

	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("platform/db: open for migrate: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations)
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("platform/db: migrate up: %w", err)
	}
	return nil
}
