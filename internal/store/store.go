// Package store opens the database and brings its schema up to date.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bishnutech/pixelforge/internal/store/migrations"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Open connects to the configured database and runs the embedded
// migrations. SQLite is the local default; Postgres serves shared
// deployments.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var db *sql.DB
	var dialect, dir string
	var err error

	switch driver {
	case DriverSQLite:
		db, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// the sqlite driver does not tolerate concurrent writers on one file
		db.SetMaxOpenConns(1)
		dialect, dir = "sqlite3", "sqlite"
	case DriverPostgres:
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		dialect, dir = "pgx", "postgres"
	default:
		return nil, fmt.Errorf("unknown database driver: %q", driver)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		db.Close()
		return nil, err
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
