// Package storage opens the record database and prepares its schema.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-bilingual-cms/internal/records"
	pkgstorage "github.com/goliatone/go-bilingual-cms/pkg/storage"
)

var (
	ErrDriverUnsupported = errors.New("storage: unsupported driver")
	ErrDSNRequired       = errors.New("storage: dsn is required")
)

// Open connects to the configured database and pings it. The memory
// driver has no database and is rejected; callers use a MemoryRepository
// instead.
func Open(ctx context.Context, cfg pkgstorage.Config) (*bun.DB, error) {
	driver := cfg.NormalizedDriver()
	if cfg.DSN == "" {
		return nil, fmt.Errorf("%w: %s", ErrDSNRequired, driver)
	}

	var (
		sqlDB *sql.DB
		db    *bun.DB
		err   error
	)
	switch driver {
	case pkgstorage.DriverSQLite:
		sqlDB, err = sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		// A single writer avoids "database is locked" on shared caches.
		sqlDB.SetMaxOpenConns(1)
		db = bun.NewDB(sqlDB, sqlitedialect.New())
	case pkgstorage.DriverPostgres:
		sqlDB, err = sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		db = bun.NewDB(sqlDB, pgdialect.New())
	default:
		return nil, fmt.Errorf("%w: %q", ErrDriverUnsupported, cfg.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping %s: %w", cfg, err)
	}
	return db, nil
}

// EnsureSchema creates the record table and its lookup index when missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return errors.New("storage: nil database")
	}
	if _, err := db.NewCreateTable().
		Model((*records.Record)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("storage: create content_records: %w", err)
	}
	if _, err := db.NewCreateIndex().
		Model((*records.Record)(nil)).
		Index("content_records_kind_slug_idx").
		Column("kind", "slug").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("storage: create content_records index: %w", err)
	}
	return nil
}
