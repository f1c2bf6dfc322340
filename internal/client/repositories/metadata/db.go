package metadata

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/pressly/goose/v3"

	"github.com/uni-jay/ican-portal/internal/client/migrations"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Storage drivers accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// RunMigrations applies the embedded goose migrations to db. goose's own
// progress output is discarded so it never lands in the terminal UI.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite database at dsn and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the Repository configured by driver. For sqlite dsn is a file
// path, for redis a redis:// URL; memory ignores it. The returned Closer
// releases the underlying connection.
func Open(ctx context.Context, driver, dsn string) (Repository, io.Closer, error) {
	switch driver {
	case DriverSQLite, "":
		db, err := InitDatabase(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("error initializing database: %w", err)
		}
		return NewSQLiteRepository(db), db, nil
	case DriverRedis:
		client, err := NewRedisClient(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisRepository(client, DefaultRedisPrefix), client, nil
	case DriverMemory:
		return NewMemoryRepository(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
