package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const defaultDBTimeout = 5 * time.Second

// Database wraps the sqlite handle backing the entitlement manager.
type Database struct {
	DB     *sql.DB
	dbFile string
}

// Open opens (creating if needed) the sqlite database at path and applies
// the schema and migrations.
func Open(ctx context.Context, path string) (*Database, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite serialises writers; one connection keeps counter updates ordered.
	conn.SetMaxOpenConns(1)

	d := &Database{DB: conn, dbFile: path}
	if err := d.withDBContext(ctx, func(ctx context.Context) error {
		return conn.PingContext(ctx)
	}); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := d.createTables(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return d, nil
}

// Path returns the file the database was opened from.
func (d *Database) Path() string { return d.dbFile }

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

func (d *Database) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS entitlement (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			expires_at INTEGER,
			failed_attempts INTEGER NOT NULL DEFAULT 0,
			lockouts INTEGER NOT NULL DEFAULT 0,
			lockout_until INTEGER,
			highest_counter INTEGER NOT NULL DEFAULT -1
		);`,
		`CREATE TABLE IF NOT EXISTS used_codes (
			counter INTEGER PRIMARY KEY,
			used_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			outcome TEXT NOT NULL,
			counter INTEGER,
			created_at INTEGER NOT NULL
		);`,
		`INSERT OR IGNORE INTO entitlement (id) VALUES (1);`,
	}

	return d.withDBContext(ctx, func(ctx context.Context) error {
		for _, query := range queries {
			if _, err := d.DB.ExecContext(ctx, query); err != nil {
				return fmt.Errorf("create tables: %w", err)
			}
		}
		return d.migrate(ctx)
	})
}

// migrations are additive and safe to re-run.
var migrations = []string{
	"ALTER TABLE entitlement ADD COLUMN lockouts INTEGER NOT NULL DEFAULT 0",
	"ALTER TABLE entitlement ADD COLUMN highest_counter INTEGER NOT NULL DEFAULT -1",
	"CREATE INDEX IF NOT EXISTS idx_attempts_created_at ON attempts(created_at)",
}

func (d *Database) migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := d.DB.ExecContext(ctx, stmt); err != nil && !isIgnorableMigrationErr(err) {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func isIgnorableMigrationErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}

// WithTx runs fn in a transaction, committing when fn returns nil.
func (d *Database) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		tx, err := d.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
}

func (d *Database) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (d *Database) withDBContext(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	return fn(ctx)
}

func withDBContextResult[T any](d *Database, ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	return fn(ctx)
}
