// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, connection pooling,
// driver registration) from the persistence logic in write.go and read.go.
// This is the only file that imports the SQLite driver, making it easier to
// swap implementations if needed.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// WAL allows concurrent readers during writes (useful when the MCP query
// tool runs alongside an in-progress parse). The 5-second busy timeout
// prevents "database is locked" errors without waiting forever on a stuck
// connection.

package store

import (
	"context"
	"database/sql"
	"fmt"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite connection configured for the parser's write pattern:
// infrequent, transactional, per-commit writes and read-heavy querying from
// the CLI and MCP server.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database file at path and returns a configured
// Store. The caller should call Close on the returned store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return &Store{db: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times; every statement uses IF NOT EXISTS.
func (s *Store) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection. Nothing in this repository calls
// it; the audit logger in internal/log opens its own separate database.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Tx executes fn within a database transaction, handling Begin/Commit/
// Rollback automatically. Every multi-statement write in this package
// (path-change log replace, filesystem-delta replace) goes through this so
// a failure partway through never leaves a commit half-persisted.
func (s *Store) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function to
// handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}
