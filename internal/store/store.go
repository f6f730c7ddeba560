// Package store is the persistence core: a WAL-mode SQLite database
// shared by the review terminal and the agent bridge, with forward-only
// schema versioning and write transactions that acquire the write lock
// up front. It is grounded on the other_examples reference db.go
// (hazyhaar-GoClode's Engine, which opens modernc.org/sqlite with WAL +
// synchronous=NORMAL + foreign_keys=ON pragmas in the DSN and hot-reload
// watches its own config), generalized here into an async façade that
// pins the connection pool behind a single background goroutine so the
// non-movable-in-spirit database/sql handle never needs to be shared
// across call sites directly.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"

	"github.com/charmbracelet/log"
)

// Role distinguishes the UI process (which owns WAL checkpointing) from
// the agent bridge (which must never race a checkpoint against the UI).
type Role int

const (
	RoleUI Role = iota
	RoleBridge
)

// Store is a synchronous handle to the database. The UI wraps one in an
// Async façade (see async.go); the agent bridge uses it directly, since
// it answers one JSON-RPC call at a time on its own goroutine.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Open opens (creating if necessary) the database at path, applies the
// connection-setup sequence from the spec, and runs the migrator.
// Busy-timeout is set via the driver's pragma mechanism (a call into the
// underlying sqlite3_busy_timeout API) rather than a raw `PRAGMA
// busy_timeout` statement, which the spec calls out as unreliably cached
// across pooled connections.
func Open(ctx context.Context, path string, role Role, logger *log.Logger) (*Store, error) {
	dsn := fmt.Sprintf("%s?%s", path, url.Values{
		"_pragma": []string{
			"journal_mode(WAL)",
			"synchronous(NORMAL)",
			"foreign_keys(ON)",
			"busy_timeout(5000)",
		},
	}.Encode())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("persistence-fatal: open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("persistence-fatal: ping database: %w", err)
	}

	if role == RoleUI {
		if _, err := db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
			db.Close()
			return nil, fmt.Errorf("persistence-fatal: startup wal checkpoint: %w", err)
		}
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// withImmediateTx runs fn inside a transaction that acquires SQLite's
// write lock at BEGIN time (`BEGIN IMMEDIATE`) rather than on first
// write. A deferred-to-immediate lock upgrade can fail with SQLITE_BUSY
// even with a busy-timeout set, since the timeout only covers waiting
// for a lock already being acquired in immediate mode, not the upgrade
// race itself; acquiring immediate up front avoids that race entirely.
func withImmediateTx(ctx context.Context, db *sql.DB, fn func(conn *sql.Conn) error) (err error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("begin immediate: %w", err)
	}
	defer func() {
		if err != nil {
			_, _ = conn.ExecContext(ctx, "ROLLBACK")
		}
	}()

	if err = fn(conn); err != nil {
		return err
	}
	if _, err = conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
