package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaVersion is the version this binary knows how to create and read.
// Migrations are forward-only: there is no down-migration path.
const schemaVersion = 1

// legacyTables lists pre-versioned table names that must be dropped
// before the version-1 schema is created, covering the one-time upgrade
// path from a database created before schema_version existed.
var legacyTables = []string{"reviews", "annotations"}

const ddlV1 = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	repo_path TEXT NOT NULL,
	diff_mode TEXT NOT NULL,
	diff_args TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
) STRICT;
CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_coordinate
	ON sessions(repo_path, diff_mode, diff_args);

CREATE TABLE IF NOT EXISTS threads (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	status TEXT NOT NULL CHECK (status IN ('open', 'addressed', 'resolved')),
	round_number INTEGER NOT NULL DEFAULT 1
) STRICT;
CREATE INDEX IF NOT EXISTS idx_threads_session ON threads(session_id);

CREATE TABLE IF NOT EXISTS comments (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	file_path TEXT NOT NULL,
	line_number INTEGER,
	hunk_offset INTEGER,
	comment_type TEXT NOT NULL CHECK (comment_type IN
		('question', 'concern', 'til', 'suggestion', 'praise', 'nitpick')),
	severity TEXT NOT NULL CHECK (severity IN
		('critical', 'major', 'minor', 'info')),
	body TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	resolved_at INTEGER,
	thread_id TEXT REFERENCES threads(id) ON DELETE SET NULL
) STRICT;
CREATE INDEX IF NOT EXISTS idx_comments_session ON comments(session_id);
CREATE INDEX IF NOT EXISTS idx_comments_session_file ON comments(session_id, file_path);

CREATE TABLE IF NOT EXISTS file_review_state (
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	file_path TEXT NOT NULL,
	reviewed INTEGER NOT NULL DEFAULT 0,
	reviewed_at INTEGER,
	PRIMARY KEY (session_id, file_path)
) STRICT;
`

// migrate reads schema_version (creating it if absent) and applies the
// DDL batch inside a single write transaction when the stored version is
// behind schemaVersion, inserting the target version as the final step.
// A database newer than this binary understands is a persistence-fatal
// error: opening it could silently corrupt data the newer schema
// depends on.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL) STRICT`); err != nil {
		return fmt.Errorf("persistence-fatal: create schema_version table: %w", err)
	}

	current, err := readVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("persistence-fatal: read schema version: %w", err)
	}
	if current > schemaVersion {
		return fmt.Errorf("persistence-fatal: database schema version %d is newer than this binary supports (%d)", current, schemaVersion)
	}
	if current == schemaVersion {
		return nil
	}

	return withImmediateTx(ctx, db, func(conn *sql.Conn) error {
		if current == 0 {
			for _, table := range legacyTables {
				if _, err := conn.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
					return fmt.Errorf("drop legacy table %s: %w", table, err)
				}
			}
		}
		if _, err := conn.ExecContext(ctx, ddlV1); err != nil {
			return fmt.Errorf("apply v1 schema: %w", err)
		}
		if _, err := conn.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	})
}

func readVersion(ctx context.Context, db *sql.DB) (int, error) {
	row := db.QueryRowContext(ctx, `SELECT version FROM schema_version ORDER BY version DESC LIMIT 1`)
	var v int
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return v, nil
}
