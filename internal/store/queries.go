package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/airev/airev/internal/domain"
)

// DetectOrCreateSession finds the most-recently-updated session matching
// (repoPath, mode), bumps its updated_at, and returns it; if none
// matches it creates a fresh UUID-keyed session.
func (s *Store) DetectOrCreateSession(ctx context.Context, repoPath string, mode domain.DiffMode) (domain.Session, error) {
	var sess domain.Session
	err := withImmediateTx(ctx, s.db, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, `
			SELECT id, repo_path, diff_mode, diff_args, created_at, updated_at
			FROM sessions
			WHERE repo_path = ? AND diff_mode = ? AND diff_args = ?
			ORDER BY updated_at DESC LIMIT 1`,
			repoPath, mode.Label(), mode.Args())

		var createdAt, updatedAt int64
		err := row.Scan(&sess.ID, &sess.RepoPath, &sess.DiffMode, &sess.DiffArgs, &createdAt, &updatedAt)
		switch {
		case err == sql.ErrNoRows:
			now := time.Now().Unix()
			sess = domain.Session{
				ID:        uuid.NewString(),
				RepoPath:  repoPath,
				DiffMode:  mode.Label(),
				DiffArgs:  mode.Args(),
				CreatedAt: time.Unix(now, 0),
				UpdatedAt: time.Unix(now, 0),
			}
			_, insErr := conn.ExecContext(ctx, `
				INSERT INTO sessions (id, repo_path, diff_mode, diff_args, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)`,
				sess.ID, sess.RepoPath, sess.DiffMode, sess.DiffArgs, now, now)
			return insErr
		case err != nil:
			return err
		default:
			sess.CreatedAt = time.Unix(createdAt, 0)
			now := time.Now().Unix()
			if _, err := conn.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, now, sess.ID); err != nil {
				return err
			}
			sess.UpdatedAt = time.Unix(now, 0)
			return nil
		}
	})
	return sess, err
}

// UpdateSessionTimestamp bumps a session's updated_at, called on graceful
// quit.
func (s *Store) UpdateSessionTimestamp(ctx context.Context, sessionID string) error {
	return withImmediateTx(ctx, s.db, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, time.Now().Unix(), sessionID)
		return err
	})
}

// ListSessions returns sessions, optionally filtered by repo path, with
// each session's comment count, for the agent bridge's list_sessions
// tool.
func (s *Store) ListSessions(ctx context.Context, repoPath string) ([]SessionSummary, error) {
	query := `
		SELECT s.id, s.repo_path, s.diff_mode, s.diff_args, s.created_at,
		       (SELECT COUNT(*) FROM comments c WHERE c.session_id = s.id) AS comment_count
		FROM sessions s`
	args := []any{}
	if repoPath != "" {
		query += ` WHERE s.repo_path = ?`
		args = append(args, repoPath)
	}
	query += ` ORDER BY s.updated_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var createdAt int64
		if err := rows.Scan(&sum.ID, &sum.RepoPath, &sum.DiffMode, &sum.DiffArgs, &createdAt, &sum.CommentCount); err != nil {
			return nil, err
		}
		sum.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// SessionSummary is the list_sessions tool's row shape.
type SessionSummary struct {
	ID           string
	RepoPath     string
	DiffMode     string
	DiffArgs     string
	CreatedAt    time.Time
	CommentCount int
}

// GetSession returns a single session with all its comments, for the
// get_session tool.
func (s *Store) GetSession(ctx context.Context, sessionID string) (domain.Session, []domain.Comment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, repo_path, diff_mode, diff_args, created_at, updated_at
		FROM sessions WHERE id = ?`, sessionID)
	var sess domain.Session
	var createdAt, updatedAt int64
	if err := row.Scan(&sess.ID, &sess.RepoPath, &sess.DiffMode, &sess.DiffArgs, &createdAt, &updatedAt); err != nil {
		return domain.Session{}, nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	sess.CreatedAt = time.Unix(createdAt, 0)
	sess.UpdatedAt = time.Unix(updatedAt, 0)

	comments, err := s.ListComments(ctx, sessionID, "", "", "")
	return sess, comments, err
}

// LoadFileReviewState returns (path, reviewed) pairs for a session.
func (s *Store) LoadFileReviewState(ctx context.Context, sessionID string) ([]domain.FileReviewState, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_path, reviewed, reviewed_at FROM file_review_state WHERE session_id = ?`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FileReviewState
	for rows.Next() {
		var st domain.FileReviewState
		var reviewed int
		var reviewedAt sql.NullInt64
		if err := rows.Scan(&st.FilePath, &reviewed, &reviewedAt); err != nil {
			return nil, err
		}
		st.SessionID = sessionID
		st.Reviewed = reviewed != 0
		if reviewedAt.Valid {
			t := time.Unix(reviewedAt.Int64, 0)
			st.ReviewedAt = &t
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// ToggleFileReviewed reads the current reviewed flag (default false),
// flips it, upserts, and returns the new value.
func (s *Store) ToggleFileReviewed(ctx context.Context, sessionID, filePath string) (bool, error) {
	var next bool
	err := withImmediateTx(ctx, s.db, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, `
			SELECT reviewed FROM file_review_state WHERE session_id = ? AND file_path = ?`, sessionID, filePath)
		var cur int
		switch err := row.Scan(&cur); err {
		case sql.ErrNoRows:
			cur = 0
		case nil:
		default:
			return err
		}
		next = cur == 0

		var reviewedAt any
		if next {
			reviewedAt = time.Now().Unix()
		}
		_, err := conn.ExecContext(ctx, `
			INSERT INTO file_review_state (session_id, file_path, reviewed, reviewed_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (session_id, file_path) DO UPDATE SET reviewed = excluded.reviewed, reviewed_at = excluded.reviewed_at`,
			sessionID, filePath, boolToInt(next), reviewedAt)
		return err
	})
	return next, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SaveComment persists a new comment. Both Type and Severity must be
// members of their closed sets; callers (the comment-entry flow and the
// agent bridge's add_annotation) validate before calling this, but it is
// re-validated here too since the CHECK constraints alone would only
// surface as an opaque SQL error.
func (s *Store) SaveComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	if !c.Type.Valid() {
		return domain.Comment{}, fmt.Errorf("validation: invalid comment type %q", c.Type)
	}
	if !c.Severity.Valid() {
		return domain.Comment{}, fmt.Errorf("validation: invalid severity %q", c.Severity)
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	err := withImmediateTx(ctx, s.db, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, `
			INSERT INTO comments (id, session_id, file_path, line_number, hunk_offset,
			                       comment_type, severity, body, created_at, resolved_at, thread_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.SessionID, c.FilePath, c.LineNumber, c.HunkOffset,
			string(c.Type), string(c.Severity), c.Body, c.CreatedAt.Unix(), nil, c.ThreadID)
		return err
	})
	return c, err
}

// ListComments returns comments for a session, optionally filtered by
// file path, severity, and/or comment type.
func (s *Store) ListComments(ctx context.Context, sessionID, filePath, severity, commentType string) ([]domain.Comment, error) {
	query := `
		SELECT id, session_id, file_path, line_number, hunk_offset, comment_type,
		       severity, body, created_at, resolved_at, thread_id
		FROM comments WHERE session_id = ?`
	args := []any{sessionID}
	if filePath != "" {
		query += ` AND file_path = ?`
		args = append(args, filePath)
	}
	if severity != "" {
		query += ` AND severity = ?`
		args = append(args, severity)
	}
	if commentType != "" {
		query += ` AND comment_type = ?`
		args = append(args, commentType)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(row scanner) (domain.Comment, error) {
	var c domain.Comment
	var lineNumber, hunkOffset, resolvedAt sql.NullInt64
	var threadID sql.NullString
	var createdAt int64
	var commentType, severity string

	if err := row.Scan(&c.ID, &c.SessionID, &c.FilePath, &lineNumber, &hunkOffset,
		&commentType, &severity, &c.Body, &createdAt, &resolvedAt, &threadID); err != nil {
		return domain.Comment{}, err
	}
	c.Type = domain.CommentType(commentType)
	c.Severity = domain.Severity(severity)
	c.CreatedAt = time.Unix(createdAt, 0)
	if lineNumber.Valid {
		n := int(lineNumber.Int64)
		c.LineNumber = &n
	}
	if hunkOffset.Valid {
		n := int(hunkOffset.Int64)
		c.HunkOffset = &n
	}
	if resolvedAt.Valid {
		t := time.Unix(resolvedAt.Int64, 0)
		c.ResolvedAt = &t
	}
	if threadID.Valid {
		id := threadID.String
		c.ThreadID = &id
	}
	return c, nil
}

// ResolveComment marks a comment resolved and, if it has a thread,
// advances that thread to resolved. Returns the resolved timestamp.
func (s *Store) ResolveComment(ctx context.Context, commentID, resolutionNote string) (time.Time, error) {
	now := time.Now()
	err := withImmediateTx(ctx, s.db, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, `UPDATE comments SET resolved_at = ? WHERE id = ?`, now.Unix(), commentID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("validation: no such comment %s", commentID)
		}

		row := conn.QueryRowContext(ctx, `SELECT thread_id FROM comments WHERE id = ?`, commentID)
		var threadID sql.NullString
		if err := row.Scan(&threadID); err != nil {
			return err
		}
		if threadID.Valid {
			_, err := conn.ExecContext(ctx, `UPDATE threads SET status = 'resolved' WHERE id = ?`, threadID.String)
			return err
		}
		return nil
	})
	return now, err
}

// HunkContext is a hunk header plus its context lines. The agent
// bridge's get_hunk_context tool does not use it: internal/bridge has
// its own HunkLine and result types and derives them from a fresh diff
// rather than stored line content.
type HunkContext struct {
	HunkHeader string
	Lines      []HunkLine
}

// HunkLine is one line of context within a HunkContext.
type HunkLine struct {
	Number     int
	Content    string
	ChangeType string
}
