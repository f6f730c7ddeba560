package bridge

import "time"

// SessionInfo is the list_sessions row shape.
type SessionInfo struct {
	ID           string    `json:"id"`
	RepoPath     string    `json:"repo_path"`
	DiffMode     string    `json:"diff_mode"`
	DiffArgs     string    `json:"diff_args"`
	CreatedAt    time.Time `json:"created_at"`
	CommentCount int       `json:"comment_count"`
}

// CommentInfo is one comment as returned over the bridge.
type CommentInfo struct {
	ID         string     `json:"id"`
	SessionID  string     `json:"session_id"`
	FilePath   string     `json:"file_path"`
	LineNumber *int       `json:"line_number,omitempty"`
	HunkOffset *int       `json:"hunk_offset,omitempty"`
	Type       string     `json:"comment_type"`
	Severity   string     `json:"severity"`
	Body       string     `json:"body"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	ThreadID   *string    `json:"thread_id,omitempty"`
}

type ListSessionsArgs struct {
	RepoPath string `json:"repo_path,omitempty" jsonschema:"filter to sessions for this repository path"`
}

type ListSessionsResult struct {
	Sessions []SessionInfo `json:"sessions"`
}

type GetSessionArgs struct {
	SessionID string `json:"session_id" jsonschema:"the session to fetch"`
}

type GetSessionResult struct {
	ID        string        `json:"id"`
	RepoPath  string        `json:"repo_path"`
	DiffMode  string        `json:"diff_mode"`
	DiffArgs  string        `json:"diff_args"`
	CreatedAt time.Time     `json:"created_at"`
	Comments  []CommentInfo `json:"comments"`
}

type ListCommentsArgs struct {
	SessionID   string `json:"session_id"`
	FilePath    string `json:"file_path,omitempty"`
	Severity    string `json:"severity,omitempty"`
	CommentType string `json:"comment_type,omitempty"`
}

type ListCommentsResult struct {
	Comments []CommentInfo `json:"comments"`
}

type AddAnnotationArgs struct {
	SessionID   string `json:"session_id"`
	FilePath    string `json:"file_path"`
	LineNumber  *int   `json:"line_number,omitempty"`
	CommentType string `json:"comment_type" jsonschema:"one of question, concern, til, suggestion, praise, nitpick"`
	Severity    string `json:"severity" jsonschema:"one of critical, major, minor, info"`
	Body        string `json:"body"`
}

type AddAnnotationResult struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type ResolveCommentArgs struct {
	CommentID      string `json:"comment_id"`
	ResolutionNote string `json:"resolution_note,omitempty"`
}

type ResolveCommentResult struct {
	ID         string    `json:"id"`
	ResolvedAt time.Time `json:"resolved_at"`
}

type GetHunkContextArgs struct {
	SessionID    string `json:"session_id"`
	FilePath     string `json:"file_path"`
	LineNumber   int    `json:"line_number"`
	ContextLines int    `json:"context_lines,omitempty"`
}

type GetHunkContextResult struct {
	HunkHeader string     `json:"hunk_header"`
	Lines      []HunkLine `json:"lines"`
}
