// Package domain holds the entities shared between the review terminal and
// the agent bridge. Every value here is fully owned: nothing in this
// package borrows from a caller, and nothing here is safe to mutate after
// it has been handed across a goroutine boundary — callers that need to
// change a value copy it first.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// CommentType is the closed set of comment kinds a reviewer may attach to a
// line. The set is fixed by the schema CHECK constraint in the sessions
// database; adding a member here requires a matching migration.
type CommentType string

const (
	CommentQuestion   CommentType = "question"
	CommentConcern    CommentType = "concern"
	CommentTIL        CommentType = "til"
	CommentSuggestion CommentType = "suggestion"
	CommentPraise     CommentType = "praise"
	CommentNitpick    CommentType = "nitpick"
)

// ValidCommentTypes is the closed set of comment types, in declaration
// order, for use by validation and UI pickers.
var ValidCommentTypes = []CommentType{
	CommentQuestion, CommentConcern, CommentTIL,
	CommentSuggestion, CommentPraise, CommentNitpick,
}

// Valid reports whether t is one of the closed set of comment types.
func (t CommentType) Valid() bool {
	for _, v := range ValidCommentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Severity is the closed set of severities a comment may carry.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
	SeverityInfo     Severity = "info"
)

// ValidSeverities is the closed set of severities, in declaration order.
var ValidSeverities = []Severity{SeverityCritical, SeverityMajor, SeverityMinor, SeverityInfo}

// Valid reports whether s is one of the closed set of severities.
func (s Severity) Valid() bool {
	for _, v := range ValidSeverities {
		if v == s {
			return true
		}
	}
	return false
}

// ThreadStatus is the one-way status machine a thread moves through:
// open -> addressed -> resolved. It never moves backwards.
type ThreadStatus string

const (
	ThreadOpen      ThreadStatus = "open"
	ThreadAddressed ThreadStatus = "addressed"
	ThreadResolved  ThreadStatus = "resolved"
)

// threadRank gives each status a monotonic position so transitions can be
// checked for forward-only movement.
var threadRank = map[ThreadStatus]int{
	ThreadOpen:      0,
	ThreadAddressed: 1,
	ThreadResolved:  2,
}

// CanAdvance reports whether moving from s to next is a legal forward (or
// no-op) transition.
func (s ThreadStatus) CanAdvance(next ThreadStatus) bool {
	cur, ok := threadRank[s]
	if !ok {
		return false
	}
	nr, ok := threadRank[next]
	if !ok {
		return false
	}
	return nr >= cur
}

// DiffModeKind selects which git comparison a Session is anchored to.
type DiffModeKind string

const (
	DiffModeUnstaged DiffModeKind = "unstaged"
	DiffModeStaged   DiffModeKind = "staged"
	DiffModeBranch   DiffModeKind = "branch"
	DiffModeRange    DiffModeKind = "range"
)

// DiffMode fully describes which comparison to run. Base/Head are only
// meaningful for DiffModeBranch and DiffModeRange.
type DiffMode struct {
	Kind DiffModeKind
	Base string
	Head string
}

// Label renders the mode the way it is stored as a Session's diff_mode
// column and shown in the status bar.
func (m DiffMode) Label() string {
	switch m.Kind {
	case DiffModeUnstaged:
		return "UNSTAGED"
	case DiffModeStaged:
		return "STAGED"
	case DiffModeBranch:
		return "BRANCH " + m.Base + ".." + m.Head
	case DiffModeRange:
		return "RANGE " + m.Base + ".." + m.Head
	default:
		return string(m.Kind)
	}
}

// Args renders the mode's comparison arguments for storage in the
// session's diff_args column.
func (m DiffMode) Args() string {
	switch m.Kind {
	case DiffModeBranch, DiffModeRange:
		return m.Base + ".." + m.Head
	default:
		return ""
	}
}

// ParseDiffMode reverses Label/Args back into a DiffMode, for callers
// (the agent bridge's get_hunk_context) that only have a session's
// stored diff_mode/diff_args columns and need to recompute a diff
// synchronously rather than read it off the UI's live DiffPayload.
func ParseDiffMode(label, args string) (DiffMode, error) {
	switch {
	case label == "UNSTAGED":
		return DiffMode{Kind: DiffModeUnstaged}, nil
	case label == "STAGED":
		return DiffMode{Kind: DiffModeStaged}, nil
	case strings.HasPrefix(label, "BRANCH"):
		base, head, ok := strings.Cut(args, "..")
		if !ok {
			return DiffMode{}, fmt.Errorf("validation: malformed branch diff args %q", args)
		}
		return DiffMode{Kind: DiffModeBranch, Base: base, Head: head}, nil
	case strings.HasPrefix(label, "RANGE"):
		base, head, ok := strings.Cut(args, "..")
		if !ok {
			return DiffMode{}, fmt.Errorf("validation: malformed range diff args %q", args)
		}
		return DiffMode{Kind: DiffModeRange, Base: base, Head: head}, nil
	default:
		return DiffMode{}, fmt.Errorf("validation: unknown diff mode %q", label)
	}
}

// Session is a (repository, diff-mode, diff-args) coordinate under which
// comments and file-reviewed flags are grouped and persisted.
type Session struct {
	ID         string
	RepoPath   string
	DiffMode   string
	DiffArgs   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Comment is a single typed, severity-tagged annotation anchored to a diff
// line. Body is immutable once saved; editing a comment in v1 means
// deleting and recreating it.
type Comment struct {
	ID         string
	SessionID  string
	FilePath   string
	LineNumber *int
	HunkOffset *int
	Type       CommentType
	Severity   Severity
	Body       string
	CreatedAt  time.Time
	ResolvedAt *time.Time
	ThreadID   *string
}

// Resolved reports whether the comment has been marked resolved.
func (c Comment) Resolved() bool {
	return c.ResolvedAt != nil
}

// FileReviewState tracks whether a file has been marked reviewed within a
// session.
type FileReviewState struct {
	SessionID  string
	FilePath   string
	Reviewed   bool
	ReviewedAt *time.Time
}

// Thread is a conversation of one or more rounds between the human
// reviewer and the agent bridge, anchored to a comment. The UI does not
// write threads in v1; only the agent bridge creates and advances them.
type Thread struct {
	ID          string
	SessionID   string
	Status      ThreadStatus
	RoundNumber int
}

// LineOrigin marks how a highlighted line relates to the underlying diff:
// an added line, a removed line, unchanged context, a hunk header, or a
// file header.
type LineOrigin byte

const (
	OriginContext    LineOrigin = ' '
	OriginAdd        LineOrigin = '+'
	OriginRemove     LineOrigin = '-'
	OriginHunkHeader LineOrigin = 'H'
	OriginFileHeader LineOrigin = 'F'
)

// StyledSegment is one run of text sharing a single rendering style. The
// style is kept abstract here (a key into a palette) so this package has
// no rendering-library dependency; internal/tui resolves Style to a
// concrete lipgloss.Style.
type StyledSegment struct {
	Text  string
	Style SegmentStyle
}

// SegmentStyle names the semantic style of a segment: the diff-level base
// color plus an optional syntax/emphasis overlay layered on top.
type SegmentStyle struct {
	Base     LineOrigin // diff-level base color: add/remove/context
	Token    string     // chroma token type name, "" if no syntax color applies
	Emphasis bool       // word-level diff emphasis (bold/underline/highlight)
}

// HighlightedLine is one line of a rendered diff: its origin, old/new line
// numbers (nil where not applicable, e.g. for a pure addition's old
// number), and its styled segments.
type HighlightedLine struct {
	Origin     LineOrigin
	OldLine    *int
	NewLine    *int
	Segments   []StyledSegment
}

// Text flattens a line's styled segments into plain text, for any caller
// that needs the line's content without its rendering (export excerpts,
// the agent bridge's hunk-context tool).
func (h HighlightedLine) Text() string {
	var b strings.Builder
	for _, seg := range h.Segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// FileStatus is the single-character file change status shown in the file
// list badge.
type FileStatus byte

const (
	StatusModified FileStatus = 'M'
	StatusAdded    FileStatus = 'A'
	StatusDeleted  FileStatus = 'D'
	StatusRenamed  FileStatus = 'R'
)

// FileSummary is one entry in the file list: a path, its change status,
// and real added/removed line counts.
type FileSummary struct {
	Path    string
	Status  FileStatus
	Added   int
	Removed int
}

// DiffPayload is the complete, owned result of one diff computation. It
// replaces the application's current diff wholesale; it is never mutated
// piecewise after construction.
type DiffPayload struct {
	Mode             DiffMode
	HighlightedLines []HighlightedLine
	HunkOffsets      []int
	FileSummaries    []FileSummary
	FileLineOffsets  []int
}

// Empty reports whether the payload carries no diff content, in which
// case the UI renders a placeholder instead of a diff body.
func (p *DiffPayload) Empty() bool {
	return p == nil || len(p.HighlightedLines) == 0
}
