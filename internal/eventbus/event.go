// Package eventbus defines the application event types that flow through
// the single-consumer event loop. In the reference architecture this is a
// hand-rolled mpsc channel; built on top of bubbletea here, the same
// shape is expressed as tea.Msg values so producers (terminal input,
// timers, the file watcher, the git worker, the database pool) can all
// feed the one Update loop bubbletea already serializes for us.
package eventbus

import (
	"time"

	"github.com/airev/airev/internal/domain"
)

// TickInterval is the cadence of the logic tick (~4Hz).
const TickInterval = 250 * time.Millisecond

// RenderInterval is the cadence of the render tick (~30Hz).
const RenderInterval = 33 * time.Millisecond

// HeartbeatInterval bounds how long a termination signal can go unnoticed.
const HeartbeatInterval = 50 * time.Millisecond

// TickMsg drives periodic logic independent of rendering: status-bar
// notice expiry. Watcher debouncing happens in the watcher itself.
type TickMsg time.Time

// RenderMsg requests exactly one draw call. Handlers must not perform I/O
// in response to it.
type RenderMsg time.Time

// HeartbeatMsg polls the termination-signal flag.
type HeartbeatMsg time.Time

// FileChangedMsg is the debounced, path-less "something changed" signal
// from the file watcher. The main loop responds by asking the git worker
// for a fresh diff; it never trusts the event's own path information.
type FileChangedMsg struct{}

// GitResultMsg carries an owned diff payload back from the git worker.
// Seq echoes the request's sequence number so stale results (superseded
// by a newer request) can be detected and dropped by the applier.
type GitResultMsg struct {
	Payload *domain.DiffPayload
	Err     error
	Seq     uint64
}

// DbOperation identifies which database round-trip a DbResultMsg answers,
// so the applier can update the correct slice of state idempotently even
// when results arrive out of request order.
type DbOperation string

const (
	OpSessionLoaded          DbOperation = "session_loaded"
	OpSessionCreated         DbOperation = "session_created"
	OpFileReviewStateLoaded  DbOperation = "file_review_state_loaded"
	OpReviewToggled          DbOperation = "review_toggled"
	OpCommentSaved           DbOperation = "comment_saved"
	OpCommentsLoaded         DbOperation = "comments_loaded"
	OpSessionTimestampBumped DbOperation = "session_timestamp_bumped"
)

// DbResultMsg carries the outcome of one asynchronous persistence
// operation back into the loop.
type DbResultMsg struct {
	Op      DbOperation
	Err     error
	Payload any
}

// ReviewToggledPayload is the Payload shape for OpReviewToggled.
type ReviewToggledPayload struct {
	Path     string
	Reviewed bool
}

// QuitMsg requests an orderly shutdown.
type QuitMsg struct{}

// StatusNotice is a transient, timestamped message shown in the status
// bar for a few seconds (watcher fallback notices, git and database
// errors, comment-flow prompts).
type StatusNotice struct {
	Text      string
	CreatedAt time.Time
	TTL       time.Duration
}

// Expired reports whether the notice should no longer be shown at now.
func (n StatusNotice) Expired(now time.Time) bool {
	return now.After(n.CreatedAt.Add(n.TTL))
}

// NoticeMsg appends a new transient status notice.
type NoticeMsg struct {
	Notice StatusNotice
}
