// Package tui is the review terminal's bubbletea Model: application
// state, the three-panel layout, navigation, and the comment-entry
// overlay flow. Grounded on the teacher's internal/tui/feed (a
// mutex-guarded Model with per-panel bubbles/viewport.Model fields,
// focus cycling, and a render() that joins header/panels/status/help
// vertically) and internal/tui/convoy (help.Model + key.Binding wiring).
// Unlike the teacher's feed TUI, airev's loop is single-threaded by
// construction — bubbletea's own Update/View contract already
// serializes everything on one goroutine — so there is no model-level
// mutex here; the spec's single-writer rule is enforced by never
// touching state outside Update.
package tui

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/airev/airev/internal/domain"
	"github.com/airev/airev/internal/eventbus"
	"github.com/airev/airev/internal/gitworker"
	"github.com/airev/airev/internal/store"
	"github.com/airev/airev/internal/style"
	"github.com/airev/airev/internal/watcher"
)

// Panel identifies which of the three panels (or an overlay) currently
// has focus.
type Panel int

const (
	PanelFiles Panel = iota
	PanelDiff
	PanelComments
)

// Mode is the top-level interaction mode. Comment entry is its own
// nested state machine (see commentflow.go); every other key dispatch
// happens in ModeNormal.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCommentEntry
	ModeHelp
	ModeConfirmQuit
	ModeCommand
)

// WideBreakpoint and NarrowBreakpoint gate the three-panel layout: at or
// above WideBreakpoint columns the files panel sits to the left of a
// stacked diff+comments column; from NarrowBreakpoint up to
// WideBreakpoint files and diff sit side by side; below NarrowBreakpoint
// the files panel is stacked above the diff. The comments panel is drawn
// only at or above WideBreakpoint; no overlay shows it in the narrower
// layouts.
const (
	WideBreakpoint   = 120
	NarrowBreakpoint = 80
)

// Model is the application's single owning state value, mutated only
// from Update, matching the spec's "one owning value, mutated only by
// the main loop" rule.
type Model struct {
	width, height int

	focus Panel
	mode  Mode
	theme style.Theme

	session         domain.Session
	diffMode        domain.DiffMode
	diff            *domain.DiffPayload
	fileReviewState map[string]domain.FileReviewState
	comments        []domain.Comment
	selectedFile    int
	selectedLine    int

	filesViewport    viewport.Model
	diffViewport     viewport.Model
	commentsViewport viewport.Model
	prevDiffHeight   int

	help        help.Model
	keys        KeyMap
	notices     []eventbus.StatusNotice
	commandLine textarea.Model

	entry commentEntryState

	gitHandle  *gitworker.Handle
	async      *store.Async
	watchH     *watcher.Handle
	termSignal *atomic.Bool

	gitSeq     uint64
	pendingSeq uint64
	quitting   bool
	signalQuit bool
	watchMode  bool
}

// SignalQuit reports whether the program exited because a termination
// signal was observed at the last heartbeat, rather than through the
// normal confirm-quit flow. The caller uses this to pick the process
// exit code (130 for a signal-driven exit).
func (m *Model) SignalQuit() bool {
	return m.signalQuit
}

// commentEntryState backs the type/severity pickers in the comment-entry flow.
// typeChosen/sevChosen track whether the user has actually navigated the
// corresponding list, since bubbles/list always highlights an item (index
// 0 by default) even before the user has made a choice.
type commentEntryState struct {
	stage      entryStage
	typeList   list.Model
	sevList    list.Model
	typeChosen bool
	sevChosen  bool
	body       textarea.Model
	filePath   string
	line       *int
	hunkOff    *int
}

type entryStage int

const (
	entryNone entryStage = iota
	entryPickType
	entryPickSeverity
	entryBody
	entryConfirmDiscard
)

// New builds the initial Model. The git worker and async store handles
// may be nil (repository-not-found / persistence not yet opened);
// Update tolerates both per the spec's graceful-degradation rules.
func New(sess domain.Session, mode domain.DiffMode, theme style.Theme, gitHandle *gitworker.Handle, async *store.Async, watchMode bool, termSignal *atomic.Bool) *Model {
	h := help.New()
	ta := textarea.New()
	ta.Placeholder = "comment body"
	ta.ShowLineNumbers = false

	cmdLine := textarea.New()
	cmdLine.Placeholder = "command"
	cmdLine.ShowLineNumbers = false
	cmdLine.SetHeight(1)

	return &Model{
		focus:            PanelFiles,
		mode:             ModeNormal,
		theme:            theme,
		session:          sess,
		diffMode:         mode,
		fileReviewState:  make(map[string]domain.FileReviewState),
		filesViewport:    viewport.New(0, 0),
		diffViewport:     viewport.New(0, 0),
		commentsViewport: viewport.New(0, 0),
		help:             h,
		keys:             DefaultKeyMap(),
		commandLine:      cmdLine,
		entry:            commentEntryState{body: ta},
		gitHandle:        gitHandle,
		async:            async,
		watchMode:        watchMode,
		termSignal:       termSignal,
	}
}

// Init kicks off the first diff load and the tick/render/heartbeat timers.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), renderCmd(), heartbeatCmd()}
	if m.gitHandle != nil {
		m.gitSeq++
		cmds = append(cmds, requestDiffCmd(m.gitHandle, m.diffMode, m.gitSeq))
	}
	if m.async != nil {
		cmds = append(cmds, loadFileReviewStateCmd(m.async, m.session.ID), loadCommentsCmd(m.async, m.session.ID))
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(eventbus.TickInterval, func(t time.Time) tea.Msg { return eventbus.TickMsg(t) })
}

func renderCmd() tea.Cmd {
	return tea.Tick(eventbus.RenderInterval, func(t time.Time) tea.Msg { return eventbus.RenderMsg(t) })
}

func heartbeatCmd() tea.Cmd {
	return tea.Tick(eventbus.HeartbeatInterval, func(t time.Time) tea.Msg { return eventbus.HeartbeatMsg(t) })
}

// requestDiffCmd asks the git worker for a fresh diff under the given
// sequence number; stale results (superseded by a later request) are
// dropped by the applier in update.go.
func requestDiffCmd(h *gitworker.Handle, mode domain.DiffMode, seq uint64) tea.Cmd {
	return func() tea.Msg {
		h.Request(mode, seq)
		return nil
	}
}
