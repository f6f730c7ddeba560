package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/airev/airev/internal/domain"
	"github.com/airev/airev/internal/eventbus"
	"github.com/airev/airev/internal/store"
)

// Update is bubbletea's single mutation entry point; every state change
// in the application happens here or in a function it calls directly,
// matching the spec's "one owning value, mutated only by the main loop."
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, renderCmd()

	case eventbus.TickMsg:
		m.expireNotices(time.Time(msg))
		return m, tickCmd()

	case eventbus.RenderMsg:
		return m, renderCmd()

	case eventbus.HeartbeatMsg:
		if m.termSignal != nil && m.termSignal.Load() {
			m.quitting = true
			m.signalQuit = true
			return m, func() tea.Msg { return eventbus.QuitMsg{} }
		}
		return m, heartbeatCmd()

	case eventbus.FileChangedMsg:
		if m.gitHandle != nil {
			m.gitSeq++
			return m, requestDiffCmd(m.gitHandle, m.diffMode, m.gitSeq)
		}
		return m, nil

	case eventbus.GitResultMsg:
		if msg.Seq != m.gitSeq {
			return m, nil // superseded by a newer request
		}
		if msg.Err == nil && msg.Payload != nil {
			m.diff = msg.Payload
			m.selectedFile = 0
			m.selectedLine = 0
			m.syncDiffViewport()
		} else if msg.Err != nil {
			m.pushNotice("git: " + msg.Err.Error())
		}
		return m, nil

	case eventbus.DbResultMsg:
		m.applyDbResult(msg)
		return m, nil

	case eventbus.NoticeMsg:
		m.pushNotice(msg.Notice.Text)
		return m, nil

	case eventbus.QuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) layout() {
	statusHeight := 1
	helpHeight := 0
	if m.mode == ModeHelp {
		helpHeight = 1
	}
	available := m.height - statusHeight - helpHeight
	if available < 3 {
		available = 3
	}

	if m.width >= WideBreakpoint {
		filesWidth := m.width / 4
		restWidth := m.width - filesWidth - 3
		m.filesViewport.Width = filesWidth
		m.filesViewport.Height = available - 2
		m.diffViewport.Width = restWidth
		diffHeight := available * 2 / 3
		m.diffViewport.Height = diffHeight - 2
		m.commentsViewport.Width = restWidth
		m.commentsViewport.Height = available - diffHeight - 2
	} else if m.width >= NarrowBreakpoint {
		filesWidth := m.width / 3
		restWidth := m.width - filesWidth - 3
		m.filesViewport.Width = filesWidth
		m.filesViewport.Height = available - 2
		m.diffViewport.Width = restWidth
		m.diffViewport.Height = available - 2
		// The comments panel is not drawn below WideBreakpoint; its
		// viewport is still given a size.
		m.commentsViewport.Width = m.width - 4
		m.commentsViewport.Height = available / 2
	} else {
		// Narrowest layout: files panel becomes a thin strip, diff takes
		// the rest; the comments panel is not drawn.
		m.filesViewport.Width = m.width - 2
		m.filesViewport.Height = available / 4
		m.diffViewport.Width = m.width - 2
		m.diffViewport.Height = available - available/4 - 4
		m.commentsViewport.Width = m.width - 4
		m.commentsViewport.Height = available / 2
	}
	m.prevDiffHeight = m.diffViewport.Height
	m.syncDiffViewport()
	m.syncFilesViewport()
	m.syncCommentsViewport()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeCommentEntry:
		return m.handleCommentEntryKey(msg)
	case ModeConfirmQuit:
		return m.handleConfirmQuitKey(msg)
	case ModeCommand:
		return m.handleCommandKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.mode = ModeNormal
			m.help.ShowAll = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.mode = ModeConfirmQuit
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		m.help.ShowAll = true
		return m, nil
	case key.Matches(msg, m.keys.Command):
		m.mode = ModeCommand
		m.commandLine.Focus()
		return m, nil
	case msg.String() == "H":
		m.cyclePanel(-1)
		return m, nil
	case msg.String() == "L":
		m.cyclePanel(1)
		return m, nil
	case key.Matches(msg, m.keys.FocusFiles):
		m.focus = PanelFiles
		return m, nil
	case key.Matches(msg, m.keys.FocusDiff):
		m.focus = PanelDiff
		return m, nil
	case key.Matches(msg, m.keys.FocusComments):
		m.focus = PanelComments
		return m, nil
	case key.Matches(msg, m.keys.NewComment):
		return m.startCommentEntry()
	case key.Matches(msg, m.keys.ResolveComment):
		return m.resolveSelectedComment()
	case key.Matches(msg, m.keys.ToggleReviewed):
		return m.toggleCurrentFileReviewed()
	case key.Matches(msg, m.keys.NextHunk):
		m.jumpToHunk(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevHunk):
		m.jumpToHunk(-1)
		return m, nil
	case key.Matches(msg, m.keys.NextFile):
		m.jumpToFile(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevFile):
		m.jumpToFile(-1)
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.scrollTo(0)
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.scrollToBottom()
		return m, nil
	case key.Matches(msg, m.keys.HalfPageUp):
		m.scrollBy(-m.prevDiffHeight / 2)
		return m, nil
	case key.Matches(msg, m.keys.HalfPageDown):
		m.scrollBy(m.prevDiffHeight / 2)
		return m, nil
	case key.Matches(msg, m.keys.FullPageUp):
		m.scrollBy(-m.prevDiffHeight)
		return m, nil
	case key.Matches(msg, m.keys.FullPageDown):
		m.scrollBy(m.prevDiffHeight)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)
		return m, nil
	}
	return m, nil
}

func (m *Model) cyclePanel(dir int) {
	panels := []Panel{PanelFiles, PanelDiff, PanelComments}
	idx := 0
	for i, p := range panels {
		if p == m.focus {
			idx = i
		}
	}
	idx = (idx + dir + len(panels)) % len(panels)
	m.focus = panels[idx]
}

func (m *Model) handleConfirmQuitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.quitting = true
		if m.async != nil {
			ch := store.Go(m.async, func(ctx context.Context, s *store.Store) (struct{}, error) {
				return struct{}{}, s.UpdateSessionTimestamp(ctx, m.session.ID)
			})
			<-ch
		}
		return m, tea.Quit
	default:
		m.mode = ModeNormal
		return m, nil
	}
}

func (m *Model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.commandLine.Blur()
		m.commandLine.Reset()
		return m, nil
	case "enter":
		cmd := m.commandLine.Value()
		m.commandLine.Blur()
		m.commandLine.Reset()
		m.mode = ModeNormal
		return m.runCommand(cmd)
	}
	var cmd tea.Cmd
	m.commandLine, cmd = m.commandLine.Update(msg)
	return m, cmd
}

func (m *Model) runCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "w", "write":
		m.pushNotice("nothing to save: comments are saved immediately")
	default:
		m.pushNotice("unknown command: " + cmd)
	}
	return m, nil
}

func (m *Model) pushNotice(text string) {
	m.notices = append(m.notices, eventbus.StatusNotice{
		Text:      text,
		CreatedAt: time.Now(),
		TTL:       4 * time.Second,
	})
}

func (m *Model) expireNotices(now time.Time) {
	live := m.notices[:0]
	for _, n := range m.notices {
		if !n.Expired(now) {
			live = append(live, n)
		}
	}
	m.notices = live
}

func (m *Model) applyDbResult(msg eventbus.DbResultMsg) {
	if msg.Err != nil {
		m.pushNotice("database: " + msg.Err.Error())
		return
	}
	switch msg.Op {
	case eventbus.OpFileReviewStateLoaded:
		states, _ := msg.Payload.([]domain.FileReviewState)
		for _, st := range states {
			m.fileReviewState[st.FilePath] = st
		}
		m.syncFilesViewport()
	case eventbus.OpReviewToggled:
		p, _ := msg.Payload.(eventbus.ReviewToggledPayload)
		st := m.fileReviewState[p.Path]
		st.FilePath = p.Path
		st.Reviewed = p.Reviewed
		m.fileReviewState[p.Path] = st
		m.syncFilesViewport()
	case eventbus.OpCommentsLoaded:
		comments, _ := msg.Payload.([]domain.Comment)
		m.comments = comments
		m.syncCommentsViewport()
	case eventbus.OpCommentSaved:
		c, _ := msg.Payload.(domain.Comment)
		m.comments = append(m.comments, c)
		m.syncCommentsViewport()
	}
}
