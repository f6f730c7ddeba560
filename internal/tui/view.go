package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View composes exactly one frame: layout, panels, status bar, and
// whichever overlay the current mode calls for. Bubbletea calls this
// after every Update, not only after a Render tick; the RenderMsg case
// in update.go only re-arms the render timer.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading…"
	}

	body := m.renderPanels()

	switch m.mode {
	case ModeHelp:
		body = overlay(body, m.help.View(m.keys), m.width, m.height)
	case ModeConfirmQuit:
		body = overlay(body, m.confirmQuitBox(), m.width, m.height)
	case ModeCommentEntry:
		body = overlay(body, m.commentEntryBox(), m.width, m.height)
	}

	status := m.renderStatusBar()

	if m.mode == ModeCommand {
		return lipgloss.JoinVertical(lipgloss.Left, body, status, ":"+m.commandLine.Value())
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}

func (m *Model) renderPanels() string {
	filesPanel := m.bordered(m.filesViewport.View(), m.focus == PanelFiles)
	diffPanel := m.bordered(m.diffViewport.View(), m.focus == PanelDiff)

	if m.width < NarrowBreakpoint {
		return lipgloss.JoinVertical(lipgloss.Left, filesPanel, diffPanel)
	}

	right := diffPanel
	if m.width >= WideBreakpoint {
		commentsPanel := m.bordered(m.commentsViewport.View(), m.focus == PanelComments)
		right = lipgloss.JoinVertical(lipgloss.Left, diffPanel, commentsPanel)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, filesPanel, right)
}

func (m *Model) bordered(content string, focused bool) string {
	color := m.theme.BorderUnfocused
	if focused {
		color = m.theme.BorderFocused
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(color).Render(content)
}

func (m *Model) renderStatusBar() string {
	bar := lipgloss.NewStyle().Background(m.theme.StatusBarBg).Foreground(m.theme.StatusBarFg)
	fileCount := 0
	if m.diff != nil {
		fileCount = len(m.diff.FileSummaries)
	}
	left := fmt.Sprintf(" %s | %d files ", strings.ToUpper(m.session.DiffMode), fileCount)

	var notice string
	if len(m.notices) > 0 {
		notice = lipgloss.NewStyle().Foreground(m.theme.NoticeFg).Render(m.notices[len(m.notices)-1].Text)
	}

	line := left + notice
	gap := m.width - lipgloss.Width(line)
	if gap > 0 {
		line += strings.Repeat(" ", gap)
	}
	return bar.Render(line)
}

// overlay draws modal content centered over the base frame by replacing
// the full frame with the modal box, the same one-draw-call-per-frame
// approach the teacher's feed TUI uses for its help view: no partial
// compositing, the modal *is* the frame while shown.
func overlay(base, modal string, width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Width(min(width-4, 72)).
		Render(modal)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box, lipgloss.WithWhitespaceChars(" "))
}

func (m *Model) confirmQuitBox() string {
	return "Quit airev? Comments are already saved. [y/N]"
}
