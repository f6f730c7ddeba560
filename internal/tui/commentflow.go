package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/airev/airev/internal/domain"
	"github.com/airev/airev/internal/eventbus"
	"github.com/airev/airev/internal/store"
)

// pickItem adapts a plain string to list.Item for the type/severity
// pickers; both lists are small closed sets so no filtering is needed.
type pickItem string

func (p pickItem) FilterValue() string { return string(p) }
func (p pickItem) Title() string       { return string(p) }
func (p pickItem) Description() string { return "" }

func newPickList(values []string) list.Model {
	items := make([]list.Item, len(values))
	for i, v := range values {
		items[i] = pickItem(v)
	}
	l := list.New(items, list.NewDefaultDelegate(), 40, 10)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

// startCommentEntry begins the normal → comment-entry(type-pick)
// transition the spec calls for, anchoring the new comment to whatever
// line at the top of the diff viewport.
func (m *Model) startCommentEntry() (tea.Model, tea.Cmd) {
	path := m.currentFilePath()
	if path == "" {
		m.pushNotice("no file selected")
		return m, nil
	}
	line := m.currentDiffLineNumber()
	m.entry = commentEntryState{
		stage:    entryPickType,
		typeList: newPickList(stringsOf(domain.ValidCommentTypes)),
		sevList:  newPickList(stringsOf(domain.ValidSeverities)),
		body:     m.entry.body,
		filePath: path,
		line:     line,
	}
	m.entry.body.Reset()
	m.mode = ModeCommentEntry
	return m, nil
}

func stringsOf[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

// currentDiffLineNumber reports the new-file line number at the top of
// the current diff viewport scroll position, or nil if the viewport is
// positioned on a header/removed line with no new-side number.
func (m *Model) currentDiffLineNumber() *int {
	if m.diff == nil {
		return nil
	}
	idx := m.diffViewport.YOffset
	if idx < 0 || idx >= len(m.diff.HighlightedLines) {
		return nil
	}
	return m.diff.HighlightedLines[idx].NewLine
}

func (m *Model) handleCommentEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.entry.stage {
	case entryPickType:
		switch msg.String() {
		case "esc":
			m.mode = ModeNormal
			return m, nil
		case "enter":
			if !m.entry.typeChosen {
				m.pushNotice("select a comment type first")
				return m, nil
			}
			m.entry.stage = entryPickSeverity
			return m, nil
		}
		m.entry.typeChosen = true
		var cmd tea.Cmd
		m.entry.typeList, cmd = m.entry.typeList.Update(msg)
		return m, cmd

	case entryPickSeverity:
		switch msg.String() {
		case "esc":
			m.entry.stage = entryPickType
			return m, nil
		case "enter":
			if !m.entry.sevChosen {
				m.pushNotice("select a severity first")
				return m, nil
			}
			m.entry.stage = entryBody
			m.entry.body.Focus()
			return m, nil
		}
		m.entry.sevChosen = true
		var cmd tea.Cmd
		m.entry.sevList, cmd = m.entry.sevList.Update(msg)
		return m, cmd

	case entryBody:
		switch msg.String() {
		case "esc":
			if m.entry.body.Value() != "" {
				m.entry.stage = entryConfirmDiscard
				return m, nil
			}
			m.mode = ModeNormal
			m.entry.body.Blur()
			return m, nil
		case "ctrl+s":
			return m.submitComment()
		}
		var cmd tea.Cmd
		m.entry.body, cmd = m.entry.body.Update(msg)
		return m, cmd

	case entryConfirmDiscard:
		switch msg.String() {
		case "y", "enter":
			m.mode = ModeNormal
			m.entry.body.Reset()
			m.entry.body.Blur()
			return m, nil
		default:
			m.entry.stage = entryBody
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) submitComment() (tea.Model, tea.Cmd) {
	body := m.entry.body.Value()
	if body == "" {
		m.pushNotice("comment body is empty, not saved")
		m.mode = ModeNormal
		return m, nil
	}

	selectedType, _ := m.entry.typeList.SelectedItem().(pickItem)
	selectedSev, _ := m.entry.sevList.SelectedItem().(pickItem)

	c := domain.Comment{
		SessionID:  m.session.ID,
		FilePath:   m.entry.filePath,
		LineNumber: m.entry.line,
		Type:       domain.CommentType(selectedType),
		Severity:   domain.Severity(selectedSev),
		Body:       body,
	}

	m.mode = ModeNormal
	m.entry.body.Reset()
	m.entry.body.Blur()

	if m.async == nil {
		m.pushNotice("no database open, comment not saved")
		return m, nil
	}
	cmd := dbCmd(m.async, eventbus.OpCommentSaved,
		func(saved domain.Comment) any { return saved },
		func(ctx context.Context, s *store.Store) (domain.Comment, error) {
			return s.SaveComment(ctx, c)
		})
	return m, cmd
}

func (m *Model) commentEntryBox() string {
	switch m.entry.stage {
	case entryPickType:
		return "comment type:\n" + m.entry.typeList.View()
	case entryPickSeverity:
		return "severity:\n" + m.entry.sevList.View()
	case entryConfirmDiscard:
		return "discard this comment? (y/n)"
	default:
		return "comment body (ctrl+s to save, esc to go back):\n" + m.entry.body.View()
	}
}
