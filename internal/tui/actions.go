package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/airev/airev/internal/domain"
	"github.com/airev/airev/internal/eventbus"
	"github.com/airev/airev/internal/store"
)

// dbCmd wraps an Async call so its result re-enters the bubbletea loop
// as a DbResultMsg, keeping every state mutation on the loop thread per
// the spec's ordering guarantees.
func dbCmd[T any](a *store.Async, op eventbus.DbOperation, toPayload func(T) any, fn func(ctx context.Context, s *store.Store) (T, error)) tea.Cmd {
	ch := store.Go(a, fn)
	return func() tea.Msg {
		v, err := (<-ch).Value()
		if err != nil {
			return eventbus.DbResultMsg{Op: op, Err: err}
		}
		return eventbus.DbResultMsg{Op: op, Payload: toPayload(v)}
	}
}

// loadFileReviewStateCmd and loadCommentsCmd prime the model with the
// session's persisted state on startup; without these the files panel
// and comments panel would stay empty until the first mutation.
func loadFileReviewStateCmd(a *store.Async, sessionID string) tea.Cmd {
	return dbCmd(a, eventbus.OpFileReviewStateLoaded,
		func(states []domain.FileReviewState) any { return states },
		func(ctx context.Context, s *store.Store) ([]domain.FileReviewState, error) {
			return s.LoadFileReviewState(ctx, sessionID)
		})
}

func loadCommentsCmd(a *store.Async, sessionID string) tea.Cmd {
	return dbCmd(a, eventbus.OpCommentsLoaded,
		func(cs []domain.Comment) any { return cs },
		func(ctx context.Context, s *store.Store) ([]domain.Comment, error) {
			return s.ListComments(ctx, sessionID, "", "", "")
		})
}

func (m *Model) toggleCurrentFileReviewed() (tea.Model, tea.Cmd) {
	path := m.currentFilePath()
	if path == "" || m.async == nil {
		return m, nil
	}
	sessionID := m.session.ID
	cmd := dbCmd(m.async, eventbus.OpReviewToggled,
		func(reviewed bool) any { return eventbus.ReviewToggledPayload{Path: path, Reviewed: reviewed} },
		func(ctx context.Context, s *store.Store) (bool, error) {
			return s.ToggleFileReviewed(ctx, sessionID, path)
		})
	return m, cmd
}

func (m *Model) resolveSelectedComment() (tea.Model, tea.Cmd) {
	c := m.selectedComment()
	if c == nil || m.async == nil {
		return m, nil
	}
	id := c.ID
	sessionID := m.session.ID
	cmd := dbCmd(m.async, eventbus.OpCommentsLoaded,
		func(cs []domain.Comment) any { return cs },
		func(ctx context.Context, s *store.Store) ([]domain.Comment, error) {
			if _, err := s.ResolveComment(ctx, id, ""); err != nil {
				return nil, err
			}
			return s.ListComments(ctx, sessionID, "", "", "")
		})
	return m, cmd
}

// selectedComment returns the first unresolved comment on the currently
// selected file, or nil if there is none.
func (m *Model) selectedComment() *domain.Comment {
	path := m.currentFilePath()
	for i := range m.comments {
		if m.comments[i].FilePath == path && !m.comments[i].Resolved() {
			return &m.comments[i]
		}
	}
	return nil
}
