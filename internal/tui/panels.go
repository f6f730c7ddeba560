package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/airev/airev/internal/domain"
	"github.com/airev/airev/internal/style"
)

func (m *Model) syncFilesViewport() {
	if m.diff == nil {
		m.filesViewport.SetContent("no diff loaded")
		return
	}
	var b strings.Builder
	for i, f := range m.diff.FileSummaries {
		marker := " "
		if i == m.selectedFile {
			marker = ">"
		}
		reviewed := " "
		if st, ok := m.fileReviewState[f.Path]; ok && st.Reviewed {
			reviewed = "✓"
		}
		line := fmt.Sprintf("%s [%s] %s %c +%d -%d", marker, reviewed, f.Path, byte(f.Status), f.Added, f.Removed)
		if i == m.selectedFile {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	m.filesViewport.SetContent(b.String())
}

func (m *Model) syncDiffViewport() {
	if m.diff == nil {
		m.diffViewport.SetContent("(no repository diff — git features are inert)")
		return
	}
	var b strings.Builder
	for _, line := range m.diff.HighlightedLines {
		b.WriteString(renderHighlightedLine(line, m.theme))
		b.WriteString("\n")
	}
	m.diffViewport.SetContent(b.String())
}

// renderHighlightedLine draws one diff line with its gutter and body
// colored by the line's diff origin; emphasized words are bold and
// underlined. Segment token types (syntax highlighting) are not drawn.
func renderHighlightedLine(line domain.HighlightedLine, theme style.Theme) string {
	var gutterColor lipgloss.Color
	switch line.Origin {
	case domain.OriginAdd:
		gutterColor = theme.DiffAdd
	case domain.OriginRemove:
		gutterColor = theme.DiffRemove
	case domain.OriginHunkHeader, domain.OriginFileHeader:
		gutterColor = theme.DiffHunk
	default:
		gutterColor = theme.DiffContext
	}
	gutter := lipgloss.NewStyle().Foreground(gutterColor).Render(string(line.Origin))

	var body strings.Builder
	for _, seg := range line.Segments {
		st := lipgloss.NewStyle().Foreground(gutterColor)
		if seg.Style.Emphasis {
			st = st.Bold(true).Underline(true)
		}
		body.WriteString(st.Render(seg.Text))
	}
	return gutter + " " + body.String()
}

func (m *Model) syncCommentsViewport() {
	path := m.currentFilePath()
	var b strings.Builder
	hasAny := false
	for _, c := range m.comments {
		if path != "" && c.FilePath != path {
			continue
		}
		hasAny = true
		status := "open"
		if c.Resolved() {
			status = "resolved"
		}
		loc := c.FilePath
		if c.LineNumber != nil {
			loc = fmt.Sprintf("%s:%d", c.FilePath, *c.LineNumber)
		}
		fmt.Fprintf(&b, "[%s/%s] %s (%s)\n  %s\n\n", c.Type, c.Severity, loc, status, c.Body)
	}
	if !hasAny {
		b.WriteString("no comments on this file\n")
	}
	m.commentsViewport.SetContent(b.String())
}
