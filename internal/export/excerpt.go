package export

import (
	"github.com/airev/airev/internal/domain"
)

// Excerpt returns the plain-text content of one rendered diff line, for
// quoting in an exported comment. It identifies the line by file path
// and new-side line number, using the same FileLineOffsets table the
// terminal's jump-to-file navigation walks (see
// internal/tui/navigation.go), so export and navigation agree on which
// physical line a (path, line) pair names.
func Excerpt(payload *domain.DiffPayload, path string, line int) (string, bool) {
	if payload.Empty() || path == "" {
		return "", false
	}

	fileIdx := -1
	for i, f := range payload.FileSummaries {
		if f.Path == path {
			fileIdx = i
			break
		}
	}
	if fileIdx == -1 {
		return "", false
	}

	start := 0
	if fileIdx < len(payload.FileLineOffsets) {
		start = payload.FileLineOffsets[fileIdx]
	}
	end := len(payload.HighlightedLines)
	if fileIdx+1 < len(payload.FileLineOffsets) {
		end = payload.FileLineOffsets[fileIdx+1]
	}

	for i := start; i < end && i < len(payload.HighlightedLines); i++ {
		hl := payload.HighlightedLines[i]
		if hl.NewLine != nil && *hl.NewLine == line {
			return hl.Text(), true
		}
	}
	return "", false
}
