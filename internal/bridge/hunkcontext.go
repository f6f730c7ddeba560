package bridge

import (
	"fmt"

	"github.com/airev/airev/internal/domain"
)

// HunkLine is one line of a get_hunk_context result.
type HunkLine struct {
	Number     int    `json:"number"`
	Content    string `json:"content"`
	ChangeType string `json:"change_type"`
}

// hunkContext walks payload for the file containing a given new-side
// line number, finds the hunk that contains it (the nearest preceding
// hunk-header line), and returns that hunk's header plus up to
// contextLines of surrounding lines on either side of the target line.
// It scans linearly within the file's segment (bounded by
// FileLineOffsets, the same offsets the terminal's jump-to-file in
// internal/tui/navigation.go uses) to answer a single bounded-window
// query instead of repositioning a live viewport.
func hunkContext(payload *domain.DiffPayload, path string, lineNumber, contextLines int) (header string, lines []HunkLine, err error) {
	if payload.Empty() {
		return "", nil, fmt.Errorf("validation: no diff available")
	}
	if contextLines <= 0 {
		contextLines = 3
	}

	fileIdx := -1
	for i, f := range payload.FileSummaries {
		if f.Path == path {
			fileIdx = i
			break
		}
	}
	if fileIdx == -1 {
		return "", nil, fmt.Errorf("validation: file %q not present in current diff", path)
	}

	start := 0
	if fileIdx < len(payload.FileLineOffsets) {
		start = payload.FileLineOffsets[fileIdx]
	}
	end := len(payload.HighlightedLines)
	if fileIdx+1 < len(payload.FileLineOffsets) {
		end = payload.FileLineOffsets[fileIdx+1]
	}

	targetIdx := -1
	for i := start; i < end; i++ {
		if hl := payload.HighlightedLines[i]; hl.NewLine != nil && *hl.NewLine == lineNumber {
			targetIdx = i
			break
		}
	}
	if targetIdx == -1 {
		return "", nil, fmt.Errorf("validation: line %d not present in file %q's current diff", lineNumber, path)
	}

	hunkStart := start
	for i := targetIdx; i >= start; i-- {
		if payload.HighlightedLines[i].Origin == domain.OriginHunkHeader {
			hunkStart = i
			header = payload.HighlightedLines[i].Text()
			break
		}
	}

	windowStart := targetIdx - contextLines
	if windowStart < hunkStart+1 {
		windowStart = hunkStart + 1
	}
	windowEnd := targetIdx + contextLines
	if windowEnd >= end {
		windowEnd = end - 1
	}

	for i := windowStart; i <= windowEnd; i++ {
		hl := payload.HighlightedLines[i]
		number := 0
		if hl.NewLine != nil {
			number = *hl.NewLine
		} else if hl.OldLine != nil {
			number = *hl.OldLine
		}
		lines = append(lines, HunkLine{
			Number:     number,
			Content:    hl.Text(),
			ChangeType: string(hl.Origin),
		})
	}

	return header, lines, nil
}
