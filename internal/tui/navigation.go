package tui

import (
	"sort"
)

// scrollBy moves the diff viewport by n lines, clamped to content
// bounds by viewport.Model itself.
func (m *Model) scrollBy(n int) {
	if n < 0 {
		m.diffViewport.LineUp(-n)
	} else {
		m.diffViewport.LineDown(n)
	}
}

func (m *Model) scrollTo(line int) {
	m.diffViewport.SetYOffset(line)
}

func (m *Model) scrollToBottom() {
	m.diffViewport.GotoBottom()
}

// jumpToHunk moves to the next (dir=1) or previous (dir=-1) hunk
// boundary using a binary search over the sorted HunkOffsets table,
// since the diff can be large enough that a linear scan would show up
// in the per-frame render budget.
func (m *Model) jumpToHunk(dir int) {
	if m.diff == nil || len(m.diff.HunkOffsets) == 0 {
		return
	}
	offsets := m.diff.HunkOffsets
	cur := m.diffViewport.YOffset

	idx := sort.Search(len(offsets), func(i int) bool { return offsets[i] > cur })
	var target int
	if dir > 0 {
		if idx >= len(offsets) {
			return
		}
		target = offsets[idx]
	} else {
		// idx is the first offset strictly greater than cur; the previous
		// hunk is the last offset strictly below cur (idx-1 when cur is
		// inside a hunk, idx-2 when cur sits on a hunk header), clamped to
		// the first hunk.
		target = offsets[0]
		for i := idx - 1; i >= 0; i-- {
			if offsets[i] < cur {
				target = offsets[i]
				break
			}
		}
	}
	m.scrollTo(target)
}

// jumpToFile moves to the next (dir=1) or previous (dir=-1) file's
// first line via FileLineOffsets, clamping the file index to the first
// and last file.
func (m *Model) jumpToFile(dir int) {
	if m.diff == nil || len(m.diff.FileLineOffsets) == 0 {
		return
	}
	m.selectedFile += dir
	if m.selectedFile < 0 {
		m.selectedFile = 0
	}
	if m.selectedFile >= len(m.diff.FileLineOffsets) {
		m.selectedFile = len(m.diff.FileLineOffsets) - 1
	}
	offset := 0
	if m.selectedFile >= 0 && m.selectedFile < len(m.diff.FileLineOffsets) {
		offset = m.diff.FileLineOffsets[m.selectedFile]
	}
	m.scrollTo(offset)
	m.syncFilesViewport()
}

func (m *Model) currentFilePath() string {
	if m.diff == nil || m.selectedFile < 0 || m.selectedFile >= len(m.diff.FileSummaries) {
		return ""
	}
	return m.diff.FileSummaries[m.selectedFile].Path
}

