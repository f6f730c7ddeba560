package gitworker

import (
	"strings"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/airev/airev/internal/domain"
)

// rawLine is the pre-highlight intermediate form extracted from the
// diff's visitor callbacks: the origin character, old/new line numbers,
// and the line content, which libgit2 delivers without the diff-prefix
// byte.
type rawLine struct {
	origin  domain.LineOrigin
	oldLine *int
	newLine *int
	content string
	file    string // path this line belongs to, for per-file highlighter selection
}

// extractState accumulates lines and file boundaries across the three
// visitor callbacks git2go invokes per file, hunk, and line. The
// library's contract guarantees these callbacks fire sequentially on the
// calling goroutine, so a plain struct (no mutex, no atomic) is the
// correct amount of synchronization: none. This mirrors the Rust
// reference's use of a runtime-checked interior-mutability cell for the
// same reason — the cell there exists only to satisfy the borrow
// checker, not because the access is actually concurrent.
type extractState struct {
	lines         []rawLine
	hunkOffsets   []int
	fileSummaries []domain.FileSummary
	// fileHunkStart maps each file index to the offset in lines at which
	// that file's first hunk line appears, recorded the first time a
	// hunk callback fires for a new file.
	fileHunkStart []int
	curFile       string
	curFileIdx    int
	sawHunkForFile bool
}

func extract(mode domain.DiffMode, diff *git2go.Diff) (*domain.DiffPayload, error) {
	st := &extractState{}

	fileCb := func(delta git2go.DiffDelta, progress float64) (git2go.DiffForEachHunkCallback, error) {
		path := delta.NewFile.Path
		if path == "" {
			path = delta.OldFile.Path
		}
		st.curFile = path
		st.curFileIdx = len(st.fileSummaries)
		st.sawHunkForFile = false
		st.fileSummaries = append(st.fileSummaries, domain.FileSummary{
			Path:   path,
			Status: statusChar(delta.Status),
		})
		st.fileHunkStart = append(st.fileHunkStart, -1)

		hunkCb := func(hunk git2go.DiffHunk) (git2go.DiffForEachLineCallback, error) {
			if !st.sawHunkForFile {
				st.fileHunkStart[st.curFileIdx] = len(st.lines)
				st.sawHunkForFile = true
			}
			st.hunkOffsets = append(st.hunkOffsets, len(st.lines))
			st.lines = append(st.lines, rawLine{
				origin:  domain.OriginHunkHeader,
				content: strings.TrimRight(hunk.Header, "\n"),
				file:    st.curFile,
			})

			lineCb := func(line git2go.DiffLine) error {
				st.appendLine(line)
				return nil
			}
			return lineCb, nil
		}
		return hunkCb, nil
	}

	if err := diff.ForEach(fileCb, git2go.DiffDetailLines); err != nil {
		return nil, err
	}

	return st.build(mode), nil
}

func (st *extractState) appendLine(line git2go.DiffLine) {
	content := strings.TrimRight(line.Content, "\n")
	rl := rawLine{content: content, file: st.curFile}

	switch line.Origin {
	case git2go.DiffLineAddition, git2go.DiffLineAddEOFNL:
		rl.origin = domain.OriginAdd
		n := line.NewLineno
		rl.newLine = &n
		st.bumpAdded()
	case git2go.DiffLineDeletion, git2go.DiffLineDelEOFNL:
		rl.origin = domain.OriginRemove
		n := line.OldLineno
		rl.oldLine = &n
		st.bumpRemoved()
	case git2go.DiffLineContext, git2go.DiffLineContextEOFNL:
		rl.origin = domain.OriginContext
		o, n := line.OldLineno, line.NewLineno
		rl.oldLine, rl.newLine = &o, &n
	default:
		// Binary markers and other origins carry no useful line content;
		// skip rather than emit a line that would confuse navigation.
		return
	}
	st.lines = append(st.lines, rl)
}

func (st *extractState) bumpAdded() {
	i := st.curFileIdx
	st.fileSummaries[i].Added++
}

func (st *extractState) bumpRemoved() {
	i := st.curFileIdx
	st.fileSummaries[i].Removed++
}

func (st *extractState) build(mode domain.DiffMode) *domain.DiffPayload {
	highlighted := highlightLines(st.lines)
	highlighted = applyWordDiff(highlighted)

	fileLineOffsets := make([]int, len(st.fileHunkStart))
	for i, start := range st.fileHunkStart {
		if start < 0 {
			fileLineOffsets[i] = 0
		} else {
			fileLineOffsets[i] = start
		}
	}

	return &domain.DiffPayload{
		Mode:             mode,
		HighlightedLines: highlighted,
		HunkOffsets:      st.hunkOffsets,
		FileSummaries:    st.fileSummaries,
		FileLineOffsets:  fileLineOffsets,
	}
}

func statusChar(s git2go.Delta) domain.FileStatus {
	switch s {
	case git2go.DeltaAdded:
		return domain.StatusAdded
	case git2go.DeltaDeleted:
		return domain.StatusDeleted
	case git2go.DeltaRenamed, git2go.DeltaCopied:
		return domain.StatusRenamed
	default:
		return domain.StatusModified
	}
}
