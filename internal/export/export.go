// Package export renders a session's comments to markdown: per-comment
// blocks with a type/severity header, a quoted excerpt of the changed
// line, and the comment body, grouped by file in line-number order and
// preceded by a session header. Grounded on the teacher's doctor
// command's own stdout/--out writer shape (internal/cmd/doctor.go),
// generalized from a diagnostic report to a review-comment report.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/airev/airev/internal/domain"
)

// Document renders the full per-session export: a header line followed
// by one section per file, each file's comments in ascending
// line-number order (comments with no line number sort last within
// their file). payload may be nil (e.g. export ran against a database
// with no git worker attached); excerpts are simply omitted in that
// case.
func Document(sess domain.Session, comments []domain.Comment, reviewed, totalFiles int, payload *domain.DiffPayload, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Review export: %s\n\n", sess.RepoPath)
	fmt.Fprintf(&b, "- Mode: %s\n", sess.DiffMode)
	if sess.DiffArgs != "" {
		fmt.Fprintf(&b, "- Args: %s\n", sess.DiffArgs)
	}
	fmt.Fprintf(&b, "- Date: %s\n", now.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- Files reviewed: %d/%d\n\n", reviewed, totalFiles)

	byFile := groupByFile(comments)
	paths := make([]string, 0, len(byFile))
	for p := range byFile {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		fmt.Fprintf(&b, "## %s\n\n", path)
		for _, c := range byFile[path] {
			writeComment(&b, c, payload)
		}
	}

	return b.String()
}

func groupByFile(comments []domain.Comment) map[string][]domain.Comment {
	byFile := make(map[string][]domain.Comment)
	for _, c := range comments {
		byFile[c.FilePath] = append(byFile[c.FilePath], c)
	}
	for _, cs := range byFile {
		sort.SliceStable(cs, func(i, j int) bool {
			li, lj := cs[i].LineNumber, cs[j].LineNumber
			switch {
			case li == nil && lj == nil:
				return false
			case li == nil:
				return false
			case lj == nil:
				return true
			default:
				return *li < *lj
			}
		})
	}
	return byFile
}

func writeComment(b *strings.Builder, c domain.Comment, payload *domain.DiffPayload) {
	loc := c.FilePath
	if c.LineNumber != nil {
		loc = fmt.Sprintf("%s:%d", c.FilePath, *c.LineNumber)
	}
	fmt.Fprintf(b, "**[%s / %s]** %s\n\n", strings.ToUpper(string(c.Type)), strings.ToUpper(string(c.Severity)), loc)

	if payload != nil && c.LineNumber != nil {
		if excerpt, ok := Excerpt(payload, c.FilePath, *c.LineNumber); ok {
			fmt.Fprintf(b, "> %s\n\n", excerpt)
		}
	}

	fmt.Fprintf(b, "%s\n\n", c.Body)
}
