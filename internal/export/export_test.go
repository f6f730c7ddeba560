package export

import (
	"strings"
	"testing"
	"time"

	"github.com/airev/airev/internal/domain"
)

func line(n int) *int { return &n }

func TestDocumentGroupsByFileInLineOrder(t *testing.T) {
	sess := domain.Session{RepoPath: "/repo", DiffMode: "STAGED"}
	comments := []domain.Comment{
		{FilePath: "b.go", LineNumber: line(5), Type: domain.CommentNitpick, Severity: domain.SeverityMinor, Body: "tidy this up"},
		{FilePath: "a.go", LineNumber: line(20), Type: domain.CommentConcern, Severity: domain.SeverityMajor, Body: "double check bounds"},
		{FilePath: "a.go", LineNumber: line(3), Type: domain.CommentQuestion, Severity: domain.SeverityInfo, Body: "why this order?"},
	}

	out := Document(sess, comments, 1, 2, nil, time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC))

	aIdx := strings.Index(out, "## a.go")
	bIdx := strings.Index(out, "## b.go")
	if aIdx == -1 || bIdx == -1 || aIdx > bIdx {
		t.Fatalf("expected a.go section before b.go section, got:\n%s", out)
	}

	line3 := strings.Index(out, "why this order?")
	line20 := strings.Index(out, "double check bounds")
	if line3 == -1 || line20 == -1 || line3 > line20 {
		t.Fatalf("expected line 3 comment before line 20 comment within a.go, got:\n%s", out)
	}

	if !strings.Contains(out, "**[QUESTION / INFO]** a.go:3") {
		t.Errorf("expected header for a.go:3 comment, got:\n%s", out)
	}
	if !strings.Contains(out, "Files reviewed: 1/2") {
		t.Errorf("expected reviewed/total line, got:\n%s", out)
	}
}

func TestDocumentIncludesExcerptWhenPayloadAvailable(t *testing.T) {
	n10 := 10
	payload := &domain.DiffPayload{
		FileSummaries:   []domain.FileSummary{{Path: "a.go", Status: domain.StatusModified}},
		FileLineOffsets: []int{0},
		HighlightedLines: []domain.HighlightedLine{
			{Origin: domain.OriginAdd, NewLine: &n10, Segments: []domain.StyledSegment{{Text: "    return nil"}}},
		},
	}
	comments := []domain.Comment{
		{FilePath: "a.go", LineNumber: line(10), Type: domain.CommentSuggestion, Severity: domain.SeverityMinor, Body: "consider an error instead"},
	}

	out := Document(domain.Session{RepoPath: "/repo"}, comments, 0, 1, payload, time.Now())

	if !strings.Contains(out, "> "+"    return nil") {
		t.Errorf("expected quoted excerpt in output, got:\n%s", out)
	}
}

func TestCommentsWithNoLineNumberSortLast(t *testing.T) {
	comments := []domain.Comment{
		{FilePath: "a.go", LineNumber: nil, Type: domain.CommentPraise, Severity: domain.SeverityInfo, Body: "nice overall"},
		{FilePath: "a.go", LineNumber: line(1), Type: domain.CommentTIL, Severity: domain.SeverityInfo, Body: "learned something"},
	}
	out := Document(domain.Session{RepoPath: "/repo"}, comments, 0, 1, nil, time.Now())

	first := strings.Index(out, "learned something")
	second := strings.Index(out, "nice overall")
	if first == -1 || second == -1 || first > second {
		t.Fatalf("expected the line-1 comment before the no-line comment, got:\n%s", out)
	}
}
