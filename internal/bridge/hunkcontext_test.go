package bridge

import (
	"testing"

	"github.com/airev/airev/internal/domain"
)

func n(v int) *int { return &v }

func samplePayload() *domain.DiffPayload {
	return &domain.DiffPayload{
		FileSummaries:   []domain.FileSummary{{Path: "a.go", Status: domain.StatusModified}},
		FileLineOffsets: []int{0},
		HighlightedLines: []domain.HighlightedLine{
			{Origin: domain.OriginFileHeader, Segments: []domain.StyledSegment{{Text: "diff --git a/a.go b/a.go"}}},
			{Origin: domain.OriginHunkHeader, Segments: []domain.StyledSegment{{Text: "@@ -1,5 +1,5 @@"}}},
			{Origin: domain.OriginContext, OldLine: n(1), NewLine: n(1), Segments: []domain.StyledSegment{{Text: "package main"}}},
			{Origin: domain.OriginRemove, OldLine: n(2), Segments: []domain.StyledSegment{{Text: "func old() {}"}}},
			{Origin: domain.OriginAdd, NewLine: n(2), Segments: []domain.StyledSegment{{Text: "func new() {}"}}},
			{Origin: domain.OriginContext, OldLine: n(3), NewLine: n(3), Segments: []domain.StyledSegment{{Text: "// trailing"}}},
		},
	}
}

func TestHunkContextFindsHeaderAndWindow(t *testing.T) {
	header, lines, err := hunkContext(samplePayload(), "a.go", 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if header != "@@ -1,5 +1,5 @@" {
		t.Errorf("unexpected header: %q", header)
	}
	if len(lines) == 0 {
		t.Fatal("expected at least one line of context")
	}
	found := false
	for _, l := range lines {
		if l.Content == "func new() {}" && l.ChangeType == "+" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected target line in window, got %+v", lines)
	}
}

func TestHunkContextRejectsUnknownFile(t *testing.T) {
	if _, _, err := hunkContext(samplePayload(), "missing.go", 2, 1); err == nil {
		t.Fatal("expected an error for an unknown file")
	}
}

func TestHunkContextRejectsUnknownLine(t *testing.T) {
	if _, _, err := hunkContext(samplePayload(), "a.go", 999, 1); err == nil {
		t.Fatal("expected an error for a line not present in the diff")
	}
}
