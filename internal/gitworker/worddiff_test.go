package gitworker

import (
	"testing"

	"github.com/airev/airev/internal/domain"
)

func line(origin domain.LineOrigin, text string) domain.HighlightedLine {
	return domain.HighlightedLine{
		Origin:   origin,
		Segments: []domain.StyledSegment{{Text: text, Style: domain.SegmentStyle{Base: origin}}},
	}
}

func TestApplyWordDiffPairsConsecutiveRemoveAdd(t *testing.T) {
	in := []domain.HighlightedLine{
		line(domain.OriginRemove, "let x = 1"),
		line(domain.OriginAdd, "let x = 2"),
	}
	out := applyWordDiff(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(out))
	}

	var removedEmphasized, addedEmphasized int
	for _, seg := range out[0].Segments {
		if seg.Style.Emphasis {
			removedEmphasized++
		}
	}
	for _, seg := range out[1].Segments {
		if seg.Style.Emphasis {
			addedEmphasized++
		}
	}
	if removedEmphasized == 0 || addedEmphasized == 0 {
		t.Errorf("expected at least one emphasized word on each side, got removed=%d added=%d", removedEmphasized, addedEmphasized)
	}
}

func TestApplyWordDiffLeavesUnpairedRemovalAsIs(t *testing.T) {
	in := []domain.HighlightedLine{
		line(domain.OriginRemove, "orphan removed line"),
		line(domain.OriginContext, "unrelated context"),
	}
	out := applyWordDiff(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(out))
	}
	for _, seg := range out[0].Segments {
		if seg.Style.Emphasis {
			t.Error("unpaired removed line should not carry emphasis")
		}
	}
}

func TestApplyWordDiffLeavesNonAdjacentPairsUntouched(t *testing.T) {
	in := []domain.HighlightedLine{
		line(domain.OriginRemove, "removed"),
		line(domain.OriginContext, "context"),
		line(domain.OriginAdd, "added only"),
	}
	out := applyWordDiff(in)
	if len(out) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(out))
	}
	for i, l := range out {
		for _, seg := range l.Segments {
			if seg.Style.Emphasis {
				t.Errorf("line %d: remove/add separated by context should not carry emphasis", i)
			}
		}
	}
}

func TestSplitWordsRoundTrips(t *testing.T) {
	text := "foo  bar\tbaz"
	words := splitWords(text)
	var rebuilt string
	for _, w := range words {
		rebuilt += w
	}
	if rebuilt != text {
		t.Errorf("splitWords did not round-trip: got %q, want %q", rebuilt, text)
	}
}

func TestDiffWordsFindsChangedWord(t *testing.T) {
	a := []string{"let", " ", "x", " ", "=", " ", "1"}
	b := []string{"let", " ", "x", " ", "=", " ", "2"}
	aChanged, bChanged := diffWords(a, b)
	if !aChanged[len(a)-1] {
		t.Error("expected last word on removed side to be flagged changed")
	}
	if !bChanged[len(b)-1] {
		t.Error("expected last word on added side to be flagged changed")
	}
	for i := 0; i < len(a)-1; i++ {
		if aChanged[i] {
			t.Errorf("unexpected change flagged at index %d on removed side", i)
		}
	}
}
