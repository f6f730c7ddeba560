package gitworker

import (
	"strings"

	"github.com/airev/airev/internal/domain"
)

// applyWordDiff walks the highlighted lines and, for each removed line
// immediately followed by an added line, replaces both with versions
// where the words that actually differ carry an emphasis flag. This
// matches the common diff-presentation convention; it does not attempt
// LCS-based pairing across more than one (-,+) pair, which the spec
// marks explicitly out of scope for v1.
func applyWordDiff(lines []domain.HighlightedLine) []domain.HighlightedLine {
	out := make([]domain.HighlightedLine, 0, len(lines))
	i := 0
	for i < len(lines) {
		cur := lines[i]
		if cur.Origin == domain.OriginRemove && i+1 < len(lines) && lines[i+1].Origin == domain.OriginAdd {
			next := lines[i+1]
			removed, added := emphasizeWordDiff(cur, next)
			out = append(out, removed, added)
			i += 2
			continue
		}
		out = append(out, cur)
		i++
	}
	return out
}

// emphasizeWordDiff compares two lines word-by-word and marks the words
// that differ between them as emphasized, keeping each line's diff
// color. Every rebuilt word takes the style of the line's first segment,
// so per-token syntax types within the line are not preserved.
func emphasizeWordDiff(removed, added domain.HighlightedLine) (domain.HighlightedLine, domain.HighlightedLine) {
	removedWords := splitWords(flatten(removed.Segments))
	addedWords := splitWords(flatten(added.Segments))

	removedChanged, addedChanged := diffWords(removedWords, addedWords)

	removed.Segments = rebuildSegments(removed.Segments, removedWords, removedChanged)
	added.Segments = rebuildSegments(added.Segments, addedWords, addedChanged)
	return removed, added
}

func flatten(segments []domain.StyledSegment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// splitWords splits on whitespace boundaries while keeping the
// whitespace itself as its own token, so rejoining tokens reproduces the
// original text exactly.
func splitWords(text string) []string {
	var words []string
	var cur strings.Builder
	inSpace := false
	started := false
	for _, r := range text {
		isSpace := r == ' ' || r == '\t'
		if started && isSpace != inSpace {
			words = append(words, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		inSpace = isSpace
		started = true
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}

// diffWords marks, for each side, which word indices have no identical
// counterpart on the other side using a simple set-difference heuristic
// — sufficient for single-pair word emphasis, not a full LCS alignment.
func diffWords(a, b []string) (aChanged, bChanged []bool) {
	aCount := map[string]int{}
	for _, w := range a {
		aCount[w]++
	}
	bCount := map[string]int{}
	for _, w := range b {
		bCount[w]++
	}

	aChanged = make([]bool, len(a))
	for i, w := range a {
		if bCount[w] == 0 {
			aChanged[i] = true
		} else {
			bCount[w]--
		}
	}
	bChanged = make([]bool, len(b))
	for i, w := range b {
		if aCount[w] == 0 {
			bChanged[i] = true
		} else {
			aCount[w]--
		}
	}
	return aChanged, bChanged
}

// rebuildSegments re-tokenizes a line's flattened text into per-word
// segments, preserving each word's original base style (diff color) and
// marking the words diffWords flagged as emphasized.
func rebuildSegments(original []domain.StyledSegment, words []string, changed []bool) []domain.StyledSegment {
	base := domain.SegmentStyle{}
	if len(original) > 0 {
		base = original[0].Style
	}
	segments := make([]domain.StyledSegment, 0, len(words))
	for i, w := range words {
		style := base
		if i < len(changed) {
			style.Emphasis = changed[i]
		}
		segments = append(segments, domain.StyledSegment{Text: w, Style: style})
	}
	return segments
}
