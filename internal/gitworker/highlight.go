package gitworker

import (
	"path/filepath"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/airev/airev/internal/domain"
)

// syntaxStyle is a built-in chroma style, resolved once per process; the
// theme name itself is an external collaborator's concern (§6
// Configuration). No code reads it: segments carry only the token type
// name, and the render layer does not map token types to colors.
var syntaxStyle = sync.OnceValue(func() *chroma.Style {
	if s := styles.Get("monokai"); s != nil {
		return s
	}
	return styles.Fallback
})

// highlightLines runs syntax highlighting over raw extracted lines,
// producing the final HighlightedLine slice. A fresh lexer is created
// per file: chroma lexers carry incremental state (bracket depth, string
// context), and reusing one across a file boundary produces wrong
// tokens at the new file's start, exactly as the reference design notes
// call out.
func highlightLines(lines []rawLine) []domain.HighlightedLine {
	out := make([]domain.HighlightedLine, 0, len(lines))
	var lexer chroma.Lexer
	var curFile string

	for _, rl := range lines {
		switch rl.origin {
		case domain.OriginHunkHeader, domain.OriginFileHeader:
			out = append(out, domain.HighlightedLine{
				Origin: rl.origin,
				Segments: []domain.StyledSegment{{
					Text:  rl.content,
					Style: domain.SegmentStyle{Base: rl.origin},
				}},
			})
			continue
		}

		if rl.file != curFile || lexer == nil {
			curFile = rl.file
			lexer = lexers.Match(filepath.Base(curFile))
			if lexer == nil {
				lexer = lexers.Fallback
			}
			lexer = chroma.Coalesce(lexer)
		}

		// The diff-prefix byte (+/-/space) has already been stripped by
		// the extraction stage's rawLine.content, which carries only the
		// body text, so the lexer never mistakes it for an operator.
		segments := tokenizeLine(lexer, rl.content, rl.origin)

		out = append(out, domain.HighlightedLine{
			Origin:   rl.origin,
			OldLine:  rl.oldLine,
			NewLine:  rl.newLine,
			Segments: segments,
		})
	}
	return out
}

// tokenizeLine lexes a single line of source text and returns it as
// styled segments carrying both the diff-level base color and the
// syntax token type. The render layer (internal/tui/panels.go) colors
// segments by the base only; the token type is not drawn.
func tokenizeLine(lexer chroma.Lexer, text string, base domain.LineOrigin) []domain.StyledSegment {
	if text == "" {
		return []domain.StyledSegment{{Text: "", Style: domain.SegmentStyle{Base: base}}}
	}

	iter, err := lexer.Tokenise(nil, text)
	if err != nil {
		return []domain.StyledSegment{{Text: text, Style: domain.SegmentStyle{Base: base}}}
	}

	var segments []domain.StyledSegment
	for _, tok := range iter.Tokens() {
		if tok.Value == "" {
			continue
		}
		segments = append(segments, domain.StyledSegment{
			Text: tok.Value,
			Style: domain.SegmentStyle{
				Base:  base,
				Token: tok.Type.String(),
			},
		})
	}
	if len(segments) == 0 {
		segments = append(segments, domain.StyledSegment{Text: text, Style: domain.SegmentStyle{Base: base}})
	}
	return segments
}
