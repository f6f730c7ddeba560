package domain

import "testing"

func TestCommentTypeValid(t *testing.T) {
	for _, ct := range ValidCommentTypes {
		if !ct.Valid() {
			t.Errorf("expected %q to be valid", ct)
		}
	}
	if CommentType("bogus").Valid() {
		t.Error("expected bogus comment type to be invalid")
	}
}

func TestSeverityValid(t *testing.T) {
	for _, s := range ValidSeverities {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if Severity("urgent").Valid() {
		t.Error("expected urgent severity to be invalid")
	}
}

func TestThreadStatusCanAdvance(t *testing.T) {
	cases := []struct {
		from, to ThreadStatus
		want     bool
	}{
		{ThreadOpen, ThreadAddressed, true},
		{ThreadOpen, ThreadResolved, true},
		{ThreadAddressed, ThreadResolved, true},
		{ThreadResolved, ThreadOpen, false},
		{ThreadAddressed, ThreadOpen, false},
		{ThreadOpen, ThreadOpen, true},
		{ThreadStatus("bogus"), ThreadOpen, false},
	}
	for _, c := range cases {
		if got := c.from.CanAdvance(c.to); got != c.want {
			t.Errorf("%s.CanAdvance(%s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestDiffModeLabel(t *testing.T) {
	cases := []struct {
		mode DiffMode
		want string
	}{
		{DiffMode{Kind: DiffModeUnstaged}, "UNSTAGED"},
		{DiffMode{Kind: DiffModeStaged}, "STAGED"},
		{DiffMode{Kind: DiffModeBranch, Base: "main", Head: "feature"}, "BRANCH main..feature"},
		{DiffMode{Kind: DiffModeRange, Base: "a1", Head: "b2"}, "RANGE a1..b2"},
	}
	for _, c := range cases {
		if got := c.mode.Label(); got != c.want {
			t.Errorf("Label() = %q, want %q", got, c.want)
		}
	}
}

func TestDiffPayloadEmpty(t *testing.T) {
	var nilPayload *DiffPayload
	if !nilPayload.Empty() {
		t.Error("nil payload should be empty")
	}
	empty := &DiffPayload{}
	if !empty.Empty() {
		t.Error("payload with no lines should be empty")
	}
	nonEmpty := &DiffPayload{HighlightedLines: []HighlightedLine{{Origin: OriginContext}}}
	if nonEmpty.Empty() {
		t.Error("payload with lines should not be empty")
	}
}
