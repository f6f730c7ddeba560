package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/airev/airev/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.db")
	s, err := Open(context.Background(), path, RoleUI, log.New(nil))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.db")
	ctx := context.Background()

	s1, err := Open(ctx, path, RoleUI, log.New(nil))
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Close()

	s2, err := Open(ctx, path, RoleBridge, log.New(nil))
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	v, err := readVersion(ctx, s2.db)
	if err != nil {
		t.Fatalf("readVersion: %v", err)
	}
	if v != schemaVersion {
		t.Errorf("schema version = %d, want %d", v, schemaVersion)
	}
}

func TestDetectOrCreateSessionIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	mode := domain.DiffMode{Kind: domain.DiffModeStaged}

	first, err := s.DetectOrCreateSession(ctx, "/repo", mode)
	if err != nil {
		t.Fatalf("first DetectOrCreateSession: %v", err)
	}
	second, err := s.DetectOrCreateSession(ctx, "/repo", mode)
	if err != nil {
		t.Fatalf("second DetectOrCreateSession: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected same session id, got %s and %s", first.ID, second.ID)
	}
	if second.UpdatedAt.Before(first.UpdatedAt) {
		t.Error("expected updated_at to not move backwards on resume")
	}
}

func TestToggleFileReviewedIsInvolutive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, err := s.DetectOrCreateSession(ctx, "/repo", domain.DiffMode{Kind: domain.DiffModeUnstaged})
	if err != nil {
		t.Fatalf("DetectOrCreateSession: %v", err)
	}

	first, err := s.ToggleFileReviewed(ctx, sess.ID, "src/main.go")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !first {
		t.Error("expected first toggle from unset to become true")
	}

	second, err := s.ToggleFileReviewed(ctx, sess.ID, "src/main.go")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second {
		t.Error("expected second toggle to flip back to false")
	}
}

func TestSaveCommentRejectsInvalidTypeOrSeverity(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, err := s.DetectOrCreateSession(ctx, "/repo", domain.DiffMode{Kind: domain.DiffModeUnstaged})
	if err != nil {
		t.Fatalf("DetectOrCreateSession: %v", err)
	}

	_, err = s.SaveComment(ctx, domain.Comment{
		SessionID: sess.ID,
		FilePath:  "a.go",
		Type:      domain.CommentType("bogus"),
		Severity:  domain.SeverityMajor,
		Body:      "x",
	})
	if err == nil {
		t.Error("expected error for invalid comment type")
	}

	_, err = s.SaveComment(ctx, domain.Comment{
		SessionID: sess.ID,
		FilePath:  "a.go",
		Type:      domain.CommentConcern,
		Severity:  domain.Severity("urgent"),
		Body:      "x",
	})
	if err == nil {
		t.Error("expected error for invalid severity")
	}
}

func TestSaveCommentAndResolve(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, err := s.DetectOrCreateSession(ctx, "/repo", domain.DiffMode{Kind: domain.DiffModeUnstaged})
	if err != nil {
		t.Fatalf("DetectOrCreateSession: %v", err)
	}

	line := 42
	saved, err := s.SaveComment(ctx, domain.Comment{
		SessionID:  sess.ID,
		FilePath:   "src/parser.ext",
		LineNumber: &line,
		Type:       domain.CommentConcern,
		Severity:   domain.SeverityMajor,
		Body:       "null not handled",
	})
	if err != nil {
		t.Fatalf("SaveComment: %v", err)
	}

	comments, err := s.ListComments(ctx, sess.ID, "", "", "")
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 1 || comments[0].Body != "null not handled" {
		t.Fatalf("unexpected comments: %+v", comments)
	}

	if _, err := s.ResolveComment(ctx, saved.ID, ""); err != nil {
		t.Fatalf("ResolveComment: %v", err)
	}
	comments, err = s.ListComments(ctx, sess.ID, "", "", "")
	if err != nil {
		t.Fatalf("ListComments after resolve: %v", err)
	}
	if !comments[0].Resolved() {
		t.Error("expected comment to be resolved")
	}
}

func TestListCommentsFiltersBySeverityAndType(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, err := s.DetectOrCreateSession(ctx, "/repo", domain.DiffMode{Kind: domain.DiffModeUnstaged})
	if err != nil {
		t.Fatalf("DetectOrCreateSession: %v", err)
	}

	mustSave := func(typ domain.CommentType, sev domain.Severity) {
		t.Helper()
		if _, err := s.SaveComment(ctx, domain.Comment{
			SessionID: sess.ID, FilePath: "a.go", Type: typ, Severity: sev, Body: "x",
		}); err != nil {
			t.Fatalf("SaveComment: %v", err)
		}
	}
	mustSave(domain.CommentConcern, domain.SeverityMajor)
	mustSave(domain.CommentPraise, domain.SeverityInfo)

	filtered, err := s.ListComments(ctx, sess.ID, "", string(domain.SeverityMajor), "")
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Type != domain.CommentConcern {
		t.Fatalf("expected exactly the major-severity concern comment, got %+v", filtered)
	}
}
