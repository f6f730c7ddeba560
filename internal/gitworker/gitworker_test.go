package gitworker

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/airev/airev/internal/domain"
)

// initTestRepo mirrors the teacher's internal/git/git_test.go fixture
// shape: shell out to the real git binary to build a tiny repository,
// then exercise our own code against it.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init")
	run("config", "user.email", "test@test.com")
	run("config", "user.name", "Test User")

	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	run("add", ".")
	run("commit", "-m", "initial")
	return dir
}

func TestSpawnOpensRepository(t *testing.T) {
	dir := initTestRepo(t)
	results := make(chan Result, 1)
	h, err := Spawn(dir, func(r Result) { results <- r })
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer h.Close()

	h.Request(domain.DiffMode{Kind: domain.DiffModeStaged}, 1)
	res := <-results
	if res.Err != nil {
		t.Fatalf("staged diff on clean repo: %v", res.Err)
	}
	if !res.Payload.Empty() {
		t.Error("expected empty payload for clean working tree")
	}
}

func TestSpawnRejectsMissingRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := Spawn(dir, func(Result) {})
	if err == nil {
		t.Fatal("expected error opening a non-repository directory")
	}
}

func TestUnstagedDiffReflectsWorkingTreeEdit(t *testing.T) {
	dir := initTestRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	results := make(chan Result, 1)
	h, err := Spawn(dir, func(r Result) { results <- r })
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer h.Close()

	h.Request(domain.DiffMode{Kind: domain.DiffModeUnstaged}, 1)
	res := <-results
	if res.Err != nil {
		t.Fatalf("unstaged diff: %v", res.Err)
	}
	if res.Payload.Empty() {
		t.Fatal("expected a non-empty unstaged diff")
	}
	if len(res.Payload.FileLineOffsets) != len(res.Payload.FileSummaries) {
		t.Errorf("FileLineOffsets len %d != FileSummaries len %d",
			len(res.Payload.FileLineOffsets), len(res.Payload.FileSummaries))
	}
	for _, off := range res.Payload.FileLineOffsets {
		if off >= len(res.Payload.HighlightedLines) {
			t.Errorf("file line offset %d out of range (have %d lines)", off, len(res.Payload.HighlightedLines))
		}
	}
	for _, off := range res.Payload.HunkOffsets {
		if res.Payload.HighlightedLines[off].Origin != domain.OriginHunkHeader {
			t.Errorf("hunk offset %d does not point at a hunk header line", off)
		}
	}
}

func TestBranchComparisonRejectsMissingRef(t *testing.T) {
	dir := initTestRepo(t)
	results := make(chan Result, 1)
	h, err := Spawn(dir, func(r Result) { results <- r })
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer h.Close()

	h.Request(domain.DiffMode{Kind: domain.DiffModeBranch, Base: "main", Head: "does-not-exist"}, 1)
	res := <-results
	if res.Err == nil {
		t.Fatal("expected an error for a missing branch ref, not an empty-tree diff")
	}
}
