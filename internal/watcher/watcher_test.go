package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSpawnSignalsOnFileWrite(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("one"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	changed := make(chan struct{}, 8)
	h := Spawn(root, "", Sink{
		Changed: func() { changed <- struct{}{} },
	})
	defer h.Close()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("two"), 0o644); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a debounced change signal after file write")
	}
}

func TestSpawnIgnoresDefaultPatterns(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}

	changed := make(chan struct{}, 8)
	h := Spawn(root, "", Sink{
		Changed: func() { changed <- struct{}{} },
	})
	defer h.Close()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(root, ".git", "HEAD"), []byte("ref: refs/heads/main"), 0o644); err != nil {
		t.Fatalf("write under .git: %v", err)
	}

	select {
	case <-changed:
		t.Fatal("expected writes under .git/ to be ignored by the default patterns")
	case <-time.After(600 * time.Millisecond):
	}
}

func TestEqualSnapshotsDetectsDifference(t *testing.T) {
	a := map[string]fileStamp{"x": {size: 1, modTime: time.Unix(0, 0)}}
	b := map[string]fileStamp{"x": {size: 2, modTime: time.Unix(0, 0)}}
	if equalSnapshots(a, b) {
		t.Error("expected differing sizes to compare unequal")
	}
	if !equalSnapshots(a, a) {
		t.Error("expected identical snapshots to compare equal")
	}
}
