package watcher

import (
	"context"
	"os"
	"path/filepath"
	"time"

	gitignore "github.com/sabhiram/go-gitignore"
)

// runPolling is the fallback used when a native watcher cannot be
// established (network filesystems, some virtualized mounts). It
// snapshots modification times across the tree every PollInterval and
// treats any change to the snapshot as a single debounced signal,
// keeping the same "don't trust paths, just signal" contract as the
// native path.
func runPolling(ctx context.Context, root string, matcher *gitignore.GitIgnore, sink Sink) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	prev, err := snapshot(root, matcher)
	if err != nil && sink.Notice != nil {
		sink.Notice("live watch: disabled, repository root is unreadable")
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur, err := snapshot(root, matcher)
			if err != nil {
				continue
			}
			if !equalSnapshots(prev, cur) {
				prev = cur
				if sink.Changed != nil {
					sink.Changed()
				}
			}
		}
	}
}

type fileStamp struct {
	size    int64
	modTime time.Time
}

func snapshot(root string, matcher *gitignore.GitIgnore) (map[string]fileStamp, error) {
	out := make(map[string]fileStamp)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path != root && ignored(matcher, root, path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		out[rel] = fileStamp{size: info.Size(), modTime: info.ModTime()}
		return nil
	})
	return out, err
}

func equalSnapshots(a, b map[string]fileStamp) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || av != bv {
			return false
		}
	}
	return true
}
