// Package watcher provides a debounced, recursive working-tree watcher.
// It never reports what changed — only that something did — because the
// main loop re-derives truth from the git worker rather than trusting
// event paths (renames land as create events on some platforms, and a
// watched path can be deleted and recreated out from under a stale
// descriptor). Grounded on the WatchFile goroutine shape in the
// other_examples db.go reference (an fsnotify.Watcher drained in a
// select loop alongside a context-done channel), generalized here to
// walk a whole tree, debounce bursts, and fall back to polling when the
// native watcher cannot be established.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	gitignore "github.com/sabhiram/go-gitignore"
)

// DebounceWindow is how long the watcher waits after the last observed
// event before emitting a single changed signal.
const DebounceWindow = 250 * time.Millisecond

// PollInterval is the fallback cadence used when the native watcher
// cannot be established.
const PollInterval = 2 * time.Second

var defaultIgnorePatterns = []string{
	".git/",
	"*.lock",
	"node_modules/",
	"dist/",
	"build/",
	"target/",
	".airev/",
}

// Sink receives one value per debounced change and, separately, a status
// notice whenever the watcher degrades to polling or gives up entirely.
type Sink struct {
	Changed func()
	Notice  func(text string)
}

// Handle controls a running watcher.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Spawn starts watching root for changes, applying ignore patterns
// parsed from aireignorePath if it exists (falling back to
// defaultIgnorePatterns otherwise, per the spec's "patterns replace the
// defaults" rule), and calling sink.Changed no more than once per
// DebounceWindow. It never returns an error: watcher establishment
// failures are reported as a watcher-failure notice and the polling
// fallback takes over, matching the spec's degrade-don't-fail posture.
func Spawn(root, aireignorePath string, sink Sink) *Handle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	matcher := loadMatcher(aireignorePath)

	go func() {
		defer close(h.done)
		if fw, err := newFsnotifyWatcher(root, matcher); err == nil {
			runNative(ctx, fw, matcher, sink)
			return
		}
		if sink.Notice != nil {
			sink.Notice("live watch: falling back to polling (native watcher unavailable)")
		}
		runPolling(ctx, root, matcher, sink)
	}()

	return h
}

// Close stops the watcher and waits for its goroutine to exit.
func (h *Handle) Close() {
	h.cancel()
	<-h.done
}

func loadMatcher(aireignorePath string) *gitignore.GitIgnore {
	if aireignorePath != "" {
		if m, err := gitignore.CompileIgnoreFile(aireignorePath); err == nil {
			return m
		}
	}
	m, err := gitignore.CompileIgnoreLines(defaultIgnorePatterns...)
	if err != nil {
		// defaultIgnorePatterns is a fixed, known-valid literal; nil
		// falls through to ignored() matching nothing.
		return nil
	}
	return m
}

func ignored(matcher *gitignore.GitIgnore, root, path string) bool {
	if matcher == nil {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return matcher.MatchesPath(rel)
}
