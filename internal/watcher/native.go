package watcher

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	gitignore "github.com/sabhiram/go-gitignore"
)

func newFsnotifyWatcher(root string, matcher *gitignore.GitIgnore) (*fsnotify.Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ignored(matcher, root, path) {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
	if err != nil {
		fw.Close()
		return nil, err
	}
	return fw, nil
}

// runNative drains fsnotify's event and error channels, applying the
// ignore matcher before debouncing. Every event kind counts as a change
// (the spec calls out that atomic-rename writes surface as Create rather
// than Write on some platforms), and a directory Create triggers a
// re-walk so newly created subtrees get watched too.
func runNative(ctx context.Context, fw *fsnotify.Watcher, matcher *gitignore.GitIgnore, sink Sink) {
	defer fw.Close()
	root := ""
	if ws := fw.WatchList(); len(ws) > 0 {
		root = ws[0]
	}

	var timer *time.Timer
	var fire <-chan time.Time
	pending := false

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = fire
		}
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if ignored(matcher, root, ev.Name) {
				continue
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = fw.Add(ev.Name)
				}
			}
			pending = true
			if timer == nil {
				timer = time.NewTimer(DebounceWindow)
				fire = timer.C
			} else {
				timer.Reset(DebounceWindow)
			}
		case <-timerC:
			timer = nil
			fire = nil
			if pending {
				pending = false
				if sink.Changed != nil {
					sink.Changed()
				}
			}
		case _, ok := <-fw.Errors:
			if !ok {
				return
			}
			if sink.Notice != nil {
				sink.Notice("live watch: watcher error, continuing with reduced coverage")
			}
		}
	}
}
