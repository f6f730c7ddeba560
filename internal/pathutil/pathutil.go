// Package pathutil expands a leading "~/" in user-supplied path flags
// (--out, --config) the way a shell would, since Go's flag parsing
// never does tilde expansion for us. Grounded on the teacher's
// internal/util.ExpandHome, adapted here under its own package since
// airev's "util" surface is this one function rather than the
// teacher's broader grab-bag package.
package pathutil

import (
	"os"
	"strings"
	"sync"
)

var (
	homeDir     string
	homeDirOnce sync.Once
)

func cachedHomeDir() string {
	homeDirOnce.Do(func() {
		homeDir, _ = os.UserHomeDir()
	})
	return homeDir
}

// ExpandHome expands a leading ~/ to the user's home directory. It
// returns path unchanged if it doesn't start with ~/ or if the home
// directory cannot be determined.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home := cachedHomeDir()
	if home == "" {
		return path
	}
	return home + path[1:]
}
