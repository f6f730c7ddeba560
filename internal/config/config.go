// Package config loads airev's user configuration file: a small TOML
// document carrying UI preferences. Grounded on the teacher's own use of
// github.com/BurntSushi/toml against registry.toml in
// internal/config/hooks_test.go, generalized from a one-off test-time
// parse into the runtime config loader the teacher's package name
// implies but never itself shipped.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the parsed contents of config.toml. Unknown top-level
// sections are accepted and ignored rather than rejected, so a future
// key addition here never breaks an older binary reading a newer file.
type Config struct {
	UI UISection `toml:"ui"`
}

// UISection is the [ui] table.
type UISection struct {
	Theme string `toml:"theme"`
}

// DefaultTheme is used when no config file exists, the file has no
// [ui].theme key, or the named theme does not resolve.
const DefaultTheme = "default"

// Path returns <user-config-home>/airev/config.toml.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config directory: %w", err)
	}
	return filepath.Join(dir, "airev", "config.toml"), nil
}

// Load reads and parses the config file. A missing file is not an
// error: it returns a zero-value Config so callers fall back to
// DefaultTheme. A malformed file IS an error — config parsing isn't on
// any hot path the spec asks us to degrade gracefully on.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

// LoadFrom parses the config file at path, for callers (tests, the
// --config flag some CLIs grow later) that need an explicit path rather
// than the platform default.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveTheme applies the spec's precedence: an explicit CLI flag wins
// over the config file, which wins over DefaultTheme. known reports
// whether a candidate theme name is one this binary ships; an unknown
// theme soft-falls-back to DefaultTheme rather than erroring, per the
// spec's "unknown themes: soft fall-back... stderr warning, no crash."
// The caller is responsible for emitting that warning, since this
// function has no I/O side channel of its own.
func ResolveTheme(flagTheme string, cfg Config, known func(name string) bool) (theme string, warned bool) {
	candidate := flagTheme
	if candidate == "" {
		candidate = cfg.UI.Theme
	}
	if candidate == "" {
		return DefaultTheme, false
	}
	if known(candidate) {
		return candidate, false
	}
	return DefaultTheme, true
}
