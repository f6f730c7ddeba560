package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.UI.Theme != "" {
		t.Errorf("expected empty theme, got %q", cfg.UI.Theme)
	}
}

func TestLoadFromParsesThemeKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[ui]\ntheme = \"solarized\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.UI.Theme != "solarized" {
		t.Errorf("theme = %q, want solarized", cfg.UI.Theme)
	}
}

func TestLoadFromRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected an error for malformed toml")
	}
}

func TestResolveThemePrecedence(t *testing.T) {
	known := func(name string) bool { return name == "solarized" || name == DefaultTheme }

	theme, warned := ResolveTheme("", Config{}, known)
	if theme != DefaultTheme || warned {
		t.Errorf("no flag, no config: got (%q, %v), want (%q, false)", theme, warned, DefaultTheme)
	}

	theme, warned = ResolveTheme("", Config{UI: UISection{Theme: "solarized"}}, known)
	if theme != "solarized" || warned {
		t.Errorf("config theme: got (%q, %v), want (solarized, false)", theme, warned)
	}

	theme, warned = ResolveTheme("solarized", Config{UI: UISection{Theme: "nope"}}, known)
	if theme != "solarized" || warned {
		t.Errorf("flag overrides config: got (%q, %v), want (solarized, false)", theme, warned)
	}

	theme, warned = ResolveTheme("ghost-town", Config{}, known)
	if theme != DefaultTheme || !warned {
		t.Errorf("unknown theme: got (%q, %v), want (%q, true)", theme, warned, DefaultTheme)
	}
}
