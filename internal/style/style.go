// Package style centralizes terminal styling on top of Lipgloss,
// mirroring the teacher's internal/style package (a thin Lipgloss
// wrapper exposing named style values like Bold and Dim for reuse across
// command output) but aimed at a themeable three-panel layout instead of
// one-off table rendering.
package style

import "github.com/charmbracelet/lipgloss"

// Bold and Dim are theme-independent text emphasis styles, used the same
// way the teacher's internal/cmd package renders section headers and
// secondary text.
var (
	Bold = lipgloss.NewStyle().Bold(true)
	Dim  = lipgloss.NewStyle().Faint(true)
)

// Theme is the full set of colors the TUI needs. Exactly one is active
// at a time, selected by internal/config's resolved theme name.
type Theme struct {
	Name string

	BorderFocused   lipgloss.Color
	BorderUnfocused lipgloss.Color

	DiffAdd     lipgloss.Color
	DiffRemove  lipgloss.Color
	DiffContext lipgloss.Color
	DiffHunk    lipgloss.Color

	SeverityCritical lipgloss.Color
	SeverityMajor    lipgloss.Color
	SeverityMinor    lipgloss.Color
	SeverityInfo     lipgloss.Color

	StatusBarBg lipgloss.Color
	StatusBarFg lipgloss.Color
	NoticeFg    lipgloss.Color
}

var themes = map[string]Theme{
	"default": {
		Name:             "default",
		BorderFocused:    lipgloss.Color("39"),
		BorderUnfocused:  lipgloss.Color("240"),
		DiffAdd:          lipgloss.Color("34"),
		DiffRemove:       lipgloss.Color("160"),
		DiffContext:      lipgloss.Color("250"),
		DiffHunk:         lipgloss.Color("244"),
		SeverityCritical: lipgloss.Color("196"),
		SeverityMajor:    lipgloss.Color("208"),
		SeverityMinor:    lipgloss.Color("178"),
		SeverityInfo:     lipgloss.Color("67"),
		StatusBarBg:      lipgloss.Color("236"),
		StatusBarFg:      lipgloss.Color("252"),
		NoticeFg:         lipgloss.Color("221"),
	},
	"solarized": {
		Name:             "solarized",
		BorderFocused:    lipgloss.Color("33"),
		BorderUnfocused:  lipgloss.Color("240"),
		DiffAdd:          lipgloss.Color("64"),
		DiffRemove:       lipgloss.Color("125"),
		DiffContext:      lipgloss.Color("245"),
		DiffHunk:         lipgloss.Color("37"),
		SeverityCritical: lipgloss.Color("160"),
		SeverityMajor:    lipgloss.Color("136"),
		SeverityMinor:    lipgloss.Color("107"),
		SeverityInfo:     lipgloss.Color("33"),
		StatusBarBg:      lipgloss.Color("235"),
		StatusBarFg:      lipgloss.Color("230"),
		NoticeFg:         lipgloss.Color("136"),
	},
	"high-contrast": {
		Name:             "high-contrast",
		BorderFocused:    lipgloss.Color("15"),
		BorderUnfocused:  lipgloss.Color("245"),
		DiffAdd:          lipgloss.Color("46"),
		DiffRemove:       lipgloss.Color("196"),
		DiffContext:      lipgloss.Color("255"),
		DiffHunk:         lipgloss.Color("226"),
		SeverityCritical: lipgloss.Color("201"),
		SeverityMajor:    lipgloss.Color("208"),
		SeverityMinor:    lipgloss.Color("226"),
		SeverityInfo:     lipgloss.Color("51"),
		StatusBarBg:      lipgloss.Color("0"),
		StatusBarFg:      lipgloss.Color("15"),
		NoticeFg:         lipgloss.Color("226"),
	},
}

// Known reports whether name is a theme this binary ships, for
// internal/config.ResolveTheme's unknown-theme fallback check.
func Known(name string) bool {
	_, ok := themes[name]
	return ok
}

// Resolve returns the named theme, or the default theme if name is
// unknown. Callers should route unknown names through
// internal/config.ResolveTheme first so a warning gets surfaced; this
// function exists to give the TUI a safe value even if that check is
// ever skipped.
func Resolve(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["default"]
}

// SeverityColor maps a severity string to its theme color, falling back
// to SeverityInfo for an unrecognized value rather than panicking — the
// comment-entry flow already validates against the closed set, so this
// is a defensive default, not a trust boundary.
func (t Theme) SeverityColor(severity string) lipgloss.Color {
	switch severity {
	case "critical":
		return t.SeverityCritical
	case "major":
		return t.SeverityMajor
	case "minor":
		return t.SeverityMinor
	default:
		return t.SeverityInfo
	}
}
