// Package cmd wires airev's command-line surface. Grounded on the
// teacher's internal/cmd pattern: package-level *cobra.Command values,
// flags bound in init(), RunE doing the real work, rootCmd.AddCommand
// wiring subcommands together.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/airev/airev/internal/config"
	"github.com/airev/airev/internal/domain"
	"github.com/airev/airev/internal/gitworker"
	"github.com/airev/airev/internal/lock"
	"github.com/airev/airev/internal/store"
	"github.com/airev/airev/internal/style"
)

var (
	flagUnstaged bool
	flagBranch   bool
	flagRange    string
	flagWatch    bool
	flagTheme    string
)

var rootCmd = &cobra.Command{
	Use:   "airev",
	Short: "A terminal-resident code review workstation",
	Long: `airev watches a git working tree, renders diffs with syntax
highlighting, and captures typed, severity-tagged review comments to a
database an out-of-process agent can read and respond to.

With no flags, airev opens in staged mode against the current
directory's repository. --unstaged shows the working-tree diff instead;
--range <a>..<b> diffs two refs; --branch diffs the current branch
against the repository's mainline. --watch keeps the diff live as the
working tree changes.`,
	RunE:         runRoot,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagUnstaged, "unstaged", false, "show the working-tree diff instead of the staged diff")
	rootCmd.PersistentFlags().BoolVar(&flagBranch, "branch", false, "diff the current branch against the repository's mainline")
	rootCmd.PersistentFlags().StringVar(&flagRange, "range", "", "diff two refs, e.g. --range main..HEAD")
	rootCmd.PersistentFlags().BoolVar(&flagWatch, "watch", false, "enable live refresh as the working tree changes")
	rootCmd.Flags().StringVar(&flagTheme, "theme", "", "override the configured UI theme for this run")

	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(exportCmd)
}

// Execute runs the root command and returns the process exit code,
// matching the spec's exit-code contract (0 clean, 1 I/O/terminal
// failure, 2 invalid invocation, 130 terminated by signal).
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if ec, ok := err.(exitCoder); ok {
			fmt.Fprintln(os.Stderr, "airev:", err)
			return ec.ExitCode()
		}
		// Errors without an exit code come from cobra's own argument and
		// flag parsing (unknown flag, bad flag value, unknown subcommand).
		fmt.Fprintln(os.Stderr, "airev:", err)
		return 2
	}
	return 0
}

// exitCoder lets a returned error carry a specific process exit code
// through cobra's plain `error` return, rather than the command layer
// calling os.Exit itself (which would bypass RunGuarded's terminal
// restoration in the caller).
type exitCoder interface {
	error
	ExitCode() int
}

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) ExitCode() int { return e.code }
func (e *exitError) Unwrap() error { return e.err }

func invocationError(format string, a ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, a...)}
}

func ioError(err error) error {
	return &exitError{code: 1, err: err}
}

// resolveDiffMode applies the spec's flag precedence: --unstaged,
// --branch, and --range are mutually exclusive; none of them selected
// means staged mode.
func resolveDiffMode(mainlineOf func() (string, error)) (domain.DiffMode, error) {
	selected := 0
	if flagUnstaged {
		selected++
	}
	if flagBranch {
		selected++
	}
	if flagRange != "" {
		selected++
	}
	if selected > 1 {
		return domain.DiffMode{}, invocationError("--unstaged, --branch, and --range are mutually exclusive")
	}

	switch {
	case flagUnstaged:
		return domain.DiffMode{Kind: domain.DiffModeUnstaged}, nil
	case flagBranch:
		mainline, err := mainlineOf()
		if err != nil {
			return domain.DiffMode{}, ioError(err)
		}
		return domain.DiffMode{Kind: domain.DiffModeBranch, Base: mainline, Head: "HEAD"}, nil
	case flagRange != "":
		base, head, ok := splitRange(flagRange)
		if !ok {
			return domain.DiffMode{}, invocationError("--range must be of the form <a>..<b>, got %q", flagRange)
		}
		return domain.DiffMode{Kind: domain.DiffModeRange, Base: base, Head: head}, nil
	default:
		return domain.DiffMode{Kind: domain.DiffModeStaged}, nil
	}
}

func splitRange(s string) (base, head string, ok bool) {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '.' && s[i+1] == '.' {
			return s[:i], s[i+2:], s[:i] != "" && s[i+2:] != ""
		}
	}
	return "", "", false
}

// resolveTheme applies flag > config file > default precedence and
// returns the resolved style.Theme plus any warning to surface once the
// logger exists.
func resolveTheme() (style.Theme, string) {
	cfg, err := config.Load()
	if err != nil {
		return style.Resolve(config.DefaultTheme), "config: " + err.Error()
	}
	name, warned := config.ResolveTheme(flagTheme, cfg, style.Known)
	var warning string
	if warned {
		requested := flagTheme
		if requested == "" {
			requested = cfg.UI.Theme
		}
		warning = fmt.Sprintf("unknown theme %q, falling back to %s", requested, config.DefaultTheme)
	}
	return style.Resolve(name), warning
}

// openStore opens the review database at <repoRoot>/.airev/reviews.db,
// creating the .airev directory if necessary, and serializes the
// startup WAL checkpoint against concurrently launched airev processes
// via an advisory file lock.
func openStore(repoRoot string, logger *log.Logger) (*store.Store, func(), error) {
	airevDir := repoRoot + "/.airev"
	if err := os.MkdirAll(airevDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("persistence-fatal: create %s: %w", airevDir, err)
	}
	dbPath := airevDir + "/reviews.db"

	release, acquired, err := lock.AcquireStartup(dbPath)
	if err != nil {
		return nil, nil, err
	}
	role := store.RoleBridge
	if acquired {
		role = store.RoleUI
	}

	s, err := store.Open(context.Background(), dbPath, role, logger)
	if err != nil {
		if release != nil {
			release()
		}
		return nil, nil, err
	}
	cleanup := func() {
		s.Close()
		if release != nil {
			release()
		}
	}
	return s, cleanup, nil
}

func aireignorePath(repoRoot string) string {
	return repoRoot + "/.aireignore"
}

func discoverRepoRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("terminal-io: %w", err)
	}
	root, err := gitworker.DiscoverRepoRoot(cwd)
	if err != nil {
		return "", err
	}
	return root, nil
}
