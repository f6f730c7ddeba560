package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/airev/airev/internal/eventbus"
	"github.com/airev/airev/internal/gitworker"
	"github.com/airev/airev/internal/store"
	"github.com/airev/airev/internal/terminal"
	"github.com/airev/airev/internal/tui"
	"github.com/airev/airev/internal/watcher"
)

func runRoot(_ *cobra.Command, _ []string) error {
	repoRoot, err := discoverRepoRoot()
	if err != nil {
		return ioError(err)
	}

	mode, err := resolveDiffMode(func() (string, error) { return gitworker.DetectMainline(repoRoot) })
	if err != nil {
		return err
	}

	theme, themeWarning := resolveTheme()

	if err := os.MkdirAll(repoRoot+"/.airev", 0o755); err != nil {
		return ioError(fmt.Errorf("create .airev directory: %w", err))
	}
	logFile, err := os.OpenFile(repoRoot+"/.airev/airev.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return ioError(fmt.Errorf("open log file: %w", err))
	}
	defer logFile.Close()
	logger := log.NewWithOptions(logFile, log.Options{ReportTimestamp: true})
	if themeWarning != "" {
		fmt.Fprintln(os.Stderr, "airev:", themeWarning)
		logger.Warn(themeWarning)
	}

	s, closeStore, err := openStore(repoRoot, logger)
	if err != nil {
		return ioError(err)
	}
	defer closeStore()

	sess, err := s.DetectOrCreateSession(context.Background(), repoRoot, mode)
	if err != nil {
		return ioError(err)
	}

	async := store.NewAsync(s)
	defer async.Close()

	lifecycle := terminal.New()
	var program *tea.Program

	gitHandle, err := gitworker.Spawn(repoRoot, func(r gitworker.Result) {
		if program != nil {
			program.Send(eventbus.GitResultMsg{Payload: r.Payload, Err: r.Err, Seq: r.Seq})
		}
	})
	if err != nil {
		logger.Warn("git worker unavailable, diff rendering disabled", "err", err)
		gitHandle = nil
	} else {
		defer gitHandle.Close()
	}

	var watchHandle *watcher.Handle
	if flagWatch {
		watchHandle = watcher.Spawn(repoRoot, aireignorePath(repoRoot), watcher.Sink{
			Changed: func() {
				if program != nil {
					program.Send(eventbus.FileChangedMsg{})
				}
			},
			Notice: func(text string) {
				if program != nil {
					program.Send(eventbus.NoticeMsg{Notice: eventbus.StatusNotice{Text: text}})
				}
			},
		})
		defer watchHandle.Close()
	}

	termSignal := terminal.RegisterTermSignal()

	model := tui.New(sess, mode, theme, gitHandle, async, flagWatch, termSignal)
	// The UI renders to stderr: stdout is reserved for the agent bridge
	// should it ever be co-located with the review terminal.
	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	lifecycle.Attach(program)

	var finalModel tea.Model
	runErr := lifecycle.RunGuarded(func() error {
		var err error
		finalModel, err = program.Run()
		return err
	})
	if runErr != nil {
		return ioError(runErr)
	}
	if fm, ok := finalModel.(*tui.Model); ok && fm.SignalQuit() {
		return &exitError{code: 130, err: fmt.Errorf("terminated by signal")}
	}
	return nil
}
