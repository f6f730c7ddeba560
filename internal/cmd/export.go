package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/airev/airev/internal/domain"
	"github.com/airev/airev/internal/export"
	"github.com/airev/airev/internal/gitworker"
	"github.com/airev/airev/internal/pathutil"
	"github.com/airev/airev/internal/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current repository's review session as markdown",
	Long: `export renders the most recently touched review session for the
current repository (matching the diff mode the CLI flags select, same as
the default command) as a markdown document grouped by file, in line
order. Writes to stdout unless --out is given.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "write the export to this file instead of stdout")
}

func runExport(cmd *cobra.Command, _ []string) error {
	repoRoot, err := discoverRepoRoot()
	if err != nil {
		return ioError(err)
	}

	mode, err := resolveDiffMode(func() (string, error) { return gitworker.DetectMainline(repoRoot) })
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{})
	s, closeStore, err := openStore(repoRoot, logger)
	if err != nil {
		return ioError(err)
	}
	defer closeStore()

	ctx := context.Background()
	sess, err := s.DetectOrCreateSession(ctx, repoRoot, mode)
	if err != nil {
		return ioError(err)
	}
	comments, err := s.ListComments(ctx, sess.ID, "", "", "")
	if err != nil {
		return ioError(err)
	}
	states, err := s.LoadFileReviewState(ctx, sess.ID)
	if err != nil {
		return ioError(err)
	}

	var payload *domain.DiffPayload
	if parsedMode, perr := domain.ParseDiffMode(sess.DiffMode, sess.DiffArgs); perr == nil {
		if p, derr := gitworker.ComputeDiffSync(repoRoot, parsedMode); derr == nil {
			payload = p
		} else {
			logger.Warn("export: computing diff for excerpts failed, continuing without them", "err", derr)
		}
	}

	reviewed := 0
	for _, st := range states {
		if st.Reviewed {
			reviewed++
		}
	}
	totalFiles := len(states)
	if payload != nil && len(payload.FileSummaries) > totalFiles {
		totalFiles = len(payload.FileSummaries)
	}

	doc := export.Document(sess, comments, reviewed, totalFiles, payload, time.Now())

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(pathutil.ExpandHome(exportOut))
		if err != nil {
			return ioError(fmt.Errorf("create %s: %w", exportOut, err))
		}
		defer f.Close()
		w = f
	}

	_, err = io.WriteString(w, doc)
	if err != nil {
		return ioError(err)
	}
	return nil
}
