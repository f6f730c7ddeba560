package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/airev/airev/internal/config"
	"github.com/airev/airev/internal/doctor"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks against the current repository and database",
	Long: `doctor runs a small, fixed battery of checks:

  database-openable        the review database opens and migrates cleanly
  aireignore-parses        .aireignore (if present) parses as git-ignore patterns
  repository-discoverable  the current directory is inside a git repository
  config-theme-resolves    the configured UI theme is one airev ships

It never attempts fixes; it only reports.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	repoRoot, repoErr := discoverRepoRoot()

	dctx := &doctor.Context{SupportedSchema: 1}
	if repoErr == nil {
		dctx.RepoPath = repoRoot
		dctx.DBPath = repoRoot + "/.airev/reviews.db"
		dctx.AireignorePath = aireignorePath(repoRoot)
	}
	if cfgPath, err := config.Path(); err == nil {
		dctx.ConfigPath = cfgPath
	}

	d := doctor.NewDoctor()
	d.RegisterAll(
		doctor.NewDatabaseCheck(),
		doctor.NewAireignoreCheck(),
		doctor.NewRepositoryCheck(),
		doctor.NewThemeCheck(),
	)

	report := d.Run(dctx, cmd.OutOrStdout())
	report.PrintSummary(cmd.OutOrStdout())

	if report.HasErrors() {
		return ioError(fmt.Errorf("doctor found one or more errors"))
	}
	return nil
}
