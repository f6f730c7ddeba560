// airev-bridge is the agent bridge: a short-lived process that exposes
// a review session's comments and diff context to an agent over MCP,
// reading and writing the same database the review terminal uses.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/airev/airev/internal/bridge"
	"github.com/airev/airev/internal/store"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "airev-bridge",
	Short: "Serve airev's review database to an agent over MCP",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&dbPath, "db", "", "path to the repository's .airev/reviews.db (required)")
}

func run(cmd *cobra.Command, _ []string) error {
	if dbPath == "" {
		return fmt.Errorf("--db is required")
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{ReportTimestamp: true})

	s, err := store.Open(context.Background(), dbPath, store.RoleBridge, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	srv := bridge.NewServer(s)
	return srv.Run(context.Background())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "airev-bridge:", err)
		os.Exit(1)
	}
}
