package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Poll once, notify matches, exit",
	Long:  "One-shot poll: fetches the feed, notifies every job matching watch.queries and exits. Does not write to the store.",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(os.Stdout, debug)
	cfg := loadConfig(logger)

	logger.Info("check mode: no jobs will be marked as seen")

	p := buildPoller(cfg, store.NewNopStore(), logger)
	if err := p.Poll(cmd.Context()); err != nil {
		logger.Error("poll failed", "feed", p.Name, "error", err)
		return feedError(logger, err)
	}

	logger.Info("check complete")
	return nil
}
