package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/browse"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse jobs interactively (TUI)",
	Long:  "Fetches the feed behind a spinner, then opens the full-screen browser with Find and Saved tabs.",
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(os.Stderr, debug)
	cfg := loadConfig(logger)

	st, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// Any log output once the alt screen is up corrupts the display.
	silent := tuiLogger()
	fetcher, source := buildFetcher(cfg, silent)

	jobs, err := browse.RunLoader(source, fetchBudget(cfg), fetcher.FetchJobs)
	if errors.Is(err, browse.ErrCancelled) {
		return nil
	}
	if err != nil {
		return feedError(logger, err)
	}

	return browse.Run(browse.Deps{
		Jobs:         jobs,
		Saved:        st,
		Applications: st,
		Settings:     st,
		Theme:        cfg.UI.Theme,
		Logger:       silent,
	})
}
