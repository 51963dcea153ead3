package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/config"
	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/poller"
	"github.com/amishk599/jobboard/internal/scheduler"
	"github.com/amishk599/jobboard/internal/search"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the feed and notify on new matches",
	Long: "Polls the feed every watch.interval and notifies about jobs matching any of\n" +
		"watch.queries that were not seen before. Blocks until SIGINT/SIGTERM.",
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(os.Stdout, debug)
	cfg := loadConfig(logger)

	logger.Info("config loaded",
		"feed", cfg.API.BaseURL,
		"interval", cfg.Watch.Interval.String(),
		"queries", len(cfg.Watch.Queries),
		"notification", cfg.Notification.Type,
	)

	st, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	p := buildPoller(cfg, st, logger)
	sched := scheduler.NewScheduler([]scheduler.Poller{p}, cfg.Watch.Interval, cfg.API.MinDelay, logger)
	if err := sched.Run(cmd.Context()); err != nil {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}

// buildPoller wires the feed poller shared by watch and check.
func buildPoller(cfg *config.Config, jobStore model.JobStore, logger *slog.Logger) *poller.FeedPoller {
	fetcher, source := buildFetcher(cfg, logger)
	n := setupNotifier(cfg, &http.Client{Timeout: cfg.API.Timeout}, logger)
	return poller.NewFeedPoller(source, fetcher, search.NewQueryFilter(cfg.Watch.Queries), jobStore, n, logger)
}
