package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/adapter"
	"github.com/amishk599/jobboard/internal/config"
	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/notifier"
	"github.com/amishk599/jobboard/internal/ratelimit"
	"github.com/amishk599/jobboard/internal/retry"
	"github.com/amishk599/jobboard/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Browse, search and track job listings from the terminal",
	Long: "jobboard reads a public job feed, lets you search and bookmark listings,\n" +
		"apply with a short form and watch the feed for new matches.",
	// `jobboard` with no subcommand opens the interactive browser.
	RunE:         runBrowse,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: "+config.EnvPath+" env var or ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// setupLogger returns a text logger on w. Daemon commands log to stdout;
// commands whose stdout is data log to stderr.
func setupLogger(w io.Writer, dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// tuiLogger keeps log lines off the terminal while a full-screen program runs.
func tuiLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// loadConfig resolves the config path and parses it, exiting on failure.
func loadConfig(logger *slog.Logger) *config.Config {
	cfg, err := config.LoadResolved(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	return cfg
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	if dir := filepath.Dir(cfg.Storage.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
	}
	return store.NewSQLiteStore(cfg.Storage.Path)
}

// buildFetcher wires feed → per-host rate limit → retry. Every retry attempt
// passes through the limiter. It also returns the feed host for display.
func buildFetcher(cfg *config.Config, logger *slog.Logger) (model.JobFetcher, string) {
	httpClient := &http.Client{Timeout: cfg.API.Timeout}
	feed := adapter.NewFeedAdapter(cfg.API.BaseURL, httpClient, logger)

	limiter := ratelimit.NewHostLimiter(cfg.API.MinDelay)
	var fetcher model.JobFetcher = ratelimit.NewRateLimitedFetcher(feed, limiter, feed.Host())
	fetcher = retry.NewRetryFetcher(fetcher, cfg.API.MaxRetries, cfg.API.RetryDelay, logger)

	source := feed.Host()
	if u, err := url.Parse(source); err == nil && u.Host != "" {
		source = u.Host
	}
	return fetcher, source
}

// fetchBudget bounds one full fetch including every retry and its backoff.
func fetchBudget(cfg *config.Config) time.Duration {
	attempts := time.Duration(cfg.API.MaxRetries + 1)
	backoff := cfg.API.RetryDelay * time.Duration(1<<cfg.API.MaxRetries)
	return attempts*(cfg.API.Timeout+cfg.API.MinDelay) + 2*backoff
}

func fetchJobs(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]model.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchBudget(cfg))
	defer cancel()
	fetcher, _ := buildFetcher(cfg, logger)
	return fetcher.FetchJobs(ctx)
}

// feedError turns a fetch failure into the short message shown to users and
// keeps the full chain in the debug log.
func feedError(logger *slog.Logger, err error) error {
	logger.Debug("feed fetch failed", "kind", model.Kind(err), "error", err)
	return errors.New(model.UserMessage(err))
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

// findJob looks id up in the saved snapshots first and then in the live feed.
// id may be a full job ID or its first segment as printed in tables.
func findJob(ctx context.Context, cfg *config.Config, saved model.SavedJobStore, logger *slog.Logger, id string) (model.Job, error) {
	snapshots, err := saved.SavedJobs()
	if err != nil {
		return model.Job{}, err
	}
	for _, s := range snapshots {
		if matchesID(s.Job.ID, id) {
			return s.Job, nil
		}
	}

	jobs, err := fetchJobs(ctx, cfg, logger)
	if err != nil {
		return model.Job{}, feedError(logger, err)
	}
	for _, j := range jobs {
		if matchesID(j.ID, id) {
			return j, nil
		}
	}
	return model.Job{}, fmt.Errorf("no job with id %q in the feed or saved jobs", id)
}

func matchesID(jobID, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return false
	}
	return jobID == query || (len(query) >= 8 && strings.HasPrefix(jobID, query))
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
