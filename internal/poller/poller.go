// Package poller runs one watch-mode cycle against the job feed.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amishk599/jobboard/internal/model"
)

// SeenRetention is how long a seen job ID is remembered before cleanup.
const SeenRetention = 30 * 24 * time.Hour

// FeedPoller owns the full poll pipeline for one feed:
// fetch → filter → dedup → notify → mark seen.
type FeedPoller struct {
	Name     string
	fetcher  model.JobFetcher
	filter   model.JobFilter
	store    model.JobStore
	notifier model.Notifier
	logger   *slog.Logger
}

// NewFeedPoller creates a poller wired with all its dependencies.
func NewFeedPoller(
	name string,
	fetcher model.JobFetcher,
	filter model.JobFilter,
	store model.JobStore,
	notifier model.Notifier,
	logger *slog.Logger,
) *FeedPoller {
	return &FeedPoller{
		Name:     name,
		fetcher:  fetcher,
		filter:   filter,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Poll runs one poll cycle. When the store is empty the matches are only
// recorded, so the first run does not flood the notifier with the backlog.
// Every fetched job is marked seen, matched or not, so an empty store means
// nothing was ever fetched rather than nothing ever matched.
func (p *FeedPoller) Poll(ctx context.Context) error {
	jobs, err := p.fetcher.FetchJobs(ctx)
	if err != nil {
		return fmt.Errorf("polling %s: %w", p.Name, err)
	}

	firstRun, err := p.store.IsEmpty()
	if err != nil {
		return fmt.Errorf("polling %s: %w", p.Name, err)
	}

	var unseen, newJobs []model.Job
	matched := 0
	for _, job := range jobs {
		seen, err := p.store.HasSeen(job.ID)
		if err != nil {
			return fmt.Errorf("polling %s: checking seen status: %w", p.Name, err)
		}
		isMatch := p.filter.Match(job)
		if isMatch {
			matched++
		}
		if seen {
			continue
		}
		unseen = append(unseen, job)
		if isMatch {
			newJobs = append(newJobs, job)
		}
	}

	if firstRun {
		p.logger.Info("first run, seeding seen jobs without notifying", "feed", p.Name, "count", len(unseen))
	} else if len(newJobs) > 0 {
		if err := p.notifier.Notify(newJobs); err != nil {
			return fmt.Errorf("polling %s: notifying: %w", p.Name, err)
		}
	}

	for _, job := range unseen {
		if err := p.store.MarkSeen(job.ID); err != nil {
			return fmt.Errorf("polling %s: marking seen: %w", p.Name, err)
		}
	}

	if err := p.store.Cleanup(SeenRetention); err != nil {
		p.logger.Warn("seen cleanup failed", "feed", p.Name, "error", err)
	}

	p.logger.Info("polled feed",
		"feed", p.Name,
		"fetched", len(jobs),
		"matched", matched,
		"new", len(newJobs),
		"seeded", firstRun,
	)
	return nil
}
