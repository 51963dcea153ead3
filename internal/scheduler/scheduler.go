// Package scheduler drives watch mode: it polls on a fixed interval until
// the context is cancelled.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Poller is one unit of work run on every tick.
type Poller interface {
	Poll(ctx context.Context) error
}

// Scheduler owns the main loop: ticks on an interval and runs each poller sequentially.
type Scheduler struct {
	pollers  []Poller
	interval time.Duration
	pause    time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that runs all pollers every interval.
// pause is the gap between two pollers within one cycle.
func NewScheduler(pollers []Poller, interval, pause time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		pollers:  pollers,
		interval: interval,
		pause:    pause,
		logger:   logger,
	}
}

// Run starts the polling loop. It runs one immediate cycle, then ticks on the
// configured interval. It returns nil when ctx is cancelled (graceful shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler",
		"interval", s.interval.String(),
		"pollers", len(s.pollers),
	)

	s.pollAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-ticker.C:
			s.pollAll(ctx)
		}
	}
}

// pollAll runs Poll on each poller in order. A failing poller is logged and
// does not stop the others.
func (s *Scheduler) pollAll(ctx context.Context) {
	for i, p := range s.pollers {
		if ctx.Err() != nil {
			return
		}

		if err := p.Poll(ctx); err != nil {
			s.logger.Error("poll failed", "poller", i, "error", err)
		}

		if i < len(s.pollers)-1 && s.pause > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.pause):
			}
		}
	}
}
