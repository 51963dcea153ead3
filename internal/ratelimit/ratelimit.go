// Package ratelimit spaces out requests to the same feed host.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amishk599/jobboard/internal/model"
)

// HostLimiter enforces a minimum delay between requests to the same host.
// Reservations are made under the lock so concurrent callers queue in order.
type HostLimiter struct {
	mu       sync.Mutex
	next     map[string]time.Time // earliest time the next request may start
	minDelay time.Duration
}

// NewHostLimiter creates a limiter that enforces minDelay between
// consecutive requests to the same host.
func NewHostLimiter(minDelay time.Duration) *HostLimiter {
	return &HostLimiter{
		next:     make(map[string]time.Time),
		minDelay: minDelay,
	}
}

// Wait blocks until a request to host may start. If the context is cancelled
// while waiting the reserved slot is released and ctx.Err() is returned wrapped.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	now := time.Now()
	start := now
	if at, ok := l.next[host]; ok && at.After(now) {
		start = at
	}
	l.next[host] = start.Add(l.minDelay)
	l.mu.Unlock()

	wait := start.Sub(now)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		l.release(host, start)
		return fmt.Errorf("rate limiter wait for %s: %w", host, ctx.Err())
	case <-timer.C:
		return nil
	}
}

// release gives back a reservation that was never used, provided no later
// caller has queued behind it.
func (l *HostLimiter) release(host string, start time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.next[host].Equal(start.Add(l.minDelay)) {
		l.next[host] = start
	}
}

// RateLimitedFetcher is a decorator that waits on a shared HostLimiter
// before delegating to the wrapped JobFetcher.
type RateLimitedFetcher struct {
	inner   model.JobFetcher
	limiter *HostLimiter
	host    string
}

// NewRateLimitedFetcher wraps a JobFetcher with host-level rate limiting.
// All fetchers targeting the same host should share the same limiter instance.
func NewRateLimitedFetcher(inner model.JobFetcher, limiter *HostLimiter, host string) *RateLimitedFetcher {
	return &RateLimitedFetcher{
		inner:   inner,
		limiter: limiter,
		host:    host,
	}
}

// FetchJobs waits for the limiter, then delegates to the wrapped fetcher.
func (f *RateLimitedFetcher) FetchJobs(ctx context.Context) ([]model.Job, error) {
	if err := f.limiter.Wait(ctx, f.host); err != nil {
		return nil, err
	}
	return f.inner.FetchJobs(ctx)
}
