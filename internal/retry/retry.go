// Package retry wraps a JobFetcher with bounded exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/amishk599/jobboard/internal/model"
)

// maxDelay caps a single backoff sleep, including server-provided Retry-After.
const maxDelay = 2 * time.Minute

// Ensure RetryFetcher implements model.JobFetcher.
var _ model.JobFetcher = (*RetryFetcher)(nil)

// RetryFetcher is a decorator that retries transient feed failures with
// exponential backoff and jitter before delegating to the wrapped JobFetcher.
type RetryFetcher struct {
	inner      model.JobFetcher
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// NewRetryFetcher wraps a JobFetcher with retry logic.
// maxRetries is the number of additional attempts after the first failure.
// baseDelay is the delay before the first retry, doubled on each subsequent retry.
func NewRetryFetcher(inner model.JobFetcher, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *RetryFetcher {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryFetcher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// FetchJobs fetches the feed, retrying while the failure is transient.
// The last error is returned unchanged so callers can classify it with model.Kind.
func (f *RetryFetcher) FetchJobs(ctx context.Context) ([]model.Job, error) {
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			delay := f.backoffDelay(attempt, lastErr)
			f.logger.Warn("retrying feed fetch",
				"attempt", attempt,
				"max_retries", f.maxRetries,
				"delay", delay,
				"kind", model.Kind(lastErr).String(),
				"error", lastErr,
			)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
			case <-timer.C:
			}
		}

		jobs, err := f.inner.FetchJobs(ctx)
		if err == nil {
			return jobs, nil
		}
		if !IsRetryable(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// A Retry-After from the server takes precedence.
func (f *RetryFetcher) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return min(httpErr.RetryAfter, maxDelay)
	}

	delay := f.baseDelay
	for i := 1; i < attempt && delay < maxDelay; i++ {
		delay *= 2
	}

	jitter := float64(delay) * 0.3
	delay = time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
	return min(delay, maxDelay)
}

// IsRetryable reports whether err is a transient feed failure worth retrying.
// Timeouts and connection failures are retried, as are 429 and 5xx responses.
// Caller cancellation, other 4xx statuses and malformed payloads are not.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	// Checked before DeadlineExceeded: a client timeout wraps both.
	if errors.Is(err, model.ErrNetworkTimeout) || errors.Is(err, model.ErrNoResponse) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}

	if errors.Is(err, model.ErrUnknown) {
		return false
	}
	return true
}
