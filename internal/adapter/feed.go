package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/normalize"
)

// DefaultBaseURL is the public job feed the app reads.
const DefaultBaseURL = "https://empllo.com/api/v1"

// payloadKeys are the object keys searched for the job array when the feed
// does not return a bare array.
var payloadKeys = []string{"jobs", "data"}

// Ensure FeedAdapter implements model.JobFetcher.
var _ model.JobFetcher = (*FeedAdapter)(nil)

// FeedAdapter fetches the public job feed and normalizes every record into
// the canonical Job model.
type FeedAdapter struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewFeedAdapter creates an adapter for the feed rooted at baseURL.
func NewFeedAdapter(baseURL string, client *http.Client, logger *slog.Logger) *FeedAdapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &FeedAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// Host returns the feed's base URL, used as the rate-limit key.
func (a *FeedAdapter) Host() string {
	return a.baseURL
}

// FetchJobs retrieves the feed and normalizes each record, preserving feed order.
func (a *FeedAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	raws, err := a.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}
	return normalize.NormalizeAll(raws), nil
}

// FetchRaw retrieves the undecoded job records. It tries <base>/jobs first
// and falls back to the base URL itself when that request fails.
func (a *FeedAdapter) FetchRaw(ctx context.Context) ([]model.RawJob, error) {
	body, err := a.get(ctx, a.baseURL+"/jobs")
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		a.logger.Debug("jobs endpoint failed, falling back to base url", "error", err)
		body, err = a.get(ctx, a.baseURL)
		if err != nil {
			return nil, err
		}
	}

	records, err := ExtractRecords(body)
	if err != nil {
		return nil, fmt.Errorf("feed fetch for %s: %w", a.baseURL, err)
	}
	a.logger.Debug("feed fetched", "records", len(records))
	return records, nil
}

func (a *FeedAdapter) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed fetch %s: %w: %w", url, model.ErrUnknown, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("feed fetch %s: unexpected status %d", url, resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(url, err)
	}
	return body, nil
}

// classifyTransportError maps a failed round trip onto the feed error
// taxonomy. Caller cancellation is returned as-is.
func classifyTransportError(url string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("feed fetch %s: %w", url, err)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("feed fetch %s: %w: %w", url, model.ErrNetworkTimeout, err)
	}
	return fmt.Errorf("feed fetch %s: %w: %w", url, model.ErrNoResponse, err)
}

// ExtractRecords decodes a feed payload. The payload is either a bare array
// of job objects or an object holding that array under "jobs" or "data".
// Any other shape yields no records. Array elements that are not objects are
// skipped.
func ExtractRecords(body []byte) ([]model.RawJob, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode feed: %w: %w", model.ErrUnknown, err)
	}

	var items []any
	switch v := payload.(type) {
	case []any:
		items = v
	case map[string]any:
		for _, key := range payloadKeys {
			if arr, ok := v[key].([]any); ok {
				items = arr
				break
			}
		}
	}

	records := make([]model.RawJob, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			records = append(records, obj)
		}
	}
	return records, nil
}
