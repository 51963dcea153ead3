package model

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel fetch failures. Adapters wrap these with %w so callers can use errors.Is.
var (
	ErrNetworkTimeout = errors.New("request timeout")
	ErrNoResponse     = errors.New("no response from server")
	ErrUnknown        = errors.New("failed to fetch jobs")
)

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// ErrorKind is the closed taxonomy of feed failures surfaced to the UI.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetworkTimeout
	KindServerError
	KindNoResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetworkTimeout:
		return "network_timeout"
	case KindServerError:
		return "server_error"
	case KindNoResponse:
		return "no_response"
	default:
		return "unknown"
	}
}

// Kind classifies err into the feed failure taxonomy.
func Kind(err error) ErrorKind {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return KindServerError
	case errors.Is(err, ErrNetworkTimeout):
		return KindNetworkTimeout
	case errors.Is(err, ErrNoResponse):
		return KindNoResponse
	default:
		return KindUnknown
	}
}

// UserMessage renders err as the short message shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch Kind(err) {
	case KindNetworkTimeout:
		return "Request timeout. Please check your internet connection."
	case KindServerError:
		var httpErr *HTTPError
		errors.As(err, &httpErr)
		return fmt.Sprintf("API Error: %d", httpErr.StatusCode)
	case KindNoResponse:
		return "No response from server. Please check your internet connection."
	default:
		return "Failed to fetch jobs. Please try again later."
	}
}

// ErrAlreadyApplied is returned when an application for the job already exists.
var ErrAlreadyApplied = errors.New("already applied to this job")
