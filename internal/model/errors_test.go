package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"timeout", fmt.Errorf("fetch: %w", ErrNetworkTimeout), KindNetworkTimeout},
		{"server error", &HTTPError{StatusCode: 503}, KindServerError},
		{"wrapped server error", fmt.Errorf("fetch: %w", &HTTPError{StatusCode: 404}), KindServerError},
		{"no response", fmt.Errorf("fetch: %w", ErrNoResponse), KindNoResponse},
		{"unknown sentinel", ErrUnknown, KindUnknown},
		{"arbitrary", errors.New("boom"), KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(nil); got != "" {
		t.Errorf("UserMessage(nil) = %q, want empty", got)
	}
	if got := UserMessage(&HTTPError{StatusCode: 502}); got != "API Error: 502" {
		t.Errorf("UserMessage(502) = %q", got)
	}
	if got := UserMessage(ErrNetworkTimeout); got != "Request timeout. Please check your internet connection." {
		t.Errorf("UserMessage(timeout) = %q", got)
	}
	if got := UserMessage(errors.New("x")); got != "Failed to fetch jobs. Please try again later." {
		t.Errorf("UserMessage(unknown) = %q", got)
	}
}

func TestWithSavedState(t *testing.T) {
	jobs := []Job{{ID: "a"}, {ID: "b", IsSaved: true}, {ID: "c"}}
	got := WithSavedState(jobs, map[string]bool{"a": true})

	if !got[0].IsSaved || got[1].IsSaved || got[2].IsSaved {
		t.Errorf("IsSaved = %v %v %v, want true false false", got[0].IsSaved, got[1].IsSaved, got[2].IsSaved)
	}
	if jobs[0].IsSaved || !jobs[1].IsSaved {
		t.Error("input slice was modified")
	}
}
