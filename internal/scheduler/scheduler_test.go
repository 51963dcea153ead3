package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// --- Mock implementations ---

type CountingPoller struct {
	calls atomic.Int32
}

func (p *CountingPoller) Poll(_ context.Context) error {
	p.calls.Add(1)
	return nil
}

type ErrorPoller struct {
	calls atomic.Int32
}

func (p *ErrorPoller) Poll(_ context.Context) error {
	p.calls.Add(1)
	return errors.New("fetch failed")
}

// OrderRecordingPoller appends its id to recorder.order on each Poll call.
type OrderRecordingPoller struct {
	id       string
	recorder *orderRecorder
}

type orderRecorder struct {
	mu    sync.Mutex
	order []string
}

func (p *OrderRecordingPoller) Poll(_ context.Context) error {
	p.recorder.mu.Lock()
	p.recorder.order = append(p.recorder.order, p.id)
	p.recorder.mu.Unlock()
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// runFor runs s until d has elapsed, then cancels and waits for Run to return.
func runFor(t *testing.T, s *Scheduler, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	time.Sleep(d)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error on cancel, got: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not return within 2s after cancel")
	}
}

// --- Tests ---

func TestRun_CancelReturnsPromptly(t *testing.T) {
	s := NewScheduler([]Poller{&CountingPoller{}}, time.Hour, time.Minute, discardLogger())
	runFor(t, s, 100*time.Millisecond)
}

func TestRun_PollsEveryInterval(t *testing.T) {
	p := &CountingPoller{}
	s := NewScheduler([]Poller{p}, 100*time.Millisecond, 0, discardLogger())

	// Immediate poll, then at least one tick.
	runFor(t, s, 250*time.Millisecond)

	if got := p.calls.Load(); got < 2 {
		t.Errorf("poll calls = %d, want >= 2", got)
	}
}

func TestRun_OnePollerErrorOthersStillRun(t *testing.T) {
	failing := &ErrorPoller{}
	healthy := &CountingPoller{}
	s := NewScheduler([]Poller{failing, healthy}, time.Hour, 0, discardLogger())

	runFor(t, s, 150*time.Millisecond)

	if got := failing.calls.Load(); got != 1 {
		t.Errorf("failing poller calls = %d, want 1", got)
	}
	if got := healthy.calls.Load(); got != 1 {
		t.Errorf("healthy poller calls = %d, want 1", got)
	}
}

func TestRun_PauseBetweenPollers(t *testing.T) {
	rec := &orderRecorder{}
	first := &OrderRecordingPoller{id: "first", recorder: rec}
	second := &OrderRecordingPoller{id: "second", recorder: rec}
	s := NewScheduler([]Poller{first, second}, time.Hour, 200*time.Millisecond, discardLogger())

	runFor(t, s, 80*time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.order) != 1 || rec.order[0] != "first" {
		t.Errorf("poll order = %v, want only [first] before the pause ends", rec.order)
	}
}

func TestRun_OrderPreserved(t *testing.T) {
	rec := &orderRecorder{}
	var pollers []Poller
	for _, id := range []string{"a", "b", "c"} {
		pollers = append(pollers, &OrderRecordingPoller{id: id, recorder: rec})
	}
	s := NewScheduler(pollers, time.Hour, 0, discardLogger())

	runFor(t, s, 100*time.Millisecond)

	rec.mu.Lock()
	order := append([]string(nil), rec.order...)
	rec.mu.Unlock()

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("poll order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("poll order = %v, want %v", order, want)
			break
		}
	}
}
