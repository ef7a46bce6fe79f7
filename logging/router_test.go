package logging

import (
	"context"
	"sync"
	"testing"
	"time"
)

type captureSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *captureSink) Write(event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) Close(context.Context) error { return nil }

func (s *captureSink) snapshot() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition never became true")
}

func TestRouterDeliversToSinks(t *testing.T) {
	sink := &captureSink{}
	router, err := NewRouter(nil, DefaultConfig(), []NamedSink{{Name: "capture", Sink: sink}})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	router.Publish(context.Background(), Event{
		Type:     "simulation.test",
		Tick:     3,
		Severity: SeverityInfo,
	})

	waitFor(t, func() bool { return len(sink.snapshot()) == 1 })
	got := sink.snapshot()[0]
	if got.Type != "simulation.test" || got.Tick != 3 {
		t.Fatalf("unexpected event: %+v", got)
	}
	if got.Time.IsZero() {
		t.Fatalf("router did not stamp a timestamp")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestRouterFiltersBySeverity(t *testing.T) {
	sink := &captureSink{}
	cfg := DefaultConfig()
	cfg.MinimumSeverity = SeverityWarn
	router, err := NewRouter(nil, cfg, []NamedSink{{Name: "capture", Sink: sink}})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	router.Publish(context.Background(), Event{Type: "a", Severity: SeverityDebug})
	router.Publish(context.Background(), Event{Type: "b", Severity: SeverityError})

	waitFor(t, func() bool { return len(sink.snapshot()) == 1 })
	if got := sink.snapshot()[0]; got.Type != "b" {
		t.Fatalf("severity filter passed the wrong event: %+v", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	router.Close(ctx)
}

func TestRouterIgnoresUntypedAndClosed(t *testing.T) {
	sink := &captureSink{}
	router, err := NewRouter(nil, DefaultConfig(), []NamedSink{{Name: "capture", Sink: sink}})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	router.Publish(context.Background(), Event{Severity: SeverityError})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	router.Close(ctx)

	router.Publish(context.Background(), Event{Type: "late", Severity: SeverityError})
	if stats := router.Stats(); stats.EventsTotal != 0 {
		t.Fatalf("expected no routed events, got %d", stats.EventsTotal)
	}
}

func TestEventCloneIsIndependent(t *testing.T) {
	original := Event{Type: "x", Targets: []EntityRef{{ID: "1"}}}.WithExtra("k", 1)
	copied := original.clone()

	copied.Extra["k"] = 2
	copied.Targets[0].ID = "9"

	if original.Extra["k"] != 1 {
		t.Fatalf("clone shares the extra map with the original")
	}
	if original.Targets[0].ID != "1" {
		t.Fatalf("clone shares the targets slice with the original")
	}
}
