package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/queuewatch/go-queuewatch/pkg/queue"
)

// mockSink records all published events for testing
type mockSink struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

func (m *mockSink) Publish(ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *mockSink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockSink) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func (m *mockSink) snapshot() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// waitFor polls until the sink has seen n events or the deadline hits.
func waitFor(t *testing.T, sink *mockSink, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for sink.count() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d events, have %d", n, sink.count())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNotifier_ForwardsAlerts(t *testing.T) {
	sink := &mockSink{}
	n := NewNotifier(sink)
	defer n.Close()

	at := time.Unix(1000, 0)
	n.PublishResult(queue.FrameResult{
		At: at,
		DwellAlerts: []queue.DwellAlert{
			{ID: "a", Dwell: 6 * time.Second, At: at},
		},
		CongestionAlerts: []queue.CongestionAlert{
			{InsideCount: 5, At: at},
		},
	})

	waitFor(t, sink, 2)
	events := sink.snapshot()

	if events[0].Type != "dwell" || events[0].ID != "a" || events[0].Dwell != 6*time.Second {
		t.Errorf("dwell event: got %+v", events[0])
	}
	if events[1].Type != "congestion" || events[1].InsideCount != 5 {
		t.Errorf("congestion event: got %+v", events[1])
	}
}

func TestNotifier_QuietFrameSendsNothing(t *testing.T) {
	sink := &mockSink{}
	n := NewNotifier(sink)
	defer n.Close()

	n.PublishResult(queue.FrameResult{At: time.Unix(1000, 0), InsideCount: 2})

	time.Sleep(50 * time.Millisecond)
	if got := sink.count(); got != 0 {
		t.Errorf("events for alert-free frame: got %d, want 0", got)
	}
}

func TestNotifier_CloseClosesSinks(t *testing.T) {
	sink := &mockSink{}
	n := NewNotifier(sink)

	if err := n.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !sink.closed {
		t.Errorf("sink not closed")
	}
}
