// Package notify forwards alert events to external sinks: a webhook
// endpoint or a websocket collector. Delivery is asynchronous and
// best-effort; the frame loop never blocks on a slow sink.
package notify

import (
	"time"

	"github.com/queuewatch/go-queuewatch/internal/log"
	"github.com/queuewatch/go-queuewatch/pkg/queue"
)

// Event is one alert pushed to external sinks.
type Event struct {
	Type        string        `json:"type"` // "dwell" or "congestion"
	At          time.Time     `json:"at"`
	ID          string        `json:"id,omitempty"`
	Dwell       time.Duration `json:"dwell,omitempty"`
	InsideCount int           `json:"inside_count,omitempty"`
}

// Sink delivers events somewhere external.
type Sink interface {
	Publish(Event) error
	Close() error
}

// Notifier fans alert events out to sinks from a dedicated goroutine.
type Notifier struct {
	sinks  []Sink
	events chan Event
	done   chan struct{}
}

// NewNotifier starts a notifier over the given sinks. A nil or empty
// sink list yields a notifier that drops everything, which keeps the
// call sites unconditional.
func NewNotifier(sinks ...Sink) *Notifier {
	n := &Notifier{
		sinks:  sinks,
		events: make(chan Event, 256),
		done:   make(chan struct{}),
	}
	go n.run()
	return n
}

// PublishResult queues the alert events from one frame result.
func (n *Notifier) PublishResult(res queue.FrameResult) {
	for _, da := range res.DwellAlerts {
		n.publish(Event{Type: "dwell", At: da.At, ID: da.ID, Dwell: da.Dwell})
	}
	for _, ca := range res.CongestionAlerts {
		n.publish(Event{Type: "congestion", At: ca.At, InsideCount: ca.InsideCount})
	}
}

// publish enqueues without blocking; a full queue drops the event.
func (n *Notifier) publish(ev Event) {
	select {
	case n.events <- ev:
	default:
		log.Warn("notify queue full, dropping event", "type", ev.Type)
	}
}

func (n *Notifier) run() {
	for {
		select {
		case ev := <-n.events:
			for _, s := range n.sinks {
				if err := s.Publish(ev); err != nil {
					log.Warn("notify sink failed", "type", ev.Type, "err", err)
				}
			}
		case <-n.done:
			return
		}
	}
}

// Close stops the notifier and closes all sinks.
func (n *Notifier) Close() error {
	close(n.done)
	var firstErr error
	for _, s := range n.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
