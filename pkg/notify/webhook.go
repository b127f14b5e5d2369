package notify

import (
	"encoding/json"
	"fmt"

	"github.com/queuewatch/go-queuewatch/internal/httpc"
)

// WebhookSink POSTs each alert event as JSON to a fixed URL.
type WebhookSink struct {
	url string
}

// NewWebhookSink creates a webhook sink.
func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{url: url}
}

// Publish delivers one event.
func (w *WebhookSink) Publish(ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	resp, err := httpc.Post(w.url, "application/json", body)
	if err != nil {
		return fmt.Errorf("notify: webhook post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify: webhook returned %d", resp.StatusCode)
	}
	return nil
}

// Close is a no-op; the shared HTTP client owns the connections.
func (w *WebhookSink) Close() error { return nil }
