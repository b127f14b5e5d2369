package notify

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/queuewatch/go-queuewatch/internal/log"
)

const (
	wsWriteTimeout     = 10 * time.Second
	reconnectBaseDelay = 1 * time.Second
	reconnectMaxDelay  = 30 * time.Second
)

// WSSink pushes alert events over a websocket connection to an
// external collector, reconnecting with exponential backoff when the
// connection drops.
type WSSink struct {
	url string

	mu     sync.Mutex
	conn   *websocket.Conn
	delay  time.Duration
	closed bool
}

// NewWSSink creates a sink for the given ws:// or wss:// URL. The
// first dial happens lazily on the first Publish.
func NewWSSink(url string) *WSSink {
	return &WSSink{url: url, delay: reconnectBaseDelay}
}

// Publish delivers one event, dialing or redialing as needed.
func (s *WSSink) Publish(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("notify: ws sink closed")
	}

	if s.conn == nil {
		if err := s.dial(); err != nil {
			return err
		}
	}

	s.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		// Drop the connection; the next Publish redials after backoff.
		s.conn.Close()
		s.conn = nil
		return fmt.Errorf("notify: ws write: %w", err)
	}
	return nil
}

// dial connects with backoff state. Caller holds the mutex.
func (s *WSSink) dial() error {
	conn, _, err := websocket.DefaultDialer.Dial(s.url, nil)
	if err != nil {
		delay := s.delay
		s.delay *= 2
		if s.delay > reconnectMaxDelay {
			s.delay = reconnectMaxDelay
		}
		time.Sleep(delay)
		return fmt.Errorf("notify: ws dial %s: %w", s.url, err)
	}

	s.conn = conn
	s.delay = reconnectBaseDelay
	log.Info("notify websocket connected", "url", s.url)
	return nil
}

// Close shuts the connection down.
func (s *WSSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.conn != nil {
		err := s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		s.conn.Close()
		s.conn = nil
		return err
	}
	return nil
}
