package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 30 * time.Second
	maxMessageSize = 8192
)

// Message is the envelope every live channel frame uses.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// Handler consumes the payload of one event type.
type Handler func(payload json.RawMessage)

// Channel is a client connection to the backend's live broadcaster. It is
// opened for the duration of one view and torn down on unmount; there is
// no reconnect policy for transient disconnects.
type Channel struct {
	conn     *websocket.Conn
	send     chan []byte
	mu       sync.Mutex
	handlers map[string]Handler
	done     chan struct{}
	closed   bool
	log      logrus.FieldLogger
}

// Dial opens the live channel. The url may be the backend's http(s) base;
// the scheme is rewritten to ws(s).
func Dial(ctx context.Context, url string, log logrus.FieldLogger) (*Channel, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	wsURL := toWebsocketURL(url)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial live channel %s: %w", wsURL, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	ch := &Channel{
		conn:     conn,
		send:     make(chan []byte, 16),
		handlers: make(map[string]Handler),
		done:     make(chan struct{}),
		log:      log,
	}
	go ch.readPump()
	go ch.writePump()
	return ch, nil
}

func toWebsocketURL(url string) string {
	switch {
	case strings.HasPrefix(url, "https://"):
		return "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		return "ws://" + strings.TrimPrefix(url, "http://")
	default:
		return url
	}
}

// On registers the handler for one event type. Handlers run on the read
// pump goroutine, so they must not block.
func (c *Channel) On(eventType string, fn Handler) {
	c.mu.Lock()
	c.handlers[eventType] = fn
	c.mu.Unlock()
}

// Emit sends one event to the backend.
func (c *Channel) Emit(eventType string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}
	frame, err := json.Marshal(Message{
		Type:      eventType,
		Payload:   raw,
		Timestamp: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s frame: %w", eventType, err)
	}

	select {
	case c.send <- frame:
		return nil
	case <-c.done:
		return fmt.Errorf("live channel is closed")
	}
}

// Done is closed when the channel shuts down, cleanly or not.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Close tears the channel down. Safe to call more than once.
func (c *Channel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	deadline := time.Now().Add(writeWait)
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return c.conn.Close()
}

func (c *Channel) readPump() {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("live channel read failed")
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.log.WithError(err).Warn("dropping malformed live channel frame")
			continue
		}

		c.mu.Lock()
		handler, ok := c.handlers[msg.Type]
		c.mu.Unlock()
		if !ok {
			c.log.WithField("type", msg.Type).Debug("no handler for live channel event")
			continue
		}
		handler(msg.Payload)
	}
}

func (c *Channel) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.log.WithError(err).Warn("live channel write failed")
				c.Close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}
