package web

import (
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/engine"
)

// Conn is one browser session. Reads happen on ReadLoop's goroutine; the
// engine lives on the session's tick goroutine, and the two meet only
// through the mutex-protected request fields.
type Conn struct {
	ID string
	ws *websocket.Conn

	wmu    sync.Mutex // serializes writes
	closed bool

	mu      sync.Mutex
	pending engine.Direction
	restart bool
}

// NewConn wraps an upgraded websocket.
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ID: uuid.New().String(),
		ws: ws,
	}
}

// Send serializes msg to JSON and writes it as a text frame.
func (c *Conn) Send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if c.closed {
		return nil
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Close closes the socket once.
func (c *Conn) Close() {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.ws.Close()
}

// takeDirection returns the last requested direction and clears it.
func (c *Conn) takeDirection() engine.Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.pending
	c.pending = engine.DirNone
	return d
}

// takeRestart reports and clears a pending restart request.
func (c *Conn) takeRestart() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.restart
	c.restart = false
	return r
}

// ReadLoop handles incoming messages until the socket fails or closes.
// Unknown message types and direction tokens are ignored.
func (c *Conn) ReadLoop(logger *log.Logger) {
	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("read error", "session", c.ID, "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Debug("bad message", "session", c.ID, "error", err)
			continue
		}

		switch msg.Type {
		case MsgInput:
			if d := engine.ParseDirection(msg.Dir); d != engine.DirNone {
				c.mu.Lock()
				c.pending = d
				c.mu.Unlock()
			}
		case MsgRestart:
			c.mu.Lock()
			c.restart = true
			c.mu.Unlock()
		}
	}
}
