package realtime

import (
	"chat-relay/domain/event"
	"chat-relay/errors"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Connection wraps a websocket and coordinates outbound writes via a buffered channel.
// It implements contract.EventSink and is safe for concurrent use.
type Connection struct {
	log        *slog.Logger
	ws         *websocket.Conn
	send       chan []byte
	writeWait  time.Duration
	pingPeriod time.Duration

	once      sync.Once
	closing   chan struct{}
	stopped   chan struct{}
	closeCode int
	reason    string
}

// NewConnection pings the peer often enough for its pong to arrive within pongWait.
// writeWait bounds every write to the socket.
func NewConnection(log *slog.Logger, ws *websocket.Conn, bufferSize int, writeWait, pongWait time.Duration) *Connection {
	return &Connection{
		log:        log,
		ws:         ws,
		send:       make(chan []byte, bufferSize),
		writeWait:  writeWait,
		pingPeriod: pongWait * 9 / 10,
		closing:    make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Start launches the write loop. It must be called exactly once per connection.
func (c *Connection) Start() {
	go c.writeLoop()
}

// Consume encodes e and enqueues it without blocking.
func (c *Connection) Consume(_ context.Context, e event.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.Send(payload)
}

// Send enqueues payload for delivery. If the client is slow and the buffer is full,
// the connection is closed to keep backpressure bounded.
func (c *Connection) Send(payload []byte) error {
	select {
	case <-c.closing:
		return errors.ErrConnectionClosed
	default:
	}
	select {
	case c.send <- payload:
		return nil
	default:
		c.Close(websocket.CloseGoingAway, "send buffer full")
		return errors.ErrBufferFull
	}
}

// Close asks the write loop to flush what is queued, send a close frame and
// release the socket.
func (c *Connection) Close(code int, reason string) {
	c.once.Do(func() {
		c.closeCode = code
		c.reason = reason
		close(c.closing)
	})
}

// Done is closed once the socket has been released.
func (c *Connection) Done() <-chan struct{} {
	return c.stopped
}

func (c *Connection) writeLoop() {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
		close(c.stopped)
	}()

	for {
		select {
		case <-c.closing:
			c.flush()
			return
		case msg := <-c.send:
			if err := c.writeMessage(msg); err != nil {
				c.log.Debug("Write failed", "error", err)
				c.Close(websocket.CloseAbnormalClosure, "write failed")
				return
			}
		case <-ticker.C:
			if err := c.writePing(); err != nil {
				c.Close(websocket.CloseAbnormalClosure, "ping failed")
				return
			}
		}
	}
}

func (c *Connection) flush() {
	for {
		select {
		case msg := <-c.send:
			if err := c.writeMessage(msg); err != nil {
				return
			}
		default:
			deadline := time.Now().Add(c.writeWait)
			_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(c.closeCode, c.reason), deadline)
			return
		}
	}
}

func (c *Connection) writeMessage(payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

func (c *Connection) writePing() error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}
