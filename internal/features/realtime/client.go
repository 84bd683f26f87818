package realtime

import (
	"log/slog"
	"sync"
	"time"

	users_models "huddle/internal/features/users/models"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxInboundMessageSize = 16 * 1024
	outboundQueueSize     = 64

	// inbound events per second per connection; a burst covers a client
	// re-joining several rooms right after reconnect
	inboundEventsPerSecond = 20
	inboundEventsBurst     = 40
)

// Client is one websocket connection bound to an authenticated user.
// A single writer goroutine drains the outbound queue so that broadcast
// order is preserved per subscriber.
type Client struct {
	conn    *websocket.Conn
	user    *users_models.User
	send    chan []byte
	limiter *rate.Limiter
	logger  *slog.Logger

	closeOnce sync.Once
}

func NewClient(conn *websocket.Conn, user *users_models.User, logger *slog.Logger) *Client {
	return &Client{
		conn:    conn,
		user:    user,
		send:    make(chan []byte, outboundQueueSize),
		limiter: rate.NewLimiter(rate.Limit(inboundEventsPerSecond), inboundEventsBurst),
		logger:  logger,
	}
}

func (c *Client) User() *users_models.User {
	return c.user
}

// Send queues a payload for delivery. Returns false when the outbound
// queue is full or the connection is closed; the hub then drops the
// connection instead of blocking a broadcast on one slow consumer.
func (c *Client) Send(payload []byte) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	select {
	case c.send <- payload:
		return true
	default:
		c.logger.Warn("dropping slow websocket consumer",
			slog.String("userId", c.user.ID.String()))
		return false
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// WritePump is the single writer for this connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, isOpen := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !isOpen {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump feeds inbound events to the handler until the connection
// drops. Events past the rate limit are discarded.
func (c *Client) ReadPump(handle func(*Client, []byte)) {
	c.conn.SetReadLimit(maxInboundMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		if !c.limiter.Allow() {
			c.logger.Warn("inbound event rate limit exceeded",
				slog.String("userId", c.user.ID.String()))
			continue
		}

		handle(c, raw)
	}
}
