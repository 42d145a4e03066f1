package ws

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// Client is one live websocket connection of one user. The connection id is
// what the presence registry hands out to the notifier.
type Client struct {
	ID     string
	UserID uuid.UUID

	logger *zap.Logger
	conn   *websocket.Conn
	send   chan []byte
}

func NewClient(logger *zap.Logger, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		logger: logger,
		conn:   conn,
		send:   make(chan []byte, 64),
	}
}

// ReadPump drains inbound frames (the notification channel is one-way; the
// client only keeps the connection alive) and fires cleanup when the peer
// goes away.
func (c *Client) ReadPump(cleanup func()) {
	defer func() {
		cleanup()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Sugar().Debugf("client(%s) read error: %s", c.ID, err.Error())
			}
			return
		}
	}
}

// WritePump flushes queued payloads and keeps the connection alive with
// pings. It exits when the hub closes the send channel or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Sugar().Debugf("client(%s) write error: %s", c.ID, err.Error())
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
