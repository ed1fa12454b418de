// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package websocket

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/commune-social/commune/internal/logging"
	"github.com/commune-social/commune/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // 64 KB, well above the 5000-char message cap
)

var clientIDCounter atomic.Uint64

// Client is the middleman between one websocket connection and the hub.
// Inbound events are throttled per connection before they reach the
// relay loop.
type Client struct {
	id      uint64
	userID  string
	hub     *Hub
	conn    *websocket.Conn
	send    chan Message
	limiter *rate.Limiter
}

// NewClient wraps an upgraded connection for the authenticated user.
// messageRate is events per second, burst the allowed spike.
func NewClient(hub *Hub, conn *websocket.Conn, userID string, messageRate float64, burst int) *Client {
	return &Client{
		id:      clientIDCounter.Add(1),
		userID:  userID,
		hub:     hub,
		conn:    conn,
		send:    make(chan Message, 256),
		limiter: rate.NewLimiter(rate.Limit(messageRate), burst),
	}
}

// ID returns the client's unique identifier.
func (c *Client) ID() uint64 {
	return c.id
}

// UserID returns the authenticated account id behind the connection.
func (c *Client) UserID() string {
	return c.userID
}

// readPump forwards inbound relay events to the hub until the
// connection closes, enforcing the per-connection rate limit.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.Unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error().Err(err).Msg("unexpected websocket close error")
			}
			break
		}

		if !c.limiter.Allow() {
			metrics.WebsocketMessagesThrottled.Inc()
			logging.Warn().Str("user_id", c.userID).Msg("throttling websocket client")
			continue
		}

		msg.SenderID = c.userID
		select {
		case c.hub.relay <- inbound{client: c, msg: msg}:
		case <-c.hub.done:
			return
		}
	}
}

// writePump delivers hub events to the connection and keeps it alive
// with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				logging.Error().Err(err).Msg("failed to write relay event")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline for ping")
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start begins the read and write loops.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
