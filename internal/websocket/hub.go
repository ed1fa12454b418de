// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

// Package websocket implements the realtime chat relay: a hub of
// ephemeral rooms keyed by chat id. Clients join a room and chat events
// are re-broadcast to the other members. The relay persists nothing and
// performs no authorization beyond the token checked at upgrade time;
// message persistence happens on the HTTP path through the chat
// service.
package websocket

import (
	"context"
	"sync"

	"github.com/commune-social/commune/internal/logging"
	"github.com/commune-social/commune/internal/metrics"
)

// Relay event names. These match the payloads clients send and receive.
const (
	EventJoinChat      = "join chat"
	EventChatMessage   = "chat message"
	EventUpdateMessage = "update message"
	EventDeleteMessage = "delete message"
)

// Message is the wire shape of every relay event.
type Message struct {
	Event     string `json:"event"`
	ChatID    string `json:"chatId"`
	SenderID  string `json:"senderId,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	Content   string `json:"content,omitempty"`
}

// inbound pairs a relay event with the client that sent it, so the hub
// can exclude the sender from new-message fan-out.
type inbound struct {
	client *Client
	msg    Message
}

// Hub tracks connected clients and their room memberships and fans
// chat events out to rooms. All state is owned by the run loop; the
// mutex only guards the read paths used by tests and metrics.
type Hub struct {
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool

	Register   chan *Client
	Unregister chan *Client
	relay      chan inbound

	// done is closed on shutdown. Client pumps select on it so their
	// Unregister and relay sends cannot block once the run loop has
	// stopped draining.
	done chan struct{}

	mu sync.RWMutex
}

// NewHub creates an empty hub. Call Serve to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		relay:      make(chan inbound, 256),
		done:       make(chan struct{}),
	}
}

// Serve runs the hub until the context is canceled. The signature
// satisfies suture's Service interface so the hub can run supervised.
//
// Lifecycle events are drained before relay events: client state is
// always settled before a message fans out.
func (h *Hub) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case in := <-h.relay:
			h.dispatch(in)
		}
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()
	metrics.TrackWebsocketConnection(true)
	logging.Info().Str("user_id", c.userID).Int("total_clients", total).Msg("websocket client connected")
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	for chatID, room := range h.rooms {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, chatID)
		}
	}
	total := len(h.clients)
	h.mu.Unlock()
	close(c.send)
	metrics.TrackWebsocketConnection(false)
	logging.Info().Str("user_id", c.userID).Int("total_clients", total).Msg("websocket client disconnected")
}

// dispatch routes one inbound event. Join adds the sender to the room;
// new messages go to everyone else in the room; updates and deletes go
// to the whole room so the sender's other devices converge too.
func (h *Hub) dispatch(in inbound) {
	if in.msg.ChatID == "" {
		return
	}

	switch in.msg.Event {
	case EventJoinChat:
		h.joinRoom(in.msg.ChatID, in.client)
	case EventChatMessage:
		h.broadcast(in.msg, in.client)
		metrics.RecordRelayedEvent(EventChatMessage)
	case EventUpdateMessage:
		h.broadcast(in.msg, nil)
		metrics.RecordRelayedEvent(EventUpdateMessage)
	case EventDeleteMessage:
		h.broadcast(in.msg, nil)
		metrics.RecordRelayedEvent(EventDeleteMessage)
	default:
		logging.Debug().Str("event", in.msg.Event).Msg("ignoring unknown relay event")
	}
}

func (h *Hub) joinRoom(chatID string, c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[chatID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[chatID] = room
	}
	room[c] = true
	h.mu.Unlock()
	logging.Debug().Str("chat_id", chatID).Str("user_id", c.userID).Msg("client joined chat room")
}

// broadcast fans msg out to the room, skipping exclude when non-nil.
// Slow clients are dropped rather than blocking the loop.
func (h *Hub) broadcast(msg Message, exclude *Client) {
	h.mu.RLock()
	room := h.rooms[msg.ChatID]
	members := make([]*Client, 0, len(room))
	for c := range room {
		if c != exclude {
			members = append(members, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range members {
		select {
		case c.send <- msg:
		default:
			metrics.WebsocketMessagesDropped.Inc()
			logging.Warn().Str("chat_id", msg.ChatID).Str("user_id", c.userID).
				Msg("dropping event for slow websocket client")
		}
	}
}

func (h *Hub) shutdown(ctx context.Context) {
	close(h.done)

	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*Client]bool)
	h.rooms = make(map[string]map[*Client]bool)
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
		metrics.TrackWebsocketConnection(false)
	}

	reason := "context_canceled"
	if ctx.Err() == context.DeadlineExceeded {
		reason = "context_deadline"
	}
	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", reason).
		Int("clients_closed", len(clients)).
		Msg("websocket hub stopped")
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomSize reports the number of clients joined to a chat room.
func (h *Hub) RoomSize(chatID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[chatID])
}
