// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package websocket

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/commune-social/commune/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// setupHub starts a hub for the duration of the test.
func setupHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.Serve(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	time.Sleep(10 * time.Millisecond)
	return hub
}

// testClient builds an in-memory client with no underlying connection.
func testClient(hub *Hub, userID string) *Client {
	return &Client{
		id:     clientIDCounter.Add(1),
		userID: userID,
		hub:    hub,
		send:   make(chan Message, 256),
	}
}

func register(hub *Hub, c *Client) {
	hub.Register <- c
	time.Sleep(10 * time.Millisecond)
}

func join(hub *Hub, c *Client, chatID string) {
	hub.relay <- inbound{client: c, msg: Message{Event: EventJoinChat, ChatID: chatID}}
	time.Sleep(10 * time.Millisecond)
}

func recvMessage(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for relayed event")
		return Message{}
	}
}

func assertNoMessage(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.send:
		t.Fatalf("unexpected event %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := setupHub(t)
	c := testClient(hub, "u1")

	register(hub, c)
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("ClientCount = %d, want 1", got)
	}

	hub.Unregister <- c
	time.Sleep(10 * time.Millisecond)
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("ClientCount after unregister = %d, want 0", got)
	}
	if _, open := <-c.send; open {
		t.Error("send channel not closed on unregister")
	}
}

func TestChatMessageExcludesSender(t *testing.T) {
	hub := setupHub(t)
	sender := testClient(hub, "u1")
	peer := testClient(hub, "u2")
	outsider := testClient(hub, "u3")
	register(hub, sender)
	register(hub, peer)
	register(hub, outsider)

	join(hub, sender, "chat-1")
	join(hub, peer, "chat-1")
	join(hub, outsider, "chat-2")

	hub.relay <- inbound{client: sender, msg: Message{
		Event: EventChatMessage, ChatID: "chat-1", SenderID: "u1", Content: "hello",
	}}

	got := recvMessage(t, peer)
	if got.Content != "hello" || got.SenderID != "u1" {
		t.Errorf("peer received %+v", got)
	}
	assertNoMessage(t, sender)
	assertNoMessage(t, outsider)
}

func TestUpdateAndDeleteReachWholeRoom(t *testing.T) {
	hub := setupHub(t)
	sender := testClient(hub, "u1")
	peer := testClient(hub, "u2")
	register(hub, sender)
	register(hub, peer)
	join(hub, sender, "chat-1")
	join(hub, peer, "chat-1")

	hub.relay <- inbound{client: sender, msg: Message{
		Event: EventUpdateMessage, ChatID: "chat-1", SenderID: "u1", MessageID: "m1", Content: "edited",
	}}
	if got := recvMessage(t, sender); got.Event != EventUpdateMessage {
		t.Errorf("sender got %+v", got)
	}
	if got := recvMessage(t, peer); got.MessageID != "m1" || got.Content != "edited" {
		t.Errorf("peer got %+v", got)
	}

	hub.relay <- inbound{client: sender, msg: Message{
		Event: EventDeleteMessage, ChatID: "chat-1", SenderID: "u1", MessageID: "m1",
	}}
	if got := recvMessage(t, sender); got.Event != EventDeleteMessage {
		t.Errorf("sender got %+v", got)
	}
	if got := recvMessage(t, peer); got.Event != EventDeleteMessage {
		t.Errorf("peer got %+v", got)
	}
}

func TestUnregisterLeavesRooms(t *testing.T) {
	hub := setupHub(t)
	a := testClient(hub, "u1")
	b := testClient(hub, "u2")
	register(hub, a)
	register(hub, b)
	join(hub, a, "chat-1")
	join(hub, b, "chat-1")

	hub.Unregister <- a
	time.Sleep(10 * time.Millisecond)
	if got := hub.RoomSize("chat-1"); got != 1 {
		t.Fatalf("RoomSize = %d, want 1", got)
	}

	hub.Unregister <- b
	time.Sleep(10 * time.Millisecond)
	if got := hub.RoomSize("chat-1"); got != 0 {
		t.Fatalf("empty room not removed, size = %d", got)
	}
}

func TestUnknownEventIgnored(t *testing.T) {
	hub := setupHub(t)
	a := testClient(hub, "u1")
	b := testClient(hub, "u2")
	register(hub, a)
	register(hub, b)
	join(hub, a, "chat-1")
	join(hub, b, "chat-1")

	hub.relay <- inbound{client: a, msg: Message{Event: "typing", ChatID: "chat-1"}}
	assertNoMessage(t, b)
}

func TestServeStopsOnCancel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- hub.Serve(ctx) }()

	c := testClient(hub, "u1")
	register(hub, c)

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not stop on cancel")
	}
	if _, open := <-c.send; open {
		t.Error("client send channel not closed on shutdown")
	}
}
