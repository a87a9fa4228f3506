package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, topic string) *Client {
	return &Client{ID: topic + "-client", Topic: topic, Send: make(chan []byte, 4), hub: hub}
}

func receive(t *testing.T, c *Client) ([]byte, bool) {
	t.Helper()
	select {
	case msg, ok := <-c.Send:
		return msg, ok
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for message on %s", c.ID)
		return nil, false
	}
}

func TestHub_PublishReachesOnlySubscribers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	countdown := newTestClient(hub, TopicCountdown)
	other := newTestClient(hub, "other")
	hub.Register <- countdown
	hub.Register <- other

	require.True(t, hub.PublishTo("other", []byte("hello")))
	msg, ok := receive(t, other)
	require.True(t, ok)
	assert.Equal(t, "hello", string(msg))

	require.True(t, hub.PublishTo(TopicCountdown, []byte("tick")))
	msg, ok = receive(t, countdown)
	require.True(t, ok)
	assert.Equal(t, "tick", string(msg))

	select {
	case msg := <-other.Send:
		t.Fatalf("unexpected message for other topic: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newTestClient(hub, TopicCountdown)
	hub.Register <- client
	hub.Unregister <- client

	_, ok := receive(t, client)
	assert.False(t, ok)
}

func TestHub_StopClosesClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, TopicCountdown)
	hub.Register <- client
	hub.Stop()

	_, ok := receive(t, client)
	assert.False(t, ok)
}

func TestHub_AddAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, TopicCountdown)
	require.True(t, hub.Add(client))
	hub.Stop()

	added := make(chan bool, 1)
	go func() { added <- hub.Add(newTestClient(hub, TopicCountdown)) }()
	select {
	case ok := <-added:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Add blocked on a stopped hub")
	}
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage("countdown", map[string]int{"days": 2})
	assert.JSONEq(t, `{"action":"countdown","payload":{"days":2}}`, string(msg))
}
