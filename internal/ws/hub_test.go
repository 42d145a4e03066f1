package ws

import (
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func testClient(buffer int) *Client {
	return &Client{
		ID:     uuid.NewString(),
		UserID: uuid.New(),
		logger: zap.NewNop(),
		send:   make(chan []byte, buffer),
	}
}

func TestHubSend(t *testing.T) {
	h := NewHub(zap.NewNop())
	client := testClient(1)
	h.Add(client)

	if !h.Send(client.ID, []byte("hello")) {
		t.Fatalf("Send to a live client returned false")
	}

	select {
	case payload := <-client.send:
		if string(payload) != "hello" {
			t.Fatalf("payload = %q, want %q", payload, "hello")
		}
	default:
		t.Fatalf("payload never reached the client channel")
	}
}

func TestHubSend_UnknownConnection(t *testing.T) {
	h := NewHub(zap.NewNop())

	if h.Send("nope", []byte("hello")) {
		t.Fatalf("Send to an unknown connection returned true")
	}
}

func TestHubSend_FullBufferDrops(t *testing.T) {
	h := NewHub(zap.NewNop())
	client := testClient(1)
	h.Add(client)

	if !h.Send(client.ID, []byte("first")) {
		t.Fatalf("first Send returned false")
	}
	if h.Send(client.ID, []byte("second")) {
		t.Fatalf("Send into a full buffer returned true")
	}

	// The earlier payload is untouched.
	if payload := <-client.send; string(payload) != "first" {
		t.Fatalf("payload = %q, want %q", payload, "first")
	}
}

func TestHubRemove(t *testing.T) {
	h := NewHub(zap.NewNop())
	client := testClient(1)
	h.Add(client)

	h.Remove(client)

	if h.Count() != 0 {
		t.Fatalf("Count after remove = %d, want 0", h.Count())
	}
	if _, open := <-client.send; open {
		t.Fatalf("send channel still open after remove")
	}
	if h.Send(client.ID, []byte("late")) {
		t.Fatalf("Send after remove returned true")
	}
}

func TestHubRemove_ReplacedClient(t *testing.T) {
	h := NewHub(zap.NewNop())
	first := testClient(1)
	h.Add(first)

	second := testClient(1)
	second.ID = first.ID
	h.Add(second)

	// Removing the replaced instance must not tear down its successor.
	h.Remove(first)

	if !h.Send(second.ID, []byte("still here")) {
		t.Fatalf("Send to the replacing client returned false")
	}
}
