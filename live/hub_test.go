package live

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, room string) *Client {
	return &Client{
		Hub:  hub,
		Send: make(chan []byte, 4),
		Room: room,
	}
}

func registerAndWait(t *testing.T, hub *Hub, c *Client) {
	t.Helper()
	select {
	case hub.Register <- c:
	case <-time.After(time.Second):
		t.Fatal("hub did not accept registration")
	}
	// Даём циклу хаба завершить вставку в комнату.
	time.Sleep(10 * time.Millisecond)
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func TestRoomName(t *testing.T) {
	assert.Equal(t, "tournament_42", RoomName(42))
}

func TestBroadcastReachesOnlySubscribedRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	subscriber := newTestClient(hub, RoomName(1))
	other := newTestClient(hub, RoomName(2))
	registerAndWait(t, hub, subscriber)
	registerAndWait(t, hub, other)

	hub.BroadcastTournamentUpdate(1, map[string]interface{}{
		"type":         "TOURNAMENT_UPDATED",
		"joined_count": 4,
	})

	msg := receive(t, subscriber)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(msg, &payload))
	assert.Equal(t, "TOURNAMENT_UPDATED", payload["type"])
	assert.EqualValues(t, 4, payload["joined_count"])

	select {
	case unexpected := <-other.Send:
		t.Fatalf("client in another room received %s", unexpected)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastToEmptyRoomIsNoop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Не должно паниковать и блокироваться.
	hub.BroadcastTournamentUpdate(99, map[string]interface{}{"type": "TOURNAMENT_UPDATED"})
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, RoomName(1))
	registerAndWait(t, hub, client)

	hub.Unregister <- client

	select {
	case _, open := <-client.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}

	// Рассылка после отписки не должна паниковать записью в закрытый канал.
	hub.BroadcastTournamentUpdate(1, map[string]interface{}{"type": "TOURNAMENT_UPDATED"})
}

func TestBroadcastSkipsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := &Client{Hub: hub, Send: make(chan []byte), Room: RoomName(1)} // без буфера, никто не читает
	fast := newTestClient(hub, RoomName(1))
	registerAndWait(t, hub, slow)
	registerAndWait(t, hub, fast)

	hub.BroadcastTournamentUpdate(1, map[string]interface{}{"type": "TOURNAMENT_UPDATED"})

	receive(t, fast)
}
