package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/hexbounce/hexbounce/engine"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubSendsHello(t *testing.T) {
	hub := NewHub(nil)
	conn := dialHub(t, hub)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var hello HelloMessage
	require.NoError(t, json.Unmarshal(data, &hello))
	require.Equal(t, TypeHello, hello.Type)
	require.NotEmpty(t, hello.ClientID)
}

func TestHubBroadcastsFrames(t *testing.T) {
	hub := NewHub(nil)
	conn := dialHub(t, hub)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage() // hello
	require.NoError(t, err)

	snap := engine.Snapshot{Tick: 42}
	hub.Broadcast(FrameMessage{Type: TypeFrame, Snapshot: snap})

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame FrameMessage
	require.NoError(t, json.Unmarshal(data, &frame))
	require.Equal(t, TypeFrame, frame.Type)
	require.Equal(t, uint64(42), frame.Snapshot.Tick)
}

func TestHubDropsDisconnectedClients(t *testing.T) {
	hub := NewHub(nil)
	conn := dialHub(t, hub)

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)

	// Broadcasting into an empty hub is a no-op, not a panic
	hub.Broadcast(FrameMessage{Type: TypeFrame})
}
