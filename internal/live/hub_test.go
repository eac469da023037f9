package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeRoom(w, r, r.URL.Query().Get("room"))
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, room string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?room=" + room
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_BroadcastToRoom(t *testing.T) {
	hub, srv := startHub(t)

	watcher := dial(t, srv, "tournament:5")
	other := dial(t, srv, "tournament:6")
	require.Eventually(t, func() bool {
		return hub.RoomSize("tournament:5") == 1 && hub.RoomSize("tournament:6") == 1
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom("tournament:5", map[string]string{"type": "MATCH_UPDATED"})

	watcher.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := watcher.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"MATCH_UPDATED"}`, string(data))

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = other.ReadMessage()
	assert.Error(t, err, "a different room must not receive the message")
}

func TestHub_LeaveDropsEmptyRoom(t *testing.T) {
	hub, srv := startHub(t)

	conn := dial(t, srv, "tournament:7")
	require.Eventually(t, func() bool { return hub.RoomSize("tournament:7") == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.RoomSize("tournament:7") == 0 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom("tournament:7", "nobody listening")
}

func TestHub_BroadcastUnmarshalable(t *testing.T) {
	hub, srv := startHub(t)

	dial(t, srv, "tournament:8")
	require.Eventually(t, func() bool { return hub.RoomSize("tournament:8") == 1 }, time.Second, 10*time.Millisecond)

	assert.NotPanics(t, func() { hub.BroadcastToRoom("tournament:8", make(chan int)) })
}
