package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/chess-league/realtime"
	"github.com/Dosada05/chess-league/services"
)

func wsServer(t *testing.T, groups services.GroupService, origins []string) (*httptest.Server, *realtime.Hub) {
	t.Helper()
	hub := realtime.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	r := chi.NewRouter()
	r.Get("/ws/groups/{groupID}", NewWebSocketHandler(hub, groups, origins).ServeWs)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return srv, hub
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestWebSocket_ReceivesRoomBroadcast(t *testing.T) {
	srv, hub := wsServer(t, &stubGroups{}, []string{"*"})

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/groups/9"), nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.Eventually(t, func() bool { return hub.RoomSize(realtime.GroupRoom(9)) == 1 }, time.Second, 5*time.Millisecond)
	hub.BroadcastToRoom(realtime.GroupRoom(9), realtime.Message{Type: realtime.MessageGameUpdated, RoomID: realtime.GroupRoom(9)})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"GAME_UPDATED"`)
	assert.Contains(t, string(data), `"room_id":"group:9"`)
}

func TestWebSocket_UnknownGroup(t *testing.T) {
	srv, _ := wsServer(t, &stubGroups{err: services.ErrGroupNotFound}, []string{"*"})

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/groups/9"), nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebSocket_OriginCheck(t *testing.T) {
	srv, _ := wsServer(t, &stubGroups{}, []string{"https://league.example.org"})

	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/groups/9"), header)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "https://league.example.org")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/groups/9"), header)
	require.NoError(t, err)
	conn.Close()
}
