package handlers

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/chess-league/realtime"
	"github.com/Dosada05/chess-league/services"
)

type WebSocketHandler struct {
	hub          *realtime.Hub
	groupService services.GroupService
	upgrader     websocket.Upgrader
}

// NewWebSocketHandler accepts connections from allowedOrigins; "*" allows any.
func NewWebSocketHandler(hub *realtime.Hub, gs services.GroupService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		groupService: gs,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return slices.ContainsFunc(allowed, func(o string) bool { return strings.EqualFold(o, origin) })
	}
}

// ServeWs handles GET /ws/groups/{groupID}. Viewers receive every schedule,
// result and standings change of the group.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if _, err := h.groupService.Get(r.Context(), groupID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		slog.WarnContext(r.Context(), "websocket upgrade failed", slog.Int("group_id", groupID), slog.Any("error", err))
		return
	}

	client := realtime.NewClient(h.hub, conn, realtime.GroupRoom(groupID))
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	slog.DebugContext(r.Context(), "websocket viewer joined", slog.String("room", client.Room))
}
