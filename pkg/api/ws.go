package api

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler upgrades an authenticated request and attaches the
// session to the hub
func WebSocketHandler(hub *Hub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, ok := MemberIDFromContext(r.Context())
		if !ok {
			RespondWithError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("Websocket upgrade failed", zap.Error(err))
			return
		}

		client := &Client{
			Conn:     conn,
			Send:     make(chan []byte, 256),
			MemberID: memberID,
		}

		hub.Register(client)

		go hub.ReadPump(client)
		go hub.WritePump(client)
	}
}
