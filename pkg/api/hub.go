package api

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is one connected portal session
type Client struct {
	Conn     *websocket.Conn
	Send     chan []byte
	MemberID string
}

// Hub fans portal events out to every connected session, so an editor
// left open in another tab sees saves as they happen
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *zap.Logger
	mu         sync.RWMutex
}

func NewHub(logger *zap.Logger) *Hub {
	hub := &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
	go hub.Run()
	return hub
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) Broadcast(message []byte) {
	h.broadcast <- message
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("Session connected", zap.String("member_id", client.MemberID))
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Debug("Session disconnected", zap.String("member_id", client.MemberID))
		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastScheduleSaved tells every session that a track's list changed
func (h *Hub) BroadcastScheduleSaved(track string, year int) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":      "schedule_saved",
		"track":     track,
		"year":      year,
		"timestamp": time.Now().UTC(),
	})
	h.Broadcast(data)
}

// ReadPump drains the connection until it closes; the portal pushes
// only, so inbound frames are discarded
func (h *Hub) ReadPump(client *Client) {
	defer func() {
		h.Unregister(client)
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) WritePump(client *Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			client.Conn.WriteMessage(websocket.TextMessage, message)
		case <-ticker.C:
			client.Conn.WriteMessage(websocket.PingMessage, nil)
		}
	}
}
