package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/playmatatu/cuesim/internal/game"
)

// Client represents a connected WebSocket client
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	sessionID string
	canShoot  bool // connected with a valid shooter token
	send      chan []byte
}

// Hub maintains the set of active clients, grouped by table
type Hub struct {
	rooms      map[string]map[*Client]bool // sessionID -> clients
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes registrations until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, exists := h.rooms[client.sessionID]; !exists {
				h.rooms[client.sessionID] = make(map[*Client]bool)
			}
			h.rooms[client.sessionID][client] = true
			size := len(h.rooms[client.sessionID])
			h.mu.Unlock()
			log.Printf("[WS] Client connected to table %s (shooter=%v, room_size=%d)", client.sessionID, client.canShoot, size)

		case client := <-h.unregister:
			h.mu.Lock()
			if room, exists := h.rooms[client.sessionID]; exists {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
					if len(room) == 0 {
						delete(h.rooms, client.sessionID)
					}
					log.Printf("[WS] Client disconnected from table %s", client.sessionID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// RoomSize returns the number of clients watching a table.
func (h *Hub) RoomSize(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[sessionID])
}

// BroadcastToTable sends a message to every client watching a table
func (h *Hub) BroadcastToTable(sessionID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[sessionID] {
		select {
		case client.send <- data:
		default:
			// Client's buffer is full
			log.Printf("[WS] Client send buffer full for table %s, dropping message", sessionID)
		}
	}
}

// PublishFrame streams one tick to the table's room.
func (h *Hub) PublishFrame(f game.Frame) {
	h.BroadcastToTable(f.SessionID, map[string]interface{}{
		"type":   "frame",
		"tick":   f.Tick,
		"balls":  f.Balls,
		"events": f.Events,
		"moving": f.Moving,
	})
}

// PublishSettled announces that every ball on the table is at rest.
func (h *Hub) PublishSettled(s game.ShotSummary) {
	h.BroadcastToTable(s.SessionID, map[string]interface{}{
		"type":        "shot_settled",
		"shot_number": s.ShotNumber,
		"ticks":       s.Ticks,
		"contacts":    s.Contacts,
		"balls":       s.Balls,
	})
}

// Message types
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] write error for table %s: %v", c.sessionID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] ping error for table %s: %v", c.sessionID, err)
				return
			}
		}
	}
}

// sendJSON queues a message for this client only.
func (c *Client) sendJSON(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] dropped message for table %s (buffer full)", c.sessionID)
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.sendJSON(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}
