package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/cuesim/internal/auth"
	"github.com/playmatatu/cuesim/internal/config"
	"github.com/playmatatu/cuesim/internal/game"
	"github.com/playmatatu/cuesim/internal/middleware"
)

// TakeShotData is the world-space point the shooter aimed away from.
type TakeShotData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func newUpgrader(cfg *config.Config) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || middleware.OriginAllowed(cfg, origin)
		},
	}
}

// HandleWebSocket streams a table's frames. Connecting with a valid shooter
// token in ?st= also allows take_shot.
func HandleWebSocket(hub *Hub, mgr *game.SessionManager, cfg *config.Config) gin.HandlerFunc {
	upgrader := newUpgrader(cfg)
	return func(c *gin.Context) {
		sessionID := c.Param("id")
		ts, err := mgr.GetSession(sessionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
			return
		}

		canShoot := false
		if st := c.Query("st"); st != "" {
			claims, err := auth.ParseShooterToken(cfg.JWTSecret, st)
			if err != nil || claims.SessionID != sessionID || !ts.TokenMatches(claims.TokenID) {
				c.JSON(http.StatusForbidden, gin.H{"error": "invalid shooter token"})
				return
			}
			canShoot = true
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			return
		}

		client := &Client{
			hub:       hub,
			conn:      conn,
			sessionID: sessionID,
			canShoot:  canShoot,
			send:      make(chan []byte, 256),
		}
		hub.register <- client

		client.sendJSON(stateMessage(ts.State()))

		go client.writePump()
		go client.readPump(mgr)
	}
}

func stateMessage(st game.SessionState) map[string]interface{} {
	return map[string]interface{}{
		"type":        "state",
		"id":          st.ID,
		"status":      st.Status,
		"shot_number": st.ShotNumber,
		"tick":        st.Tick,
		"moving":      st.Moving,
		"table":       st.Table,
		"balls":       st.Balls,
	}
}

// readPump reads client messages until the connection drops.
func (c *Client) readPump(mgr *game.SessionManager) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] unexpected close for table %s: %v", c.sessionID, err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("Invalid message")
			continue
		}

		c.handleMessage(mgr, msg)
	}
}

// handleMessage processes incoming table messages.
func (c *Client) handleMessage(mgr *game.SessionManager, msg WSMessage) {
	switch msg.Type {
	case "take_shot":
		if !c.canShoot {
			c.sendError("Shooter token required")
			return
		}
		var data TakeShotData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid shot data")
			return
		}
		c.handleTakeShot(mgr, data)

	case "get_state":
		ts, err := mgr.GetSession(c.sessionID)
		if err != nil {
			c.sendError("Table not found")
			return
		}
		c.sendJSON(stateMessage(ts.State()))

	default:
		c.sendError("Unknown message type")
	}
}

func (c *Client) handleTakeShot(mgr *game.SessionManager, data TakeShotData) {
	ts, err := mgr.Shoot(c.sessionID, game.NewVec2(data.X, data.Y))
	switch {
	case errors.Is(err, game.ErrShotRejected):
		c.sendJSON(map[string]interface{}{
			"type":     "shot_rejected",
			"accepted": false,
			"message":  "Balls are still moving",
		})
	case err != nil:
		c.sendError("Table not found")
	default:
		c.hub.BroadcastToTable(c.sessionID, stateMessage(ts.State()))
	}
}
