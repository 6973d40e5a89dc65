package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/cuesim/internal/config"
	"github.com/playmatatu/cuesim/internal/game"
	"github.com/playmatatu/cuesim/internal/ws"
)

// HandleTableWebSocket streams a table's frames
func HandleTableWebSocket(hub *ws.Hub, mgr *game.SessionManager, cfg *config.Config) gin.HandlerFunc {
	return ws.HandleWebSocket(hub, mgr, cfg)
}
