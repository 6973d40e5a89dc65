package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/cuesim/internal/api/handlers"
	"github.com/playmatatu/cuesim/internal/config"
	"github.com/playmatatu/cuesim/internal/game"
	"github.com/playmatatu/cuesim/internal/middleware"
	"github.com/playmatatu/cuesim/internal/ws"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, mgr *game.SessionManager, hub *ws.Hub, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(mgr))

		// Table endpoints
		tables := v1.Group("/tables")
		{
			tables.POST("", handlers.CreateTable(mgr, cfg))
			tables.GET("/:id", handlers.GetTable(mgr))
			tables.POST("/:id/shot", middleware.RequireShooter(mgr, cfg), handlers.TakeShot(mgr))
			tables.GET("/:id/snapshot.png", handlers.GetSnapshot(mgr))
			tables.GET("/:id/shots", handlers.ListShots(mgr))
			tables.GET("/:id/ws", middleware.WebSocketCORSCheck(cfg), handlers.HandleTableWebSocket(hub, mgr, cfg))
		}

		// Admin endpoints
		adm := v1.Group("/admin", middleware.RequireAdmin(db, cfg))
		{
			adm.GET("/tables", handlers.AdminListTables(db, mgr))
			adm.DELETE("/tables/:id", handlers.AdminRemoveTable(db, mgr))
			adm.GET("/audit", handlers.AdminAuditLog(db))
		}
	}
}
