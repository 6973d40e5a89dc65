package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/cuesim/internal/api"
	"github.com/playmatatu/cuesim/internal/config"
	"github.com/playmatatu/cuesim/internal/database"
	"github.com/playmatatu/cuesim/internal/game"
	"github.com/playmatatu/cuesim/internal/migrations"
	"github.com/playmatatu/cuesim/internal/redis"
	"github.com/playmatatu/cuesim/internal/ws"
)

func main() {
	// Initialize configuration (.env is loaded by config.Load)
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations on start if requested
	if cfg.MigrateOnStart {
		log.Println("↗ Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Redis
	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	// Session manager and expiry worker
	game.InitializeManager(ctx, db, rdb, cfg)
	log.Printf("[PHYSICS] radius=%.2f shot_power=%.2f drag=%.4f min_power=%.3f contact_cap=%d",
		cfg.Physics.BallRadius, cfg.Physics.ShotPower, cfg.Physics.Drag, cfg.Physics.MinPower, cfg.Physics.MaxContactsPerTick)

	// Websocket hub receives every frame; Redis relays events from other instances
	hub := ws.NewHub()
	go hub.Run()
	game.Manager.SetSink(hub)
	ws.StartEventSubscriber(ctx, rdb, hub, game.Manager)

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	api.SetupRoutes(router, db, game.Manager, hub, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting cuesim server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
