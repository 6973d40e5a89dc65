package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/cuesim/internal/auth"
	"github.com/playmatatu/cuesim/internal/config"
	"github.com/playmatatu/cuesim/internal/game"
	"github.com/playmatatu/cuesim/internal/render"
)

// CreateTable racks a new table and issues its shooter token
func CreateTable(mgr *game.SessionManager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ts := mgr.CreateSession()

		hours := cfg.ShooterTokenHours
		if hours <= 0 {
			hours = 12
		}
		token, exp, err := auth.IssueShooterToken(cfg.JWTSecret, ts.ID, ts.Token, time.Duration(hours)*time.Hour)
		if err != nil {
			log.Printf("[API] Failed to issue shooter token for %s: %v", ts.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Header("X-Table-ID", ts.ID)
		c.JSON(http.StatusCreated, gin.H{
			"id":               ts.ID,
			"shooter_token":    token,
			"token_expires_at": exp.Format(time.RFC3339),
			"state":            ts.State(),
			"websocket_path":   "/api/v1/tables/" + ts.ID + "/ws",
			"snapshot_path":    "/api/v1/tables/" + ts.ID + "/snapshot.png",
		})
	}
}

// GetTable returns the current state of a table
func GetTable(mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ts, err := mgr.GetSession(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
			return
		}
		c.JSON(http.StatusOK, ts.State())
	}
}

// TakeShot aims the cue ball away from a world-space point
func TakeShot(mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			X *float64 `json:"x" binding:"required"`
			Y *float64 `json:"y" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "x and y required"})
			return
		}

		ts, err := mgr.Shoot(c.Param("id"), game.NewVec2(*req.X, *req.Y))
		switch {
		case errors.Is(err, game.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
		case errors.Is(err, game.ErrShotRejected):
			c.JSON(http.StatusConflict, gin.H{"accepted": false, "error": "balls are still moving"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		default:
			st := ts.State()
			c.JSON(http.StatusAccepted, gin.H{
				"accepted":    true,
				"shot_number": st.ShotNumber,
				"state":       st,
			})
		}
	}
}

// GetSnapshot renders the table as a PNG
func GetSnapshot(mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ts, err := mgr.GetSession(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
			return
		}

		table, balls := ts.Snapshot()
		c.Header("Content-Type", "image/png")
		c.Status(http.StatusOK)
		if err := render.RenderPNG(c.Writer, table, balls); err != nil {
			log.Printf("[API] Failed to render table %s: %v", ts.ID, err)
		}
	}
}

// ListShots returns the recorded shots of a table
func ListShots(mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := mgr.GetSession(id); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
			return
		}
		shots, err := mgr.ListShots(id)
		if err != nil {
			log.Printf("[DB] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load shots"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"shots": shots, "count": len(shots)})
	}
}
