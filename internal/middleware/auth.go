package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/cuesim/internal/admin"
	"github.com/playmatatu/cuesim/internal/auth"
	"github.com/playmatatu/cuesim/internal/config"
	"github.com/playmatatu/cuesim/internal/game"
)

// ShooterSessionKey is the gin context key holding the table a shooter token was issued for.
const ShooterSessionKey = "shooter_session_id"

// RequireShooter validates the bearer shooter token. The token must have been
// issued for the table named by the :id route parameter and carry that
// table's token id. Unknown tables fall through to the handler.
func RequireShooter(mgr *game.SessionManager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := auth.ParseShooterToken(cfg.JWTSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if id := c.Param("id"); id != "" && id != claims.SessionID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token not valid for this table"})
			return
		}
		if ts, err := mgr.GetSession(claims.SessionID); err == nil && !ts.TokenMatches(claims.TokenID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token not valid for this table"})
			return
		}

		c.Set(ShooterSessionKey, claims.SessionID)
		c.Next()
	}
}

// RequireAdmin checks the X-Admin-Token header against ADMIN_TOKEN_HASH and
// records every attempt in the audit log.
func RequireAdmin(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Admin-Token")
		if !admin.VerifyAdminToken(cfg.AdminTokenHash, token) {
			log.Printf("[ADMIN] Rejected admin request from %s to %s", c.ClientIP(), c.FullPath())
			admin.LogAdminAction(db, c.ClientIP(), c.FullPath(), "auth_failed", nil, false)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin token required"})
			return
		}
		c.Next()
	}
}
