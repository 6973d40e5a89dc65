package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/cuesim/internal/admin"
	"github.com/playmatatu/cuesim/internal/game"
)

// AdminListTables lists every live table
func AdminListTables(db *sqlx.DB, mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tables := mgr.ListSessions()
		admin.LogAdminAction(db, c.ClientIP(), c.FullPath(), "list_tables", map[string]interface{}{"count": len(tables)}, true)
		c.JSON(http.StatusOK, gin.H{"tables": tables, "count": len(tables)})
	}
}

// AdminRemoveTable closes a table and drops its snapshot
func AdminRemoveTable(db *sqlx.DB, mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := mgr.RemoveSession(id); err != nil {
			if errors.Is(err, game.ErrSessionNotFound) {
				admin.LogAdminAction(db, c.ClientIP(), c.FullPath(), "remove_table", map[string]interface{}{"id": id}, false)
				c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		admin.LogAdminAction(db, c.ClientIP(), c.FullPath(), "remove_table", map[string]interface{}{"id": id}, true)
		c.JSON(http.StatusOK, gin.H{"removed": id})
	}
}

// AdminAuditLog returns recent admin actions
func AdminAuditLog(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"entries": []interface{}{}})
			return
		}
		entries, err := admin.GetAdminAuditLogs(db, 100, 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load audit log"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries})
	}
}
