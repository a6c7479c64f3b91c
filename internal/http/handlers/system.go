package handlers

import (
	"context"
	"net/http"
	"time"

	intconfig "dashboard/internal/config"
	"dashboard/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "dashboard backend running"})
}

// DBCheck pings the MySQL users table. It reports 503 when the service runs
// without a database (USERS_SOURCE=http).
func (h *Handlers) DBCheck(c *gin.Context) {
	db := intconfig.DB
	if db == nil {
		respondError(c, http.StatusServiceUnavailable, "db_not_connected", "database not connected", nil)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		utils.LogError(requestID(c), "http", "db_check", err)
		respondError(c, http.StatusInternalServerError, "db_query_failed", "failed to query database: "+err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "users_in_db": count})
}

func (h *Handlers) Routes(c *gin.Context) {
	h.routerMu.RLock()
	r := h.router
	h.routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
