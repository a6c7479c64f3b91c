package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats returns the summary cards.
func (h *Handlers) GetStats(c *gin.Context) {
	stats := h.dashboardFor(c).Stats(c.Request.Context())
	if stats.Err != nil {
		RespondDomainError(c, stats.Err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
