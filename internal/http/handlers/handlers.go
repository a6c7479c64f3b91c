package handlers

import (
	"sync"

	"dashboard/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers holds the services behind the dashboard API.
type Handlers struct {
	dashboard       services.DashboardService
	defaultPageSize int

	routerMu sync.RWMutex
	router   *gin.Engine
}

func New(dashboard services.DashboardService, defaultPageSize int) *Handlers {
	return &Handlers{dashboard: dashboard, defaultPageSize: defaultPageSize}
}

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func (h *Handlers) SetRouter(r *gin.Engine) {
	h.routerMu.Lock()
	defer h.routerMu.Unlock()
	h.router = r
}

// dashboardFor scopes the dashboard service to the request for log correlation.
func (h *Handlers) dashboardFor(c *gin.Context) services.DashboardService {
	svc := h.dashboard
	svc.RequestID = requestID(c)
	return svc
}
