package api

import (
	"log"
	stdhttp "net/http"

	intconfig "dashboard/internal/config"
	"dashboard/internal/http/handlers"
	"dashboard/internal/http/middleware"
	"dashboard/internal/services"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the router needs beyond configuration.
type Deps struct {
	Dashboard      services.DashboardService
	MetricsHandler stdhttp.Handler
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	h := handlers.New(deps.Dashboard, env.DefaultPageSize)
	h.SetRouter(r)

	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Dashboard cards
		api.GET("/dashboard/stats", h.GetStats)

		// Users table
		users := api.Group("/users")
		users.GET("", h.GetUsers)
		users.GET("/columns", h.GetUserColumns)
		users.GET("/export.pdf", h.ExportUsersPDF)
		users.POST("/refresh", h.RefreshUsers)
		users.GET("/:id", h.GetUserByID)
	}

	return r
}
