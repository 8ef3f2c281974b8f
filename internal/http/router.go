package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookclub/internal/session"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(SecurityHeadersMiddleware())

	router.SetHTMLTemplate(loadTemplates())
	router.StaticFS("/static", staticFiles())

	health := NewHealthController(cfg.Registry, cfg.APIKeyConfigured, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	volumes := NewVolumesController(cfg.Catalog, cfg.Sink)
	router.GET("/api/volumes", volumes.Lookup)

	diagnosticsController := NewDiagnosticsController(cfg.Diagnostics)
	router.GET("/api/diagnostics", diagnosticsController.Recent)

	searchController := NewSearchController()

	// Session-bound routes: each browser gets its own searcher.
	searcher := router.Group("/")
	searcher.Use(cfg.Sessions.LoadSave())
	searcher.Use(SearcherMiddleware(cfg.Registry, cfg.Sessions))

	api := searcher.Group("/api/search")
	api.GET("", searchController.GetState)
	api.PUT("", searchController.SetQuery)
	api.POST("/expand/:index", searchController.Expand)
	api.DELETE("/expand", searchController.Collapse)

	ui := searcher.Group("/")
	if len(cfg.CSRFSecret) > 0 {
		ui.Use(session.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	ui.GET("/", searchController.Page)
	ui.POST("/ui/search", searchController.Search)
	ui.GET("/ui/search/results", searchController.Results)
	ui.POST("/ui/search/expand/:index", searchController.ToggleEntry)
	ui.POST("/ui/search/collapse", searchController.CollapseEntry)

	return router
}
