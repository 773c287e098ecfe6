package http

import (
	"github.com/gin-gonic/gin"
)

// securityHeaders sets the headers every JSON response carries.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(securityHeaders())

	health := NewHealthController(cfg.Database, cfg.Driver, cfg.Version)
	bookController := NewBookController(cfg.Driver, cfg.Settings, cfg.TurnTime, cfg.OpenTime)
	pagesController := NewPagesController(cfg.Pages, cfg.Driver)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Book endpoints
	router.GET("/api/book", bookController.GetBook)
	router.POST("/api/book/state", bookController.SetState)
	router.POST("/api/book/turn", bookController.TurnToPage)
	router.POST("/api/book/forward", bookController.TurnForward)
	router.POST("/api/book/backward", bookController.TurnBackward)
	router.POST("/api/book/stop", bookController.StopTurningPages)
	router.POST("/api/book/drag/start", bookController.DragStart)
	router.POST("/api/book/drag/progress", bookController.DragProgress)
	router.POST("/api/book/drag/stop", bookController.DragStop)
	router.PUT("/api/book/quality", bookController.SetQuality)
	router.PUT("/api/book/pool", bookController.SetPoolSize)
	router.PUT("/api/book/surfaces/:surface", bookController.SetSurface)

	// Page endpoints
	if cfg.Pages != nil {
		router.GET("/api/pages", pagesController.GetAllPages)
		router.POST("/api/pages", pagesController.AddPage)
		router.POST("/api/pages/insert", pagesController.InsertPage)
		router.POST("/api/pages/move", pagesController.MovePage)
		router.PUT("/api/pages/:number", pagesController.UpdatePage)
		router.DELETE("/api/pages/:number", pagesController.DeletePage)
	}

	// Autoplay endpoints
	if cfg.Autoplay != nil {
		autoplayController := NewAutoplayController(cfg.Autoplay)
		router.GET("/api/autoplay", autoplayController.GetStatus)
		router.POST("/api/autoplay/run", autoplayController.RunNow)
	}

	return router
}
