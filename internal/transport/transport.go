package transport

import (
	"fmt"
	"net/http"

	"github.com/ds124wfegd/pill-overlay/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

func InitRoutes(overlayHandler *OverlayHandler, maxBodyBytes int64) *gin.Engine {
	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		failure(c, fmt.Errorf("internal error: %v", recovered))
	}))

	router.POST("/add-text", middleware.BodyLimit(maxBodyBytes), overlayHandler.AddText)

	// Health check
	router.GET("/health", overlayHandler.Health)
	router.GET("/health/font", overlayHandler.FontStatus)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
