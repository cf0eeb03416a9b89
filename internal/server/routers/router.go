package routers

import (
	"time"

	"github.com/gin-gonic/gin"

	syncHandler "github.com/MrCamelHub/Trade-in/internal/server/handlers/sync"
	"github.com/MrCamelHub/Trade-in/internal/server/middlewares"
	"github.com/MrCamelHub/Trade-in/pkg/logger"
)

// SetupRoutes wires all routes
func SetupRoutes(h *syncHandler.Handler, log logger.Logger) *gin.Engine {
	startedAt := time.Now()

	r := gin.New()

	r.Use(middlewares.Recovery())
	r.Use(middlewares.CORS())
	r.Use(middlewares.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "tradein-sync",
			"message": "Service is running",
		})
	})

	r.GET("/status", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":        "tradein-sync",
			"status":         "operational",
			"uptime_seconds": int(time.Since(startedAt).Seconds()),
			"timestamp":      time.Now(),
		})
	})

	invoice := r.Group("/invoice")
	{
		invoice.POST("/sync", h.Trigger)
		invoice.GET("/check", h.CheckInvoices)
	}

	delivery := r.Group("/delivery")
	{
		delivery.GET("/check", h.CheckDeliveries)
	}

	runs := r.Group("/sync/runs")
	{
		// ":id" also accepts the reserved value "latest"
		runs.GET("/:id", h.GetRun)
	}

	return r
}
