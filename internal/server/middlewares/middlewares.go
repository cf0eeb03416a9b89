package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MrCamelHub/Trade-in/pkg/logger"
)

// CORS permissive CORS for the admin front end
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// RequestLogger access logging through the shared logger
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Infof(c.Request.Context(), "[HTTP] %s %s -> %d (%v)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Recovery converts panics into 500 responses
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
