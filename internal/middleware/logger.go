package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plategenie/server/internal/pkg/logger"
)

// Logger writes one line per request with method, path, status and latency.
func Logger() gin.HandlerFunc {
	skip := map[string]bool{
		"/health": true,
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skip[path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method

		if query := c.Request.URL.RawQuery; query != "" {
			path = path + "?" + query
		}

		if status >= 500 {
			logger.Error("%s %s -> %d (%v)", method, path, status, latency)
			return
		}
		logger.Info("%s %s -> %d (%v)", method, path, status, latency)
	}
}
