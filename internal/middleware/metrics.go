package middleware

import (
	"time"

	"github.com/SscSPs/class_fund_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records every request against its route template.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
