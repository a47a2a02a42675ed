package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-proxy/pkg/metrics"
)

const unmatchedRoute = "unmatched"

// MetricsMiddleware records request counts and latency per matched route.
// Unmapped paths share one label so arbitrary URLs cannot inflate cardinality.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.RequestStarted()

		defer func() {
			route := c.FullPath()
			if route == "" {
				route = unmatchedRoute
			}
			m.RequestFinished(c.Request.Method, route, c.Writer.Status(), time.Since(start))
		}()

		c.Next()
	}
}
