package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devbyteai/BetStack-sub001/pkg/logger"
	"github.com/devbyteai/BetStack-sub001/pkg/metrics"
)

// LoggerMiddleware logs HTTP requests using the structured logger and records
// the request counter and latency histogram.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		// The route template keeps metric cardinality bounded; unmatched
		// routes fall back to the raw path.
		route := c.FullPath()
		if route == "" {
			route = path
		}
		metrics.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), latency.Seconds())

		if raw != "" {
			path = path + "?" + raw
		}
		logger.LogRequest(c.Request.Context(), c.Request.Method, path, c.Writer.Status(), latency, c.ClientIP())
	}
}
