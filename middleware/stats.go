package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akrin/seo-analyzer/logging"
)

// StatsMiddleware tracks visitors and per-endpoint request statistics.
func StatsMiddleware(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Track unique visitor
		stats.TrackVisitor(c.ClientIP())

		c.Next()

		elapsed := float64(time.Since(start).Milliseconds())
		hasError := c.Writer.Status() >= 400

		switch {
		case c.Request.URL.Path == "/api/report" && c.Request.Method == "POST":
			stats.TrackReport(elapsed, hasError)
		case c.Request.URL.Path == "/api/report/markdown" && c.Request.Method == "GET":
			stats.TrackReport(elapsed, hasError)
		case c.Request.URL.Path == "/api/analyze" && c.Request.Method == "POST":
			// The handler records the focus keyword itself; this only covers
			// requests rejected before the handler ran.
			if hasError {
				stats.TrackAnalyze("", elapsed, true)
			}
		}

		// Periodically save statistics
		if stats.GetStatistics()["reportRequests"].(int)%100 == 0 {
			go stats.Save()
		}
	}
}
