package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware records HTTP request duration and count per route pattern
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// route pattern keeps label cardinality bounded
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		method := c.Request.Method

		RequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
		RequestCount.WithLabelValues(method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
