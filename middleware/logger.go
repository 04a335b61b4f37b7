package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityarajmishra/ShopEase/logging"
)

// RequestLogger attaches a request-scoped logger to the gin context and logs
// one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		l := logging.New("http").With(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.Set("logger", l)

		c.Next()

		l.Info("request",
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
