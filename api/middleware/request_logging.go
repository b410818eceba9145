package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-relay/internal/logger"
)

const headerRequestID = "X-Request-Id"

// RequestLogging makes sure every request carries an X-Request-Id and logs
// method, path, status and duration once the response is written.
func RequestLogging(log logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Log
	}
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request.Header.Set(headerRequestID, requestID)
		}
		c.Writer.Header().Set(headerRequestID, requestID)

		c.Next()

		fields := logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": requestID,
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields["query"] = q
		}
		logger.InfoWithFields(log, "completed request", fields)
	}
}
