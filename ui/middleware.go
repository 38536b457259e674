package ui

import (
	"time"

	"flightdash/internal"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing one sent by the client,
// and logs the request at debug level when it completes
func RequestID(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()
		logger.Debug("request %s %s %s -> %d (%v)", id, c.Request.Method, c.Request.URL.RequestURI(),
			c.Writer.Status(), time.Since(start).Round(time.Microsecond))
	}
}
