package middleware

import "github.com/gin-gonic/gin"

// SSEHeaders prepares a response for server-sent events streaming. The
// handler behind it owns the event loop.
func SSEHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")
		c.Next()
	}
}
