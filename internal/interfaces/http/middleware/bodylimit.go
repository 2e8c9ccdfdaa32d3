package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit rejects requests whose body exceeds maxBytes. A declared
// Content-Length over the limit is refused up front; chunked bodies are
// capped while streaming via MaxBytesReader.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.String(http.StatusRequestEntityTooLarge, "request body too large")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
