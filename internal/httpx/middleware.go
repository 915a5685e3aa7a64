// Package httpx holds the gin plumbing shared by the HTTP binaries.
package httpx

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "rid"

// RequestID reuses the caller's X-Request-ID or mints one, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(RequestIDKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// Logger writes one access line per request; handler errors attached with
// c.Error are appended.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rid := c.GetString(RequestIDKey)
		if len(c.Errors) > 0 {
			log.Printf("[http] rid=%s %s %s status=%d dur=%s err=%q",
				rid, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.Errors.String())
			return
		}
		log.Printf("[http] rid=%s %s %s status=%d dur=%s",
			rid, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
