package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the header the identifier travels in, both directions.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey is the gin context key the identifier is stored under.
	RequestIDKey = "request_id"
)

// RequestIDMiddleware ensures every request carries an identifier that log
// lines can be correlated by. An incoming X-Request-ID is honored so callers
// can thread their own identifiers through; otherwise one is minted.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}
