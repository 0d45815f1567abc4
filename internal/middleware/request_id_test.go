package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDMiddleware_MintsIdentifierWhenAbsent(t *testing.T) {
	// Setup
	router := gin.New()
	router.Use(RequestIDMiddleware())

	var seenID string
	router.GET("/test", func(c *gin.Context) {
		seenID = c.GetString(RequestIDKey)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, seenID, "Handler should see a minted request id")
	assert.Equal(t, seenID, w.Header().Get(RequestIDHeader), "Response header should carry the same id the handler saw")
}

func TestRequestIDMiddleware_HonorsIncomingIdentifier(t *testing.T) {
	// Setup
	router := gin.New()
	router.Use(RequestIDMiddleware())

	var seenID string
	router.GET("/test", func(c *gin.Context) {
		seenID = c.GetString(RequestIDKey)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, "caller-supplied-id-42")

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, "caller-supplied-id-42", seenID)
	assert.Equal(t, "caller-supplied-id-42", w.Header().Get(RequestIDHeader))
}

func TestRequestIDMiddleware_ReplacesBlankIncomingIdentifier(t *testing.T) {
	// Setup
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, "   ")

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	got := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, got)
	assert.NotEqual(t, "   ", got, "Blank identifiers should be replaced, not echoed")
}
