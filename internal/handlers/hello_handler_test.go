package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/expatsolutions/leads-api/internal/handlers"
)

func TestHelloHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := handlers.NewHelloHandler()
	router.GET("/", handler.Root)
	router.GET("/api/hello", handler.Hello)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "root",
			path:     "/",
			expected: "Expat Solutions API",
		},
		{
			name:     "hello",
			path:     "/api/hello",
			expected: "Hello from Expat Solutions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", tt.path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.expected)
		})
	}
}
