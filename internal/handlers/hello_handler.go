package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HelloHandler serves the root and hello endpoints the frontend uses as
// smoke checks
type HelloHandler struct{}

func NewHelloHandler() *HelloHandler {
	return &HelloHandler{}
}

// Root handles GET /
func (h *HelloHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Expat Solutions API"})
}

// Hello handles GET /api/hello
func (h *HelloHandler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from Expat Solutions"})
}
