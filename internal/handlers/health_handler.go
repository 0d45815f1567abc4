package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StoreChecker reports document store presence and reachability
type StoreChecker interface {
	Available() bool
	Ping(ctx context.Context) error
}

// pingTimeout bounds the diagnostics store probe
const pingTimeout = 5 * time.Second

type HealthHandler struct {
	store          StoreChecker
	mailConfigured func() bool
	recipients     func() []string
}

func NewHealthHandler(store StoreChecker, mailConfigured func() bool, recipients func() []string) *HealthHandler {
	return &HealthHandler{
		store:          store,
		mailConfigured: mailConfigured,
		recipients:     recipients,
	}
}

// Healthcheck reports process liveness. A server without a configured store
// still answers ok, it simply runs degraded.
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Diagnostics reports store reachability and configuration presence.
// An unconfigured store is reported as a server error to match what the
// frontend deployment checks expect.
func (h *HealthHandler) Diagnostics(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	if !h.store.Available() {
		respondError(c, http.StatusInternalServerError, "Database not configured", nil)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	status := "ok"
	reachable := true
	if err := h.store.Ping(ctx); err != nil {
		attachError(c, err)
		status = "degraded"
		reachable = false
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"database": gin.H{
			"configured": true,
			"reachable":  reachable,
		},
		"mail": gin.H{
			"configured": h.mailConfigured(),
			"recipients": len(h.recipients()),
		},
	})
}
