package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/expatsolutions/leads-api/internal/models"
	"github.com/expatsolutions/leads-api/internal/services"
)

type LeadHandler struct {
	leadService services.LeadServiceInterface
}

func NewLeadHandler(leadService services.LeadServiceInterface) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// CreateLead handles POST /api/leads
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req models.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrors := ParseValidationErrors(err)
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", validationErrors, err)
		return
	}

	resp, err := h.leadService.SubmitLead(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Write the response before scheduling the notification, so delivery can
	// neither delay nor influence what the caller sees
	c.JSON(http.StatusCreated, resp)
	h.leadService.NotifyLeadCreated(&req, resp.ID)
}

// ListLeads handles GET /api/leads
func (h *LeadHandler) ListLeads(c *gin.Context) {
	limit := services.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(c, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		limit = parsed
	}

	leads, err := h.leadService.ListLeads(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, leads)
}
