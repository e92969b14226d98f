package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solterra/storefront/internal/server/http/dto"
)

// EmailHandler manages lifecycle email automation endpoints.
type EmailHandler struct {
	facade SyncFacade
}

// NewEmailHandler constructs EmailHandler.
func NewEmailHandler(facade SyncFacade) *EmailHandler {
	return &EmailHandler{facade: facade}
}

// Run handles POST /api/email-automations.
func (h *EmailHandler) Run(c *gin.Context) {
	var req dto.EmailAutomationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	result := h.facade.RunEmailAutomation(c.Request.Context(), toModelOrders(req.Orders))
	c.JSON(http.StatusOK, dto.EmailAutomationResponse{
		Success: true,
		Result:  dto.EmailRunResult{Sent: result.Synced, Failed: result.Failed},
	})
}

// Stats handles GET /api/email-automations.
func (h *EmailHandler) Stats(c *gin.Context) {
	stats, err := h.facade.EmailStats(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "stats unavailable")
		return
	}

	payload := make(map[string]int, len(stats))
	for kind, count := range stats {
		payload[string(kind)] = count
	}
	c.JSON(http.StatusOK, dto.EmailStatsResponse{Success: true, Stats: payload})
}
