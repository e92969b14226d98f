package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solterra/storefront/internal/server/http/dto"
)

// SyncHandler manages the spreadsheet ledger endpoints.
type SyncHandler struct {
	facade SyncFacade
}

// NewSyncHandler constructs SyncHandler.
func NewSyncHandler(facade SyncFacade) *SyncHandler {
	return &SyncHandler{facade: facade}
}

// Push handles POST /api/sync-orders. Per-order failures only show up in the
// counters; the batch itself still succeeds.
func (h *SyncHandler) Push(c *gin.Context) {
	var req dto.SyncOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	result := h.facade.SyncLedger(c.Request.Context(), toModelOrders(req.Orders), req.EmailSentMap)
	c.JSON(http.StatusOK, dto.SyncOrdersResponse{Success: true, Result: toSyncResultPayload(result)})
}

// Ledger handles GET /api/sync-orders.
func (h *SyncHandler) Ledger(c *gin.Context) {
	entries, err := h.facade.LedgerOrders(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusBadGateway, "ledger read failed")
		return
	}

	orders := make([]dto.LedgerEntry, 0, len(entries))
	for _, entry := range entries {
		orders = append(orders, dto.LedgerEntry{
			OrderID:     entry.OrderID,
			Email:       entry.Email,
			TotalAmount: entry.TotalAmount,
			Currency:    entry.Currency,
			Status:      entry.Status,
			EmailSent:   entry.EmailSent,
			PaidAt:      entry.PaidAt,
		})
	}

	c.JSON(http.StatusOK, dto.LedgerResponse{Success: true, Count: len(orders), Orders: orders})
}
