package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/solterra/storefront/internal/domain/errors"
	"github.com/solterra/storefront/internal/domain/model"
	"github.com/solterra/storefront/internal/server/http/dto"
)

// BrevoHandler manages CRM contact sync.
type BrevoHandler struct {
	facade SyncFacade
}

// NewBrevoHandler constructs BrevoHandler.
func NewBrevoHandler(facade SyncFacade) *BrevoHandler {
	return &BrevoHandler{facade: facade}
}

// Sync handles POST /api/brevo/sync. Consent-refused contacts are counted as
// failed, never silently dropped.
func (h *BrevoHandler) Sync(c *gin.Context) {
	var req dto.ContactSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	contacts := make([]model.Contact, 0, len(req.Contacts))
	for _, contact := range req.Contacts {
		contacts = append(contacts, model.Contact{
			Email:      contact.Email,
			Country:    contact.Country,
			Attributes: contact.Attributes,
		})
	}

	result, err := h.facade.SyncContacts(c.Request.Context(), model.ContactType(req.Type), contacts)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnknownContactType) {
			respondError(c, http.StatusBadRequest, "type must be buyer, registered or newsletter")
			return
		}
		respondError(c, http.StatusInternalServerError, "contact sync failed")
		return
	}

	c.JSON(http.StatusOK, dto.ContactSyncResponse{Success: true, Result: toSyncResultPayload(result)})
}
