package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solterra/storefront/internal/adapter/stripe"
	"github.com/solterra/storefront/internal/domain/model"
	"github.com/solterra/storefront/internal/server/http/dto"
)

// CheckoutHandler manages Stripe checkout session creation.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Create handles POST /api/checkout.
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req.Items) == 0 {
		respondError(c, http.StatusBadRequest, "items must not be empty")
		return
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Price <= 0 || item.Quantity <= 0 {
			respondError(c, http.StatusBadRequest, "item price and quantity must be positive")
			return
		}
		items = append(items, model.OrderItem{
			ProductID: item.ID,
			Title:     item.Title,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
		})
	}

	url, err := h.facade.CreateCheckoutSession(c.Request.Context(), items)
	if err != nil {
		var apiErr stripe.APIError
		if errors.As(err, &apiErr) {
			respondError(c, http.StatusBadGateway, apiErr.Message)
			return
		}
		respondError(c, http.StatusInternalServerError, "checkout session failed")
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{URL: url})
}
