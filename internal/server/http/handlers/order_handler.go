package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solterra/storefront/internal/adapter/paypal"
	domainErrors "github.com/solterra/storefront/internal/domain/errors"
	"github.com/solterra/storefront/internal/domain/model"
	"github.com/solterra/storefront/internal/server/http/dto"
	"github.com/solterra/storefront/internal/usecase"
)

// OrderHandler records paid orders coming back from payment providers.
type OrderHandler struct {
	facade PayPalFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade PayPalFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// PlacePayPal handles POST /api/orders/paypal. The request fails fast on a
// malformed payload; nothing is persisted before validation passes.
func (h *OrderHandler) PlacePayPal(c *gin.Context) {
	var req dto.PayPalOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.OrderID == "" {
		respondError(c, http.StatusBadRequest, "orderId is required")
		return
	}
	if len(req.Items) == 0 {
		respondError(c, http.StatusBadRequest, "items must not be empty")
		return
	}
	if !usecase.ValidAmount(req.TotalAmount) {
		respondError(c, http.StatusBadRequest, "totalAmount must be a finite number")
		return
	}

	spec := usecase.OrderSpec{
		ID:            req.OrderID,
		Email:         req.Email,
		Items:         toModelItems(req.Items),
		TotalAmount:   req.TotalAmount,
		Currency:      req.Currency,
		PaymentMethod: model.PaymentMethodPayPal,
	}

	order, err := h.facade.PlacePayPalOrder(c.Request.Context(), spec, req.PayPalOrderID)
	if err != nil {
		var apiErr paypal.APIError
		switch {
		case errors.As(err, &apiErr):
			respondError(c, http.StatusBadGateway, apiErr.Message)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			respondError(c, http.StatusConflict, "order already recorded")
		case errors.Is(err, domainErrors.ErrMissingOrderID),
			errors.Is(err, domainErrors.ErrEmptyOrderItems),
			errors.Is(err, domainErrors.ErrInvalidAmount):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "order processing failed")
		}
		return
	}

	c.JSON(http.StatusOK, dto.PayPalOrderResponse{
		Success: true,
		OrderID: order.ID,
		Status:  string(order.Status),
	})
}
