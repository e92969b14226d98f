package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/solterra/storefront/internal/domain/model"
	"github.com/solterra/storefront/internal/server/http/dto"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorResponse{Error: message})
}

func toModelItems(items []dto.OrderItemPayload) []model.OrderItem {
	result := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		result = append(result, model.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return result
}

func toModelOrders(orders []dto.OrderPayload) []model.Order {
	result := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, model.Order{
			ID:            o.ID,
			Email:         o.Email,
			Items:         toModelItems(o.Items),
			TotalAmount:   o.TotalAmount,
			Currency:      o.Currency,
			PaymentMethod: model.PaymentMethod(o.PaymentMethod),
			Status:        model.OrderStatus(o.Status),
			PaidAt:        o.PaidAt,
		})
	}
	return result
}

func toSyncResultPayload(result model.SyncResult) dto.SyncResultPayload {
	return dto.SyncResultPayload{Synced: result.Synced, Failed: result.Failed, Total: result.Total}
}
