package dto

import "time"

// OrderItemPayload mirrors one order line on the wire.
type OrderItemPayload struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// PayPalOrderRequest describes the PayPal capture-and-record payload.
type PayPalOrderRequest struct {
	OrderID       string             `json:"orderId"`
	Email         string             `json:"email"`
	Items         []OrderItemPayload `json:"items"`
	TotalAmount   float64            `json:"totalAmount"`
	Currency      string             `json:"currency"`
	PayPalOrderID string             `json:"paypalOrderId"`
}

// PayPalOrderResponse confirms a recorded paid order.
type PayPalOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// OrderPayload mirrors a full order on the sync endpoints.
type OrderPayload struct {
	ID            string             `json:"id"`
	Email         string             `json:"email"`
	Items         []OrderItemPayload `json:"items"`
	TotalAmount   float64            `json:"totalAmount"`
	Currency      string             `json:"currency"`
	PaymentMethod string             `json:"paymentMethod"`
	Status        string             `json:"status"`
	PaidAt        *time.Time         `json:"paidAt,omitempty"`
}
