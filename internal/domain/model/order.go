package model

import "time"

// OrderStatus describes the order lifecycle. Transitions are monotonic:
// CREATED -> PAID, no reverse path.
type OrderStatus string

const (
	OrderStatusCreated OrderStatus = "CREATED"
	OrderStatusPaid    OrderStatus = "PAID"
)

// PaymentMethod identifies the provider that initiated the checkout.
type PaymentMethod string

const (
	PaymentMethodStripe PaymentMethod = "stripe"
	PaymentMethodPayPal PaymentMethod = "paypal"
)

// OrderItem is a purchased product snapshot at checkout time.
type OrderItem struct {
	ProductID string
	Title     string
	UnitPrice float64
	Quantity  int
}

// Order describes a single checkout attempt. The ID is assigned by the
// upstream payment provider, not generated here.
type Order struct {
	ID            string
	Email         string
	Items         []OrderItem
	TotalAmount   float64
	Currency      string
	PaymentMethod PaymentMethod
	Status        OrderStatus
	CreatedAt     time.Time
	PaidAt        *time.Time
	SyncedAt      *time.Time
}

// Paid reports whether the order completed payment.
func (o Order) Paid() bool {
	return o.Status == OrderStatusPaid
}
