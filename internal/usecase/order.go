package usecase

import (
	"context"
	"time"

	domainErrors "github.com/solterra/storefront/internal/domain/errors"
	"github.com/solterra/storefront/internal/domain/model"
	"github.com/solterra/storefront/internal/domain/repository"
)

// OrderSpec is a normalized order-creation request produced by a payment
// intake adapter.
type OrderSpec struct {
	ID            string
	Email         string
	Items         []model.OrderItem
	TotalAmount   float64
	Currency      string
	PaymentMethod model.PaymentMethod
}

// OrderUseCase encapsulates the order lifecycle: create, mark paid, select
// for downstream sync. There is no rollback path; a failed mark-paid leaves
// the order in CREATED and reconciliation is manual.
type OrderUseCase struct {
	orders repository.OrderRepository
	now    func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, now: time.Now}
}

// Create persists a new order in CREATED status.
func (u *OrderUseCase) Create(ctx context.Context, spec OrderSpec) (*model.Order, error) {
	if spec.ID == "" {
		return nil, domainErrors.ErrMissingOrderID
	}
	if len(spec.Items) == 0 {
		return nil, domainErrors.ErrEmptyOrderItems
	}
	if !ValidAmount(spec.TotalAmount) {
		return nil, domainErrors.ErrInvalidAmount
	}

	currency := spec.Currency
	if currency == "" {
		currency = "USD"
	}

	order := &model.Order{
		ID:            spec.ID,
		Email:         SanitizeEmail(spec.Email),
		Items:         spec.Items,
		TotalAmount:   spec.TotalAmount,
		Currency:      currency,
		PaymentMethod: spec.PaymentMethod,
		Status:        model.OrderStatusCreated,
		CreatedAt:     u.now(),
	}

	return u.orders.Create(ctx, order)
}

// MarkPaid transitions the order to PAID. Items and amount stay unchanged
// across the transition. Calling it twice for the same id is not guarded
// against beyond re-setting the same status.
func (u *OrderUseCase) MarkPaid(ctx context.Context, id string) (*model.Order, error) {
	if id == "" {
		return nil, domainErrors.ErrMissingOrderID
	}
	return u.orders.MarkPaid(ctx, id, u.now())
}

// Get returns a stored order by id.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// SelectBatchForSync returns paid orders not yet pushed downstream.
func (u *OrderUseCase) SelectBatchForSync(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectBatchForSync(ctx, limit)
}

// MarkSynced records a completed fan-out for the order.
func (u *OrderUseCase) MarkSynced(ctx context.Context, id string) error {
	return u.orders.MarkSynced(ctx, id, u.now())
}
