package repository

import (
	"context"
	"time"

	"github.com/solterra/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (*model.Order, error)
	SelectBatchForSync(ctx context.Context, limit int) ([]model.Order, error)
	MarkSynced(ctx context.Context, id string, syncedAt time.Time) error
}
